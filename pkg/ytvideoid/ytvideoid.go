package ytvideoid

import (
	"errors"
	"regexp"
)

var ErrInvalidVideoRef = errors.New("invalid video reference")

var (
	urlRe  = regexp.MustCompile(`(?:v=|/v/|youtu\.be/|/embed/)([A-Za-z0-9_-]{11})`)
	bareRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// Extract returns the 11-character video id from a watch url or a bare id.
func Extract(input string) (string, error) {
	if input == "" {
		return "", ErrInvalidVideoRef
	}

	if m := urlRe.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}

	if bareRe.MatchString(input) {
		return input, nil
	}

	return "", ErrInvalidVideoRef
}
