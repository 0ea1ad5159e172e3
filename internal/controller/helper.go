package controller

import (
	"strconv"
	"time"
)

func (c *controller) generateTimeBasedId() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
