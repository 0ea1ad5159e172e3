package wsrouter

import (
	"context"
	"errors"
)

var ErrUnknownMessageType = errors.New("unknown message type")

type ctxKey string

const messageTypeKey ctxKey = "message_type"

func GetMessageTypeFromCtx(ctx context.Context) string {
	messageType, ok := ctx.Value(messageTypeKey).(string)
	if !ok {
		return ""
	}

	return messageType
}
