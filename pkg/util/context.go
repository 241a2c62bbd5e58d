package util

import (
	"context"
)

type key string

const (
	requestIDKey = key("x-request-id")
	commandKey   = key("command")
)

// WithRequestID returns a context with request id.
// It will generate a new request id if the provided id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRequestID()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns request id from context
// will return empty string if not present
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCommand returns a context tagged with the CLI command being run.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// GetCommand returns the CLI command from context
// will return empty string if not present
func GetCommand(ctx context.Context) string {
	cmd, _ := ctx.Value(commandKey).(string)
	return cmd
}
