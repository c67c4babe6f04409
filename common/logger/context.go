package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment so routing code never has
// to repeat the message identifiers on every log statement.
type LogFields struct {
	MessageID   *int64  // bridge-assigned inbound message ID
	RoomID      *string // group room identifier, when the message is a group message
	Sender      *string // sender wxid
	MessageKind *int    // raw protocol message-type code
	Component   string  // component name (e.g. "wxgate.router")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.RoomID != nil {
		result.RoomID = next.RoomID
	}
	if next.Sender != nil {
		result.Sender = next.Sender
	}
	if next.MessageKind != nil {
		result.MessageKind = next.MessageKind
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if
// truncated. Useful for logging potentially long message bodies.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
