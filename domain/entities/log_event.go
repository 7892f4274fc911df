package entities

// LogEvent is a client-side event report forwarded to the process log.
type LogEvent struct {
	ClientID string         `json:"client_id" validate:"required"`
	Type     string         `json:"type" validate:"required"`
	Message  *string        `json:"message,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
