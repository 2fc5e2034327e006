package responses

// RequestIDHeader carries the per-request id on requests and responses.
const RequestIDHeader = "X-Request-Id"

// Envelope wraps every successful JSON body, e.g. {"data": {"items": [...]}}.
type Envelope struct {
	Data any `json:"data"`
}

// ErrorBody is the public part of a failed request. RequestID echoes the
// response's X-Request-Id so a failed cart save can be found in the logs.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}
