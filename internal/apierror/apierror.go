// Package apierror provides the canonical response envelope for the API.
// Every handler answers {success, data?, error?, message?} so the UI can
// surface `message` verbatim and branch on `error` without parsing prose.
// Internal details (stack traces, SQL errors) never reach the client.
package apierror

// Stable machine-readable error tags.
const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeInternal   = "internal"
)

// Response is the envelope for every API reply, success or failure.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func Fail(code, message string) Response {
	return Response{Success: false, Error: code, Message: message}
}

// Validation wraps multiple field errors under the standard envelope.
type ValidationResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationResponse {
	return &ValidationResponse{
		Success: false,
		Error:   CodeValidation,
		Message: "Error de validacion",
		Fields:  fields,
	}
}
