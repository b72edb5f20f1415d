package dto

// ErrorResponse is the uniform error envelope returned by every
// endpoint. Code is the engine error code, not the HTTP status.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
