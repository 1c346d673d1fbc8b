package handlers

// ErrorResponse is the error body written outside huma operations, such as
// for unmatched routes.
type ErrorResponse struct {
	Error   string `json:"error"             example:"Not found"`
	Message string `json:"message,omitempty" example:"runtime error: index out of range"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
