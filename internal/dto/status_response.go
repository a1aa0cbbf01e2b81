package dto

// StatusResponse is the uniform error/degradation body every service returns:
// authorization failures, mapped business errors and gateway fallbacks all use
// this shape.
type StatusResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
