package dtos

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ErrorDetail is the data payload of a failed response.
type ErrorDetail struct {
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}
