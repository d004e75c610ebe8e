package dto

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Errors  map[string]any `json:"errors,omitempty"`
	Meta    *Meta          `json:"meta,omitempty"`
}

// Meta carries listing metadata.
type Meta struct {
	Pagination PaginationMeta `json:"pagination"`
}

// OK builds a success envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// OKPaged builds a success envelope with pagination metadata.
func OKPaged(message string, data any, pagination PaginationMeta) Response {
	return Response{Success: true, Message: message, Data: data, Meta: &Meta{Pagination: pagination}}
}
