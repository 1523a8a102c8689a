package dto

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Post not found"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func OKList[T any](items []T) Response {
	n := len(items)
	return Response{Success: true, Data: items, Count: &n}
}

func OKMessage(msg string) Response {
	return Response{Success: true, Message: msg}
}

func Fail(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Message: msg}
}
