package response

// Response is the JSON envelope returned by the ops API.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func Ok(message string) Response {
	return Response{
		Success: true,
		Message: message,
	}
}

func Error(message string) Response {
	return Response{
		Success: false,
		Message: message,
	}
}
