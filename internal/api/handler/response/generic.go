package response

type APIError struct {
	Message string `json:"message"`
}
