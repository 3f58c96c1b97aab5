// internal/model/model.go
package model

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Description string `json:"description"`
}

// GenerateResponse is the success body of POST /generate. Code is a pointer so
// a missing field can be told apart from an empty one.
type GenerateResponse struct {
	Code *string `json:"code,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// RootResponse describes the service on GET /.
type RootResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}
