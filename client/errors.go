package client

import "fmt"

// ValidationError is raised before a request is issued: the payload would be
// rejected anyway, so the wire is never touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// RequestError wraps a non-2xx response. Message carries the server's "error"
// field when present, otherwise an "HTTP <status>" fallback.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// NetworkError means no response reached us at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 RequestError.
func IsNotFound(err error) bool {
	re, ok := err.(*RequestError)
	return ok && re.Status == 404
}
