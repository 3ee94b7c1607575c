package trpc

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// RemoteError is the error shape a tRPC procedure reports.
type RemoteError struct {
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Data    ErrorData `json:"data"`
}

// ErrorData carries the tRPC error code name and HTTP status.
type ErrorData struct {
	Code       string `json:"code"`
	HTTPStatus int    `json:"httpStatus"`
	Path       string `json:"path,omitempty"`
	Stack      string `json:"stack,omitempty"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.CodeName(), e.Message)
}

// CodeName returns the tRPC code name, falling back to the JSON-RPC number.
func (e *RemoteError) CodeName() string {
	if e.Data.Code != "" {
		return e.Data.Code
	}
	return strconv.Itoa(e.Code)
}

// Reason returns the message the procedure reported.
func (e *RemoteError) Reason() string { return e.Message }

// StatusError reports a non-2xx response that carried no tRPC envelope.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

func newStatusError(resp *http.Response, body []byte) *StatusError {
	status := resp.Status
	if status == "" {
		status = strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
	}
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     status,
		Body:       abbreviate(strings.TrimSpace(string(body)), 200),
	}
}
