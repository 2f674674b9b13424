package net

import (
	"net/http"

	perr "homeboard/internal/platform/errors"
)

// Wire is a common envelope used by transports outside the chi handler chain
type Wire struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	return http.StatusOK, Wire{Success: true, RequestID: reqID, Data: data}
}

// Error builds an error envelope
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	return perr.HTTPStatus(err), Wire{
		Success:   false,
		Error:     perr.WireFrom(err).Message,
		RequestID: reqID,
	}
}
