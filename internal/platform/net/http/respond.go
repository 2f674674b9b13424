// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "homeboard/internal/platform/errors"
	lumnet "homeboard/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
// On success the payload's fields are flattened next to "success" so routes
// can expose their historical keys (data, events, categories, hasMore)
type Envelope struct {
	Success   bool
	RequestID string
	Err       string
	Payload   any
}

// MarshalJSON flattens Payload into the top-level object
// A payload that does not marshal to a JSON object is nested under "data"
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := map[string]any{"success": e.Success}
	if e.RequestID != "" {
		out["request_id"] = e.RequestID
	}
	if e.Err != "" {
		out["error"] = e.Err
	}
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			out["data"] = json.RawMessage(raw)
		} else {
			for k, v := range fields {
				out[k] = v
			}
		}
	}
	return json.Marshal(out)
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus writes only a status with an empty object body
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

//
// Effectful helpers (Respond*) for classic handlers
//

// RespondOK writes a 200 envelope with the payload flattened in
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, payload any) {
	JSON(w, stdhttp.StatusOK, Envelope{
		Success:   true,
		RequestID: lumnet.RequestID(r.Context()),
		Payload:   payload,
	})
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	JSON(w, status, Envelope{
		Success:   false,
		RequestID: lumnet.RequestID(r.Context()),
		Err:       perr.WireFrom(err).Message,
	})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	// redirects carry no body, the Location header was set above
	if resp.Header != nil && resp.Header.Get("Location") != "" && status >= 300 && status < 400 {
		w.WriteHeader(status)
		return
	}

	reqID := lumnet.RequestID(r.Context())

	// If Body is an error, derive status from error *before* building the envelope
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		JSON(w, status, Envelope{
			Success:   false,
			RequestID: reqID,
			Err:       perr.WireFrom(err).Message,
		})
		return
	}

	// success path
	JSON(w, status, Envelope{
		Success:   true,
		RequestID: reqID,
		Payload:   resp.Body,
	})
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Data is an alias for OK
func Data(v any) Response { return OK(v) }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
