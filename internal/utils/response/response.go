// Package response provides helpers for writing the plain HTTP responses
// this service returns. Every endpoint answers with either an empty body or
// a short text message, never JSON.
package response

import (
	"net/http"
	"strconv"
)

// WriteEmpty writes status with an explicit zero Content-Length.
func WriteEmpty(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(status)
}

// WriteText writes body as text/plain.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called, headers are locked.
func WriteText(w http.ResponseWriter, status int, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	return err
}
