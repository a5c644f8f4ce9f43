package web

// errors.go maps technical errors onto user-facing messages with stable
// codes, logs the technical detail server-side, and writes a uniform JSON
// error body. Users can quote the code to support for faster diagnosis.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pennywise-app/pennywise/internal/importer"
	"github.com/pennywise-app/pennywise/internal/logging"
	"github.com/pennywise-app/pennywise/internal/store"
)

// UserMessage is the user-facing rendering of an error.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // stable code for support reference
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errorPatterns map substrings of technical errors (case-insensitive) to
// user messages. First match wins, so specific patterns come before general
// ones.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"duplicate key", UserMessage{
		Message: "A record with this value already exists",
		Action:  "Check your data for duplicates",
		Code:    "DB001",
	}},
	{"violates foreign key", UserMessage{
		Message: "A referenced record does not exist",
		Action:  "Make sure the account and category exist first",
		Code:    "DB002",
	}},
	{"connection refused", UserMessage{
		Message: "Unable to reach the database",
		Action:  "Please try again in a few moments",
		Code:    "DB003",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "The operation timed out",
		Action:  "Try again, or import a smaller file",
		Code:    "DB004",
	}},
	{"empty file", UserMessage{
		Message: "The file has no data rows",
		Action:  "Upload a CSV with a header line and at least one data row",
		Code:    "FILE001",
	}},
	{"unreadable file", UserMessage{
		Message: "The file could not be read",
		Action:  "Make sure it is a plain-text CSV under the size limit",
		Code:    "FILE002",
	}},
	{"invalid date", UserMessage{
		Message: "A date value could not be understood",
		Action:  "Use YYYY-MM-DD or a common date format",
		Code:    "VAL001",
	}},
	{"invalid number", UserMessage{
		Message: "An amount value is not a valid number",
		Action:  "Remove currency symbols and use a plain decimal",
		Code:    "VAL002",
	}},
	{"import is not ready", UserMessage{
		Message: "The import is missing required mappings, rows or an account",
		Action:  "Map date, amount and description, select rows and choose an account",
		Code:    "IMP001",
	}},
	{"import session not found", UserMessage{
		Message: "The import session has expired",
		Action:  "Upload the file again to start over",
		Code:    "IMP002",
	}},
	{"not found", UserMessage{
		Message: "The requested record does not exist",
		Action:  "Check the identifier and try again",
		Code:    "REQ001",
	}},
}

// MapError translates err into a UserMessage, falling back to a generic
// message when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Message: "OK", Code: "OK"}
	}
	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}
	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again",
		Code:    "ERR000",
	}
}

// statusFor picks an HTTP status appropriate to the error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, importer.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrUnreadableFile),
		errors.Is(err, importer.ErrNotReady):
		return http.StatusBadRequest
	case errors.Is(err, importer.ErrSubmitInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs the technical error with request context and writes the
// mapped user message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, status int) {
	msg := MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	respondJSON(w, status, errorBody{
		Success: false,
		Error:   msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
