package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// EmailIssueEnvelope reports whether the verification email was handed off.
type EmailIssueEnvelope struct {
	Delivered bool `json:"delivered"`
}

// MobileIssueEnvelope returns the issued code and when it stops validating.
type MobileIssueEnvelope struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Delivered bool      `json:"delivered"`
}

// VerifiedEnvelope is the result of presenting a secret.
type VerifiedEnvelope struct {
	Verified bool `json:"verified"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, ErrorCode: status})
}
