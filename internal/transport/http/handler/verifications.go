package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-verify-api/internal/domain"
	"github.com/go-verify-api/internal/pkg/validate"
	"github.com/go-verify-api/internal/transport/http/middleware"
)

// VerificationService is the credential issuance and validation surface.
type VerificationService interface {
	IssueEmailVerification(ctx context.Context, req domain.IssueRequest) (domain.DeliveryOutcome, error)
	IssueMobileVerification(ctx context.Context, req domain.IssueRequest) (*domain.OTPIssue, error)
	ValidateEmailVerification(ctx context.Context, req domain.ValidateRequest) (bool, error)
	ValidateMobileVerification(ctx context.Context, req domain.ValidateRequest) (bool, error)
}

type issueEmailBody struct {
	ID     string `json:"id" validate:"omitempty,max=64"`
	Email  string `json:"email" validate:"omitempty,email"`
	Method string `json:"method"`
}

type issueMobileBody struct {
	ID     string `json:"id" validate:"omitempty,max=64"`
	Mobile string `json:"mobile" validate:"omitempty,min=4,max=20"`
	Method string `json:"method"`
}

type validateEmailBody struct {
	Token  string `json:"token"`
	Method string `json:"method"`
}

type validateMobileBody struct {
	OTP    string `json:"otp"`
	Method string `json:"method"`
}

// VerificationHandler exposes credential issuance and validation over HTTP.
type VerificationHandler struct {
	svc    VerificationService
	logger *slog.Logger
}

func NewVerificationHandler(svc VerificationService, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{svc: svc, logger: logger}
}

func (h *VerificationHandler) IssueEmail(w http.ResponseWriter, r *http.Request) {
	var body issueEmailBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	method, err := domain.ParseMethod(body.Method)
	if err != nil {
		httpError(w, err)
		return
	}
	out, err := h.svc.IssueEmailVerification(r.Context(), domain.IssueRequest{ID: body.ID, Address: body.Email, Method: method})
	if err != nil {
		h.logFailure(r, "issue email verification", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EmailIssueEnvelope{Delivered: out.Delivered})
}

func (h *VerificationHandler) IssueMobile(w http.ResponseWriter, r *http.Request) {
	var body issueMobileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	method, err := domain.ParseMethod(body.Method)
	if err != nil {
		httpError(w, err)
		return
	}
	res, err := h.svc.IssueMobileVerification(r.Context(), domain.IssueRequest{ID: body.ID, Address: body.Mobile, Method: method})
	if err != nil {
		h.logFailure(r, "issue mobile verification", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MobileIssueEnvelope{
		Code:      res.Code,
		ExpiresAt: res.ExpiresAt.UTC(),
		Delivered: res.Outcome.Delivered,
	})
}

func (h *VerificationHandler) ValidateEmail(w http.ResponseWriter, r *http.Request) {
	var body validateEmailBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.validate(w, r, body.Method, body.Token, h.svc.ValidateEmailVerification)
}

func (h *VerificationHandler) ValidateMobile(w http.ResponseWriter, r *http.Request) {
	var body validateMobileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.validate(w, r, body.Method, body.OTP, h.svc.ValidateMobileVerification)
}

// VerifyEmailLink is the target of the link sent in verification emails.
func (h *VerificationHandler) VerifyEmailLink(w http.ResponseWriter, r *http.Request) {
	h.validate(w, r, "", r.URL.Query().Get("token"), h.svc.ValidateEmailVerification)
}

func (h *VerificationHandler) validate(w http.ResponseWriter, r *http.Request, rawMethod, secret string,
	fn func(context.Context, domain.ValidateRequest) (bool, error)) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	method, err := domain.ParseMethod(rawMethod)
	if err != nil {
		httpError(w, err)
		return
	}
	verified, err := fn(r.Context(), domain.ValidateRequest{SubjectID: claims.UserID, Method: method, Secret: secret})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifiedEnvelope{Verified: verified})
}

func (h *VerificationHandler) logFailure(r *http.Request, msg string, err error) {
	if h.logger != nil {
		h.logger.WarnContext(r.Context(), msg, "path", r.URL.Path, "err", err)
	}
}
