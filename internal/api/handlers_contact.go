package api

import (
	"errors"
	"net/http"

	"github.com/derob357/sisters-promise/internal/contact"
	"github.com/derob357/sisters-promise/internal/pkg/httputil"
	"github.com/derob357/sisters-promise/internal/ratelimit"
)

type contactRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	RecaptchaToken string `json:"recaptchaToken"`
}

type contactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// Contact accepts a contact-form submission.
//
//	POST /api/contact
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	receipt, err := h.contact.Process(r.Context(), contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Token:   req.RecaptchaToken,
	}, ratelimit.ClientIP(r))
	switch {
	case errors.Is(err, contact.ErrMissingToken),
		errors.Is(err, contact.ErrInvalidName),
		errors.Is(err, contact.ErrInvalidEmail),
		errors.Is(err, contact.ErrInvalidMessage),
		errors.Is(err, contact.ErrVerificationFailed):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, contact.ErrVerificationUnavailable):
		h.respondUpstreamError(w, http.StatusBadGateway, err,
			"unable to verify submission, please try again later")
	case err != nil:
		h.respondUpstreamError(w, http.StatusInternalServerError, err,
			"failed to process submission")
	default:
		httputil.OK(w, contactResponse{
			Success:   true,
			Message:   "Thank you for reaching out. We'll get back to you soon.",
			Reference: receipt.Reference,
		})
	}
}
