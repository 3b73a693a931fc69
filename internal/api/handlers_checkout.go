package api

import (
	"errors"
	"net/http"

	"github.com/derob357/sisters-promise/internal/checkout"
	"github.com/derob357/sisters-promise/internal/pkg/httputil"
)

type checkoutRequest struct {
	SourceID string `json:"sourceId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Note     string `json:"note"`
}

type checkoutResponse struct {
	Success bool             `json:"success"`
	Payment checkout.Payment `json:"payment"`
}

// Checkout validates and submits a payment.
//
//	POST /api/checkout
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	payment, err := h.checkout.Process(r.Context(), checkout.Request{
		SourceID: req.SourceID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Note:     req.Note,
	})
	switch {
	case errors.Is(err, checkout.ErrInvalidSource),
		errors.Is(err, checkout.ErrInvalidAmount):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, checkout.ErrPaymentFailed):
		// Declines and upstream failures look the same to the client;
		// the wrapped cause is logged and exposed only in development.
		h.respondUpstreamError(w, http.StatusBadRequest, err,
			"payment processing failed")
	case err != nil:
		h.respondUpstreamError(w, http.StatusInternalServerError, err,
			"payment processing failed")
	default:
		httputil.OK(w, checkoutResponse{Success: true, Payment: *payment})
	}
}
