// Package api is the HTTP transport of the gateway: routing, defensive
// middleware, JSON handlers and the terminal error surface. Business
// rules live in the service packages (catalog, checkout, contact); the
// handlers only translate between HTTP and those services.
package api

import (
	"github.com/derob357/sisters-promise/internal/catalog"
	"github.com/derob357/sisters-promise/internal/checkout"
	"github.com/derob357/sisters-promise/internal/config"
	"github.com/derob357/sisters-promise/internal/contact"
	"github.com/derob357/sisters-promise/internal/ratelimit"
)

// Handlers holds the service dependencies of all HTTP handlers.
type Handlers struct {
	catalog  *catalog.Service
	checkout *checkout.Service
	contact  *contact.Service
	config   *config.Config
}

// Limiters carries the per-policy rate limiters wired into the router.
type Limiters struct {
	General  ratelimit.Limiter
	Contact  ratelimit.Limiter
	Checkout ratelimit.Limiter
}

// NewHandlers creates a Handlers instance.
func NewHandlers(cfg *config.Config, cat *catalog.Service, chk *checkout.Service, con *contact.Service) *Handlers {
	return &Handlers{
		catalog:  cat,
		checkout: chk,
		contact:  con,
		config:   cfg,
	}
}

func (h *Handlers) development() bool {
	return h.config != nil && h.config.Server.Development
}
