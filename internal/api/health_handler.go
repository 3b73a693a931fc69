package api

import (
	"net/http"

	"github.com/derob357/sisters-promise/internal/pkg/httputil"
)

type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// HealthCheck reports liveness and the configured environment.
//
//	GET /api/health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, healthResponse{
		Status:      "ok",
		Environment: h.config.Server.Environment,
	})
}
