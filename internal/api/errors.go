package api

import (
	"net/http"

	"github.com/derob357/sisters-promise/internal/pkg/httputil"
	"github.com/derob357/sisters-promise/internal/pkg/logger"
)

// respondUpstreamError logs the real failure and answers with a
// public-safe message. The internal detail rides along only in
// development mode; production clients never see upstream errors,
// stack traces or credentials.
func (h *Handlers) respondUpstreamError(w http.ResponseWriter, status int, internal error, publicMsg string) {
	logger.Error("upstream failure",
		"status", status,
		"public", publicMsg,
		"err", internal.Error(),
	)
	if h.development() {
		httputil.ErrorDetail(w, status, publicMsg, internal.Error())
		return
	}
	httputil.Error(w, status, publicMsg)
}
