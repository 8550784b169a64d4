package http

import (
	"net/http"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/jwtx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// LivezHandler reports process liveness. It answers as long as the process
// is serving requests, regardless of dependency health.
//
//	@Summary	Liveness probe
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Router		/livez [get].
func LivezHandler(startTime time.Time, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Version: version,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
		})
	})
}

// ReadyzHandler reports readiness: the database must answer a ping and the
// signing key set must hold at least one key.
//
//	@Summary	Readiness probe
//	@Tags		System
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Failure	503	{object}	healthResponse
//	@Router		/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeySet) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())

		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			log.Error("readiness check failed: database unreachable", "err", err)
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		if !keys.IsReady() {
			log.Error("readiness check failed: no signing keys loaded")
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.NoCache(w)
		httpx.WriteJSON(w, code, healthResponse{
			Status:  status,
			Version: version,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
		})
	})
}
