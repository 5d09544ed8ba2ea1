package health

import (
	"context"
	"net/http"
	"time"

	"sofcar/pkg/config"
	httputil "sofcar/pkg/http"

	"github.com/julienschmidt/httprouter"
)

const serviceBanner = "SofCar Reservation API"

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func (h *Handler) Banner(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"service": serviceBanner,
		"status":  "ok",
	})
}

// Health is the liveness probe: the process is up and serving.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready is the readiness probe: reports unhealthy when MongoDB is
// unreachable so load balancers stop routing here.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.cfg.Client.Mongo.Ping(ctx, nil); err != nil {
		h.cfg.Log.Error("Readiness check failed", "error", err)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Banner)
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
