package handler

import (
	"encoding/json"
	"net/http"

	"sofcar/internal/contact/service"
	apperrors "sofcar/pkg/errors"
	httputil "sofcar/pkg/http"
	"sofcar/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ContactHandler struct {
	service service.ContactService
	log     *logger.Logger
}

func NewContactHandler(service service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var inquiry service.Inquiry
	if err := json.NewDecoder(r.Body).Decode(&inquiry); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	inquiry.IPAddress = httputil.ClientIP(r)

	if err := h.service.Submit(r.Context(), &inquiry); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{
		"message": "Inquiry received",
	})
}

func (h *ContactHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/contact/inquiry", h.Submit)
}
