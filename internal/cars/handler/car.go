package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"sofcar/internal/cars/service"
	apperrors "sofcar/pkg/errors"
	httputil "sofcar/pkg/http"
	"sofcar/pkg/logger"
	"sofcar/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const dateLayout = "2006-01-02"

type CarHandler struct {
	service service.CarService
	log     *logger.Logger
}

func NewCarHandler(service service.CarService, log *logger.Logger) *CarHandler {
	return &CarHandler{
		service: service,
		log:     log,
	}
}

// ListAvailable serves the public catalog: active cars, optionally filtered
// by class and by availability for a date range.
func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	start, end, err := extractDateRange(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	class := r.URL.Query().Get("class")

	cars, err := h.service.ListAvailable(r.Context(), start, end, class, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, cars)
}

func (h *CarHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cars, total, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, cars, total, limit, offset)
}

func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	car, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, car)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var car model.Car
	if err := json.NewDecoder(r.Body).Decode(&car); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &car); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.CarUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	car, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

// AdminList returns the full fleet plus statistics for the admin overview.
func (h *CarHandler) AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cars, total, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"data":        cars,
		"total_count": total,
		"limit":       limit,
		"offset":      offset,
		"statistics":  stats,
	})
}

func (h *CarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/cars", h.ListAvailable)
	router.GET("/cars/all", h.ListAll)
	router.GET("/cars/id/:id", h.GetByID)

	router.GET("/admin/cars", h.AdminList)
	router.POST("/admin/cars", h.Create)
	router.PUT("/admin/cars/:id", h.Update)
	router.DELETE("/admin/cars/:id", h.Delete)
}

// extractDateRange parses optional start_date/end_date query parameters.
// Both must be present together, formatted as YYYY-MM-DD, with start before end.
func extractDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	query := r.URL.Query()
	startStr := query.Get("start_date")
	endStr := query.Get("end_date")

	if startStr == "" && endStr == "" {
		return nil, nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, nil, apperrors.InvalidInput("Both start_date and end_date are required for availability filtering")
	}

	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		return nil, nil, apperrors.InvalidInput("invalid start_date format, must be YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		return nil, nil, apperrors.InvalidInput("invalid end_date format, must be YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, nil, apperrors.InvalidInput("end_date must be after start_date")
	}

	return &start, &end, nil
}
