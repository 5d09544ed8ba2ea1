package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"sofcar/internal/bookings/service"
	apperrors "sofcar/pkg/errors"
	httputil "sofcar/pkg/http"
	"sofcar/pkg/logger"
	"sofcar/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// bookingDate accepts both plain YYYY-MM-DD dates and RFC3339 timestamps in
// request bodies.
type bookingDate struct {
	time.Time
}

func (d *bookingDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// createBookingRequest shadows the booking's date fields so plain dates
// decode too.
type createBookingRequest struct {
	model.Booking
	StartDate bookingDate `json:"start_date"`
	EndDate   bookingDate `json:"end_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking := req.Booking
	booking.StartDate = req.StartDate.Time
	booking.EndDate = req.EndDate.Time
	booking.IPAddress = httputil.ClientIP(r)

	if err := h.service.Create(r.Context(), &booking); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, booking)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) GetByReference(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByReference(r.Context(), ps.ByName("ref"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

// CheckAvailability quotes a car for a date range without reserving it.
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	startStr := query.Get("start_date")
	endStr := query.Get("end_date")

	if startStr == "" || endStr == "" {
		httputil.WriteError(w, apperrors.InvalidInput("Both start_date and end_date query parameters are required"))
		return
	}

	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid start_date format, must be YYYY-MM-DD"))
		return
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("invalid end_date format, must be YYYY-MM-DD"))
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), ps.ByName("id"), start, end)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, availability)
}

// AdminList returns bookings matching the filter, with totals and
// statistics for the admin dashboard.
func (h *BookingHandler) AdminList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	filter, err := extractBookingFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	bookings, total, err := h.service.List(r.Context(), filter, limit, offset)
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
		"data":        bookings,
		"total_count": total,
		"limit":       limit,
		"offset":      offset,
		"statistics":  stats,
	})
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

// SoftDelete handles the soft-delete contract: the body must be exactly
// {"status":"deleted"}.
func (h *BookingHandler) SoftDelete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}
	if body.Status != model.StatusDeleted {
		httputil.WriteError(w, apperrors.InvalidInput(`Soft delete requires {"status":"deleted"}`))
		return
	}

	if err := h.service.SoftDelete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings/id/:id", h.GetByID)
	router.GET("/bookings/reference/:ref", h.GetByReference)
	router.GET("/cars/id/:id/availability", h.CheckAvailability)

	router.GET("/admin/bookings", h.AdminList)
	router.PUT("/admin/bookings/:id", h.Update)
	router.PATCH("/admin/bookings/:id", h.SoftDelete)
}

func extractBookingFilter(r *http.Request) (*model.BookingFilter, error) {
	query := r.URL.Query()

	filter := &model.BookingFilter{
		Status: query.Get("status"),
		CarID:  query.Get("car_id"),
	}

	if s := query.Get("start_date"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid start_date format, must be YYYY-MM-DD")
		}
		filter.StartDate = &parsed
	}
	if s := query.Get("end_date"); s != "" {
		parsed, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid end_date format, must be YYYY-MM-DD")
		}
		filter.EndDate = &parsed
	}

	return filter, nil
}
