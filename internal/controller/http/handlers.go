package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/service"
	"github.com/schooltab/timetable/internal/timetable"
	"go.uber.org/zap"
)

// Handler exposes the timetable operations over HTTP.
type Handler struct {
	bookings *service.BookingService
	schedule *service.ScheduleService
	checker  *service.ConflictChecker
	logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(
	bookings *service.BookingService,
	schedule *service.ScheduleService,
	checker *service.ConflictChecker,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bookings: bookings,
		schedule: schedule,
		checker:  checker,
		logger:   logger,
		validate: validator.New(),
	}
}

type createBookingRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	ClassID   int64  `json:"class_id" validate:"required,gt=0"`
}

// CreateBooking handles POST /api/v1/bookings.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, model.ErrNoIdentity.Error())
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slot, err := h.bookings.Create(r.Context(), identity.UserID, timetable.Weekday(req.Day), req.StartTime, req.ClassID)
	if err != nil {
		h.logDomainError("create booking", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, slot)
}

// DeleteBooking handles DELETE /api/v1/bookings/{bookingID}.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, model.ErrNoIdentity.Error())
		return
	}

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := h.bookings.Delete(r.Context(), identity.UserID, bookingID); err != nil {
		h.logDomainError("delete booking", err)
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetClassSchedule handles GET /api/v1/classes/{classID}/schedule.
// Class-scoped callers may only read their own class's grid.
func (h *Handler) GetClassSchedule(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, model.ErrNoIdentity.Error())
		return
	}

	classID, err := strconv.ParseInt(chi.URLParam(r, "classID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid class id")
		return
	}

	if identity.Role == RoleStudent && identity.ClassID != classID {
		respondError(w, http.StatusForbidden, "insufficient role")
		return
	}

	grid, err := h.schedule.ClassSchedule(r.Context(), classID)
	if err != nil {
		h.logDomainError("class schedule", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, grid)
}

// GetMySchedule handles GET /api/v1/schedule/me for teachers: own slots
// plus the whole-school grid in one response.
func (h *Handler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, model.ErrNoIdentity.Error())
		return
	}

	view, err := h.schedule.TeacherSchedule(r.Context(), identity.UserID)
	if err != nil {
		h.logDomainError("teacher schedule", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// GetSchoolSchedule handles GET /api/v1/schedule/school.
func (h *Handler) GetSchoolSchedule(w http.ResponseWriter, r *http.Request) {
	grid, err := h.schedule.SchoolSchedule(r.Context())
	if err != nil {
		h.logDomainError("school schedule", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, grid)
}

// GetAvailableClasses handles
// GET /api/v1/schedule/available-classes?day=&start=.
func (h *Handler) GetAvailableClasses(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	start := r.URL.Query().Get("start")
	if day == "" || start == "" {
		respondError(w, http.StatusBadRequest, "day and start are required")
		return
	}

	classes, err := h.checker.AvailableClasses(r.Context(), timetable.Weekday(day), start)
	if err != nil {
		h.logDomainError("available classes", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classes)
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) logDomainError(op string, err error) {
	expected := model.IsValidation(err) || model.IsConflict(err) ||
		errors.Is(err, model.ErrSlotNotFound) || errors.Is(err, model.ErrNoSubjectAssignment)
	if expected {
		h.logger.Debug("Request rejected",
			zap.String("op", op),
			zap.Error(err),
		)
		return
	}
	h.logger.Error("Request failed",
		zap.String("op", op),
		zap.Error(err),
	)
}
