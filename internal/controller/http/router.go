package http

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter wires the timetable routes. Reads are open to any
// authenticated caller (students are further scoped to their own class);
// mutations and the picker endpoints are teacher-only.
func NewRouter(handler *Handler, jwtSecret []byte, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger(logger))

	r.Get("/healthz", handler.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticator(jwtSecret))

		r.Get("/classes/{classID}/schedule", handler.GetClassSchedule)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(RoleTeacher, RoleAdmin))
			r.Get("/schedule/school", handler.GetSchoolSchedule)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(RoleTeacher))
			r.Get("/schedule/me", handler.GetMySchedule)
			r.Get("/schedule/available-classes", handler.GetAvailableClasses)
			r.Post("/bookings", handler.CreateBooking)
			r.Delete("/bookings/{bookingID}", handler.DeleteBooking)
		})
	})

	return r
}
