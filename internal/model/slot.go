package model

import (
	"time"

	"github.com/schooltab/timetable/internal/timetable"
)

// ScheduleSlot is one booked (teacher, class, day, period) tuple. The
// subject is denormalized from the teacher's assignment at booking time.
type ScheduleSlot struct {
	ID        int64             `json:"id"`
	Day       timetable.Weekday `json:"day"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	ClassID   int64             `json:"class_id"`
	TeacherID int64             `json:"teacher_id"`
	SubjectID int64             `json:"subject_id"`
	CreatedAt time.Time         `json:"created_at"`
}

// SlotView is a slot joined with display names, as produced by the
// repository list queries.
type SlotView struct {
	ID          int64             `json:"id"`
	Day         timetable.Weekday `json:"day"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	ClassID     int64             `json:"class_id"`
	ClassName   string            `json:"class_name"`
	TeacherID   int64             `json:"teacher_id"`
	TeacherName string            `json:"teacher_name"`
	SubjectID   int64             `json:"subject_id"`
	SubjectName string            `json:"subject_name"`
}
