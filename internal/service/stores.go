package service

import (
	"context"

	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/timetable"
)

// SlotStore is the storage contract for bookings. Insert must be atomic
// with respect to concurrent inserts on the same (teacher, day, start) or
// (class, day, start) coordinate: exactly one wins, the rest get a
// model.ConflictError.
type SlotStore interface {
	Insert(ctx context.Context, slot *model.ScheduleSlot) error
	DeleteByIDAndOwner(ctx context.Context, slotID, ownerID int64) error
	ListAll(ctx context.Context) ([]model.SlotView, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]model.SlotView, error)
	ListByClass(ctx context.Context, classID int64) ([]model.SlotView, error)
	BookedClassIDs(ctx context.Context, day timetable.Weekday, startTime string) ([]int64, error)
}

// AssignmentStore resolves a teacher's single subject assignment.
// A teacher with no assignment resolves to (nil, nil).
type AssignmentStore interface {
	SubjectForTeacher(ctx context.Context, teacherID int64) (*model.TeacherAssignment, error)
}

// ClassStore reads the class registry.
type ClassStore interface {
	List(ctx context.Context) ([]model.Class, error)
	Exists(ctx context.Context, classID int64) (bool, error)
}
