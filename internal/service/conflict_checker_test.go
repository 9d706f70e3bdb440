package service_test

import (
	"context"
	"testing"

	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/service"
	"github.com/schooltab/timetable/internal/timetable"
	"go.uber.org/zap"
)

func newCheckerFixture(t *testing.T) (*service.BookingService, *service.ConflictChecker) {
	t.Helper()
	store, svc := newFixture()
	return svc, service.NewConflictChecker(store, store)
}

func TestAvailableClasses(t *testing.T) {
	svc, checker := newCheckerFixture(t)
	ctx := context.Background()

	// Nothing booked yet: every class is available.
	classes, err := checker.AvailableClasses(ctx, timetable.Monday, "08:30")
	if err != nil {
		t.Fatalf("AvailableClasses failed: %v", err)
	}
	if len(classes) != 3 {
		t.Fatalf("available: got %d, want 3", len(classes))
	}

	if _, err := svc.Create(ctx, teacherMath, timetable.Monday, "08:30", classA); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	classes, err = checker.AvailableClasses(ctx, timetable.Monday, "08:30")
	if err != nil {
		t.Fatalf("AvailableClasses failed: %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("available: got %d, want 2", len(classes))
	}
	for _, c := range classes {
		if c.ID == classA {
			t.Errorf("booked class %d still listed as available", classA)
		}
	}

	// Another coordinate is unaffected.
	classes, err = checker.AvailableClasses(ctx, timetable.Monday, "09:30")
	if err != nil {
		t.Fatalf("AvailableClasses failed: %v", err)
	}
	if len(classes) != 3 {
		t.Errorf("available at other slot: got %d, want 3", len(classes))
	}
}

func TestAvailableClassesRejectsIllegalSlot(t *testing.T) {
	_, checker := newCheckerFixture(t)
	ctx := context.Background()

	if _, err := checker.AvailableClasses(ctx, timetable.Monday, "11:30"); !model.IsValidation(err) {
		t.Errorf("lunch: got %v, want ValidationError", err)
	}
	if _, err := checker.AvailableClasses(ctx, "someday", "08:30"); !model.IsValidation(err) {
		t.Errorf("unknown day: got %v, want ValidationError", err)
	}
}

func TestWouldConflict(t *testing.T) {
	store, _ := newFixture()
	svc := service.NewBookingService(store, store, store, zap.NewNop())
	checker := service.NewConflictChecker(store, store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, teacherMath, timetable.Monday, "08:30", classA); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Same teacher, another class.
	ce, err := checker.WouldConflict(ctx, &model.ScheduleSlot{
		Day: timetable.Monday, StartTime: "08:30", TeacherID: teacherMath, ClassID: classB,
	})
	if err != nil {
		t.Fatalf("WouldConflict failed: %v", err)
	}
	if ce == nil || ce.Dimension != model.ConflictTeacher {
		t.Errorf("got %+v, want teacher conflict", ce)
	}

	// Another teacher, same class.
	ce, err = checker.WouldConflict(ctx, &model.ScheduleSlot{
		Day: timetable.Monday, StartTime: "08:30", TeacherID: teacherEnglish, ClassID: classA,
	})
	if err != nil {
		t.Fatalf("WouldConflict failed: %v", err)
	}
	if ce == nil || ce.Dimension != model.ConflictClass {
		t.Errorf("got %+v, want class conflict", ce)
	}

	// Free coordinate.
	ce, err = checker.WouldConflict(ctx, &model.ScheduleSlot{
		Day: timetable.Tuesday, StartTime: "08:30", TeacherID: teacherEnglish, ClassID: classA,
	})
	if err != nil {
		t.Fatalf("WouldConflict failed: %v", err)
	}
	if ce != nil {
		t.Errorf("got %+v, want no conflict", ce)
	}
}
