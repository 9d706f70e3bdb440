package service

import (
	"context"
	"fmt"

	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/timetable"
)

// ConflictChecker answers "what can still be booked here" questions before
// a write is attempted. It is advisory: the storage insert re-validates
// everything atomically, so a stale answer costs a round-trip, not a
// double booking.
type ConflictChecker struct {
	slots   SlotStore
	classes ClassStore
}

func NewConflictChecker(slots SlotStore, classes ClassStore) *ConflictChecker {
	return &ConflictChecker{slots: slots, classes: classes}
}

// AvailableClasses returns the classes not yet claimed by any teacher at
// (day, startTime). The grid coordinate is validated first so an illegal
// slot never costs a storage query.
func (c *ConflictChecker) AvailableClasses(ctx context.Context, day timetable.Weekday, startTime string) ([]model.Class, error) {
	if _, err := timetable.Validate(day, startTime); err != nil {
		return nil, &model.ValidationError{Msg: err.Error()}
	}

	booked, err := c.slots.BookedClassIDs(ctx, day, startTime)
	if err != nil {
		return nil, fmt.Errorf("booked classes: %w", err)
	}

	taken := make(map[int64]bool, len(booked))
	for _, id := range booked {
		taken[id] = true
	}

	all, err := c.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	available := make([]model.Class, 0, len(all))
	for _, class := range all {
		if !taken[class.ID] {
			available = append(available, class)
		}
	}

	return available, nil
}

// WouldConflict re-derives the exclusivity rules for a candidate booking
// and reports the conflict that would fire, or nil. Explanatory only;
// never a substitute for the constrained insert.
func (c *ConflictChecker) WouldConflict(ctx context.Context, candidate *model.ScheduleSlot) (*model.ConflictError, error) {
	if _, err := timetable.Validate(candidate.Day, candidate.StartTime); err != nil {
		return nil, &model.ValidationError{Msg: err.Error()}
	}

	all, err := c.slots.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	for _, slot := range all {
		if slot.Day != candidate.Day || slot.StartTime != candidate.StartTime {
			continue
		}
		if slot.TeacherID == candidate.TeacherID {
			return &model.ConflictError{Dimension: model.ConflictTeacher}, nil
		}
		if slot.ClassID == candidate.ClassID {
			return &model.ConflictError{Dimension: model.ConflictClass}, nil
		}
	}

	return nil, nil
}
