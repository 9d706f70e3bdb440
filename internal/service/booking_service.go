package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/timetable"
	"go.uber.org/zap"
)

// BookingService is the transactional boundary for mutating the timetable.
type BookingService struct {
	slots       SlotStore
	assignments AssignmentStore
	classes     ClassStore
	logger      *zap.Logger
}

func NewBookingService(
	slots SlotStore,
	assignments AssignmentStore,
	classes ClassStore,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		slots:       slots,
		assignments: assignments,
		classes:     classes,
		logger:      logger,
	}
}

// Create books (day, startTime, classID) for the teacher. The subject is
// derived from the teacher's assignment, never supplied by the caller.
// Validation runs before any write; the storage insert is the only guard
// trusted against concurrent bookings.
func (s *BookingService) Create(ctx context.Context, teacherID int64, day timetable.Weekday, startTime string, classID int64) (*model.ScheduleSlot, error) {
	assignment, err := s.assignments.SubjectForTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("resolve subject assignment: %w", err)
	}
	if assignment == nil {
		return nil, model.ErrNoSubjectAssignment
	}

	period, err := timetable.Validate(day, startTime)
	if err != nil {
		return nil, &model.ValidationError{Msg: err.Error()}
	}

	exists, err := s.classes.Exists(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("check class: %w", err)
	}
	if !exists {
		return nil, &model.ValidationError{Msg: "unknown class"}
	}

	slot := &model.ScheduleSlot{
		Day:       day,
		StartTime: period.Start,
		EndTime:   period.End,
		ClassID:   classID,
		TeacherID: teacherID,
		SubjectID: assignment.SubjectID,
	}

	if err := s.slots.Insert(ctx, slot); err != nil {
		if model.IsConflict(err) {
			s.logger.Info("Booking conflict",
				zap.Int64("teacher_id", teacherID),
				zap.String("day", string(day)),
				zap.String("start_time", startTime),
				zap.Int64("class_id", classID),
			)
			return nil, err
		}
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("teacher_id", teacherID),
		zap.String("day", string(day)),
		zap.String("start_time", startTime),
		zap.Int64("class_id", classID),
		zap.String("subject", assignment.SubjectName),
	)

	return slot, nil
}

// Delete cancels a booking. Only the owning teacher can cancel; a foreign
// or missing booking both surface as model.ErrSlotNotFound.
func (s *BookingService) Delete(ctx context.Context, teacherID, slotID int64) error {
	if err := s.slots.DeleteByIDAndOwner(ctx, slotID, teacherID); err != nil {
		if errors.Is(err, model.ErrSlotNotFound) {
			return err
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("slot_id", slotID),
		zap.Int64("teacher_id", teacherID),
	)

	return nil
}
