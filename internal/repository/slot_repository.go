package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/repository/base"
	"github.com/schooltab/timetable/internal/timetable"
)

// SlotRepository stores bookings in Postgres.
type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Constraint names from migrations/00002_schedule_slots.sql. The insert
// maps them back to the exclusivity dimension that fired.
const (
	teacherSlotConstraint = "schedule_slots_teacher_day_start_key"
	classSlotConstraint   = "schedule_slots_class_day_start_key"
)

const slotViewColumns = `
		s.id, s.day, s.start_time, s.end_time,
		s.class_id, c.name, s.teacher_id, t.full_name, s.subject_id, sub.name
	FROM schedule_slots s
	JOIN classes c ON c.id = s.class_id
	JOIN teachers t ON t.id = s.teacher_id
	JOIN subjects sub ON sub.id = s.subject_id`

// Rows come back in grid order, not alphabetical day order, so repeated
// reads are byte-for-byte identical.
const slotViewOrder = `
	ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday'], s.day), s.start_time, c.name`

// Insert stores a new slot. The composite unique indexes are the atomic
// guard: when a concurrent insert has already claimed the coordinate the
// storage engine rejects this one and the error comes back as a
// model.ConflictError.
func (r *SlotRepository) Insert(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (day, start_time, end_time, class_id, teacher_id, subject_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		string(slot.Day),
		slot.StartTime,
		slot.EndTime,
		slot.ClassID,
		slot.TeacherID,
		slot.SubjectID,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		if constraint, ok := base.UniqueViolation(err); ok {
			switch constraint {
			case teacherSlotConstraint:
				return &model.ConflictError{Dimension: model.ConflictTeacher}
			case classSlotConstraint:
				return &model.ConflictError{Dimension: model.ConflictClass}
			default:
				return &model.ConflictError{}
			}
		}
		return fmt.Errorf("insert slot: %w", err)
	}

	return nil
}

// DeleteByIDAndOwner removes a slot only when it belongs to ownerID.
// A miss and a foreign row both come back as model.ErrSlotNotFound; the
// caller must not be able to tell which it was.
func (r *SlotRepository) DeleteByIDAndOwner(ctx context.Context, slotID, ownerID int64) error {
	query := `
		DELETE FROM schedule_slots
		WHERE id = $1 AND teacher_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, slotID, ownerID)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if affected == 0 {
		return model.ErrSlotNotFound
	}

	return nil
}

// ListAll returns every slot joined with display names.
func (r *SlotRepository) ListAll(ctx context.Context) ([]model.SlotView, error) {
	query := `SELECT` + slotViewColumns + slotViewOrder

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	return scanSlotViews(rows)
}

// ListByTeacher returns the teacher's slots joined with display names.
func (r *SlotRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]model.SlotView, error) {
	query := `SELECT` + slotViewColumns + `
	WHERE s.teacher_id = $1` + slotViewOrder

	rows, err := r.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}
	defer rows.Close()

	return scanSlotViews(rows)
}

// ListByClass returns the class's slots joined with display names.
func (r *SlotRepository) ListByClass(ctx context.Context, classID int64) ([]model.SlotView, error) {
	query := `SELECT` + slotViewColumns + `
	WHERE s.class_id = $1` + slotViewOrder

	rows, err := r.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("list slots by class: %w", err)
	}
	defer rows.Close()

	return scanSlotViews(rows)
}

// BookedClassIDs returns the ids of classes already claimed at the given
// coordinate, across all teachers.
func (r *SlotRepository) BookedClassIDs(ctx context.Context, day timetable.Weekday, startTime string) ([]int64, error) {
	query := `
		SELECT class_id
		FROM schedule_slots
		WHERE day = $1 AND start_time = $2
	`

	rows, err := r.Query(ctx, query, string(day), startTime)
	if err != nil {
		return nil, fmt.Errorf("booked class ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan class id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanSlotViews(rows pgx.Rows) ([]model.SlotView, error) {
	var views []model.SlotView
	for rows.Next() {
		var (
			v   model.SlotView
			day string
		)
		err := rows.Scan(
			&v.ID,
			&day,
			&v.StartTime,
			&v.EndTime,
			&v.ClassID,
			&v.ClassName,
			&v.TeacherID,
			&v.TeacherName,
			&v.SubjectID,
			&v.SubjectName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		v.Day = timetable.Weekday(day)
		views = append(views, v)
	}

	return views, rows.Err()
}
