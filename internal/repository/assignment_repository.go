package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/repository/base"
)

// AssignmentRepository reads the teacher→subject assignment table owned by
// user management.
type AssignmentRepository struct {
	*base.Repository
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{Repository: base.NewRepository(pool)}
}

// SubjectForTeacher returns the teacher's single subject assignment, or
// nil when the teacher has none.
func (r *AssignmentRepository) SubjectForTeacher(ctx context.Context, teacherID int64) (*model.TeacherAssignment, error) {
	query := `
		SELECT ts.teacher_id, ts.subject_id, s.name
		FROM teacher_subjects ts
		JOIN subjects s ON s.id = ts.subject_id
		WHERE ts.teacher_id = $1
	`

	var a model.TeacherAssignment
	err := r.QueryRow(ctx, query, teacherID).Scan(
		&a.TeacherID,
		&a.SubjectID,
		&a.SubjectName,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject for teacher: %w", err)
	}

	return &a, nil
}
