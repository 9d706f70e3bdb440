package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schooltab/timetable/internal/app"
	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/repository"
	"github.com/schooltab/timetable/internal/timetable"
)

// setupTestDB connects to the database named by TEST_DB_DSN, applies
// migrations and truncates the scheduling tables. Tests are skipped when
// no test database is configured.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, "../../migrations")
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := migrator.Run(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	migrator.Close()

	_, err = pool.Exec(ctx, `TRUNCATE schedule_slots, teacher_subjects, teachers, classes, subjects RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	return pool
}

type fixtureIDs struct {
	mathTeacher    int64
	englishTeacher int64
	mathSubject    int64
	englishSubject int64
	classA         int64
	classB         int64
}

func seedReferenceData(t *testing.T, pool *pgxpool.Pool) fixtureIDs {
	t.Helper()
	ctx := context.Background()

	var ids fixtureIDs
	mustScan := func(query string, dest *int64, args ...any) {
		if err := pool.QueryRow(ctx, query, args...).Scan(dest); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	mustScan(`INSERT INTO teachers (full_name) VALUES ($1) RETURNING id`, &ids.mathTeacher, "Ada Mwangi")
	mustScan(`INSERT INTO teachers (full_name) VALUES ($1) RETURNING id`, &ids.englishTeacher, "Brian Otieno")
	mustScan(`INSERT INTO subjects (name) VALUES ($1) RETURNING id`, &ids.mathSubject, "Mathematics")
	mustScan(`INSERT INTO subjects (name) VALUES ($1) RETURNING id`, &ids.englishSubject, "English")
	mustScan(`INSERT INTO classes (name) VALUES ($1) RETURNING id`, &ids.classA, "Form 1A")
	mustScan(`INSERT INTO classes (name) VALUES ($1) RETURNING id`, &ids.classB, "Form 1B")

	if _, err := pool.Exec(ctx, `INSERT INTO teacher_subjects (teacher_id, subject_id) VALUES ($1, $2), ($3, $4)`,
		ids.mathTeacher, ids.mathSubject, ids.englishTeacher, ids.englishSubject); err != nil {
		t.Fatalf("seed assignments: %v", err)
	}

	return ids
}

func TestInsertMapsUniqueViolations(t *testing.T) {
	pool := setupTestDB(t)
	ids := seedReferenceData(t, pool)
	repo := repository.NewSlotRepository(pool)
	ctx := context.Background()

	first := &model.ScheduleSlot{
		Day: timetable.Monday, StartTime: "08:30", EndTime: "09:30",
		ClassID: ids.classA, TeacherID: ids.mathTeacher, SubjectID: ids.mathSubject,
	}
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Errorf("returning clause not applied: %+v", first)
	}

	// Class collision.
	err := repo.Insert(ctx, &model.ScheduleSlot{
		Day: timetable.Monday, StartTime: "08:30", EndTime: "09:30",
		ClassID: ids.classA, TeacherID: ids.englishTeacher, SubjectID: ids.englishSubject,
	})
	var ce *model.ConflictError
	if !errors.As(err, &ce) || ce.Dimension != model.ConflictClass {
		t.Errorf("class collision: got %v", err)
	}

	// Teacher collision.
	err = repo.Insert(ctx, &model.ScheduleSlot{
		Day: timetable.Monday, StartTime: "08:30", EndTime: "09:30",
		ClassID: ids.classB, TeacherID: ids.mathTeacher, SubjectID: ids.mathSubject,
	})
	if !errors.As(err, &ce) || ce.Dimension != model.ConflictTeacher {
		t.Errorf("teacher collision: got %v", err)
	}
}

func TestDeleteByIDAndOwnerDB(t *testing.T) {
	pool := setupTestDB(t)
	ids := seedReferenceData(t, pool)
	repo := repository.NewSlotRepository(pool)
	ctx := context.Background()

	slot := &model.ScheduleSlot{
		Day: timetable.Tuesday, StartTime: "09:30", EndTime: "10:30",
		ClassID: ids.classA, TeacherID: ids.mathTeacher, SubjectID: ids.mathSubject,
	}
	if err := repo.Insert(ctx, slot); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := repo.DeleteByIDAndOwner(ctx, slot.ID, ids.englishTeacher); !errors.Is(err, model.ErrSlotNotFound) {
		t.Errorf("foreign delete: got %v, want ErrSlotNotFound", err)
	}
	if err := repo.DeleteByIDAndOwner(ctx, slot.ID, ids.mathTeacher); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := repo.DeleteByIDAndOwner(ctx, slot.ID, ids.mathTeacher); !errors.Is(err, model.ErrSlotNotFound) {
		t.Errorf("second delete: got %v, want ErrSlotNotFound", err)
	}
}

func TestListJoinsDisplayNames(t *testing.T) {
	pool := setupTestDB(t)
	ids := seedReferenceData(t, pool)
	repo := repository.NewSlotRepository(pool)
	ctx := context.Background()

	slots := []*model.ScheduleSlot{
		{Day: timetable.Monday, StartTime: "08:30", EndTime: "09:30", ClassID: ids.classA, TeacherID: ids.mathTeacher, SubjectID: ids.mathSubject},
		{Day: timetable.Monday, StartTime: "08:30", EndTime: "09:30", ClassID: ids.classB, TeacherID: ids.englishTeacher, SubjectID: ids.englishSubject},
		{Day: timetable.Tuesday, StartTime: "09:30", EndTime: "10:30", ClassID: ids.classA, TeacherID: ids.mathTeacher, SubjectID: ids.mathSubject},
	}
	for _, s := range slots {
		if err := repo.Insert(ctx, s); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("rows: got %d, want 3", len(all))
	}
	if all[0].ClassName != "Form 1A" || all[0].TeacherName != "Ada Mwangi" || all[0].SubjectName != "Mathematics" {
		t.Errorf("names not joined: %+v", all[0])
	}

	byTeacher, err := repo.ListByTeacher(ctx, ids.mathTeacher)
	if err != nil {
		t.Fatalf("ListByTeacher failed: %v", err)
	}
	if len(byTeacher) != 2 {
		t.Errorf("teacher rows: got %d, want 2", len(byTeacher))
	}

	byClass, err := repo.ListByClass(ctx, ids.classB)
	if err != nil {
		t.Fatalf("ListByClass failed: %v", err)
	}
	if len(byClass) != 1 {
		t.Errorf("class rows: got %d, want 1", len(byClass))
	}

	booked, err := repo.BookedClassIDs(ctx, timetable.Monday, "08:30")
	if err != nil {
		t.Fatalf("BookedClassIDs failed: %v", err)
	}
	if len(booked) != 2 {
		t.Errorf("booked ids: got %d, want 2", len(booked))
	}
}
