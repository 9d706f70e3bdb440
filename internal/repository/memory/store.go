// Package memory implements the repository contract in process memory.
// It keeps the same atomicity guarantees as the Postgres implementation
// (composite-key uniqueness decided under one lock) and backs the service
// and handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/timetable"
)

type Store struct {
	mu     sync.Mutex
	nextID int64

	slots     map[int64]model.ScheduleSlot
	byTeacher map[string]int64
	byClass   map[string]int64

	classes     map[int64]string
	teachers    map[int64]string
	subjects    map[int64]string
	assignments map[int64]int64 // teacher id -> subject id
}

func NewStore() *Store {
	return &Store{
		nextID:      1,
		slots:       make(map[int64]model.ScheduleSlot),
		byTeacher:   make(map[string]int64),
		byClass:     make(map[string]int64),
		classes:     make(map[int64]string),
		teachers:    make(map[int64]string),
		subjects:    make(map[int64]string),
		assignments: make(map[int64]int64),
	}
}

// Seed helpers stand in for the reference tables owned by user management.

func (s *Store) AddClass(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[id] = name
}

func (s *Store) AddTeacher(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers[id] = name
}

func (s *Store) AddSubject(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects[id] = name
}

func (s *Store) AssignSubject(teacherID, subjectID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[teacherID] = subjectID
}

func coordKey(id int64, day timetable.Weekday, start string) string {
	return fmt.Sprintf("%d|%s|%s", id, day, start)
}

// Insert claims both coordinate keys or neither, under one lock, matching
// the all-or-nothing behavior of the database constraints.
func (s *Store) Insert(_ context.Context, slot *model.ScheduleSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacherKey := coordKey(slot.TeacherID, slot.Day, slot.StartTime)
	classKey := coordKey(slot.ClassID, slot.Day, slot.StartTime)

	if _, taken := s.byTeacher[teacherKey]; taken {
		return &model.ConflictError{Dimension: model.ConflictTeacher}
	}
	if _, taken := s.byClass[classKey]; taken {
		return &model.ConflictError{Dimension: model.ConflictClass}
	}

	slot.ID = s.nextID
	s.nextID++
	slot.CreatedAt = time.Now().UTC()

	s.slots[slot.ID] = *slot
	s.byTeacher[teacherKey] = slot.ID
	s.byClass[classKey] = slot.ID

	return nil
}

func (s *Store) DeleteByIDAndOwner(_ context.Context, slotID, ownerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok || slot.TeacherID != ownerID {
		return model.ErrSlotNotFound
	}

	delete(s.slots, slotID)
	delete(s.byTeacher, coordKey(slot.TeacherID, slot.Day, slot.StartTime))
	delete(s.byClass, coordKey(slot.ClassID, slot.Day, slot.StartTime))

	return nil
}

func (s *Store) ListAll(_ context.Context) ([]model.SlotView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewsLocked(func(model.ScheduleSlot) bool { return true }), nil
}

func (s *Store) ListByTeacher(_ context.Context, teacherID int64) ([]model.SlotView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewsLocked(func(slot model.ScheduleSlot) bool { return slot.TeacherID == teacherID }), nil
}

func (s *Store) ListByClass(_ context.Context, classID int64) ([]model.SlotView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewsLocked(func(slot model.ScheduleSlot) bool { return slot.ClassID == classID }), nil
}

func (s *Store) BookedClassIDs(_ context.Context, day timetable.Weekday, startTime string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for _, slot := range s.slots {
		if slot.Day == day && slot.StartTime == startTime {
			ids = append(ids, slot.ClassID)
		}
	}
	return ids, nil
}

func (s *Store) SubjectForTeacher(_ context.Context, teacherID int64) (*model.TeacherAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjectID, ok := s.assignments[teacherID]
	if !ok {
		return nil, nil
	}
	return &model.TeacherAssignment{
		TeacherID:   teacherID,
		SubjectID:   subjectID,
		SubjectName: s.subjects[subjectID],
	}, nil
}

func (s *Store) List(_ context.Context) ([]model.Class, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	classes := make([]model.Class, 0, len(s.classes))
	for id, name := range s.classes {
		classes = append(classes, model.Class{ID: id, Name: name})
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, nil
}

func (s *Store) Exists(_ context.Context, classID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.classes[classID]
	return ok, nil
}

func dayIndex(day timetable.Weekday) int {
	for i, wd := range timetable.Weekdays {
		if wd == day {
			return i
		}
	}
	return len(timetable.Weekdays)
}

func (s *Store) viewsLocked(keep func(model.ScheduleSlot) bool) []model.SlotView {
	var views []model.SlotView
	for _, slot := range s.slots {
		if !keep(slot) {
			continue
		}
		views = append(views, model.SlotView{
			ID:          slot.ID,
			Day:         slot.Day,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			ClassID:     slot.ClassID,
			ClassName:   s.classes[slot.ClassID],
			TeacherID:   slot.TeacherID,
			TeacherName: s.teachers[slot.TeacherID],
			SubjectID:   slot.SubjectID,
			SubjectName: s.subjects[slot.SubjectID],
		})
	}

	// Same ordering as the SQL queries: day, start time, class name.
	sort.Slice(views, func(i, j int) bool {
		if dayIndex(views[i].Day) != dayIndex(views[j].Day) {
			return dayIndex(views[i].Day) < dayIndex(views[j].Day)
		}
		if views[i].StartTime != views[j].StartTime {
			return views[i].StartTime < views[j].StartTime
		}
		return views[i].ClassName < views[j].ClassName
	})

	return views
}
