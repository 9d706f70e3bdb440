package service

import (
	"context"
	"fmt"

	"github.com/schooltab/timetable/internal/model"
	"github.com/schooltab/timetable/internal/timetable"
)

// ClassCell is one cell of a per-class grid.
type ClassCell struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

// ClassGrid maps day → start time → cell. Unbooked coordinates are simply
// absent; every weekday key is always present so an empty timetable still
// projects as a grid.
type ClassGrid map[timetable.Weekday]map[string]ClassCell

// SchoolEntry is one booking inside a whole-school cell. Many classes can
// be taught at the same coordinate, so cells hold lists.
type SchoolEntry struct {
	ClassID int64  `json:"class_id"`
	Class   string `json:"class"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
}

// SchoolGrid maps day → start time → entries.
type SchoolGrid map[timetable.Weekday]map[string][]SchoolEntry

// TeacherView combines a teacher's own bookings with the whole-school grid
// so one response drives both "my schedule" and "pick a free class".
type TeacherView struct {
	Mine   []model.SlotView `json:"mine"`
	School SchoolGrid       `json:"school"`
}

// ScheduleService is the read side: it reshapes slot rows into grid views
// and never writes.
type ScheduleService struct {
	slots SlotStore
}

func NewScheduleService(slots SlotStore) *ScheduleService {
	return &ScheduleService{slots: slots}
}

// ClassSchedule builds the grid for one class.
func (s *ScheduleService) ClassSchedule(ctx context.Context, classID int64) (ClassGrid, error) {
	slots, err := s.slots.ListByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("class schedule: %w", err)
	}

	grid := make(ClassGrid, len(timetable.Weekdays))
	for _, day := range timetable.Weekdays {
		grid[day] = make(map[string]ClassCell)
	}
	for _, slot := range slots {
		grid[slot.Day][slot.StartTime] = ClassCell{
			Subject: slot.SubjectName,
			Teacher: slot.TeacherName,
		}
	}

	return grid, nil
}

// SchoolSchedule builds the whole-school grid across all classes.
func (s *ScheduleService) SchoolSchedule(ctx context.Context) (SchoolGrid, error) {
	slots, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("school schedule: %w", err)
	}

	return buildSchoolGrid(slots), nil
}

// TeacherSchedule builds the combined view for one teacher.
func (s *ScheduleService) TeacherSchedule(ctx context.Context, teacherID int64) (*TeacherView, error) {
	mine, err := s.slots.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("teacher schedule: %w", err)
	}

	all, err := s.slots.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("teacher schedule: %w", err)
	}

	if mine == nil {
		mine = []model.SlotView{}
	}

	return &TeacherView{
		Mine:   mine,
		School: buildSchoolGrid(all),
	}, nil
}

func buildSchoolGrid(slots []model.SlotView) SchoolGrid {
	grid := make(SchoolGrid, len(timetable.Weekdays))
	for _, day := range timetable.Weekdays {
		grid[day] = make(map[string][]SchoolEntry)
	}
	for _, slot := range slots {
		grid[slot.Day][slot.StartTime] = append(grid[slot.Day][slot.StartTime], SchoolEntry{
			ClassID: slot.ClassID,
			Class:   slot.ClassName,
			Subject: slot.SubjectName,
			Teacher: slot.TeacherName,
		})
	}
	return grid
}
