package model

// Reference data owned by user management. This service reads it to
// resolve assignments and enumerate rooms; it never writes these tables.

type Class struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeacherAssignment is a teacher's single subject assignment.
type TeacherAssignment struct {
	TeacherID   int64  `json:"teacher_id"`
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
}
