package models

import "time"

// Enrollment links a student to a course. Its identity is the
// (student_id, course_id) pair; there is no surrogate id.
type Enrollment struct {
	StudentID uint `gorm:"primaryKey;autoIncrement:false" json:"student_id"`
	CourseID  uint `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	// Date is set to the insertion time when left zero.
	Date    time.Time `gorm:"autoCreateTime" json:"date"`
	Student *Student  `gorm:"foreignKey:StudentID" json:"-" validate:"-"`
	Course  *Course   `gorm:"foreignKey:CourseID" json:"-" validate:"-"`
}

func (Enrollment) TableName() string { return "enrollments" }

// Serialize returns {student_id, courses, date}. The "courses" key holds the
// scalar course id; clients depend on that name.
func (e *Enrollment) Serialize() (Mapping, error) {
	m := Mapping{"date": FormatDate(e.Date)}
	m[Relations.key("enrollment", "student")] = e.StudentID
	m[Relations.key("enrollment", "course")] = e.CourseID
	return m, nil
}

func serializeEnrollments(list []Enrollment) ([]Mapping, error) {
	out := make([]Mapping, 0, len(list))
	for i := range list {
		m, err := list[i].Serialize()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
