package models

// Course is taught by exactly one teacher and has zero or more enrollments.
type Course struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:50;not null" json:"title" validate:"required,max=50"`
	TeacherID   uint         `gorm:"index;not null" json:"teacher_id"`
	Teacher     *Teacher     `gorm:"foreignKey:TeacherID" json:"-" validate:"-"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"enrollments,omitempty" validate:"-"`
}

func (Course) TableName() string { return "courses" }

// Serialize returns {id, title, teacher_id, teacher, enrollments}.
// The teacher is projected to its name so Teacher -> Course -> Teacher never recurses.
func (c *Course) Serialize() (Mapping, error) {
	if c.Teacher == nil {
		return nil, missing("course", c.ID, "teacher")
	}
	enrollments, err := serializeEnrollments(c.Enrollments)
	if err != nil {
		return nil, err
	}
	m := Mapping{
		"id":         c.ID,
		"title":      c.Title,
		"teacher_id": c.TeacherID,
	}
	m[Relations.key("course", "teacher")] = c.Teacher.Name
	m[Relations.key("course", "enrollments")] = enrollments
	return m, nil
}
