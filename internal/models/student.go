package models

// Student takes part in zero or more courses through enrollments.
type Student struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:250;not null" json:"name" validate:"required,max=250"`
	Enrollments []Enrollment `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"enrollments,omitempty" validate:"-"`
}

func (Student) TableName() string { return "students" }

// Serialize returns {id, name, enrollments}.
func (s *Student) Serialize() (Mapping, error) {
	enrollments, err := serializeEnrollments(s.Enrollments)
	if err != nil {
		return nil, err
	}
	m := Mapping{"id": s.ID, "name": s.Name}
	m[Relations.key("student", "enrollments")] = enrollments
	return m, nil
}
