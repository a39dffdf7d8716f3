package models

// Teacher offers zero or more courses.
type Teacher struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"size:50;not null" json:"name" validate:"required,max=50"`
	Courses []Course `gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE" json:"courses,omitempty" validate:"-"`
}

func (Teacher) TableName() string { return "teachers" }

// Serialize returns {id, name, courses} with every owned course fully serialized.
// Courses loaded without their Teacher pointer are serialized against t.
func (t *Teacher) Serialize() (Mapping, error) {
	courses := make([]Mapping, 0, len(t.Courses))
	for i := range t.Courses {
		c := t.Courses[i]
		if c.Teacher == nil && c.TeacherID == t.ID {
			c.Teacher = t
		}
		m, err := c.Serialize()
		if err != nil {
			return nil, err
		}
		courses = append(courses, m)
	}
	m := Mapping{"id": t.ID, "name": t.Name}
	m[Relations.key("teacher", "courses")] = courses
	return m, nil
}
