package db

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
)

// DefaultFixtures is the demo data set shipped with the binary.
//
//go:embed seed.yaml
var DefaultFixtures []byte

// Fixtures is the YAML shape accepted by Seed.
type Fixtures struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		IsActive bool   `yaml:"is_active"`
		Bio      string `yaml:"bio"`
	} `yaml:"users"`
	Teachers []struct {
		Name    string   `yaml:"name"`
		Courses []string `yaml:"courses"`
	} `yaml:"teachers"`
	Students []struct {
		Name    string   `yaml:"name"`
		Courses []string `yaml:"courses"`
	} `yaml:"students"`
}

// ParseFixtures decodes a YAML fixture document.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Seed inserts the records described by data. Records that already exist
// (same email, teacher name, course title or student name) are reused, so
// running it twice does not duplicate anything.
func Seed(conn *gorm.DB, s *Schema, data []byte) error {
	if missing := s.Missing(conn); len(missing) > 0 {
		return fmt.Errorf("cannot seed, missing tables: %s", strings.Join(missing, ", "))
	}
	f, err := ParseFixtures(data)
	if err != nil {
		return err
	}
	return conn.Transaction(func(tx *gorm.DB) error {
		for _, u := range f.Users {
			user := models.User{Email: u.Email}
			if err := tx.Where("email = ?", u.Email).
				Attrs(models.User{Password: u.Password, IsActive: u.IsActive}).
				FirstOrCreate(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			profile := models.Profile{UserID: user.ID}
			if err := tx.Where("user_id = ?", user.ID).
				Attrs(models.Profile{Bio: u.Bio}).
				FirstOrCreate(&profile).Error; err != nil {
				return fmt.Errorf("seed profile for %s: %w", u.Email, err)
			}
		}

		courses := make(map[string]uint)
		for _, t := range f.Teachers {
			teacher := models.Teacher{Name: t.Name}
			if err := tx.Where("name = ?", t.Name).FirstOrCreate(&teacher).Error; err != nil {
				return fmt.Errorf("seed teacher %s: %w", t.Name, err)
			}
			for _, title := range t.Courses {
				course := models.Course{Title: title, TeacherID: teacher.ID}
				if err := tx.Where("title = ? AND teacher_id = ?", title, teacher.ID).
					FirstOrCreate(&course).Error; err != nil {
					return fmt.Errorf("seed course %s: %w", title, err)
				}
				courses[title] = course.ID
			}
		}

		for _, st := range f.Students {
			student := models.Student{Name: st.Name}
			if err := tx.Where("name = ?", st.Name).FirstOrCreate(&student).Error; err != nil {
				return fmt.Errorf("seed student %s: %w", st.Name, err)
			}
			for _, title := range st.Courses {
				courseID, ok := courses[title]
				if !ok {
					return fmt.Errorf("seed student %s: %w: %q", st.Name, errUnknownCourse, title)
				}
				enrollment := models.Enrollment{StudentID: student.ID, CourseID: courseID}
				if err := tx.Where("student_id = ? AND course_id = ?", student.ID, courseID).
					FirstOrCreate(&enrollment).Error; err != nil {
					return fmt.Errorf("seed enrollment %s/%s: %w", st.Name, title, err)
				}
			}
		}
		return nil
	})
}

var errUnknownCourse = errors.New("unknown course")
