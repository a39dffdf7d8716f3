package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
)

type CourseService struct{ db *gorm.DB }

func NewCourseService(db *gorm.DB) *CourseService { return &CourseService{db: db} }

// Create inserts c after checking that its teacher exists.
func (s *CourseService) Create(ctx context.Context, c *models.Course) error {
	if err := checkStruct("course", c); err != nil {
		return err
	}
	return classify("course", withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Teacher{}, c.TeacherID)
		if err != nil {
			return err
		}
		if !ok {
			return foreignKey("course", "teacher_id")
		}
		return tx.Omit("Teacher", "Enrollments").Create(c).Error
	}))
}

func (s *CourseService) preload(ctx context.Context) *gorm.DB {
	return withCtx(s.db, ctx).
		Preload("Teacher").
		Preload("Enrollments", func(db *gorm.DB) *gorm.DB { return db.Order("student_id") })
}

// Get loads a course with its teacher and enrollments.
func (s *CourseService) Get(ctx context.Context, id uint) (*models.Course, error) {
	var c models.Course
	if err := s.preload(ctx).First(&c, id).Error; err != nil {
		return nil, classify("course", err)
	}
	return &c, nil
}

func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.preload(ctx).Order("id").Find(&courses).Error; err != nil {
		return nil, classify("course", err)
	}
	return courses, nil
}

func (s *CourseService) ListByTeacher(ctx context.Context, teacherID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := s.preload(ctx).Where("teacher_id = ?", teacherID).Order("id").Find(&courses).Error; err != nil {
		return nil, classify("course", err)
	}
	return courses, nil
}

// Delete removes the course and its enrollments.
func (s *CourseService) Delete(ctx context.Context, id uint) error {
	return classify("course", withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Course{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("course")
		}
		return nil
	}))
}
