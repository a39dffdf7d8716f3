package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
)

type TeacherService struct{ db *gorm.DB }

func NewTeacherService(db *gorm.DB) *TeacherService { return &TeacherService{db: db} }

func (s *TeacherService) Create(ctx context.Context, t *models.Teacher) error {
	if err := checkStruct("teacher", t); err != nil {
		return err
	}
	return classify("teacher", withCtx(s.db, ctx).Omit("Courses").Create(t).Error)
}

// preload loads courses in id order, each with its enrollments, which is
// everything Teacher.Serialize walks.
func (s *TeacherService) preload(ctx context.Context) *gorm.DB {
	return withCtx(s.db, ctx).
		Preload("Courses", byID("courses")).
		Preload("Courses.Enrollments", func(db *gorm.DB) *gorm.DB { return db.Order("student_id") })
}

func (s *TeacherService) Get(ctx context.Context, id uint) (*models.Teacher, error) {
	var t models.Teacher
	if err := s.preload(ctx).First(&t, id).Error; err != nil {
		return nil, classify("teacher", err)
	}
	return &t, nil
}

func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	if err := s.preload(ctx).Order("id").Find(&teachers).Error; err != nil {
		return nil, classify("teacher", err)
	}
	return teachers, nil
}

// Delete removes the teacher, its courses and their enrollments.
func (s *TeacherService) Delete(ctx context.Context, id uint) error {
	return classify("teacher", withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		courses := tx.Model(&models.Course{}).Select("id").Where("teacher_id = ?", id)
		if err := tx.Where("course_id IN (?)", courses).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", id).Delete(&models.Course{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Teacher{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("teacher")
		}
		return nil
	}))
}
