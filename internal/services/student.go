package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
)

type StudentService struct{ db *gorm.DB }

func NewStudentService(db *gorm.DB) *StudentService { return &StudentService{db: db} }

func (s *StudentService) Create(ctx context.Context, st *models.Student) error {
	if err := checkStruct("student", st); err != nil {
		return err
	}
	return classify("student", withCtx(s.db, ctx).Omit("Enrollments").Create(st).Error)
}

func (s *StudentService) preload(ctx context.Context) *gorm.DB {
	return withCtx(s.db, ctx).
		Preload("Enrollments", func(db *gorm.DB) *gorm.DB { return db.Order("course_id") })
}

func (s *StudentService) Get(ctx context.Context, id uint) (*models.Student, error) {
	var st models.Student
	if err := s.preload(ctx).First(&st, id).Error; err != nil {
		return nil, classify("student", err)
	}
	return &st, nil
}

func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.preload(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, classify("student", err)
	}
	return students, nil
}

// Delete removes the student and its enrollments.
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	return classify("student", withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&models.Enrollment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Student{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("student")
		}
		return nil
	}))
}
