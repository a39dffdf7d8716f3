package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
)

type EnrollmentService struct{ db *gorm.DB }

func NewEnrollmentService(db *gorm.DB) *EnrollmentService { return &EnrollmentService{db: db} }

// Enroll links a student to a course, dated now. Enrolling the same pair
// twice is a primary key violation.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	e := models.Enrollment{StudentID: studentID, CourseID: courseID}
	err := withCtx(s.db, ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &models.Student{}, studentID)
		if err != nil {
			return err
		}
		if !ok {
			return foreignKey("enrollment", "student_id")
		}
		if ok, err = exists(tx, &models.Course{}, courseID); err != nil {
			return err
		} else if !ok {
			return foreignKey("enrollment", "course_id")
		}
		return tx.Omit("Student", "Course").Create(&e).Error
	})
	if err != nil {
		return nil, classify("enrollment", err)
	}
	return &e, nil
}

func (s *EnrollmentService) Get(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	var e models.Enrollment
	err := withCtx(s.db, ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&e).Error
	if err != nil {
		return nil, classify("enrollment", err)
	}
	return &e, nil
}

func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID uint) error {
	res := withCtx(s.db, ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&models.Enrollment{})
	if res.Error != nil {
		return classify("enrollment", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("enrollment")
	}
	return nil
}

func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID uint) ([]models.Enrollment, error) {
	var list []models.Enrollment
	if err := withCtx(s.db, ctx).Where("course_id = ?", courseID).Order("student_id").Find(&list).Error; err != nil {
		return nil, classify("enrollment", err)
	}
	return list, nil
}

func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	var list []models.Enrollment
	if err := withCtx(s.db, ctx).Where("student_id = ?", studentID).Order("course_id").Find(&list).Error; err != nil {
		return nil, classify("enrollment", err)
	}
	return list, nil
}
