package services

import (
	"context"

	"gorm.io/gorm"
)

// Services groups the typed accessors of the storage layer.
type Services struct {
	Users       *UserService
	Teachers    *TeacherService
	Courses     *CourseService
	Students    *StudentService
	Enrollments *EnrollmentService
}

// New wires every service on the same connection.
func New(db *gorm.DB) *Services {
	return &Services{
		Users:       NewUserService(db),
		Teachers:    NewTeacherService(db),
		Courses:     NewCourseService(db),
		Students:    NewStudentService(db),
		Enrollments: NewEnrollmentService(db),
	}
}

// exists reports whether a row with the given id is present in model's table.
func exists(tx *gorm.DB, model any, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func byID(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Order(table + ".id") }
}

func withCtx(db *gorm.DB, ctx context.Context) *gorm.DB {
	if ctx == nil {
		ctx = context.Background()
	}
	return db.WithContext(ctx)
}
