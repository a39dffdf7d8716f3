package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/services"
)

var errDumpArgs = errors.New("enrollment dump needs -id (student) or -course-id")

// dump loads the requested entity through svc and returns its serialized
// form. A zero id dumps every record of that kind.
func dump(ctx context.Context, svc *services.Services, entity string, id, courseID uint) (any, error) {
	switch entity {
	case "user":
		if id != 0 {
			return one(svc.Users.Get(ctx, id))
		}
		return all(svc.Users.List(ctx))
	case "profile":
		if id != 0 {
			return one(svc.Users.GetProfile(ctx, id))
		}
		return all(svc.Users.ListProfiles(ctx))
	case "teacher":
		if id != 0 {
			return one(svc.Teachers.Get(ctx, id))
		}
		return all(svc.Teachers.List(ctx))
	case "course":
		if id != 0 {
			return one(svc.Courses.Get(ctx, id))
		}
		return all(svc.Courses.List(ctx))
	case "student":
		if id != 0 {
			return one(svc.Students.Get(ctx, id))
		}
		return all(svc.Students.List(ctx))
	case "enrollment":
		switch {
		case id != 0 && courseID != 0:
			return one(svc.Enrollments.Get(ctx, id, courseID))
		case courseID != 0:
			return all(svc.Enrollments.ListByCourse(ctx, courseID))
		case id != 0:
			return all(svc.Enrollments.ListByStudent(ctx, id))
		}
		return nil, errDumpArgs
	}
	return nil, fmt.Errorf("unknown entity %q", entity)
}

func one[T models.Serializer](rec T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return rec.Serialize()
}

func all[T any, P interface {
	*T
	models.Serializer
}](list []T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.Mapping, 0, len(list))
	for i := range list {
		m, err := P(&list[i]).Serialize()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
