package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestUser_SerializeOmitsPassword(t *testing.T) {
	u := &User{
		ID:       1,
		Email:    "ana@example.com",
		Password: "s3cret",
		IsActive: true,
		Profile:  &Profile{ID: 7, Bio: "hello", UserID: 1},
	}
	got, err := u.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if _, ok := got["password"]; ok {
		t.Errorf("password key present in %v", got)
	}
	if len(got) != 3 {
		t.Errorf("expected keys id, email, profile; got %v", got)
	}
	if got["email"] != "ana@example.com" {
		t.Errorf("email = %v", got["email"])
	}
	profile, ok := got["profile"].(Mapping)
	if !ok {
		t.Fatalf("profile is %T, want Mapping", got["profile"])
	}
	if profile["bio"] != "hello" || profile["user_id"] != uint(1) {
		t.Errorf("profile = %v", profile)
	}

	body, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"email":"ana@example.com","id":1,"profile":{"bio":"hello","id":7,"user_id":1}}`
	if string(body) != want {
		t.Errorf("json = %s, want %s", body, want)
	}
}

func TestUser_SerializeWithoutProfile(t *testing.T) {
	u := &User{ID: 3, Email: "x@example.com"}
	_, err := u.Serialize()
	if !errors.Is(err, ErrMissingRelation) {
		t.Fatalf("expected ErrMissingRelation, got %v", err)
	}
	var mre *MissingRelationError
	if !errors.As(err, &mre) {
		t.Fatalf("expected *MissingRelationError, got %T", err)
	}
	if mre.Entity != "user" || mre.Relation != "profile" || mre.ID != 3 {
		t.Errorf("unexpected error fields: %+v", mre)
	}
}

func TestProfile_SerializeHasNoUser(t *testing.T) {
	p := &Profile{ID: 2, Bio: "bio", UserID: 5, User: &User{ID: 5, Email: "u@example.com"}}
	got, _ := p.Serialize()
	if _, ok := got["user"]; ok {
		t.Errorf("profile output must not contain user: %v", got)
	}
	if got["user_id"] != uint(5) {
		t.Errorf("user_id = %v, want 5", got["user_id"])
	}
}

func TestTeacher_SerializeCourses(t *testing.T) {
	tests := []struct {
		name    string
		courses []Course
	}{
		{"no courses", nil},
		{"one course", []Course{{ID: 1, Title: "Math", TeacherID: 9}}},
		{"three courses", []Course{
			{ID: 1, Title: "Math", TeacherID: 9},
			{ID: 2, Title: "Physics", TeacherID: 9},
			{ID: 3, Title: "Chemistry", TeacherID: 9},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teacher := &Teacher{ID: 9, Name: "Ms. Frizzle", Courses: tt.courses}
			got, err := teacher.Serialize()
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			courses, ok := got["courses"].([]Mapping)
			if !ok {
				t.Fatalf("courses is %T, want []Mapping", got["courses"])
			}
			if len(courses) != len(tt.courses) {
				t.Fatalf("len(courses) = %d, want %d", len(courses), len(tt.courses))
			}
			for i, c := range courses {
				if c["teacher"] != "Ms. Frizzle" {
					t.Errorf("courses[%d].teacher = %v", i, c["teacher"])
				}
				if c["id"] != tt.courses[i].ID {
					t.Errorf("courses[%d].id = %v, want %d", i, c["id"], tt.courses[i].ID)
				}
			}
		})
	}
}

func TestTeacher_SerializeDoesNotMutateCourses(t *testing.T) {
	teacher := &Teacher{ID: 1, Name: "T", Courses: []Course{{ID: 1, Title: "C", TeacherID: 1}}}
	if _, err := teacher.Serialize(); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if teacher.Courses[0].Teacher != nil {
		t.Errorf("Serialize must not write back the teacher pointer")
	}
}

func TestCourse_SerializeTeacherIsName(t *testing.T) {
	date := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c := &Course{
		ID:        4,
		Title:     "Algebra",
		TeacherID: 2,
		Teacher:   &Teacher{ID: 2, Name: "Mr. Smith"},
		Enrollments: []Enrollment{
			{StudentID: 10, CourseID: 4, Date: date},
			{StudentID: 11, CourseID: 4, Date: date},
		},
	}
	got, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	name, ok := got["teacher"].(string)
	if !ok || name != "Mr. Smith" {
		t.Errorf("teacher = %#v, want string %q", got["teacher"], "Mr. Smith")
	}
	if got["teacher_id"] != uint(2) {
		t.Errorf("teacher_id = %v", got["teacher_id"])
	}
	enrollments := got["enrollments"].([]Mapping)
	if len(enrollments) != 2 {
		t.Fatalf("len(enrollments) = %d, want 2", len(enrollments))
	}
	if enrollments[1]["student_id"] != uint(11) {
		t.Errorf("enrollments[1] = %v", enrollments[1])
	}
}

func TestCourse_SerializeWithoutTeacher(t *testing.T) {
	c := &Course{ID: 1, Title: "Orphan", TeacherID: 99}
	if _, err := c.Serialize(); !errors.Is(err, ErrMissingRelation) {
		t.Fatalf("expected ErrMissingRelation, got %v", err)
	}
}

func TestStudent_SerializeEmptyEnrollments(t *testing.T) {
	s := &Student{ID: 1, Name: "Bo"}
	got, _ := s.Serialize()
	body, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"enrollments":[],"id":1,"name":"Bo"}`; string(body) != want {
		t.Errorf("json = %s, want %s", body, want)
	}
}

func TestEnrollment_Serialize(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"whole seconds", time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC), "2024-01-02T15:04:05"},
		{"microseconds", time.Date(2024, 1, 2, 15, 4, 5, 250000000, time.UTC), "2024-01-02T15:04:05.250000"},
		{"nanoseconds truncated", time.Date(2024, 1, 2, 15, 4, 5, 123456789, time.UTC), "2024-01-02T15:04:05.123456"},
		{"converted to utc", time.Date(2024, 1, 2, 17, 4, 5, 0, time.FixedZone("CEST", 2*3600)), "2024-01-02T15:04:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enrollment{StudentID: 3, CourseID: 8, Date: tt.date}
			got, _ := e.Serialize()
			if got["courses"] != uint(8) {
				t.Errorf("courses = %v, want scalar 8", got["courses"])
			}
			if got["student_id"] != uint(3) {
				t.Errorf("student_id = %v", got["student_id"])
			}
			date, ok := got["date"].(string)
			if !ok || date != tt.want {
				t.Fatalf("date = %#v, want %q", got["date"], tt.want)
			}
			parsed, err := ParseDate(date)
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", date, err)
			}
			if !parsed.Equal(tt.date.Truncate(time.Microsecond)) {
				t.Errorf("ParseDate = %v, want %v", parsed, tt.date)
			}
		})
	}
}

func TestRelations_Acyclic(t *testing.T) {
	if !Relations.Acyclic() {
		t.Fatal("declared relations nest in a cycle")
	}
	cyclic := append(RelationSet{}, Relations...)
	cyclic = append(cyclic, Relation{Owner: "course", Name: "teacher", Target: "teacher", Rule: Nest})
	if cyclic.Acyclic() {
		t.Error("expected teacher/course nesting both ways to be reported as a cycle")
	}
}

func TestRelations_NoTwoWayNesting(t *testing.T) {
	for _, r := range Relations {
		if r.Rule != Nest {
			continue
		}
		for _, back := range Relations.Of(r.Target) {
			if back.Target == r.Owner && back.Rule == Nest {
				t.Errorf("%s.%s and %s.%s both nest", r.Owner, r.Name, back.Owner, back.Name)
			}
		}
	}
}

func TestRelations_MatchSerializedShapes(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	teacher := &Teacher{ID: 1, Name: "T"}
	course := &Course{ID: 2, Title: "C", TeacherID: 1, Teacher: teacher,
		Enrollments: []Enrollment{{StudentID: 3, CourseID: 2, Date: date}}}
	teacher.Courses = []Course{*course}
	samples := map[string]Serializer{
		"user":       &User{ID: 1, Email: "a@b.co", Profile: &Profile{ID: 1, UserID: 1}},
		"profile":    &Profile{ID: 1, UserID: 1},
		"teacher":    teacher,
		"course":     course,
		"student":    &Student{ID: 3, Name: "S", Enrollments: []Enrollment{{StudentID: 3, CourseID: 2, Date: date}}},
		"enrollment": &Enrollment{StudentID: 3, CourseID: 2, Date: date},
	}
	for _, r := range Relations {
		out, err := samples[r.Owner].Serialize()
		if err != nil {
			t.Fatalf("%s: %v", r.Owner, err)
		}
		switch r.Rule {
		case Nest:
			switch out[r.Key].(type) {
			case Mapping, []Mapping:
			default:
				t.Errorf("%s.%s: key %q is %T, want nested", r.Owner, r.Name, r.Key, out[r.Key])
			}
		case Scalar:
			switch out[r.Key].(type) {
			case Mapping, []Mapping, nil:
				t.Errorf("%s.%s: key %q is %T, want scalar", r.Owner, r.Name, r.Key, out[r.Key])
			}
		case Omit:
			if _, ok := out[r.Name]; ok {
				t.Errorf("%s.%s: relation should be omitted", r.Owner, r.Name)
			}
		}
	}
}

func TestRule_String(t *testing.T) {
	if Nest.String() != "nest" || Scalar.String() != "scalar" || Omit.String() != "omit" {
		t.Errorf("unexpected rule names")
	}
}

func TestRelations_Lookup(t *testing.T) {
	r, ok := Relations.Lookup("enrollment", "course")
	if !ok {
		t.Fatal("enrollment.course not declared")
	}
	if r.Rule != Scalar || r.Key != "courses" {
		t.Errorf("enrollment.course = %+v, want scalar under \"courses\"", r)
	}
	if _, ok := Relations.Lookup("profile", "teacher"); ok {
		t.Error("unexpected relation profile.teacher")
	}
}

func TestSerializeUsesDeclaredKeys(t *testing.T) {
	saved := Relations
	t.Cleanup(func() { Relations = saved })
	Relations = append(RelationSet{}, saved...)
	for i := range Relations {
		if Relations[i].Owner == "enrollment" && Relations[i].Name == "course" {
			Relations[i].Key = "course_id"
		}
	}

	out, err := (&Enrollment{StudentID: 1, CourseID: 2}).Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if out["course_id"] != uint(2) {
		t.Errorf("course_id = %v, want 2", out["course_id"])
	}
	if _, ok := out["courses"]; ok {
		t.Error("old key still emitted")
	}
}
