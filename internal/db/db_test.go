package db

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/config"
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.Default().Database
	cfg.Path = "file:" + t.Name() + "?mode=memory&cache=shared"
	cfg.ConnectRetries = 1
	conn, err := Open(cfg, quietLogger())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return conn
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := config.Default().Database
	cfg.Driver = "oracle"
	if _, err := Open(cfg, quietLogger()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	conn := openTestDB(t)
	var on int
	if err := conn.Raw("PRAGMA foreign_keys").Scan(&on).Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if on != 1 {
		t.Fatalf("foreign_keys = %d, want 1", on)
	}
}

func TestMigrateCreatesAllTables(t *testing.T) {
	conn := openTestDB(t)
	s := NewSchema()
	if missing := s.Missing(conn); len(missing) != len(s.Tables()) {
		t.Fatalf("expected every table missing before migration, got %v", missing)
	}
	if err := Migrate(conn, s); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if missing := s.Missing(conn); len(missing) != 0 {
		t.Fatalf("missing tables after migration: %v", missing)
	}
	// Running it again is a no-op.
	if err := Migrate(conn, s); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestSchemaTables(t *testing.T) {
	want := []string{"users", "profiles", "teachers", "courses", "students", "enrollments"}
	got := NewSchema().Tables()
	if len(got) != len(want) {
		t.Fatalf("Tables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tables()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	conn := openTestDB(t)
	s := NewSchema()
	if err := Migrate(conn, s); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Seed(conn, s, DefaultFixtures); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Seed(conn, s, DefaultFixtures); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	counts := map[any]int64{
		&models.User{}:       3,
		&models.Profile{}:    3,
		&models.Teacher{}:    2,
		&models.Course{}:     3,
		&models.Student{}:    3,
		&models.Enrollment{}: 3,
	}
	for m, want := range counts {
		var got int64
		conn.Model(m).Count(&got)
		if got != want {
			t.Errorf("%T count = %d, want %d", m, got, want)
		}
	}

	var course models.Course
	if err := conn.Preload("Teacher").Preload("Enrollments").Where("title = ?", "Compilers").First(&course).Error; err != nil {
		t.Fatalf("load course: %v", err)
	}
	out, err := course.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if out["teacher"] != "Grace Hopper" {
		t.Errorf("teacher = %v", out["teacher"])
	}
	if n := len(out["enrollments"].([]models.Mapping)); n != 2 {
		t.Errorf("Compilers enrollments = %d, want 2", n)
	}
}

func TestSeedRequiresMigration(t *testing.T) {
	conn := openTestDB(t)
	if err := Seed(conn, NewSchema(), DefaultFixtures); err == nil {
		t.Fatal("expected error when tables are missing")
	}
}

func TestSeedUnknownCourse(t *testing.T) {
	conn := openTestDB(t)
	s := NewSchema()
	if err := Migrate(conn, s); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	fixtures := []byte("students:\n  - name: Lost\n    courses: [Nowhere]\n")
	if err := Seed(conn, s, fixtures); err == nil {
		t.Fatal("expected error for unknown course")
	}
	var n int64
	conn.Model(&models.Student{}).Count(&n)
	if n != 0 {
		t.Errorf("seed should roll back, found %d students", n)
	}
}

func TestParseFixturesBadYAML(t *testing.T) {
	if _, err := ParseFixtures([]byte("users: {")); err == nil {
		t.Fatal("expected parse error")
	}
}
