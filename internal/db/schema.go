package db

import (
	"github.com/4GeeksAcademy/fs-pt-101-modelos-bd/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Schema lists the record types managed by the storage layer, parents first.
// Build it once with NewSchema and pass it to Migrate and Seed.
type Schema struct {
	models []any
}

// NewSchema returns the schema of the academic records model.
func NewSchema() *Schema {
	return &Schema{models: []any{
		&models.User{},
		&models.Profile{},
		&models.Teacher{},
		&models.Course{},
		&models.Student{},
		&models.Enrollment{},
	}}
}

// Models returns the registered model pointers in migration order.
func (s *Schema) Models() []any {
	out := make([]any, len(s.models))
	copy(out, s.models)
	return out
}

// Tables returns the table names of the registered models.
func (s *Schema) Tables() []string {
	names := make([]string, 0, len(s.models))
	for _, m := range s.models {
		if t, ok := m.(schema.Tabler); ok {
			names = append(names, t.TableName())
		}
	}
	return names
}

// Missing returns the tables of s that do not exist in conn.
func (s *Schema) Missing(conn *gorm.DB) []string {
	var missing []string
	for _, table := range s.Tables() {
		if !conn.Migrator().HasTable(table) {
			missing = append(missing, table)
		}
	}
	return missing
}
