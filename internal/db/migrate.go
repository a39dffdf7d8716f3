package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every model in s, then checks
// that they all exist.
func Migrate(conn *gorm.DB, s *Schema) error {
	for _, m := range s.Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	if missing := s.Missing(conn); len(missing) > 0 {
		return fmt.Errorf("missing tables after migration: %s", strings.Join(missing, ", "))
	}
	return nil
}
