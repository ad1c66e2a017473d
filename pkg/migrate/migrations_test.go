package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/electrostorehq/backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no orders migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"order_amount NUMERIC(10,2) NOT NULL",
		"ON DELETE CASCADE",
		"CREATE INDEX IF NOT EXISTS idx_orders_user",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRolesMigrationSeedsBothRoles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users_and_roles.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	for _, role := range []string{"ROLE_ADMIN", "ROLE_NORMAL"} {
		if !strings.Contains(string(data), role) {
			t.Errorf("seed for %s missing", role)
		}
	}
}
