package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGroupBuysMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_group_buys_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no group buys migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS group_buys",
		"current_quantity INTEGER NOT NULL DEFAULT 0",
		"current_participants INTEGER NOT NULL DEFAULT 0",
		"CHECK (status IN ('active', 'completed', 'expired', 'cancelled'))",
		"CREATE INDEX IF NOT EXISTS idx_group_buys_status",
		"DROP TABLE IF EXISTS group_buys",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestGroupParticipantsMigrationHasUniquePair(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_group_participants_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no group participants migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS group_participants",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_group_participants_group_vendor ON group_participants (group_buy_id, vendor_id)",
		"FOREIGN KEY (group_buy_id) REFERENCES group_buys(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS group_participants",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
