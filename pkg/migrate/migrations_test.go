package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopdesk/shopdesk-backend/pkg/migrate"
)

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestCoreTablesHaveMigrations(t *testing.T) {
	tables := map[string][]string{
		"shops": {
			"CREATE TABLE IF NOT EXISTS shops",
			"status text NOT NULL DEFAULT 'active'",
			"DROP TABLE IF EXISTS shops",
		},
		"shop_subscriptions": {
			"CREATE TABLE IF NOT EXISTS shop_subscriptions",
			"subscription_type text NOT NULL",
			"CHECK (amount > 0)",
			"FOREIGN KEY (shop_id) REFERENCES shops(id) ON DELETE CASCADE",
			"next_payment_date timestamptz",
			"DROP TABLE IF EXISTS shop_subscriptions",
		},
		"payment_transactions": {
			"CREATE TABLE IF NOT EXISTS payment_transactions",
			"FOREIGN KEY (subscription_id) REFERENCES shop_subscriptions(id) ON DELETE SET NULL",
			"CHECK (amount > 0)",
			"DROP TABLE IF EXISTS payment_transactions",
		},
		"payment_notifications": {
			"CREATE TABLE IF NOT EXISTS payment_notifications",
			"is_read boolean NOT NULL DEFAULT false",
			"DROP TABLE IF EXISTS payment_notifications",
		},
		"payment_settings": {
			"CREATE TABLE IF NOT EXISTS payment_settings",
			"additional_details jsonb",
			"DROP TABLE IF EXISTS payment_settings",
		},
	}

	for table, checks := range tables {
		matches, err := filepath.Glob(filepath.Join("migrations", "*_create_"+table+".sql"))
		if err != nil {
			t.Fatalf("glob migrations: %v", err)
		}
		if len(matches) == 0 {
			t.Fatalf("no migration file found for %s", table)
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read migration file: %v", err)
		}
		content := string(data)
		for _, check := range checks {
			if !strings.Contains(content, check) {
				t.Errorf("migration for %s missing %q", table, check)
			}
		}
	}
}
