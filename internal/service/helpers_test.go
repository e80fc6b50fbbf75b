package service_test

import (
	"database/sql"
	"fmt"
	"testing"
)

// failOnYear installs a trigger that aborts any insert for year, simulating a
// storage failure part way through a multi-record write.
func failOnYear(t *testing.T, db *sql.DB, year int) {
	t.Helper()

	stmt := fmt.Sprintf(`
		CREATE TRIGGER fail_on_year BEFORE INSERT ON prices
		WHEN NEW.year = %d
		BEGIN
			SELECT RAISE(ABORT, 'simulated storage failure');
		END
	`, year)
	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("Failed to install failure trigger: %v", err)
	}
}
