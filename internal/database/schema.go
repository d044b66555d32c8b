package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the tables used by the repositories.  users.email uses a
// binary collation so the unique index compares addresses exactly as stored.
// bookings.details is LONGTEXT so the request body reads back byte for byte;
// a JSON column would reorder keys and drop whitespace.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		first_name    VARCHAR(100) NOT NULL,
		last_name     VARCHAR(100) NOT NULL,
		email         VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		seq          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		id           CHAR(36) NOT NULL,
		user_id      BIGINT UNSIGNED NOT NULL,
		booking_type VARCHAR(16) NOT NULL,
		details      LONGTEXT NOT NULL,
		item         JSON NOT NULL,
		total_amount BIGINT NOT NULL,
		status       VARCHAR(16) NOT NULL,
		created_at   DATETIME(3) NOT NULL,
		UNIQUE KEY uq_bookings_id (id),
		KEY ix_bookings_user (user_id, seq),
		CONSTRAINT fk_bookings_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema.  Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
