package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

var globalDB *Database

// Initialize opens the SQLite database and creates the schema.
func Initialize(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	globalDB = &Database{db: db}

	if err := globalDB.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// GetDB returns the global database instance, nil if unavailable.
func GetDB() *Database {
	return globalDB
}

func IsConnected() bool {
	if globalDB == nil || globalDB.db == nil {
		return false
	}
	return globalDB.db.Ping() == nil
}

func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_config (
		guild_id TEXT PRIMARY KEY,
		enabled INTEGER DEFAULT 1,
		moderation_tier TEXT DEFAULT 'none',
		blacklisted_words TEXT DEFAULT '',
		whitelisted_words TEXT DEFAULT '',
		filter_repeated INTEGER DEFAULT 0,
		filter_spam INTEGER DEFAULT 0,
		spam_count INTEGER DEFAULT 5,
		spam_timeframe INTEGER DEFAULT 10,
		filter_links INTEGER DEFAULT 0,
		filter_invites INTEGER DEFAULT 1,
		filter_emoji INTEGER DEFAULT 0,
		emoji_limit INTEGER DEFAULT 8,
		filter_mentions INTEGER DEFAULT 0,
		mention_limit INTEGER DEFAULT 6,
		filter_caps INTEGER DEFAULT 0,
		caps_percent INTEGER DEFAULT 70,
		exempt_roles TEXT DEFAULT '',
		log_channel_id TEXT DEFAULT '',
		alert_channel_id TEXT DEFAULT '',
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS moderation_cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		case_number INTEGER NOT NULL,
		action_type TEXT NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		message_content TEXT DEFAULT '',
		timestamp INTEGER NOT NULL,
		UNIQUE(guild_id, case_number)
	);

	CREATE TABLE IF NOT EXISTS user_warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		case_number INTEGER DEFAULT 0,
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cases_guild ON moderation_cases(guild_id);
	CREATE INDEX IF NOT EXISTS idx_cases_user ON moderation_cases(guild_id, user_id);
	CREATE INDEX IF NOT EXISTS idx_warnings_user ON user_warnings(guild_id, user_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
