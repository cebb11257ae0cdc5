package database

import (
	"fmt"
	"time"
)

// Case is one durable audit-trail entry. CaseNumber is sequential per guild
// and is what staff reference in commands.
type Case struct {
	ID             int64
	GuildID        string
	CaseNumber     int64
	ActionType     string
	UserID         string
	ModeratorID    string
	Reason         string
	MessageContent string
	Timestamp      int64
}

// Warning is the durable mirror of one infraction. Escalation decisions never
// read this table; it exists for staff lookups and permanent record.
type Warning struct {
	ID         int64
	GuildID    string
	UserID     string
	Reason     string
	CaseNumber int64
	Timestamp  int64
}

// LogAction records a moderation case and returns its per-guild case number.
// The number is allocated as MAX+1 inside a transaction so concurrent writers
// cannot collide.
func (d *Database) LogAction(actionType, guildID, userID, moderatorID, reason, content string) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin case transaction: %w", err)
	}
	defer tx.Rollback()

	var caseNumber int64
	err = tx.QueryRow(`SELECT COALESCE(MAX(case_number), 0) + 1 FROM moderation_cases WHERE guild_id = ?`,
		guildID).Scan(&caseNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate case number: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO moderation_cases (guild_id, case_number, action_type, user_id, moderator_id, reason, message_content, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		guildID, caseNumber, actionType, userID, moderatorID, reason, content, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert case: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit case: %w", err)
	}
	return caseNumber, nil
}

// AddWarning appends to the permanent warning record.
func (d *Database) AddWarning(guildID, userID, reason string, caseNumber int64) error {
	_, err := d.db.Exec(`
		INSERT INTO user_warnings (guild_id, user_id, reason, case_number, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		guildID, userID, reason, caseNumber, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert warning: %w", err)
	}
	return nil
}

// UserCases returns a user's recent cases, newest first.
func (d *Database) UserCases(guildID, userID string, limit int) ([]Case, error) {
	rows, err := d.db.Query(`
		SELECT id, guild_id, case_number, action_type, user_id, moderator_id, reason, message_content, timestamp
		FROM moderation_cases
		WHERE guild_id = ? AND user_id = ?
		ORDER BY case_number DESC LIMIT ?`, guildID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer rows.Close()

	var cases []Case
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.GuildID, &c.CaseNumber, &c.ActionType, &c.UserID,
			&c.ModeratorID, &c.Reason, &c.MessageContent, &c.Timestamp); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// CaseCount reports total cases recorded for a guild.
func (d *Database) CaseCount(guildID string) (int64, error) {
	var n int64
	err := d.db.QueryRow(`SELECT COUNT(*) FROM moderation_cases WHERE guild_id = ?`, guildID).Scan(&n)
	return n, err
}
