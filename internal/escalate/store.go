// Package escalate maintains sliding-window infraction and timeout counts per
// user and drives the warning → timeout → extended-suspension escalation.
package escalate

import (
	"context"
	"time"
)

const (
	EventWarning = "warn"
	EventTimeout = "timeout"
)

// Store keeps time-ordered event timestamps per guild/user. Entries older than
// the window are pruned lazily on every write; Add returns the count remaining
// inside the window after the append.
//
// The in-memory implementation is the default and resets on restart, which is
// acceptable: this state throttles abuse, the durable audit log is the record.
// The redis implementation survives restarts.
type Store interface {
	Add(ctx context.Context, event, guildID, userID string, at time.Time, window time.Duration) (int, error)
	Reset(ctx context.Context, event, guildID, userID string) error
	Count(ctx context.Context, event, guildID, userID string, at time.Time, window time.Duration) (int, error)
}

func storeKey(event, guildID, userID string) string {
	return "automod/" + event + "/" + guildID + "/" + userID
}
