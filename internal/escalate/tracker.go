package escalate

import (
	"context"
	"time"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/logging"
	"github.com/gilesshaxted/karma/internal/metrics"
)

// TimeoutApplier performs the platform timeout call.
type TimeoutApplier interface {
	ApplyTimeout(guildID, userID string, d time.Duration, reason string) error
}

// Alert is the structured staff notification emitted on tier-3 escalation.
type Alert struct {
	Title  string
	UserID string
	Reason string
	Action string
}

type Alerter interface {
	StaffAlert(guildID, channelID string, a Alert)
}

// Outcome reports what one infraction did to a user's escalation state.
// TimeoutErr/SuspendErr surface platform failures without rolling anything
// back; callers log them and move on.
type Outcome struct {
	WarningCount int

	TimeoutTriggered bool
	TimeoutErr       error
	TimeoutCount     int

	SuspendTriggered bool
	SuspendErr       error
	Alerted          bool
}

// Tracker is the escalation state machine. States are derived from windowed
// counts, never stored: clean → warned(1..2) → timeout at 3 warnings inside
// one hour (warnings reset) → suspension + staff alert at 5 timeouts inside
// 30 days.
type Tracker struct {
	store    Store
	policy   config.EscalationPolicy
	timeouts TimeoutApplier
	alerts   Alerter

	now func() time.Time
}

func NewTracker(store Store, policy config.EscalationPolicy, timeouts TimeoutApplier, alerts Alerter) *Tracker {
	return &Tracker{
		store:    store,
		policy:   policy,
		timeouts: timeouts,
		alerts:   alerts,
		now:      time.Now,
	}
}

// RecordInfraction appends a warning for the user and runs the escalation
// transitions. The warning window reset is deliberate policy: three strikes
// convert to one timeout and the count starts over at zero, not two.
func (t *Tracker) RecordInfraction(ctx context.Context, cfg *config.GuildModeration, userID string) Outcome {
	now := t.now()
	out := Outcome{}

	count, err := t.store.Add(ctx, EventWarning, cfg.GuildID, userID, now, t.policy.WarningWindow.Std())
	if err != nil {
		logging.Error("Warning window update failed for user %s in guild %s: %v", userID, cfg.GuildID, err)
		return out
	}
	out.WarningCount = count

	if count < t.policy.WarningThreshold {
		return out
	}

	out.TimeoutTriggered = true
	out.TimeoutErr = t.timeouts.ApplyTimeout(cfg.GuildID, userID, t.policy.TimeoutDuration.Std(),
		"Automoderation: warning threshold reached")

	if out.TimeoutErr != nil {
		logging.Warn("Timeout failed for user %s in guild %s: %v", userID, cfg.GuildID, out.TimeoutErr)
	} else {
		metrics.TimeoutsApplied.Inc()
	}

	if out.TimeoutErr == nil || t.policy.ResetOnTimeoutFailure {
		if err := t.store.Reset(ctx, EventWarning, cfg.GuildID, userID); err != nil {
			logging.Error("Warning reset failed for user %s in guild %s: %v", userID, cfg.GuildID, err)
		}
		out.WarningCount = 0
	}

	t.recordTimeout(ctx, cfg, userID, now, &out)
	return out
}

// recordTimeout is the tier-2 → tier-3 transition. The timeout event is
// counted even when the platform call failed, matching the warning-reset
// behavior: the state machine advances on its own decisions, not on Discord's
// cooperation.
func (t *Tracker) recordTimeout(ctx context.Context, cfg *config.GuildModeration, userID string, now time.Time, out *Outcome) {
	count, err := t.store.Add(ctx, EventTimeout, cfg.GuildID, userID, now, t.policy.TimeoutWindow.Std())
	if err != nil {
		logging.Error("Timeout window update failed for user %s in guild %s: %v", userID, cfg.GuildID, err)
		return
	}
	out.TimeoutCount = count

	if count < t.policy.TimeoutThreshold {
		return
	}

	out.SuspendTriggered = true
	out.SuspendErr = t.timeouts.ApplyTimeout(cfg.GuildID, userID, t.policy.SuspendDuration.Std(),
		"Automoderation: repeated violations")

	if out.SuspendErr != nil {
		logging.Warn("Suspension failed for user %s in guild %s: %v", userID, cfg.GuildID, out.SuspendErr)
	} else {
		metrics.SuspensionsApplied.Inc()
	}

	if cfg.AlertChannelID != "" && t.alerts != nil {
		t.alerts.StaffAlert(cfg.GuildID, cfg.AlertChannelID, Alert{
			Title:  "Escalation: extended suspension",
			UserID: userID,
			Reason: "Repeated violations",
			Action: "7-day timeout",
		})
		out.Alerted = true
	}
}

// WarningCount reports the user's current windowed warning count without
// mutating state. Used by the status command.
func (t *Tracker) WarningCount(ctx context.Context, guildID, userID string) int {
	n, err := t.store.Count(ctx, EventWarning, guildID, userID, t.now(), t.policy.WarningWindow.Std())
	if err != nil {
		return 0
	}
	return n
}
