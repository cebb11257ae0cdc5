package enforce

import (
	"context"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/escalate"
	"github.com/gilesshaxted/karma/internal/forensics"
	"github.com/gilesshaxted/karma/internal/logging"
	"github.com/gilesshaxted/karma/internal/metrics"
)

// MessageDeleter deletes the offending message.
type MessageDeleter interface {
	DeleteMessage(channelID, messageID, reason string) error
}

// AuditStore records the durable case and warning mirror. LogAction returns
// the per-guild case number; zero means the write failed and case references
// are omitted downstream.
type AuditStore interface {
	LogAction(actionType, guildID, userID, moderatorID, reason, content string) (int64, error)
	AddWarning(guildID, userID, reason string, caseNumber int64) error
}

// UserNotifier posts the in-channel notice and the mod-log embed.
type UserNotifier interface {
	NotifyInfraction(channelID, userID, reason string, caseNumber int64)
	SendModLog(channelID, actionType, userID, reason, content string, caseNumber int64)
}

// Escalator is the escalation tracker.
type Escalator interface {
	RecordInfraction(ctx context.Context, cfg *config.GuildModeration, userID string) escalate.Outcome
}

// Pipeline runs the enforcement steps for one infraction in order, tolerating
// individual step failures: delete, audit case, notices, escalation. What it
// guarantees is that the attempt happened, not that every sub-step succeeded.
type Pipeline struct {
	deleter  MessageDeleter
	audit    AuditStore
	notify   UserNotifier
	escalate Escalator
	trail    *forensics.Trail
	botID    string
}

func NewPipeline(deleter MessageDeleter, audit AuditStore, notify UserNotifier, esc Escalator, trail *forensics.Trail, botID string) *Pipeline {
	return &Pipeline{
		deleter:  deleter,
		audit:    audit,
		notify:   notify,
		escalate: esc,
		trail:    trail,
		botID:    botID,
	}
}

func (p *Pipeline) Handle(ctx context.Context, job *Job) {
	m := &job.Message
	inf := &job.Infraction
	cfg := job.Config
	steps := make(map[string]string, 4)

	if err := p.deleter.DeleteMessage(m.ChannelID, m.ID, inf.Reason); err != nil {
		logging.Warn("Message delete failed for %s in channel %s: %v", m.ID, m.ChannelID, err)
		metrics.EnforcementFailures.WithLabelValues("delete").Inc()
		steps["delete"] = err.Error()
	} else {
		steps["delete"] = "ok"
	}

	caseNumber := int64(0)
	if p.audit != nil {
		var err error
		caseNumber, err = p.audit.LogAction("Automoderation", m.GuildID, m.AuthorID, p.botID, inf.Reason, m.Content)
		if err != nil {
			logging.Warn("Case log failed for user %s in guild %s: %v", m.AuthorID, m.GuildID, err)
			metrics.EnforcementFailures.WithLabelValues("case").Inc()
			caseNumber = 0
			steps["case"] = err.Error()
		} else {
			steps["case"] = "ok"
		}

		if err := p.audit.AddWarning(m.GuildID, m.AuthorID, inf.Reason, caseNumber); err != nil {
			logging.Warn("Warning mirror failed for user %s in guild %s: %v", m.AuthorID, m.GuildID, err)
			metrics.EnforcementFailures.WithLabelValues("warning").Inc()
		}
	}

	p.notify.NotifyInfraction(m.ChannelID, m.AuthorID, inf.Reason, caseNumber)
	if cfg.LogChannelID != "" {
		p.notify.SendModLog(cfg.LogChannelID, "Automoderation", m.AuthorID, inf.Reason, m.Content, caseNumber)
	}

	outcome := p.escalate.RecordInfraction(ctx, cfg, m.AuthorID)

	if p.trail != nil {
		entry := &forensics.Entry{
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			UserID:    m.AuthorID,
			Filter:    inf.Filter,
			Reason:    inf.Reason,
			Steps:     steps,
			Escalation: map[string]any{
				"warning_count":  outcome.WarningCount,
				"timed_out":      outcome.TimeoutTriggered,
				"timeout_count":  outcome.TimeoutCount,
				"suspended":      outcome.SuspendTriggered,
				"staff_alerted":  outcome.Alerted,
				"timeout_error":  errString(outcome.TimeoutErr),
				"suspend_error":  errString(outcome.SuspendErr),
			},
		}
		if err := p.trail.Record(entry); err != nil {
			logging.Warn("Forensic trail write failed: %v", err)
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
