// Package detector orchestrates the filter bank: exemption gate first, then
// the filters in their fixed order, first match wins.
package detector

import (
	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/filters"
	"github.com/gilesshaxted/karma/internal/metrics"
)

// ExemptionPolicy decides whether a member is immune to automated moderation.
type ExemptionPolicy interface {
	IsExempt(member *discordgo.Member, cfg *config.GuildModeration, channelID string) bool
}

type Detector struct {
	bank   *filters.Bank
	exempt ExemptionPolicy
}

func New(hist filters.HistorySource, exempt ExemptionPolicy) *Detector {
	return &Detector{
		bank:   filters.NewBank(hist),
		exempt: exempt,
	}
}

// Detect returns at most one infraction for the message, or nil. Bots and
// exempt members skip detection entirely. A nil or disabled config means the
// feature is off for the guild, not an error.
func (d *Detector) Detect(m *filters.Message, member *discordgo.Member, cfg *config.GuildModeration) *filters.Infraction {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	if m.AuthorIsBot {
		return nil
	}
	if d.exempt != nil && d.exempt.IsExempt(member, cfg, m.ChannelID) {
		return nil
	}

	metrics.MessagesScanned.Inc()

	inf := d.bank.Evaluate(m, cfg)
	if inf != nil {
		metrics.InfractionsDetected.WithLabelValues(inf.Filter).Inc()
	}
	return inf
}
