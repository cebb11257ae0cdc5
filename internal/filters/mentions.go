package filters

import (
	"fmt"

	"github.com/gilesshaxted/karma/internal/config"
)

// MentionFilter flags messages whose user-mention or role-mention count
// exceeds the configured limit. Either count trips it independently.
type MentionFilter struct{}

func NewMentionFilter() *MentionFilter { return &MentionFilter{} }

func (f *MentionFilter) Name() string { return "mentions" }

func (f *MentionFilter) Evaluate(m *Message, cfg *config.GuildModeration) *Infraction {
	if !cfg.FilterMentions || cfg.MentionLimit <= 0 {
		return nil
	}

	if m.MentionUsers > cfg.MentionLimit || m.MentionRoles > cfg.MentionLimit {
		return &Infraction{
			Filter: f.Name(),
			Reason: fmt.Sprintf("Excessive mentions (limit %d).", cfg.MentionLimit),
		}
	}
	return nil
}
