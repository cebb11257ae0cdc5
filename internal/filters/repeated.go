package filters

import (
	"strings"

	"github.com/gilesshaxted/karma/internal/config"
)

// RepeatedTextFilter flags a message whose trimmed content exactly matches the
// author's immediately preceding message in the same channel. Case-sensitive.
type RepeatedTextFilter struct {
	hist HistorySource
}

func NewRepeatedTextFilter(hist HistorySource) *RepeatedTextFilter {
	return &RepeatedTextFilter{hist: hist}
}

func (f *RepeatedTextFilter) Name() string { return "repeated" }

func (f *RepeatedTextFilter) Evaluate(m *Message, cfg *config.GuildModeration) *Infraction {
	if !cfg.FilterRepeated {
		return nil
	}

	current := strings.TrimSpace(m.Content)
	if current == "" {
		return nil
	}

	// recent[0] is the message under evaluation; walk past it to the
	// author's previous message in this channel.
	for _, entry := range f.hist.Recent(m.ChannelID, repeatedLookback) {
		if entry.MessageID == m.ID {
			continue
		}
		if entry.AuthorID != m.AuthorID {
			continue
		}
		if strings.TrimSpace(entry.Content) == current {
			return &Infraction{Filter: f.Name(), Reason: "Repeated text detected."}
		}
		return nil
	}
	return nil
}

const repeatedLookback = 32
