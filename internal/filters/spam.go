package filters

import (
	"fmt"
	"time"

	"github.com/gilesshaxted/karma/internal/config"
)

// SpamFilter counts how many of the channel's last N messages (N = configured
// spam count) were sent by this author within the configured timeframe of the
// current message. The count includes the message under evaluation, so a burst
// of exactly N messages trips the filter on the Nth.
type SpamFilter struct {
	hist HistorySource
}

func NewSpamFilter(hist HistorySource) *SpamFilter {
	return &SpamFilter{hist: hist}
}

func (f *SpamFilter) Name() string { return "spam" }

func (f *SpamFilter) Evaluate(m *Message, cfg *config.GuildModeration) *Infraction {
	if !cfg.FilterSpam || cfg.SpamCount <= 0 {
		return nil
	}

	timeframe := time.Duration(cfg.SpamTimeframe) * time.Second
	count := 0

	for _, entry := range f.hist.Recent(m.ChannelID, cfg.SpamCount) {
		if entry.AuthorID != m.AuthorID {
			continue
		}
		if m.Timestamp.Sub(entry.Timestamp) > timeframe {
			continue
		}
		count++
	}

	if count >= cfg.SpamCount {
		return &Infraction{
			Filter: f.Name(),
			Reason: fmt.Sprintf("Spam detected: %d messages in %d seconds.", count, cfg.SpamTimeframe),
		}
	}
	return nil
}
