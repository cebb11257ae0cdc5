// Package filters implements the auto-moderation filter bank: independent,
// stateless predicates evaluated against one message plus guild config.
// Evaluation order is policy: word matches are the most severe, volume and
// formatting issues the least. The first match wins and a message produces at
// most one infraction.
package filters

import (
	"time"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/history"
	"github.com/gilesshaxted/karma/internal/wordlist"
)

// Message is the filter-visible projection of a chat message.
type Message struct {
	ID        string
	GuildID   string
	ChannelID string
	AuthorID  string
	Content   string
	Timestamp time.Time

	MentionUsers int
	MentionRoles int
	AuthorIsBot  bool
}

// Infraction is one detected rule violation. Infractions carry no severity
// weight; every infraction counts the same toward escalation.
type Infraction struct {
	Filter string
	Reason string
}

// Filter is a pure predicate over message + config. A nil return abstains.
type Filter interface {
	Name() string
	Evaluate(m *Message, cfg *config.GuildModeration) *Infraction
}

// HistorySource supplies recent channel messages, most-recent-first. The
// current message is expected to already be recorded when filters run.
type HistorySource interface {
	Recent(channelID string, limit int) []history.Entry
}

// Bank runs the filters in their fixed order. The word-list resolver is
// consulted first because a whitelist match must suppress every filter, not
// just the word filter.
type Bank struct {
	resolver *wordlist.Resolver
	filters  []Filter
}

func NewBank(hist HistorySource) *Bank {
	return &Bank{
		resolver: wordlist.NewResolver(),
		filters: []Filter{
			NewRepeatedTextFilter(hist),
			NewSpamFilter(hist),
			NewLinkFilter(),
			NewInviteFilter(),
			NewEmojiFilter(),
			NewMentionFilter(),
			NewCapsFilter(),
		},
	}
}

// Evaluate returns the first infraction in filter order, or nil.
func (b *Bank) Evaluate(m *Message, cfg *config.GuildModeration) *Infraction {
	decision, reason := b.resolver.Resolve(m.Content, cfg)
	switch decision {
	case wordlist.DecisionWhitelisted:
		return nil
	case wordlist.DecisionBlacklisted, wordlist.DecisionTierFlagged:
		return &Infraction{Filter: "word", Reason: reason}
	}

	for _, f := range b.filters {
		if inf := f.Evaluate(m, cfg); inf != nil {
			return inf
		}
	}
	return nil
}

// Names returns the evaluation order, word filter first.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.filters)+1)
	names = append(names, "word")
	for _, f := range b.filters {
		names = append(names, f.Name())
	}
	return names
}
