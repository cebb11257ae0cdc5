package filters

import (
	"fmt"
	"unicode"

	"github.com/gilesshaxted/karma/internal/config"
)

// capsMinLength is the floor below which the caps filter never fires: short
// messages in all caps are shouting, not abuse.
const capsMinLength = 20

// CapsFilter computes the uppercase-letter percentage of a message's non-space
// characters and flags it over the configured percentage. Only evaluated for
// messages longer than capsMinLength once whitespace is stripped.
type CapsFilter struct{}

func NewCapsFilter() *CapsFilter { return &CapsFilter{} }

func (f *CapsFilter) Name() string { return "caps" }

func (f *CapsFilter) Evaluate(m *Message, cfg *config.GuildModeration) *Infraction {
	if !cfg.FilterCaps || cfg.CapsPercent <= 0 {
		return nil
	}

	total := 0
	upper := 0
	for _, r := range m.Content {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsUpper(r) {
			upper++
		}
	}

	if total <= capsMinLength {
		return nil
	}

	percent := upper * 100 / total
	if percent > cfg.CapsPercent {
		return &Infraction{
			Filter: f.Name(),
			Reason: fmt.Sprintf("Excessive caps: %d%% (limit %d%%).", percent, cfg.CapsPercent),
		}
	}
	return nil
}
