package filters

import (
	"fmt"
	"regexp"

	"github.com/gilesshaxted/karma/internal/config"
)

var (
	customEmojiPattern = regexp.MustCompile(`<a?:\w+:\d+>`)
	// Broad unicode emoji coverage: symbols/pictographs, supplemental blocks,
	// dingbats, misc symbols, arrows-in-circles blocks, variation selector.
	unicodeEmojiPattern = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}]|[\x{2600}-\x{27BF}]|[\x{2B00}-\x{2BFF}]|\x{FE0F}`)
)

// EmojiFilter counts custom-emoji tokens plus unicode emoji runes and flags
// messages over the configured limit.
type EmojiFilter struct{}

func NewEmojiFilter() *EmojiFilter { return &EmojiFilter{} }

func (f *EmojiFilter) Name() string { return "emoji" }

func (f *EmojiFilter) Evaluate(m *Message, cfg *config.GuildModeration) *Infraction {
	if !cfg.FilterEmoji || cfg.EmojiLimit <= 0 {
		return nil
	}

	count := len(customEmojiPattern.FindAllString(m.Content, -1))
	// strip custom emoji first so their name/id text is not rescanned
	stripped := customEmojiPattern.ReplaceAllString(m.Content, "")
	count += len(unicodeEmojiPattern.FindAllString(stripped, -1))

	if count > cfg.EmojiLimit {
		return &Infraction{
			Filter: f.Name(),
			Reason: fmt.Sprintf("Excessive emoji: %d (limit %d).", count, cfg.EmojiLimit),
		}
	}
	return nil
}
