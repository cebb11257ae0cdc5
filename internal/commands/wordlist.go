package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/wordlist"
)

func (h *Handler) handleWordlist(s *discordgo.Session, i *discordgo.InteractionCreate, group *discordgo.ApplicationCommandInteractionDataOption) error {
	if len(group.Options) == 0 {
		return nil
	}
	sub := group.Options[0]
	list := optionString(sub, "list")

	switch sub.Name {
	case "add":
		return h.wordlistAdd(s, i, list, optionString(sub, "word"))
	case "remove":
		return h.wordlistRemove(s, i, list, optionString(sub, "word"))
	case "view":
		return h.wordlistView(s, i, list)
	}
	return nil
}

func (h *Handler) wordlistAdd(s *discordgo.Session, i *discordgo.InteractionCreate, list, word string) error {
	word = strings.TrimSpace(word)
	if word == "" || strings.Contains(word, ",") {
		return respond(s, i, "Words must be non-empty and may not contain commas.")
	}

	err := mutateConfig(i.GuildID, func(gm *config.GuildModeration) {
		raw := listField(gm, list)
		entries := wordlist.SplitList(*raw)
		normalized := wordlist.Normalize(word)
		for _, e := range entries {
			if e == normalized {
				return
			}
		}
		if *raw == "" {
			*raw = word
		} else {
			*raw += "," + word
		}
	})
	if err != nil {
		return respond(s, i, "Failed to update word list.")
	}
	return respond(s, i, fmt.Sprintf("Added to the %s.", list))
}

func (h *Handler) wordlistRemove(s *discordgo.Session, i *discordgo.InteractionCreate, list, word string) error {
	normalized := wordlist.Normalize(strings.TrimSpace(word))
	removed := false

	err := mutateConfig(i.GuildID, func(gm *config.GuildModeration) {
		raw := listField(gm, list)
		parts := strings.Split(*raw, ",")
		kept := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed == "" {
				continue
			}
			if wordlist.Normalize(trimmed) == normalized {
				removed = true
				continue
			}
			kept = append(kept, trimmed)
		}
		*raw = strings.Join(kept, ",")
	})
	if err != nil {
		return respond(s, i, "Failed to update word list.")
	}
	if !removed {
		return respond(s, i, fmt.Sprintf("That entry is not on the %s.", list))
	}
	return respond(s, i, fmt.Sprintf("Removed from the %s.", list))
}

func (h *Handler) wordlistView(s *discordgo.Session, i *discordgo.InteractionCreate, list string) error {
	gm := config.GetProfileStore().Get(i.GuildID)
	if gm == nil {
		return respond(s, i, "No configuration for this server yet.")
	}

	raw := *listField(gm, list)
	entries := wordlist.SplitList(raw)
	if len(entries) == 0 {
		return respond(s, i, fmt.Sprintf("The %s is empty.", list))
	}

	display := strings.Join(entries, ", ")
	if len(display) > 1800 {
		display = display[:1800] + "..."
	}
	return respond(s, i, fmt.Sprintf("**%s** (%d entries): %s", list, len(entries), display))
}

func listField(gm *config.GuildModeration, list string) *string {
	if list == "whitelist" {
		return &gm.WhitelistedWords
	}
	return &gm.BlacklistedWords
}
