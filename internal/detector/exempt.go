package detector

import (
	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/config"
)

// RoleExemption is the default exemption policy: members holding one of the
// guild's configured exempt roles, and bot accounts, are never auto-moderated.
type RoleExemption struct{}

func NewRoleExemption() *RoleExemption { return &RoleExemption{} }

func (RoleExemption) IsExempt(member *discordgo.Member, cfg *config.GuildModeration, _ string) bool {
	if member == nil {
		return false
	}
	if member.User != nil && member.User.Bot {
		return true
	}
	for _, roleID := range member.Roles {
		for _, exempt := range cfg.ExemptRoles {
			if roleID == exempt {
				return true
			}
		}
	}
	return false
}
