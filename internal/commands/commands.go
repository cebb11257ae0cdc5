package commands

import "github.com/bwmarrin/discordgo"

// GetAllCommands returns the slash-command definitions.
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "automod",
			Description: "Configure auto-moderation for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "enable",
					Description: "Enable auto-moderation",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "disable",
					Description: "Disable auto-moderation",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "tier",
					Description: "Set the built-in word list severity tier",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "tier",
							Description: "Severity tier",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "none", Value: "none"},
								{Name: "low", Value: "low"},
								{Name: "medium", Value: "medium"},
								{Name: "high", Value: "high"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "filter",
					Description: "Toggle an individual filter",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Filter to toggle",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "repeated", Value: "repeated"},
								{Name: "spam", Value: "spam"},
								{Name: "links", Value: "links"},
								{Name: "invites", Value: "invites"},
								{Name: "emoji", Value: "emoji"},
								{Name: "mentions", Value: "mentions"},
								{Name: "caps", Value: "caps"},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Enable or disable the filter",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "threshold",
							Description: "Filter threshold (spam count, emoji/mention limit, caps percent)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "wordlist",
					Description: "Manage custom word lists",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "add",
							Description: "Add a word or phrase to a list",
							Options:     wordlistOptions(true),
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "remove",
							Description: "Remove a word or phrase from a list",
							Options:     wordlistOptions(true),
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "view",
							Description: "View a list",
							Options:     wordlistOptions(false),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Set the moderation log or staff alert channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "kind",
							Description: "Which channel binding to set",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "log", Value: "log"},
								{Name: "alert", Value: "alert"},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Target channel",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "karma",
			Description: "Bot status and statistics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show bot and system status",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Also show this member's active warning count",
							Required:    false,
						},
					},
				},
			},
		},
	}
}

func wordlistOptions(withWord bool) []*discordgo.ApplicationCommandOption {
	opts := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "list",
			Description: "Which list",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "blacklist", Value: "blacklist"},
				{Name: "whitelist", Value: "whitelist"},
			},
		},
	}
	if withWord {
		opts = append(opts, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "word",
			Description: "Word or phrase",
			Required:    true,
		})
	}
	return opts
}
