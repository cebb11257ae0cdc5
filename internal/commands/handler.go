package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/bot"
	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/database"
	"github.com/gilesshaxted/karma/internal/enforce"
	"github.com/gilesshaxted/karma/internal/escalate"
	"github.com/gilesshaxted/karma/internal/logging"
)

// Deps exposes runtime state to the status command.
type Deps struct {
	Queue     *enforce.JobQueue
	Workers   []*enforce.Worker
	Tracker   *escalate.Tracker
	StartTime time.Time
}

type Handler struct {
	session *bot.Session
	deps    Deps
}

var globalHandler *Handler

// Initialize registers the slash commands and the interaction router.
func Initialize(session *bot.Session, deps Deps) error {
	globalHandler = &Handler{session: session, deps: deps}

	session.AddHandler(globalHandler.handleInteraction)

	if err := session.RegisterCommands(GetAllCommands()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized")
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "automod":
		err = h.handleAutomod(s, i, data)
	case "karma":
		if len(data.Options) > 0 && data.Options[0].Name == "status" {
			err = h.handleStatus(s, i, data.Options[0])
		}
	}

	if err != nil {
		logging.Error("Command /%s failed: %v", data.Name, err)
	}
}

func (h *Handler) handleAutomod(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if !hasManageServer(i) {
		return respond(s, i, "You need the Manage Server permission to configure auto-moderation.")
	}
	if len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	switch sub.Name {
	case "enable":
		return h.setEnabled(s, i, true)
	case "disable":
		return h.setEnabled(s, i, false)
	case "tier":
		return h.setTier(s, i, sub)
	case "filter":
		return h.setFilter(s, i, sub)
	case "wordlist":
		return h.handleWordlist(s, i, sub)
	case "channel":
		return h.setChannel(s, i, sub)
	}
	return nil
}

func hasManageServer(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&discordgo.PermissionManageServer != 0
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// mutateConfig applies fn to a copy of the guild's profile and persists it,
// keeping the cache and the database in step. The cached pointer is read
// concurrently by the message handlers, so the mutation is copy-on-write:
// readers keep the old profile until the new pointer is swapped in.
func mutateConfig(guildID string, fn func(gm *config.GuildModeration)) error {
	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database unavailable")
	}

	store := config.GetProfileStore()
	gm := store.Get(guildID)
	if gm == nil {
		loaded, err := db.GetGuildConfig(guildID)
		if err != nil {
			return err
		}
		gm = loaded
	}
	if gm == nil {
		gm = config.DefaultGuildModeration(guildID)
	}

	updated := *gm
	updated.ExemptRoles = append([]string(nil), gm.ExemptRoles...)
	fn(&updated)

	if err := db.UpsertGuildConfig(&updated); err != nil {
		return err
	}
	store.Set(&updated)
	return nil
}
