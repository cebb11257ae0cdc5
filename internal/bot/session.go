package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/database"
	"github.com/gilesshaxted/karma/internal/logging"
)

type Session struct {
	discord *discordgo.Session
	BotID   string
}

var globalSession *Session

// Initialize creates the Discord session. Connect must be called separately
// so event handlers can be attached first.
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	globalSession = &Session{discord: dg}
	return nil
}

func GetSession() *Session {
	return globalSession
}

func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		s.BotID = s.discord.State.User.ID
		logging.Info("Bot ID: %s", s.BotID)
	}

	logging.Info("Discord bot connected")
	return nil
}

func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// RegisterCommands registers the slash commands globally.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	for _, cmd := range commands {
		_, err := s.discord.ApplicationCommandCreate(s.discord.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}
	return nil
}

func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}

// SyncGuildsFromDatabase loads stored moderation profiles into the in-memory
// cache and seeds defaults for guilds the bot is in but has no row for.
func (s *Session) SyncGuildsFromDatabase(db *database.Database) error {
	if err := db.SyncAllGuildsToCache(); err != nil {
		logging.Warn("Failed to sync guild configs: %v", err)
	}

	for _, guild := range s.discord.State.Guilds {
		if err := db.EnsureGuildConfigExists(guild.ID); err != nil {
			logging.Warn("Failed to ensure config for guild %s: %v", guild.ID, err)
		}
	}
	return nil
}
