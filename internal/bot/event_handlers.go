package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/config"
	"github.com/gilesshaxted/karma/internal/database"
	"github.com/gilesshaxted/karma/internal/detector"
	"github.com/gilesshaxted/karma/internal/enforce"
	"github.com/gilesshaxted/karma/internal/filters"
	"github.com/gilesshaxted/karma/internal/history"
	"github.com/gilesshaxted/karma/internal/logging"
	"github.com/gilesshaxted/karma/pkg/util"
)

// Pipeline bundles the components the event handlers feed.
type Pipeline struct {
	History  *history.Store
	Detector *detector.Detector
	Queue    *enforce.JobQueue
}

// SetupEventHandlers attaches the gateway handlers. Must run before Connect.
func (s *Session) SetupEventHandlers(p *Pipeline) {
	s.discord.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("Joined/loaded guild: %s (ID: %s)", g.Name, g.ID)

		if db := database.GetDB(); db != nil {
			if err := db.EnsureGuildConfigExists(g.ID); err != nil {
				logging.Warn("Failed to seed config for guild %s: %v", g.ID, err)
				return
			}
			if gm, err := db.GetGuildConfig(g.ID); err == nil && gm != nil {
				config.GetProfileStore().Set(gm)
			}
		}
	})

	s.discord.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildDelete) {
		config.GetProfileStore().Remove(g.ID)
	})

	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		s.handleMessage(m, p)
	})
}

func (s *Session) handleMessage(m *discordgo.MessageCreate, p *Pipeline) {
	if m.GuildID == "" || m.Author == nil {
		return
	}

	ts := m.Timestamp
	if ts.IsZero() {
		ts = util.SnowflakeTime(m.ID)
	}

	// Recorded before detection so the spam filter's window includes the
	// message under evaluation.
	p.History.Record(m.ChannelID, history.Entry{
		MessageID: m.ID,
		AuthorID:  m.Author.ID,
		Content:   m.Content,
		Timestamp: ts,
	})

	cfg := guildConfig(m.GuildID)
	if cfg == nil {
		return
	}

	msg := &filters.Message{
		ID:           m.ID,
		GuildID:      m.GuildID,
		ChannelID:    m.ChannelID,
		AuthorID:     m.Author.ID,
		Content:      m.Content,
		Timestamp:    ts,
		MentionUsers: len(m.Mentions),
		MentionRoles: len(m.MentionRoles),
		AuthorIsBot:  m.Author.Bot,
	}

	inf := p.Detector.Detect(msg, m.Member, cfg)
	if inf == nil {
		return
	}

	job := &enforce.Job{Message: *msg, Infraction: *inf, Config: cfg}
	if !p.Queue.Enqueue(job) {
		logging.Error("Enforcement queue full, dropping infraction for message %s", m.ID)
	}
}

// guildConfig reads the cached profile, falling back to the database once.
// Any failure means moderation is off for this message, never an error.
func guildConfig(guildID string) *config.GuildModeration {
	store := config.GetProfileStore()
	if gm := store.Get(guildID); gm != nil {
		return gm
	}

	db := database.GetDB()
	if db == nil {
		return nil
	}
	gm, err := db.GetGuildConfig(guildID)
	if err != nil || gm == nil {
		return nil
	}
	store.Set(gm)
	return gm
}
