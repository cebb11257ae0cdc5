package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/gilesshaxted/karma/internal/escalate"
	"github.com/gilesshaxted/karma/internal/logging"
)

var discordSession *discordgo.Session

// SetSession sets the Discord session used for all notifications.
func SetSession(session *discordgo.Session) {
	discordSession = session
}

// NotifyInfraction posts the in-channel notice addressed to the offending
// user. Case number 0 means the audit write failed and the reference is
// omitted.
func NotifyInfraction(channelID, userID, reason string, caseNumber int64) {
	if discordSession == nil || channelID == "" {
		return
	}

	content := fmt.Sprintf("<@%s> %s", userID, reason)
	if caseNumber > 0 {
		content = fmt.Sprintf("%s (case #%d)", content, caseNumber)
	}

	if _, err := discordSession.ChannelMessageSend(channelID, content); err != nil {
		logging.Warn("Failed to send infraction notice in channel %s: %v", channelID, err)
	}
}

// SendModLog posts the moderation-log embed for one case.
func SendModLog(channelID, actionType, userID, reason, content string, caseNumber int64) {
	if discordSession == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s | Case #%d", actionType, caseNumber),
		Color: 0xED4245,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "User",
				Value:  fmt.Sprintf("<@%s> (`%s`)", userID, userID),
				Inline: true,
			},
			{
				Name:   "Reason",
				Value:  reason,
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if content != "" {
		if len(content) > 1024 {
			content = content[:1021] + "..."
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Message",
			Value: content,
		})
	}

	if _, err := discordSession.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logging.Warn("Failed to send mod log to channel %s: %v", channelID, err)
	}
}

// StaffAlerter adapts the session to the escalation tracker's Alerter.
type StaffAlerter struct{}

func NewStaffAlerter() *StaffAlerter { return &StaffAlerter{} }

// StaffAlert posts the tier-3 escalation embed to the configured alert channel.
func (StaffAlerter) StaffAlert(guildID, channelID string, a escalate.Alert) {
	if discordSession == nil || channelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: a.Title,
		Color: 0xFEE75C,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "User",
				Value:  fmt.Sprintf("<@%s> (`%s`)", a.UserID, a.UserID),
				Inline: true,
			},
			{
				Name:   "Reason",
				Value:  a.Reason,
				Inline: true,
			},
			{
				Name:   "Action",
				Value:  a.Action,
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := discordSession.ChannelMessageSendEmbed(channelID, embed); err != nil {
		logging.Warn("Failed to send staff alert to channel %s in guild %s: %v", channelID, guildID, err)
	}
}
