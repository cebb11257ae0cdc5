package commands

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/gilesshaxted/karma/internal/config"
)

// handleStatus shows bot, pipeline, and system statistics, plus one member's
// active warning count when a user option is supplied.
func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	embed := h.buildStatusEmbed(s)

	if userID := optionUserID(sub, "user"); userID != "" {
		if field := h.warningField(i.GuildID, userID); field != nil {
			embed.Fields = append(embed.Fields, field)
		}
	}
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func (h *Handler) buildStatusEmbed(s *discordgo.Session) *discordgo.MessageEmbed {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	workersAlive := 0
	for _, w := range h.deps.Workers {
		if w.IsRunning() {
			workersAlive++
		}
	}

	pipelineValue := fmt.Sprintf("Queue depth: %d\nWorkers: %d/%d alive",
		h.deps.Queue.Size(), workersAlive, len(h.deps.Workers))

	botValue := fmt.Sprintf("Uptime: %s\nGuilds: %d\nProfiles cached: %d",
		time.Since(h.deps.StartTime).Round(time.Second),
		len(s.State.Guilds),
		config.GetProfileStore().Count())

	runtimeValue := fmt.Sprintf("Go %s\nGoroutines: %d\nHeap: %d MB",
		runtime.Version(), runtime.NumGoroutine(), ms.Alloc/1024/1024)

	embed := &discordgo.MessageEmbed{
		Title: "karma status",
		Color: 0x57F287,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Bot", Value: botValue, Inline: true},
			{Name: "Pipeline", Value: pipelineValue, Inline: true},
			{Name: "Runtime", Value: runtimeValue, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if sysValue := systemField(); sysValue != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "System", Value: sysValue,
		})
	}
	return embed
}

// warningField reports a member's windowed warning count from the escalation
// tracker. Nil tracker (stripped-down deployments) yields no field.
func (h *Handler) warningField(guildID, userID string) *discordgo.MessageEmbedField {
	if h.deps.Tracker == nil {
		return nil
	}
	n := h.deps.Tracker.WarningCount(context.Background(), guildID, userID)
	return &discordgo.MessageEmbedField{
		Name:  "Member",
		Value: fmt.Sprintf("<@%s>: %d active warning(s)", userID, n),
	}
}

func optionUserID(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.Value.(string)
		}
	}
	return ""
}

func systemField() string {
	parts := ""

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		parts += fmt.Sprintf("CPU: %.1f%%\n", percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		parts += fmt.Sprintf("Memory: %.1f%% of %d MB\n", vm.UsedPercent, vm.Total/1024/1024)
	}
	if info, err := host.Info(); err == nil {
		parts += fmt.Sprintf("Host: %s (%s), up %s", info.Hostname, info.Platform,
			(time.Duration(info.Uptime) * time.Second).Round(time.Minute))
	}
	if parts == "" {
		hostname, _ := os.Hostname()
		parts = "Host: " + hostname
	}
	return parts
}
