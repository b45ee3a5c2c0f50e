package sink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// ErrInvalidWebhookURL is returned for URLs without a webhook id and token
var ErrInvalidWebhookURL = errors.New(ErrMsgInvalidWebhookURL)

// WebhookExecutor is the part of *discordgo.Session the sink needs
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts final snapshots to a channel webhook
type Discord struct {
	exec  WebhookExecutor
	id    string
	token string
}

// NewDiscord creates a sink for a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}
func NewDiscord(webhookURL string) (*Discord, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	return NewDiscordWithExecutor(session, id, token), nil
}

// NewDiscordWithExecutor creates a sink on an existing executor
func NewDiscordWithExecutor(exec WebhookExecutor, id, token string) *Discord {
	return &Discord{exec: exec, id: id, token: token}
}

// ParseWebhookURL extracts the webhook id and token
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidWebhookURL, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == WebhookPathPart && i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrInvalidWebhookURL, raw)
}

func (d *Discord) Name() string { return NameDiscord }

// Accept posts final snapshots and skips the rest
func (d *Discord) Accept(_ context.Context, snap domain.RewardSnapshot) error {
	if !snap.Final {
		return ErrSkipped
	}
	if _, err := d.exec.WebhookExecute(d.id, d.token, false, discordMessage(snap)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDiscordSendFailed, err)
	}
	return nil
}

func discordMessage(snap domain.RewardSnapshot) *discordgo.WebhookParams {
	fields := make([]*discordgo.MessageEmbedField, 0, len(snap.RelicRewards))
	for i, r := range snap.RelicRewards {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Slot %d", i+1),
			Value:  nameLabel(r) + " " + priceLabel(r),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Relic rewards",
		Color:     DiscordColorFinal,
		Fields:    fields,
		Timestamp: snap.CapturedAt.Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: snap.SessionID},
	}
	if best := snap.Best(); best != nil {
		embed.Description = fmt.Sprintf("Best pick: **%s** (%s)", best.Item.Name, priceLabel(best))
	}
	return &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}
}
