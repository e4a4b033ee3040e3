package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/spacesedan/rekognition-bot/internal/clients"
	"github.com/spacesedan/rekognition-bot/internal/models"
)

const (
	CommandName        = "photos"
	CommandDescription = "Analyze a photo or optionally compare faces in two photos."
	OptionFirstPhoto   = "first_photo"
	OptionSecondPhoto  = "second_photo"
)

// PhotosCommand is the /photos slash command definition.
func PhotosCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandName,
		Description: CommandDescription,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        OptionFirstPhoto,
				Description: "Photo to analyze, or the source face when comparing.",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        OptionSecondPhoto,
				Description: "Optional second photo to compare faces against.",
				Required:    false,
			},
		},
	}
}

// Session is the subset of *discordgo.Session the bot uses.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	UpdateWatchStatus(idle int, name string) error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot connects the orchestrator to a Discord session.
type Bot struct {
	session      Session
	orchestrator *Orchestrator
	guildID      string
	timeout      time.Duration
	commands     []*discordgo.ApplicationCommand
	ctx          context.Context
}

func New(session Session, orchestrator *Orchestrator, guildID string, timeout time.Duration) *Bot {
	return &Bot{
		session:      session,
		orchestrator: orchestrator,
		guildID:      guildID,
		timeout:      timeout,
		commands:     []*discordgo.ApplicationCommand{PhotosCommand()},
		ctx:          context.Background(),
	}
}

// Open registers handlers and connects. In-flight invocations are abandoned
// once ctx is done.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx = ctx
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("[Bot] failed to open Discord session: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	slog.Info("[Bot] Closing Discord session")
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.syncCommands(r.User.ID)

	if err := b.session.UpdateWatchStatus(0, clients.DISCORD_WATCH_STATUS); err != nil {
		slog.Warn("[Bot] Failed to update presence", slog.String("error", err.Error()))
	}
	slog.Info("[Bot] Connected", slog.String("user", r.User.String()))
}

func (b *Bot) syncCommands(appID string) {
	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, b.commands)
	if err != nil {
		slog.Error("[Bot] Failed to sync commands", slog.String("error", err.Error()))
		return
	}
	slog.Info("[Bot] Commands synced",
		slog.Int("count", len(registered)),
		slog.String("guild_id", b.guildID))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(i.Interaction)
}

// HandleInteraction runs one /photos invocation to completion.
func (b *Bot) HandleInteraction(i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != CommandName {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Bot] Recovered from panic in /photos handler", slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(b.ctx, b.timeout)
	defer cancel()

	err := b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("[Bot] Failed to defer interaction", slog.String("error", err.Error()))
		return
	}

	responder := &interactionResponder{session: b.session, interaction: i}
	b.orchestrator.Run(ctx, attachmentsFrom(data), responder)
}

// attachmentsFrom returns the resolved attachments in option order:
// first_photo, then second_photo.
func attachmentsFrom(data discordgo.ApplicationCommandInteractionData) []models.Attachment {
	byName := make(map[string]string, len(data.Options))
	for _, opt := range data.Options {
		if opt.Type != discordgo.ApplicationCommandOptionAttachment {
			continue
		}
		if id, ok := opt.Value.(string); ok {
			byName[opt.Name] = id
		}
	}

	var attachments []models.Attachment
	for _, name := range []string{OptionFirstPhoto, OptionSecondPhoto} {
		id, ok := byName[name]
		if !ok || data.Resolved == nil {
			continue
		}
		a, ok := data.Resolved.Attachments[id]
		if !ok || a == nil {
			continue
		}
		attachments = append(attachments, models.Attachment{
			ID:          a.ID,
			Filename:    a.Filename,
			URL:         a.URL,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}
	return attachments
}

// interactionResponder delivers followup messages for a deferred interaction.
type interactionResponder struct {
	session     Session
	interaction *discordgo.Interaction
}

func (r *interactionResponder) SendFiles(ctx context.Context, images []models.StagedImage) error {
	files := make([]*discordgo.File, 0, len(images))
	for _, img := range images {
		files = append(files, &discordgo.File{
			Name:        img.Name,
			ContentType: img.ContentType,
			Reader:      bytes.NewReader(img.Data),
		})
	}

	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{Files: files}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("[Bot] failed to send attachments: %w", err)
	}
	return nil
}

func (r *interactionResponder) SendCard(ctx context.Context, card *discordgo.MessageEmbed) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{card},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("[Bot] failed to send card: %w", err)
	}
	return nil
}
