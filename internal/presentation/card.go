// Package presentation renders normalized results as Discord embeds.
package presentation

import (
	"github.com/bwmarrin/discordgo"

	"github.com/spacesedan/rekognition-bot/internal/failures"
	"github.com/spacesedan/rekognition-bot/internal/models"
	"github.com/spacesedan/rekognition-bot/internal/normalize"
)

const (
	CardTitle = "Photo Results"

	// MaxFieldValueLength is Discord's embed field value limit.
	MaxFieldValueLength = 1024
	// MaxDescriptionLength is Discord's embed description limit.
	MaxDescriptionLength = 4096

	ErrorColor = 0xFF0000
)

// BuildCard renders one inline field per entry, in field-set order.
func BuildCard(fs models.FieldSet) *discordgo.MessageEmbed {
	fields := fs.Fields()
	embed := &discordgo.MessageEmbed{
		Title:  CardTitle,
		Type:   discordgo.EmbedTypeRich,
		Fields: make([]*discordgo.MessageEmbedField, 0, len(fields)),
	}

	for _, f := range fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   string(f.Name),
			Value:  normalize.Truncate(f.Value, MaxFieldValueLength),
			Inline: true,
		})
	}
	return embed
}

// BuildErrorCard renders a failure as a red embed headed by its kind.
func BuildErrorCard(err error) *discordgo.MessageEmbed {
	label := failures.Label(err)
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}

	return &discordgo.MessageEmbed{
		Title:       label,
		Type:        discordgo.EmbedTypeRich,
		Description: normalize.Truncate(label+": "+message, MaxDescriptionLength),
		Color:       ErrorColor,
	}
}
