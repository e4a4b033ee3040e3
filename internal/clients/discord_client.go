package clients

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// NewDiscordSession creates an unopened bot session with the intents the
// slash command needs.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("[DiscordClient] failed to create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	session.UserAgent = USER_AGENT

	slog.Info("[DiscordClient] Session created")
	return session, nil
}
