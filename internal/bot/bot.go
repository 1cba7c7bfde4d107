package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/tartampluch/go-occasions/internal/config"
	"github.com/tartampluch/go-occasions/internal/engine"
	"github.com/zalando/go-keyring"
)

// Sender delivers a reply to a channel.
type Sender interface {
	Send(channelID, content string) error
}

// sessionSender sends through a live discordgo session.
type sessionSender struct {
	session *discordgo.Session
}

func (s sessionSender) Send(channelID, content string) error {
	_, err := s.session.ChannelMessageSend(channelID, content)
	return err
}

// Bot answers chat commands on a Discord gateway connection.
type Bot struct {
	Router *Router
	Clock  engine.Clock
	Sender Sender

	session *discordgo.Session
}

// New prepares a session for token. Nothing is opened until Run.
func New(token string, router *Router, clock engine.Clock) (*Bot, error) {
	session, err := discordgo.New(config.DiscordTokenPrefix + token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBotSession, err)
	}
	session.UserAgent = config.UserAgent
	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	if clock == nil {
		clock = engine.RealClock{}
	}
	b := &Bot{
		Router:  router,
		Clock:   clock,
		Sender:  sessionSender{session: session},
		session: session,
	}
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		selfID := ""
		if s.State != nil && s.State.User != nil {
			selfID = s.State.User.ID
		}
		b.HandleMessage(selfID, m)
	})
	return b, nil
}

// HandleMessage replies to m when it carries a command from another user.
func (b *Bot) HandleMessage(selfID string, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.Author == nil {
		return
	}
	if m.Author.ID == selfID || m.Author.Bot {
		return
	}
	reply, ok := b.Router.Handle(m.Content, b.Clock.Now())
	if !ok {
		return
	}

	log := slog.With(
		config.LogKeyComponent, config.CompBot,
		config.LogKeyChannel, m.ChannelID,
	)
	if err := b.Sender.Send(m.ChannelID, reply); err != nil {
		log.Error(config.ErrBotSend, config.LogKeyError, err)
		return
	}
	log.Debug(config.MsgBotCommand, config.LogKeyCommand, m.Content)
}

// Run opens the gateway and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBotSession, err)
	}
	slog.Info(config.MsgBotStart, config.LogKeyComponent, config.CompBot)

	<-ctx.Done()

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBotSession, err)
	}
	slog.Info(config.MsgBotStop, config.LogKeyComponent, config.CompBot)
	return nil
}

// ResolveToken reads the token from the environment, falling back to the OS
// keyring entry of user.
func ResolveToken(user string) (string, error) {
	if token := os.Getenv(config.EnvDiscordToken); token != "" {
		return token, nil
	}
	token, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Warn(config.MsgPassFail,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyName, user,
			config.LogKeyError, err,
		)
		return "", fmt.Errorf("%s: %w", config.ErrBotToken, err)
	}
	if token == "" {
		return "", errors.New(config.ErrBotToken)
	}
	return token, nil
}
