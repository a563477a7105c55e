// cmd/discord/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	zlog "github.com/rs/zerolog/log"

	"github.com/keshon/commandclient/internal/client"
	"github.com/keshon/commandclient/internal/commands"
	"github.com/keshon/commandclient/internal/config"
	"github.com/keshon/commandclient/internal/logger"
	v "github.com/keshon/commandclient/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load config")
	}

	log, closer, err := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer closer.Close()
	zlog.Logger = log

	log.Info().Str("release", v.Release()).Msgf("Starting %v bot...", v.AppName)

	c, err := client.Dial(cfg.DiscordToken,
		client.Options{
			EnableCustomPrefix: cfg.EnableCustomPrefix,
			DefaultPrefix:      cfg.DefaultPrefix,
			Logger:             &log,
		},
		client.WithIntents(discordgo.IntentsGuilds|
			discordgo.IntentsGuildMessages|
			discordgo.IntentsDirectMessages|
			discordgo.IntentsMessageContent),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create client")
	}

	mws := []client.Middleware{client.IgnoreBots()}
	if cfg.ThrottleEnabled() {
		mws = append(mws, client.Throttle(cfg.ThrottleLimit(), cfg.ThrottleBurst))
	}
	mws = append(mws, client.WithLogger(log))
	c.Use(mws...)

	commands.Install(c)

	if dg, ok := c.Session().(*discordgo.Session); ok {
		dg.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
			log.Info().
				Str("user", r.User.Username).
				Int("guilds", len(r.Guilds)).
				Str("prefix", c.DefaultPrefix()).
				Bool("custom_prefix", c.CustomPrefixEnabled()).
				Msg("✅ Discord bot is running")
		})
	}

	if err := c.Open(); err != nil {
		log.Fatal().Err(err).Msg("Discord bot error")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info().Str("signal", s.String()).Msg("Received signal, shutting down...")

	if err := c.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Discord session")
	}
	log.Info().Msg("Discord bot exited cleanly")
}
