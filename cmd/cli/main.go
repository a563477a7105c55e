// cmd/cli/main.go
//
// cli replays chat lines from stdin through the bot's commands without
// connecting to Discord. Replies are printed instead of sent.
//
//	echo '?help' | go run ./cmd/cli -custom -nick '[?] MyBot'
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/commandclient/internal/client"
	"github.com/keshon/commandclient/internal/commands"
	"github.com/keshon/commandclient/pkg/prefix"
)

func main() {
	var (
		defaultPrefix = flag.String("prefix", client.DefaultPrefix, "default command prefix")
		custom        = flag.Bool("custom", false, "enable nickname prefixes")
		nick          = flag.String("nick", "", "bot nickname on the simulated server")
		direct        = flag.Bool("dm", false, "simulate a direct channel")
	)
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *defaultPrefix, *custom, *nick, *direct); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, defaultPrefix string, custom bool, nick string, direct bool) error {
	s := &consoleSession{out: out}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	c := client.New(s, client.Options{
		EnableCustomPrefix: custom,
		DefaultPrefix:      defaultPrefix,
		Nickname:           func(string) (string, error) { return nick, nil },
		Logger:             &l,
	})
	commands.Install(c)

	guildID := "cli-guild"
	if direct {
		guildID = ""
	} else if custom {
		fmt.Fprintf(out, "# prefix on this server: %q\n", prefix.Resolve(c.DefaultPrefix(), nick))
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		s.emit(&discordgo.MessageCreate{Message: &discordgo.Message{
			ChannelID: "cli",
			GuildID:   guildID,
			Content:   scanner.Text(),
			Author:    &discordgo.User{ID: "cli-user", Username: "you"},
		}})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// consoleSession implements client.Session on top of a writer.
type consoleSession struct {
	out      io.Writer
	listener func(*discordgo.Session, *discordgo.MessageCreate)
}

func (s *consoleSession) AddHandler(handler interface{}) func() {
	if fn, ok := handler.(func(*discordgo.Session, *discordgo.MessageCreate)); ok {
		s.listener = fn
	}
	return func() {}
}

func (s *consoleSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	fmt.Fprintf(s.out, "> %s\n", content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (s *consoleSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	fmt.Fprintf(s.out, "> [%s]\n", embed.Title)
	if embed.Description != "" {
		fmt.Fprintf(s.out, "%s\n", embed.Description)
	}
	for _, f := range embed.Fields {
		fmt.Fprintf(s.out, "%s: %s\n", f.Name, f.Value)
	}
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (s *consoleSession) emit(m *discordgo.MessageCreate) {
	if s.listener != nil {
		s.listener(nil, m)
	}
}
