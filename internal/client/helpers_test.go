package client

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type sentMessage struct {
	channelID string
	content   string
	embed     *discordgo.MessageEmbed
}

// fakeSession records subscriptions and sends instead of talking to Discord.
type fakeSession struct {
	mu        sync.Mutex
	listeners []interface{}
	sent      []sentMessage
	sendErr   error
}

func (f *fakeSession) AddHandler(handler interface{}) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, handler)
	return func() {}
}

func (f *fakeSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, embed: embed})
	return &discordgo.Message{ChannelID: channelID}, nil
}

// emit delivers m to every subscribed listener the way discordgo would.
func (f *fakeSession) emit(m *discordgo.MessageCreate) {
	f.mu.Lock()
	listeners := append([]interface{}(nil), f.listeners...)
	f.mu.Unlock()
	for _, l := range listeners {
		l.(func(*discordgo.Session, *discordgo.MessageCreate))(nil, m)
	}
}

func (f *fakeSession) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newTestClient(opts Options) (*Client, *fakeSession) {
	fs := &fakeSession{}
	if opts.Logger == nil {
		opts.Logger = nopLogger()
	}
	return New(fs, opts), fs
}

func guildMessage(guildID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "channel-1",
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: "user-1", Username: "user"},
	}}
}

func directMessage(content string) *discordgo.MessageCreate {
	return guildMessage("", content)
}

func nickname(nick string) NicknameFunc {
	return func(string) (string, error) { return nick, nil }
}
