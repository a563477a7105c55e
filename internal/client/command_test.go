package client

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestRegisterCommandQuickResponse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSend bool
	}{
		{name: "exact", content: "!ping", wantSend: true},
		{name: "upper case message", content: "!PING", wantSend: true},
		{name: "trailing space", content: "!ping ", wantSend: false},
		{name: "with argument", content: "!ping now", wantSend: false},
		{name: "no prefix", content: "ping", wantSend: false},
		{name: "other prefix", content: "?ping", wantSend: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fs := newTestClient(Options{})
			c.RegisterCommand("ping", Text("pong"), nil)

			fs.emit(directMessage(tt.content))

			sent := fs.messages()
			if !tt.wantSend {
				if len(sent) != 0 {
					t.Fatalf("sent %v, want nothing", sent)
				}
				return
			}
			if len(sent) != 1 {
				t.Fatalf("sent %d messages, want 1", len(sent))
			}
			if sent[0].channelID != "channel-1" || sent[0].content != "pong" {
				t.Errorf("sent = %+v, want pong to channel-1", sent[0])
			}
		})
	}
}

func TestRegisterCommandNameComparedAsGiven(t *testing.T) {
	c, fs := newTestClient(Options{})
	c.RegisterCommand("Ping", Text("pong"), nil)

	fs.emit(directMessage("!Ping"))
	fs.emit(directMessage("!ping"))

	if sent := fs.messages(); len(sent) != 0 {
		t.Errorf("sent %v, want nothing for a mixed-case command name", sent)
	}
}

func TestRegisterCommandCustomPrefix(t *testing.T) {
	var lookups []string
	c, fs := newTestClient(Options{
		EnableCustomPrefix: true,
		Nickname: func(guildID string) (string, error) {
			lookups = append(lookups, guildID)
			return "[?] MyBot", nil
		},
	})

	var gotPrefixes []string
	c.RegisterCommand("help", Text(""), func(_ *discordgo.MessageCreate, prefix string) error {
		gotPrefixes = append(gotPrefixes, prefix)
		return nil
	})

	fs.emit(guildMessage("guild-1", "?help"))
	fs.emit(guildMessage("guild-1", "!help"))

	if len(gotPrefixes) != 1 || gotPrefixes[0] != "?" {
		t.Errorf("callback prefixes = %v, want [?]", gotPrefixes)
	}
	if sent := fs.messages(); len(sent) != 0 {
		t.Errorf("sent %v, want nothing for an empty quick response", sent)
	}
	if len(lookups) == 0 || lookups[0] != "guild-1" {
		t.Errorf("nickname lookups = %v, want guild-1", lookups)
	}
}

func TestRegisterCommandCustomPrefixSkippedForDirectMessages(t *testing.T) {
	c, fs := newTestClient(Options{
		EnableCustomPrefix: true,
		Nickname: func(string) (string, error) {
			t.Error("nickname looked up for a direct message")
			return "[?] MyBot", nil
		},
	})
	c.RegisterCommand("help", Text("usage"), nil)

	fs.emit(directMessage("?help"))
	fs.emit(directMessage("!help"))

	sent := fs.messages()
	if len(sent) != 1 || sent[0].content != "usage" {
		t.Errorf("sent = %+v, want one usage reply", sent)
	}
}

func TestRegisterCommandCustomPrefixDisabled(t *testing.T) {
	c, fs := newTestClient(Options{Nickname: nickname("[?] MyBot")})
	c.RegisterCommand("help", Text("usage"), nil)

	fs.emit(guildMessage("guild-1", "?help"))
	fs.emit(guildMessage("guild-1", "!help"))

	sent := fs.messages()
	if len(sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sent))
	}
}

func TestRegisterCommandUntaggedNickname(t *testing.T) {
	c, fs := newTestClient(Options{EnableCustomPrefix: true, DefaultPrefix: ".", Nickname: nickname("MyBot")})
	c.RegisterCommand("help", Text("usage"), nil)

	fs.emit(guildMessage("guild-1", ".help"))

	if sent := fs.messages(); len(sent) != 1 {
		t.Errorf("sent %d messages, want 1", len(sent))
	}
}

func TestRegisterCommandNicknameLookupError(t *testing.T) {
	c, fs := newTestClient(Options{
		EnableCustomPrefix: true,
		Nickname: func(string) (string, error) {
			return "", errors.New("unknown guild")
		},
	})
	c.RegisterCommand("ping", Text("pong"), nil)

	fs.emit(guildMessage("guild-1", "!ping"))

	if sent := fs.messages(); len(sent) != 1 {
		t.Errorf("sent %d messages, want fallback to default prefix", len(sent))
	}
}

func TestRegisterCommandLooksUpNicknameOncePerMessage(t *testing.T) {
	lookups := 0
	c, fs := newTestClient(Options{
		EnableCustomPrefix: true,
		Nickname: func(string) (string, error) {
			lookups++
			return "[?] Bot", nil
		},
	})
	for _, name := range []string{"ping", "help", "about", "prefix", "stats"} {
		c.RegisterCommand(name, Text(name), nil)
	}

	fs.emit(guildMessage("guild-1", "hello there"))
	if lookups != 1 {
		t.Fatalf("nickname looked up %d times for one message, want 1", lookups)
	}

	fs.emit(guildMessage("guild-1", "?help"))
	if lookups != 2 {
		t.Errorf("nickname looked up %d times for two messages, want 2", lookups)
	}
	if sent := fs.messages(); len(sent) != 1 || sent[0].content != "help" {
		t.Errorf("sent %v, want one help reply", sent)
	}
}

func TestRegisterCommandEmbedResponse(t *testing.T) {
	c, fs := newTestClient(Options{})
	embed := &discordgo.MessageEmbed{Title: "Pong!"}
	c.RegisterCommand("ping", Embed(embed), nil)
	c.RegisterCommand("empty", Embed(&discordgo.MessageEmbed{}), nil)
	c.RegisterCommand("none", Embed(nil), nil)

	fs.emit(directMessage("!ping"))
	fs.emit(directMessage("!empty"))
	fs.emit(directMessage("!none"))

	sent := fs.messages()
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sent))
	}
	if sent[0].embed != embed {
		t.Errorf("sent[0].embed = %+v, want the registered embed", sent[0].embed)
	}
	if sent[1].embed == nil {
		t.Error("empty embed was not sent")
	}
}

func TestRegisterCommandSendsBeforeCallback(t *testing.T) {
	c, fs := newTestClient(Options{})

	sentBefore := -1
	c.RegisterCommand("ping", Text("pong"), func(m *discordgo.MessageCreate, prefix string) error {
		sentBefore = len(fs.messages())
		if prefix != "!" {
			t.Errorf("prefix = %q, want %q", prefix, "!")
		}
		if m.Content != "!Ping" {
			t.Errorf("message content = %q, want original text", m.Content)
		}
		return nil
	})

	fs.emit(directMessage("!Ping"))

	if sentBefore != 1 {
		t.Errorf("messages sent before callback = %d, want 1", sentBefore)
	}
}

func TestRegisterCommandNilResponse(t *testing.T) {
	c, fs := newTestClient(Options{})
	called := false
	c.RegisterCommand("ping", nil, func(*discordgo.MessageCreate, string) error {
		called = true
		return nil
	})

	fs.emit(directMessage("!ping"))

	if !called {
		t.Error("callback not invoked")
	}
	if sent := fs.messages(); len(sent) != 0 {
		t.Errorf("sent %v, want nothing", sent)
	}
}

func TestRegisterCommandSendErrorStillRunsCallback(t *testing.T) {
	sendErr := errors.New("missing access")
	cbErr := errors.New("callback failed")

	var reported error
	c, fs := newTestClient(Options{
		OnError: func(_ string, _ *discordgo.MessageCreate, err error) { reported = err },
	})
	fs.sendErr = sendErr

	called := false
	c.RegisterCommand("ping", Text("pong"), func(*discordgo.MessageCreate, string) error {
		called = true
		return cbErr
	})

	fs.emit(directMessage("!ping"))

	if !called {
		t.Fatal("callback not invoked after send failure")
	}
	if !errors.Is(reported, sendErr) || !errors.Is(reported, cbErr) {
		t.Errorf("reported = %v, want both send and callback errors", reported)
	}
}

func TestRegisterCommandUnregister(t *testing.T) {
	c, fs := newTestClient(Options{})
	c.RegisterCommand("ping", Text("pong"), nil)
	c.RegisterCommand("ping", Text("pong again"), nil)

	c.UnregisterHandler("ping")
	fs.emit(directMessage("!ping"))

	if sent := fs.messages(); len(sent) != 0 {
		t.Errorf("sent %v after unregistering, want nothing", sent)
	}
}

func TestResolvePrefix(t *testing.T) {
	c, _ := newTestClient(Options{EnableCustomPrefix: true, Nickname: nickname("Bot]No[Open")})

	if got := c.ResolvePrefix(guildMessage("g1", "")); got != "Op" {
		t.Errorf("guild prefix = %q, want %q", got, "Op")
	}
	if got := c.ResolvePrefix(directMessage("")); got != "!" {
		t.Errorf("direct prefix = %q, want %q", got, "!")
	}
}
