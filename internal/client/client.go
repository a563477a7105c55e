// Package client wraps a discordgo session with a single message listener,
// an ordered registry of named handlers and a prefix command matcher.
//
// The client does not subclass or replace the session. It subscribes once to
// MessageCreate and fans every message out to its handlers:
//
//	c := client.New(dg, client.Options{EnableCustomPrefix: true})
//	c.RegisterCommand("ping", client.Text("pong"), nil)
//	c.RegisterHandler(client.Handler{Name: "audit", Func: audit})
package client

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// DefaultPrefix is used when Options.DefaultPrefix is empty.
const DefaultPrefix = "!"

// Session is the part of *discordgo.Session the client uses.
type Session interface {
	AddHandler(handler interface{}) func()
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ErrorFunc receives errors and recovered panics from a handler.
type ErrorFunc func(name string, m *discordgo.MessageCreate, err error)

// Options configure a Client. Zero values are replaced by defaults.
type Options struct {
	// EnableCustomPrefix turns on per-guild prefixes read from the bot's
	// nickname, e.g. "[?] MyBot". Default false.
	EnableCustomPrefix bool
	// DefaultPrefix is used in direct channels, when custom prefixes are
	// disabled, or when the nickname carries no tag. Default "!".
	DefaultPrefix string
	// Nickname looks up the bot's nickname in a guild. Defaults to
	// StateNickname when the session is a *discordgo.Session.
	Nickname NicknameFunc
	// OnError is called when a handler fails. Defaults to logging.
	OnError ErrorFunc
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// Client dispatches incoming messages to registered handlers.
type Client struct {
	session Session
	opts    Options
	log     zerolog.Logger

	mu          sync.RWMutex
	reg         registry
	middlewares []Middleware

	// prefixes holds one *prefixMemo per message being dispatched.
	prefixes sync.Map
}

// New wraps session and subscribes to its MessageCreate event. The
// subscription lives as long as the session.
func New(session Session, opts Options) *Client {
	c := &Client{
		session: session,
		opts:    opts,
	}

	if c.opts.DefaultPrefix == "" {
		c.opts.DefaultPrefix = DefaultPrefix
	}
	if c.opts.Nickname == nil {
		if dg, ok := session.(*discordgo.Session); ok {
			c.opts.Nickname = StateNickname(dg)
		}
	}
	if c.opts.Logger != nil {
		c.log = *c.opts.Logger
	} else {
		c.log = zlog.Logger
	}
	c.log = c.log.With().Str("component", "client").Logger()
	if c.opts.OnError == nil {
		c.opts.OnError = c.logError
	}

	session.AddHandler(c.onMessageCreate)
	return c
}

// SessionOption configures a discordgo session before the client wraps it.
type SessionOption func(*discordgo.Session)

// WithIntents sets the gateway intents.
func WithIntents(intents discordgo.Intent) SessionOption {
	return func(s *discordgo.Session) {
		s.Identify.Intents = intents
	}
}

// WithSyncEvents makes discordgo call handlers on its event goroutine, one
// message at a time.
func WithSyncEvents() SessionOption {
	return func(s *discordgo.Session) {
		s.SyncEvents = true
	}
}

// Dial creates a discordgo session for a bot token, applies sessionOpts and
// wraps it. The gateway is not opened; call Open.
func Dial(token string, opts Options, sessionOpts ...SessionOption) (*Client, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	for _, o := range sessionOpts {
		o(dg)
	}
	return New(dg, opts), nil
}

// Session returns the wrapped session.
func (c *Client) Session() Session {
	return c.session
}

// DefaultPrefix returns the configured default prefix.
func (c *Client) DefaultPrefix() string {
	return c.opts.DefaultPrefix
}

// CustomPrefixEnabled reports whether nickname prefixes are on.
func (c *Client) CustomPrefixEnabled() bool {
	return c.opts.EnableCustomPrefix
}

type opener interface {
	Open() error
	Close() error
}

// Open connects the wrapped session to the gateway.
func (c *Client) Open() error {
	s, ok := c.session.(opener)
	if !ok {
		return fmt.Errorf("session %T cannot be opened", c.session)
	}
	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	return nil
}

// Close disconnects the wrapped session. Registered handlers stay in place.
func (c *Client) Close() error {
	s, ok := c.session.(opener)
	if !ok {
		return nil
	}
	return s.Close()
}

// RegisterHandler appends h. It receives the next incoming message.
func (c *Client) RegisterHandler(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.add(h)
}

// UnregisterHandler removes every handler named name. Unknown names are ignored.
func (c *Client) UnregisterHandler(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reg.remove(name)
}

// Handlers returns the registered handler names in dispatch order.
func (c *Client) Handlers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reg.names()
}

// Use adds middleware applied to every handler on dispatch. The first
// middleware is the outermost.
func (c *Client) Use(mws ...Middleware) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middlewares = append(c.middlewares, mws...)
}

// onMessageCreate is the single MessageCreate listener.
func (c *Client) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	c.Dispatch(m)
}

// Dispatch runs every registered handler against m in registration order.
// A failing or panicking handler is reported through OnError and does not
// stop the handlers after it.
func (c *Client) Dispatch(m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil {
		return
	}

	c.mu.RLock()
	handlers := c.reg.snapshot()
	mws := make([]Middleware, len(c.middlewares))
	copy(mws, c.middlewares)
	c.mu.RUnlock()

	c.prefixes.Store(m, &prefixMemo{})
	defer c.prefixes.Delete(m)

	for _, h := range handlers {
		if h.Func == nil {
			continue
		}
		if err := run(chain(h, mws), m); err != nil {
			c.opts.OnError(h.Name, m, err)
		}
	}
}

func run(h Handler, m *discordgo.MessageCreate) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %q panicked: %v", h.Name, r)
		}
	}()
	return h.Func(m)
}

func (c *Client) logError(name string, m *discordgo.MessageCreate, err error) {
	c.log.Error().
		Err(err).
		Str("handler", name).
		Str("guild", m.GuildID).
		Str("channel", m.ChannelID).
		Msg("Handler failed")
}
