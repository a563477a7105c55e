package client

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandclient/pkg/prefix"
)

// CommandFunc runs after a command matched, with the prefix it matched under.
type CommandFunc func(m *discordgo.MessageCreate, prefix string) error

// Response is a quick reply sent to the channel a command came from.
// Use Text or Embed; nil sends nothing.
type Response interface {
	send(s Session, channelID string) error
}

// Text is a plain text response. The empty string sends nothing.
type Text string

func (t Text) send(s Session, channelID string) error {
	if t == "" {
		return nil
	}
	_, err := s.ChannelMessageSend(channelID, string(t))
	return err
}

type embedResponse struct {
	embed *discordgo.MessageEmbed
}

// Embed is a rich response. It is sent even when the embed has no fields;
// only a nil embed sends nothing.
func Embed(e *discordgo.MessageEmbed) Response {
	return embedResponse{embed: e}
}

func (r embedResponse) send(s Session, channelID string) error {
	if r.embed == nil {
		return nil
	}
	_, err := s.ChannelMessageSendEmbed(channelID, r.embed)
	return err
}

// RegisterCommand registers a handler named command that fires when a
// message reads exactly prefix+command. The message text is lower-cased
// before comparing; command and prefix are compared as given.
//
// On a match quick is sent first, then cb is called. A failed send does not
// skip cb; both errors are returned.
func (c *Client) RegisterCommand(command string, quick Response, cb CommandFunc) {
	c.RegisterHandler(Handler{
		Name: command,
		Func: func(m *discordgo.MessageCreate) error {
			p := c.ResolvePrefix(m)
			if strings.ToLower(m.Content) != p+command {
				return nil
			}

			var errs []error
			if quick != nil {
				if err := quick.send(c.session, m.ChannelID); err != nil {
					errs = append(errs, fmt.Errorf("send response for %s%s: %w", p, command, err))
				}
			}
			if cb != nil {
				if err := cb(m, p); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}

// ResolvePrefix returns the prefix in effect for m. Direct messages always
// use the default prefix. During dispatch the nickname is looked up at most
// once per message, however many commands are registered.
func (c *Client) ResolvePrefix(m *discordgo.MessageCreate) string {
	if v, ok := c.prefixes.Load(m); ok {
		memo := v.(*prefixMemo)
		memo.once.Do(func() { memo.prefix = c.lookupPrefix(m) })
		return memo.prefix
	}
	return c.lookupPrefix(m)
}

type prefixMemo struct {
	once   sync.Once
	prefix string
}

func (c *Client) lookupPrefix(m *discordgo.MessageCreate) string {
	if !c.opts.EnableCustomPrefix || m.GuildID == "" || c.opts.Nickname == nil {
		return c.opts.DefaultPrefix
	}

	nick, err := c.opts.Nickname(m.GuildID)
	if err != nil {
		c.log.Warn().Err(err).Str("guild", m.GuildID).Msg("Nickname lookup failed, using default prefix")
		return c.opts.DefaultPrefix
	}
	return prefix.Resolve(c.opts.DefaultPrefix, nick)
}
