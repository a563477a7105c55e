package client

import (
	"math"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Middleware wraps a handler (filtering, throttling, logging). The wrapped
// handler keeps its name.
type Middleware func(Handler) Handler

// chain applies mws so that mws[0] is the outermost.
func chain(h Handler, mws []Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func wrap(h Handler, fn HandlerFunc) Handler {
	return Handler{Name: h.Name, Func: fn}
}

// IgnoreBots skips messages written by bots, including this one.
func IgnoreBots() Middleware {
	return func(h Handler) Handler {
		return wrap(h, func(m *discordgo.MessageCreate) error {
			if m.Author != nil && m.Author.Bot {
				return nil
			}
			return h.Func(m)
		})
	}
}

// GuildOnly skips direct messages.
func GuildOnly() Middleware {
	return func(h Handler) Handler {
		return wrap(h, func(m *discordgo.MessageCreate) error {
			if m.GuildID == "" {
				return nil
			}
			return h.Func(m)
		})
	}
}

// Throttle limits how often each handler runs per channel. Messages over the
// limit are dropped.
//
// Limiters are keyed by handler name and channel, so handlers registered
// under the same name share one limit. A limiter unused for long enough to
// refill completely is dropped. A zero limit never refills, so its limiters
// are kept for the life of the middleware.
func Throttle(limit rate.Limit, burst int) Middleware {
	t := newThrottler(limit, burst, time.Now)

	return func(h Handler) Handler {
		return wrap(h, func(m *discordgo.MessageCreate) error {
			if !t.allow(h.Name + "/" + m.ChannelID) {
				return nil
			}
			return h.Func(m)
		})
	}
}

type throttleEntry struct {
	lim  *rate.Limiter
	last time.Time
}

type throttler struct {
	limit rate.Limit
	burst int
	idle  time.Duration // 0 keeps entries forever
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]*throttleEntry
	lastSweep time.Time
}

func newThrottler(limit rate.Limit, burst int, now func() time.Time) *throttler {
	t := &throttler{
		limit:     limit,
		burst:     burst,
		now:       now,
		entries:   make(map[string]*throttleEntry),
		lastSweep: now(),
	}
	if limit > 0 && limit != rate.Inf {
		secs := float64(burst) / float64(limit)
		if secs < float64(math.MaxInt64/int64(time.Second)) {
			t.idle = max(time.Duration(secs*float64(time.Second)), time.Second)
		}
	}
	return t
}

func (t *throttler) allow(key string) bool {
	if t.limit == rate.Inf {
		return true
	}
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.idle > 0 && now.Sub(t.lastSweep) >= t.idle {
		for k, e := range t.entries {
			if now.Sub(e.last) >= t.idle {
				delete(t.entries, k)
			}
		}
		t.lastSweep = now
	}

	e, ok := t.entries[key]
	if !ok {
		e = &throttleEntry{lim: rate.NewLimiter(t.limit, t.burst)}
		t.entries[key] = e
	}
	e.last = now
	return e.lim.AllowN(now, 1)
}

// WithLogger logs every handler run at debug level, and failures at warn.
func WithLogger(l zerolog.Logger) Middleware {
	return func(h Handler) Handler {
		return wrap(h, func(m *discordgo.MessageCreate) error {
			start := time.Now()
			err := h.Func(m)

			ev := l.Debug()
			if err != nil {
				ev = l.Warn().Err(err)
			}
			ev.Str("handler", h.Name).
				Str("guild", m.GuildID).
				Str("channel", m.ChannelID).
				Dur("took", time.Since(start)).
				Msg("Handler ran")
			return err
		})
	}
}
