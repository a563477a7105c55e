package client

import "github.com/bwmarrin/discordgo"

// HandlerFunc handles one incoming message. Matching is up to the handler;
// the registry dispatches every message to every handler.
type HandlerFunc func(m *discordgo.MessageCreate) error

// Handler is a named message handler. The name is the removal key and does
// not have to be unique.
type Handler struct {
	Name string
	Func HandlerFunc
}

// registry stores handlers in registration order. It does not lock; Client
// guards it.
type registry struct {
	handlers []Handler
}

// add appends h. Duplicate names are kept.
func (r *registry) add(h Handler) {
	r.handlers = append(r.handlers, h)
}

// remove drops every handler named name.
func (r *registry) remove(name string) {
	kept := r.handlers[:0:0]
	for _, h := range r.handlers {
		if h.Name != name {
			kept = append(kept, h)
		}
	}
	r.handlers = kept
}

// snapshot returns a copy safe to iterate while the registry changes.
func (r *registry) snapshot() []Handler {
	list := make([]Handler, len(r.handlers))
	copy(list, r.handlers)
	return list
}

// names returns the handler names in dispatch order.
func (r *registry) names() []string {
	list := make([]string, 0, len(r.handlers))
	for _, h := range r.handlers {
		list = append(list, h.Name)
	}
	return list
}
