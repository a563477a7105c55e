package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        502,
		Name:        "ping",
		Description: "Pong!",
		Category:    "Information",

		Run: pingHandler,
	})
}

func buildPingMessage(ctx *Context) string {
	s, ok := ctx.Client.Session().(*discordgo.Session)
	if !ok {
		return "🏓 Pong!"
	}
	return fmt.Sprintf("🏓 Pong! Response time: `%dms`", s.HeartbeatLatency().Milliseconds())
}

func pingHandler(ctx *Context) error {
	return reply(ctx, buildPingMessage(ctx))
}
