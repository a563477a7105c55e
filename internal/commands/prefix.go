package commands

import "fmt"

func init() {
	Register(&Command{
		Sort:        510,
		Name:        "prefix",
		Description: "Show the command prefix for this server.",
		Category:    "Settings",

		Run: prefixHandler,
	})
}

func prefixHandler(ctx *Context) error {
	msg := fmt.Sprintf("My prefix here is `%s`.", ctx.Prefix)
	if ctx.Client.CustomPrefixEnabled() && ctx.Message.GuildID != "" {
		msg += " Put a new one in brackets at the start of my nickname to change it, e.g. `[?] Bot`."
	}
	return reply(ctx, msg)
}
