package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        500,
		Name:        "help",
		Description: "Show a list of available commands.",
		Category:    "Information",

		Run: helpHandler,
	})
}

func helpHandler(ctx *Context) error {
	return replyEmbed(ctx, &discordgo.MessageEmbed{
		Title:       "📖 Available Commands",
		Description: buildHelpMessage(ctx.Prefix),
		Color:       embedColor,
	})
}

// buildHelpMessage lists commands grouped by category, in Sort order.
func buildHelpMessage(prefix string) string {
	var (
		order      []string
		categories = make(map[string][]*Command)
	)
	for _, cmd := range All() {
		if _, ok := categories[cmd.Category]; !ok {
			order = append(order, cmd.Category)
		}
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}

	var sb strings.Builder
	for _, cat := range order {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		for _, cmd := range categories[cat] {
			sb.WriteString(fmt.Sprintf("`%s%s` - %s\n", prefix, cmd.Name, cmd.Description))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
