// /internal/commands/about.go
package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/commandclient/internal/client"
	"github.com/keshon/commandclient/internal/version"
)

func init() {
	Register(&Command{
		Sort:        501,
		Name:        "about",
		Description: "Shows info about the bot.",
		Category:    "Information",

		Response: client.Embed(buildAboutMessage()),
	})
}

func buildAboutMessage() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "ℹ️ About",
		Description: "**" + version.AppName + "** — " + version.AppDescription,
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Release", Value: version.Release()},
		},
	}
}
