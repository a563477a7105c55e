package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0xb01e66

func reply(ctx *Context, content string) error {
	if _, err := ctx.Client.Session().ChannelMessageSend(ctx.Message.ChannelID, content); err != nil {
		return fmt.Errorf("failed to reply: %w", err)
	}
	return nil
}

func replyEmbed(ctx *Context, embed *discordgo.MessageEmbed) error {
	if _, err := ctx.Client.Session().ChannelMessageSendEmbed(ctx.Message.ChannelID, embed); err != nil {
		return fmt.Errorf("failed to reply with embed: %w", err)
	}
	return nil
}
