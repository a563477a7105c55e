package client

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// NicknameFunc returns the bot's nickname in a guild; "" when unset.
type NicknameFunc func(guildID string) (string, error)

// StateNickname reads the bot's member record from the session state and
// falls back to the REST API when the state has no copy. A fetched member is
// added to the state, so the next lookup for that guild does no I/O.
func StateNickname(s *discordgo.Session) NicknameFunc {
	return func(guildID string) (string, error) {
		if s.State == nil || s.State.User == nil {
			return "", errors.New("session state has no user yet")
		}
		selfID := s.State.User.ID

		member, err := s.State.Member(guildID, selfID)
		if err != nil {
			member, err = s.GuildMember(guildID, selfID)
			if err != nil {
				return "", fmt.Errorf("failed to fetch bot member in guild %s: %w", guildID, err)
			}
			if member.User != nil {
				// Fails only when the guild is not tracked; the nick is still good.
				_ = s.State.MemberAdd(member)
			}
		}
		return member.Nick, nil
	}
}
