package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// guildMembersPageSize is the largest page the members endpoint returns
const guildMembersPageSize = 1000

// RoleMemberSource lists the guild members holding one role.
// It backs the weekly bonus job.
type RoleMemberSource struct {
	session *discordgo.Session
	guildID string
	roleID  string
}

// NewRoleMemberSource creates a source for members of roleID in guildID
func NewRoleMemberSource(session *discordgo.Session, guildID, roleID string) *RoleMemberSource {
	return &RoleMemberSource{session: session, guildID: guildID, roleID: roleID}
}

// BonusRecipients pages through the guild and returns the ids of non-bot members with the role
func (r *RoleMemberSource) BonusRecipients(ctx context.Context) ([]string, error) {
	if r.guildID == "" || r.roleID == "" {
		return nil, fmt.Errorf("bonus role lookup needs a guild id and a role id")
	}

	var ids []string
	after := ""
	for {
		page, err := r.session.GuildMembers(r.guildID, after, guildMembersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list members of guild %s: %w", r.guildID, err)
		}

		for _, m := range page {
			if m.User == nil || m.User.Bot {
				continue
			}
			if hasRole(m, r.roleID) {
				ids = append(ids, m.User.ID)
			}
		}

		if len(page) < guildMembersPageSize {
			return ids, nil
		}
		last := page[len(page)-1]
		if last.User == nil {
			return ids, nil
		}
		after = last.User.ID
	}
}

func hasRole(m *discordgo.Member, roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}
