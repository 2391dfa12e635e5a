package domain

import "strings"

// ---------------------------------------------------------------------------
// Permission: role permission bit set
// ---------------------------------------------------------------------------

// Permission is a set of guild permission bits as reported by the platform.
type Permission uint64

const (
	PermOperator Permission = 1 << iota
	PermManageGuild
	PermViewAuditLog
	PermCreateInvite
	PermManageInvite
	PermChannelManage
	PermKick
	PermBan
	PermEmojiManage
	PermModifyNickname
	PermRoleManage
	PermViewChannel
	PermSendMessage
	PermManageMessage
	PermUploadFile
	PermVoiceLink
	PermVoiceManage
	PermMentionAll
	PermAddReaction
	PermFollowReaction
	PermPassiveVoiceLink
	PermPushToTalkOnly
	PermFreeSpeak
	PermSpeak
	PermDeafenOthers
	PermMuteOthers
	PermModifyOthersNickname
	PermPlayMusic
)

var permissionNames = []string{
	"operator", "manage_guild", "view_audit_log", "create_invite", "manage_invite",
	"channel_manage", "kick", "ban", "emoji_manage", "modify_nickname", "role_manage",
	"view_channel", "send_message", "manage_message", "upload_file", "voice_link",
	"voice_manage", "mention_all", "add_reaction", "follow_reaction", "passive_voice_link",
	"push_to_talk_only", "free_speak", "speak", "deafen_others", "mute_others",
	"modify_others_nickname", "play_music",
}

// Has reports whether every bit in want is present in p. Operators hold
// every permission.
func (p Permission) Has(want Permission) bool {
	if p&PermOperator != 0 {
		return true
	}
	return p&want == want
}

// String renders the set as a "|"-joined list of names.
func (p Permission) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for i, name := range permissionNames {
		if p&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}
