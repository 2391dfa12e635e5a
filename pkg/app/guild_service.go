package app

import (
	"context"
	"fmt"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/channel"
	"github.com/kookbot/kook-go/pkg/domain/guild"
	"github.com/kookbot/kook-go/pkg/domain/role"
	"github.com/kookbot/kook-go/pkg/domain/user"
	"github.com/kookbot/kook-go/pkg/logger"
)

// ---------------------------------------------------------------------------
// Guild application service
// ---------------------------------------------------------------------------

// PermissionError reports an operation the bot's permissions do not cover.
type PermissionError struct {
	Op   guild.Operation
	Need domain.Permission
	Have domain.Permission
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("guild %s requires %s (have %s)", e.Op, e.Need, e.Have)
}

// GuildService orchestrates guild use cases on behalf of the bot. It checks
// the bot's permissions and validates inputs before calling the platform.
type GuildService struct {
	ops   guild.Operations
	perms domain.Permission
}

// NewGuildService creates a service acting through ops with the bot's perms.
func NewGuildService(ops guild.Operations, perms domain.Permission) *GuildService {
	return &GuildService{ops: ops, perms: perms}
}

func (s *GuildService) authorize(op guild.Operation) error {
	if guild.Allowed(op, s.perms) {
		return nil
	}
	need, _ := guild.RequiredPermission(op)
	logger.WarnCF("guild", "Operation denied", map[string]interface{}{
		"op":   string(op),
		"need": need.String(),
	})
	return &PermissionError{Op: op, Need: need, Have: s.perms}
}

// Rename changes the guild name.
func (s *GuildService) Rename(ctx context.Context, name string) error {
	if name == "" {
		return guild.ErrEmptyName
	}
	if err := s.authorize(guild.OpSetName); err != nil {
		return err
	}
	return s.ops.SetName(ctx, name)
}

// Ban bans u and removes delMessageDays days of their messages.
func (s *GuildService) Ban(ctx context.Context, u user.User, reason string, delMessageDays int) error {
	if err := s.authorize(guild.OpBan); err != nil {
		return err
	}
	if err := s.ops.Ban(ctx, u, reason, delMessageDays); err != nil {
		return fmt.Errorf("ban %s: %w", u.FullName(), err)
	}
	logger.InfoCF("guild", "User banned", map[string]interface{}{
		"user":   u.FullName(),
		"reason": reason,
	})
	return nil
}

// Unban lifts a ban.
func (s *GuildService) Unban(ctx context.Context, u user.User) error {
	if err := s.authorize(guild.OpUnban); err != nil {
		return err
	}
	return s.ops.Unban(ctx, u)
}

// Kick removes u from the guild.
func (s *GuildService) Kick(ctx context.Context, u user.User) error {
	if err := s.authorize(guild.OpKick); err != nil {
		return err
	}
	if err := s.ops.Kick(ctx, u); err != nil {
		return fmt.Errorf("kick %s: %w", u.FullName(), err)
	}
	logger.InfoCF("guild", "User kicked", map[string]interface{}{
		"user": u.FullName(),
	})
	return nil
}

// CreateTextChannel creates a text channel, optionally inside parent.
func (s *GuildService) CreateTextChannel(ctx context.Context, name string, parent channel.Category) (channel.TextChannel, error) {
	if name == "" {
		return nil, guild.ErrEmptyName
	}
	if err := s.authorize(guild.OpCreateTextChannel); err != nil {
		return nil, err
	}
	return s.ops.CreateTextChannel(ctx, name, parent)
}

// CreateVoiceChannel creates a voice channel after checking the platform limits.
func (s *GuildService) CreateVoiceChannel(ctx context.Context, spec guild.VoiceChannelSpec) (channel.VoiceChannel, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(guild.OpCreateVoiceChannel); err != nil {
		return nil, err
	}
	return s.ops.CreateVoiceChannel(ctx, spec)
}

// CreateCategory creates a channel category.
func (s *GuildService) CreateCategory(ctx context.Context, name string) (channel.Category, error) {
	if name == "" {
		return nil, guild.ErrEmptyName
	}
	if err := s.authorize(guild.OpCreateCategory); err != nil {
		return nil, err
	}
	return s.ops.CreateCategory(ctx, name)
}

// CreateRole creates a role.
func (s *GuildService) CreateRole(ctx context.Context, name string) (role.Role, error) {
	if name == "" {
		return nil, guild.ErrEmptyName
	}
	if err := s.authorize(guild.OpCreateRole); err != nil {
		return nil, err
	}
	return s.ops.CreateRole(ctx, name)
}

// UploadEmoji uploads a PNG emoji.
func (s *GuildService) UploadEmoji(ctx context.Context, spec guild.EmojiSpec) (guild.Emoji, error) {
	if err := spec.Validate(); err != nil {
		return guild.Emoji{}, err
	}
	if err := s.authorize(guild.OpUploadEmoji); err != nil {
		return guild.Emoji{}, err
	}
	return s.ops.UploadEmoji(ctx, spec)
}

// Leave leaves the guild.
func (s *GuildService) Leave(ctx context.Context) error {
	return s.ops.Leave(ctx)
}
