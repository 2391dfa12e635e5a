package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kookbot/kook-go/pkg/domain"
	"github.com/kookbot/kook-go/pkg/domain/channel"
	"github.com/kookbot/kook-go/pkg/domain/guild"
	"github.com/kookbot/kook-go/pkg/domain/message"
	"github.com/kookbot/kook-go/pkg/domain/role"
	"github.com/kookbot/kook-go/pkg/domain/user"
	"github.com/kookbot/kook-go/pkg/events"
)

// consoleUser authors the messages typed into the console.
var consoleUser = user.Snapshot{UserID: "0", UserName: "console", Bot: true}

// usage lists the console grammar, one line per event type.
var usage = map[domain.EventType]string{
	events.TypeChannelCreated:         "<channel-id> <name> [text|voice|category]",
	events.TypeChannelUpdated:         "<channel-id> <name> [text|voice|category]",
	events.TypeChannelDeleted:         "<channel-id> <name>",
	events.TypeChannelMessageReceived: "<channel-id> <msg-id> <text...>",
	events.TypeChannelMessageUpdated:  "<channel-id> <msg-id> <text...>",
	events.TypeChannelMessageDeleted:  "<channel-id> <msg-id>",
	events.TypeUserOnline:             "<user-id> <name>",
	events.TypeUserOffline:            "<user-id> <name>",
	events.TypeUserJoinedGuild:        "<user-id> <name> <guild-id>",
	events.TypeUserLeftGuild:          "<user-id> <name> <guild-id>",
	events.TypeUserPrivateMessage:     "<user-id> <name> <text...>",
	events.TypeRoleCreated:            "<role-id> <name>",
	events.TypeRoleUpdated:            "<role-id> <name>",
	events.TypeRoleDeleted:            "<role-id> <name>",
	events.TypeGuildUpdated:           "<guild-id> <name>",
}

// parseEvent builds a synthetic occurrence from one console line of the form
// "<event type> <args...>".
func parseEvent(line string, now time.Time) (domain.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty line")
	}
	t := domain.EventType(fields[0])
	want, ok := usage[t]
	if !ok {
		return nil, fmt.Errorf("unknown event type %q", fields[0])
	}
	args := fields[1:]
	need := strings.Count(want, "<")
	if strings.Contains(want, "...>") {
		need--
	}
	if len(args) < need || (strings.Contains(want, "...>") && len(args) == need) {
		return nil, fmt.Errorf("usage: %s %s", t, want)
	}
	rest := func(i int) string { return strings.Join(args[i:], " ") }

	switch t {
	case events.TypeChannelCreated, events.TypeChannelUpdated, events.TypeChannelDeleted:
		ch := channel.Snapshot{ChannelID: args[0], ChannelName: args[1], Guild: "console", ChannelKind: channel.KindText}
		if len(args) > 2 {
			kind, err := parseKind(args[2])
			if err != nil {
				return nil, err
			}
			ch.ChannelKind = kind
		}
		switch t {
		case events.TypeChannelCreated:
			return events.NewChannelCreated(now, ch), nil
		case events.TypeChannelUpdated:
			return events.NewChannelUpdated(now, ch), nil
		default:
			return events.NewChannelDeleted(now, ch), nil
		}

	case events.TypeChannelMessageReceived:
		msg := message.Snapshot{MsgID: args[1], Author: consoleUser, Text: rest(2), Sent: now}
		return events.NewChannelMessageReceived(now, textChannel(args[0]), msg), nil
	case events.TypeChannelMessageUpdated:
		return events.NewChannelMessageUpdated(now, textChannel(args[0]), args[1], rest(2)), nil
	case events.TypeChannelMessageDeleted:
		return events.NewChannelMessageDeleted(now, textChannel(args[0]), args[1]), nil

	case events.TypeUserOnline:
		return events.NewUserOnline(now, onlineUser(args[0], args[1], true)), nil
	case events.TypeUserOffline:
		return events.NewUserOffline(now, onlineUser(args[0], args[1], false)), nil
	case events.TypeUserJoinedGuild:
		return events.NewUserJoinedGuild(now, onlineUser(args[0], args[1], true), args[2]), nil
	case events.TypeUserLeftGuild:
		return events.NewUserLeftGuild(now, onlineUser(args[0], args[1], true), args[2]), nil
	case events.TypeUserPrivateMessage:
		u := onlineUser(args[0], args[1], true)
		msg := message.Snapshot{MsgID: domain.NewID().String(), Author: u, Text: rest(2), Sent: now, Code: "console-" + u.UserID}
		return events.NewUserPrivateMessage(now, u, msg), nil

	case events.TypeRoleCreated, events.TypeRoleUpdated, events.TypeRoleDeleted:
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("role id %q: not a number", args[0])
		}
		r := role.Snapshot{RoleID: id, Guild: "console", RoleName: args[1]}
		switch t {
		case events.TypeRoleCreated:
			return events.NewRoleCreated(now, r), nil
		case events.TypeRoleUpdated:
			return events.NewRoleUpdated(now, r), nil
		default:
			return events.NewRoleDeleted(now, r), nil
		}

	case events.TypeGuildUpdated:
		return events.NewGuildUpdated(now, guild.Snapshot{GuildID: args[0], GuildName: args[1]}), nil
	}
	return nil, fmt.Errorf("unknown event type %q", t)
}

func parseKind(s string) (channel.Kind, error) {
	for _, k := range []channel.Kind{channel.KindCategory, channel.KindText, channel.KindVoice} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown channel kind %q", s)
}

func textChannel(id string) channel.Snapshot {
	return channel.Snapshot{ChannelID: id, Guild: "console", ChannelKind: channel.KindText}
}

func onlineUser(id, name string, online bool) user.Snapshot {
	return user.Snapshot{UserID: id, UserName: name, Online: online}
}
