package event

import (
	"sort"

	"heckel.io/rtmtail/entity"
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// decoder reads the fields of one event type. Failures are recorded in f, in which case the
// returned event is discarded.
type decoder func(f *frame.Fields) Event

var decoders = map[string]decoder{
	TypeHello:   func(*frame.Fields) Event { return &Hello{} },
	TypeMessage: decodeMessage,
	TypeUserTyping: func(f *frame.Fields) Event {
		return &UserTyping{Channel: f.String("channel"), User: f.String("user")}
	},
	TypeChannelMarked: func(f *frame.Fields) Event {
		return &ChannelMarked{Channel: f.String("channel"), Timestamp: f.String("ts")}
	},
	TypeChannelCreated: func(f *frame.Fields) Event {
		return &ChannelCreated{Channel: channel(f)}
	},
	TypeChannelJoined: func(f *frame.Fields) Event {
		return &ChannelJoined{Channel: channel(f)}
	},
	TypeChannelLeft: func(f *frame.Fields) Event {
		return &ChannelLeft{Channel: f.String("channel")}
	},
	TypeChannelDeleted: func(f *frame.Fields) Event {
		return &ChannelDeleted{Channel: f.String("channel")}
	},
	TypeChannelRename: func(f *frame.Fields) Event {
		return &ChannelRename{Channel: channel(f)}
	},
	TypeChannelArchive: func(f *frame.Fields) Event {
		return &ChannelArchive{Channel: f.String("channel"), User: f.String("user")}
	},
	TypeChannelUnarchive: func(f *frame.Fields) Event {
		return &ChannelUnarchive{Channel: f.String("channel"), User: f.String("user")}
	},
	TypeChannelHistoryChanged: func(f *frame.Fields) Event {
		return &ChannelHistoryChanged{Latest: f.String("latest"), Timestamp: f.String("ts"), EventTimestamp: f.String("event_ts")}
	},
	TypeImCreated: func(f *frame.Fields) Event {
		return &ImCreated{User: f.String("user"), Channel: channel(f)}
	},
	TypeImOpen: func(f *frame.Fields) Event {
		return &ImOpen{User: f.String("user"), Channel: f.String("channel")}
	},
	TypeImClose: func(f *frame.Fields) Event {
		return &ImClose{User: f.String("user"), Channel: f.String("channel")}
	},
	TypeImMarked: func(f *frame.Fields) Event {
		return &ImMarked{Channel: f.String("channel"), Timestamp: f.String("ts")}
	},
	TypeImHistoryChanged: func(f *frame.Fields) Event {
		return &ImHistoryChanged{Latest: f.String("latest"), Timestamp: f.String("ts"), EventTimestamp: f.String("event_ts")}
	},
	TypeGroupJoined: func(f *frame.Fields) Event {
		return &GroupJoined{Channel: channel(f)}
	},
	TypeGroupLeft: func(f *frame.Fields) Event {
		return &GroupLeft{Channel: channel(f)}
	},
	TypeGroupOpen: func(f *frame.Fields) Event {
		return &GroupOpen{User: f.String("user"), Channel: f.String("channel")}
	},
	TypeGroupClose: func(f *frame.Fields) Event {
		return &GroupClose{User: f.String("user"), Channel: f.String("channel")}
	},
	TypeGroupArchive: func(f *frame.Fields) Event {
		return &GroupArchive{Channel: f.String("channel")}
	},
	TypeGroupUnarchive: func(f *frame.Fields) Event {
		return &GroupUnarchive{Channel: f.String("channel")}
	},
	TypeGroupRename: func(f *frame.Fields) Event {
		return &GroupRename{Channel: channel(f)}
	},
	TypeGroupMarked: func(f *frame.Fields) Event {
		return &GroupMarked{Channel: f.String("channel"), Timestamp: f.String("ts")}
	},
	TypeGroupHistoryChanged: func(f *frame.Fields) Event {
		return &GroupHistoryChanged{Latest: f.String("latest"), Timestamp: f.String("ts"), EventTimestamp: f.String("event_ts")}
	},
	TypeFileCreated: func(f *frame.Fields) Event {
		return &FileCreated{File: file(f)}
	},
	TypeFileShared: func(f *frame.Fields) Event {
		return &FileShared{File: file(f)}
	},
	TypeFileUnshared: func(f *frame.Fields) Event {
		return &FileUnshared{File: file(f)}
	},
	TypeFilePublic: func(f *frame.Fields) Event {
		return &FilePublic{File: file(f)}
	},
	TypeFilePrivate: func(f *frame.Fields) Event {
		return &FilePrivate{File: f.String("file")}
	},
	TypeFileChange: func(f *frame.Fields) Event {
		return &FileChange{File: file(f)}
	},
	TypeFileDeleted: func(f *frame.Fields) Event {
		return &FileDeleted{FileID: f.String("file_id"), EventTimestamp: f.String("event_ts")}
	},
	TypeFileCommentAdded: func(f *frame.Fields) Event {
		return &FileCommentAdded{File: file(f), Comment: nested(f, "comment", entity.DecodeComment)}
	},
	TypeFileCommentEdited: func(f *frame.Fields) Event {
		return &FileCommentEdited{File: file(f), Comment: nested(f, "comment", entity.DecodeComment)}
	},
	TypeFileCommentDeleted: func(f *frame.Fields) Event {
		return &FileCommentDeleted{File: file(f), Comment: f.String("comment")}
	},
	TypePinAdded: func(f *frame.Fields) Event {
		return &PinAdded{
			User:           f.String("user"),
			ChannelID:      f.String("channel_id"),
			Item:           item(f),
			EventTimestamp: f.String("event_ts"),
		}
	},
	TypePinRemoved: func(f *frame.Fields) Event {
		return &PinRemoved{
			User:           f.String("user"),
			ChannelID:      f.String("channel_id"),
			Item:           item(f),
			HasPins:        f.Bool("has_pins"),
			EventTimestamp: f.String("event_ts"),
		}
	},
	TypePresenceChange: func(f *frame.Fields) Event {
		return &PresenceChange{User: f.String("user"), Presence: f.String("presence")}
	},
	TypeManualPresenceChange: func(f *frame.Fields) Event {
		return &ManualPresenceChange{Presence: f.String("presence")}
	},
	TypePrefChange: func(f *frame.Fields) Event {
		return &PrefChange{Name: f.String("name"), Value: f.String("value")}
	},
	TypeUserChange: func(f *frame.Fields) Event {
		return &UserChange{User: user(f)}
	},
	TypeTeamJoin: func(f *frame.Fields) Event {
		return &TeamJoin{User: user(f)}
	},
	TypeStarAdded: func(f *frame.Fields) Event {
		return &StarAdded{User: f.String("user"), Item: item(f), EventTimestamp: f.String("event_ts")}
	},
	TypeStarRemoved: func(f *frame.Fields) Event {
		return &StarRemoved{User: f.String("user"), Item: item(f), EventTimestamp: f.String("event_ts")}
	},
	TypeReactionAdded: func(f *frame.Fields) Event {
		return &ReactionAdded{
			User:           f.String("user"),
			Reaction:       f.String("name"),
			Item:           item(f),
			ItemUser:       f.OptString("item_user"),
			EventTimestamp: f.String("event_ts"),
		}
	},
	TypeReactionRemoved: func(f *frame.Fields) Event {
		return &ReactionRemoved{
			User:           f.String("user"),
			Reaction:       f.String("name"),
			Item:           item(f),
			ItemUser:       f.OptString("item_user"),
			EventTimestamp: f.String("event_ts"),
		}
	},
	TypeEmojiChanged: func(f *frame.Fields) Event {
		return &EmojiChanged{EventTimestamp: f.String("event_ts")}
	},
	TypeCommandsChanged: func(f *frame.Fields) Event {
		return &CommandsChanged{EventTimestamp: f.String("event_ts")}
	},
	TypeTeamPlanChange: func(f *frame.Fields) Event {
		return &TeamPlanChange{Plan: f.String("plan")}
	},
	TypeTeamPrefChange: func(f *frame.Fields) Event {
		return &TeamPrefChange{Name: f.String("name"), Value: f.Bool("value")}
	},
	TypeTeamRename: func(f *frame.Fields) Event {
		return &TeamRename{Name: f.String("name")}
	},
	TypeTeamDomainChange: func(f *frame.Fields) Event {
		return &TeamDomainChange{URL: f.String("url"), Domain: f.String("domain")}
	},
	TypeEmailDomainChanged: func(f *frame.Fields) Event {
		return &EmailDomainChanged{EmailDomain: f.String("email_domain"), EventTimestamp: f.String("event_ts")}
	},
	TypeBotAdded: func(f *frame.Fields) Event {
		return &BotAdded{Bot: nested(f, "bot", entity.DecodeBot)}
	},
	TypeBotChanged: func(f *frame.Fields) Event {
		return &BotChanged{Bot: nested(f, "bot", entity.DecodeBot)}
	},
	TypeAccountsChanged:      func(*frame.Fields) Event { return &AccountsChanged{} },
	TypeTeamMigrationStarted: func(*frame.Fields) Event { return &TeamMigrationStarted{} },
	TypeReconnectURL:         func(*frame.Fields) Event { return &ReconnectURL{} },
	TypeGoodbye:              func(*frame.Fields) Event { return &Goodbye{} },
	TypePong: func(f *frame.Fields) Event {
		return &Pong{ReplyTo: f.Int("reply_to")}
	},
}

// aliases maps misspelled "type" strings that have been seen on the wire to their catalog type
var aliases = map[string]string{
	"email_domain_changeed": TypeEmailDomainChanged,
}

// Types returns the sorted list of all recognized "type" strings
func Types() []string {
	types := make([]string, 0, len(decoders))
	for t := range decoders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DecodeBytes parses and decodes a raw frame. Invalid UTF-8 yields an error of kind
// rtmerr.KindUTF8, malformed JSON one of kind rtmerr.KindJSONParse.
func DecodeBytes(data []byte) (Event, error) {
	v, err := frame.Parse(data)
	if err != nil {
		return nil, rtmerr.From(err)
	}
	return Decode(v)
}

// Decode decodes a parsed frame into an event.
//
// Frames with a "type" field are matched against the known event types. Frames without
// one are confirmations of a message sent by the client, and decode to *MessageSent or
// *MessageError depending on their "ok" field. An unknown type, a missing field or a field
// of the wrong shape yields an error of kind rtmerr.KindJSONDecode, and no event.
func Decode(v frame.Value) (Event, error) {
	if v.Kind() != frame.Object {
		return nil, rtmerr.FromJSONDecode(v.Error("", "expected object, found %s", v.Kind()))
	}
	eventType, err := v.OptString("type")
	if err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	var decode decoder
	if eventType == nil {
		decode = decodeConfirmation
	} else if d, ok := decoders[resolve(*eventType)]; ok {
		decode = d
	} else {
		return nil, rtmerr.FromJSONDecode(v.Error("type", "unknown event type %q", *eventType))
	}
	f := v.Fields()
	ev := decode(f)
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return ev, nil
}

func resolve(eventType string) string {
	if t, ok := aliases[eventType]; ok {
		return t
	}
	return eventType
}

func decodeConfirmation(f *frame.Fields) Event {
	ok := f.Bool("ok")
	replyTo := f.Int("reply_to")
	if ok {
		return &MessageSent{
			ReplyTo:   replyTo,
			Timestamp: f.String("ts"),
			Text:      f.String("text"),
		}
	}
	errObj := f.Object("error")
	if f.Err() != nil {
		return nil
	}
	ef := errObj.Fields()
	ev := &MessageError{
		ReplyTo: replyTo,
		Code:    ef.Int("code"),
		Message: ef.String("msg"),
	}
	f.Fail(ef.Err())
	return ev
}

func decodeMessage(f *frame.Fields) Event {
	message, err := entity.DecodeMessage(f.Value())
	if err != nil {
		f.Fail(err)
		return nil
	}
	return &Message{Message: message}
}

func channel(f *frame.Fields) *entity.Channel {
	return nested(f, "channel", entity.DecodeChannel)
}

func file(f *frame.Fields) *entity.File {
	return nested(f, "file", entity.DecodeFile)
}

func user(f *frame.Fields) *entity.User {
	return nested(f, "user", entity.DecodeUser)
}

func item(f *frame.Fields) entity.Item {
	obj := f.Object("item")
	if f.Err() != nil {
		return nil
	}
	it, err := entity.DecodeItem(obj)
	if err != nil {
		f.Fail(err)
		return nil
	}
	return it
}

// nested decodes a required entity field
func nested[T any](f *frame.Fields, key string, decode func(frame.Value) (*T, error)) *T {
	obj := f.Object(key)
	if f.Err() != nil {
		return nil
	}
	e, err := decode(obj)
	if err != nil {
		f.Fail(err)
		return nil
	}
	return e
}
