package entity

import (
	"github.com/slack-go/slack"
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// Message subtypes, as found in the "subtype" field of a message. A message
// without a subtype is a *StandardMessage.
const (
	SubtypeBotMessage       = "bot_message"
	SubtypeMeMessage        = "me_message"
	SubtypeMessageChanged   = "message_changed"
	SubtypeMessageDeleted   = "message_deleted"
	SubtypeChannelJoin      = "channel_join"
	SubtypeChannelLeave     = "channel_leave"
	SubtypeChannelTopic     = "channel_topic"
	SubtypeChannelPurpose   = "channel_purpose"
	SubtypeChannelName      = "channel_name"
	SubtypeChannelArchive   = "channel_archive"
	SubtypeChannelUnarchive = "channel_unarchive"
	SubtypeGroupJoin        = "group_join"
	SubtypeGroupLeave       = "group_leave"
	SubtypeGroupTopic       = "group_topic"
	SubtypeGroupPurpose     = "group_purpose"
	SubtypeGroupName        = "group_name"
	SubtypeGroupArchive     = "group_archive"
	SubtypeGroupUnarchive   = "group_unarchive"
	SubtypeFileShare        = "file_share"
	SubtypeFileMention      = "file_mention"
	SubtypeFileComment      = "file_comment"
	SubtypePinnedItem       = "pinned_item"
	SubtypeUnpinnedItem     = "unpinned_item"
)

// Message is a chat message. It is one of the *XMessage types in this package.
type Message interface {
	// Subtype returns the message subtype, or an empty string for a standard message
	Subtype() string
	// Timestamp returns the message timestamp, which doubles as its ID within a channel
	Timestamp() string
	isMessage()
}

// StandardMessage is a regular message sent by a user
type StandardMessage struct {
	TS              string
	Channel         *string
	User            *string
	Text            *string
	ThreadTimestamp *string
	IsStarred       *bool
	PinnedTo        []string
	Reactions       []slack.ItemReaction
	Edited          *slack.Edited
	Attachments     []slack.Attachment
}

// BotMessage is a message sent by an integration
type BotMessage struct {
	TS          string
	Channel     *string
	Text        *string
	BotID       *string
	Username    *string
	Icons       map[string]string
	Attachments []slack.Attachment
}

// MeMessage is a /me message
type MeMessage struct {
	TS      string
	Channel *string
	User    *string
	Text    *string
}

// ChangedMessage announces that a message was edited. Message is the new version.
type ChangedMessage struct {
	TS              string
	Channel         *string
	Hidden          *bool
	EventTimestamp  *string
	Message         Message
	PreviousMessage Message
}

// DeletedMessage announces that a message was deleted
type DeletedMessage struct {
	TS               string
	Channel          *string
	Hidden           *bool
	EventTimestamp   *string
	DeletedTimestamp string
}

// MembershipMessage announces that a user joined or left a channel or group
type MembershipMessage struct {
	Kind    string // SubtypeChannelJoin, SubtypeChannelLeave, SubtypeGroupJoin or SubtypeGroupLeave
	TS      string
	Channel *string
	User    *string
	Text    *string
	Inviter *string
}

// UpdateMessage announces a changed topic, purpose or name of a channel or group
type UpdateMessage struct {
	Kind    string // Any of the *_topic, *_purpose or *_name subtypes
	TS      string
	Channel *string
	User    *string
	Text    *string
	Value   *string // New topic, purpose or name
	OldName *string // Only set for name changes
}

// ArchiveMessage announces that a channel or group was archived or unarchived
type ArchiveMessage struct {
	Kind    string // Any of the *_archive or *_unarchive subtypes
	TS      string
	Channel *string
	User    *string
	Text    *string
	Members []string
}

// FileShareMessage announces a shared or mentioned file
type FileShareMessage struct {
	Kind    string // SubtypeFileShare or SubtypeFileMention
	TS      string
	Channel *string
	User    *string
	Text    *string
	Upload  *bool
	File    *File
}

// FileCommentMessage announces a comment on a file
type FileCommentMessage struct {
	TS      string
	Channel *string
	Text    *string
	File    *File
	Comment *Comment
}

// PinMessage announces that an item was pinned or unpinned
type PinMessage struct {
	Kind     string // SubtypePinnedItem or SubtypeUnpinnedItem
	TS       string
	Channel  *string
	User     *string
	Text     *string
	ItemType *string
}

func (m *StandardMessage) Subtype() string    { return "" }
func (m *BotMessage) Subtype() string         { return SubtypeBotMessage }
func (m *MeMessage) Subtype() string          { return SubtypeMeMessage }
func (m *ChangedMessage) Subtype() string     { return SubtypeMessageChanged }
func (m *DeletedMessage) Subtype() string     { return SubtypeMessageDeleted }
func (m *MembershipMessage) Subtype() string  { return m.Kind }
func (m *UpdateMessage) Subtype() string      { return m.Kind }
func (m *ArchiveMessage) Subtype() string     { return m.Kind }
func (m *FileShareMessage) Subtype() string   { return m.Kind }
func (m *FileCommentMessage) Subtype() string { return SubtypeFileComment }
func (m *PinMessage) Subtype() string         { return m.Kind }

func (m *StandardMessage) Timestamp() string    { return m.TS }
func (m *BotMessage) Timestamp() string         { return m.TS }
func (m *MeMessage) Timestamp() string          { return m.TS }
func (m *ChangedMessage) Timestamp() string     { return m.TS }
func (m *DeletedMessage) Timestamp() string     { return m.TS }
func (m *MembershipMessage) Timestamp() string  { return m.TS }
func (m *UpdateMessage) Timestamp() string      { return m.TS }
func (m *ArchiveMessage) Timestamp() string     { return m.TS }
func (m *FileShareMessage) Timestamp() string   { return m.TS }
func (m *FileCommentMessage) Timestamp() string { return m.TS }
func (m *PinMessage) Timestamp() string         { return m.TS }

func (*StandardMessage) isMessage()    {}
func (*BotMessage) isMessage()         {}
func (*MeMessage) isMessage()          {}
func (*ChangedMessage) isMessage()     {}
func (*DeletedMessage) isMessage()     {}
func (*MembershipMessage) isMessage()  {}
func (*UpdateMessage) isMessage()      {}
func (*ArchiveMessage) isMessage()     {}
func (*FileShareMessage) isMessage()   {}
func (*FileCommentMessage) isMessage() {}
func (*PinMessage) isMessage()         {}

// updateValueKeys maps the update subtypes to the field holding the new value
var updateValueKeys = map[string]string{
	SubtypeChannelTopic:   "topic",
	SubtypeGroupTopic:     "topic",
	SubtypeChannelPurpose: "purpose",
	SubtypeGroupPurpose:   "purpose",
	SubtypeChannelName:    "name",
	SubtypeGroupName:      "name",
}

// DecodeMessage decodes a message object, dispatching on its optional "subtype" field.
// An unknown subtype is a decode error.
func DecodeMessage(v frame.Value) (Message, error) {
	subtype, err := v.OptString("subtype")
	if err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	f := v.Fields()
	var message Message
	if subtype == nil {
		message = decodeStandardMessage(f)
	} else {
		switch *subtype {
		case SubtypeBotMessage:
			message = &BotMessage{
				TS:          f.String("ts"),
				Channel:     f.OptString("channel"),
				Text:        f.OptString("text"),
				BotID:       f.OptString("bot_id"),
				Username:    f.OptString("username"),
				Icons:       f.StringMap("icons"),
				Attachments: decodeAttachments(f),
			}
		case SubtypeMeMessage:
			message = &MeMessage{
				TS:      f.String("ts"),
				Channel: f.OptString("channel"),
				User:    f.OptString("user"),
				Text:    f.OptString("text"),
			}
		case SubtypeMessageChanged:
			message = &ChangedMessage{
				TS:              f.String("ts"),
				Channel:         f.OptString("channel"),
				Hidden:          f.OptBool("hidden"),
				EventTimestamp:  f.OptString("event_ts"),
				Message:         decodeNestedMessage(f, "message", true),
				PreviousMessage: decodeNestedMessage(f, "previous_message", false),
			}
		case SubtypeMessageDeleted:
			message = &DeletedMessage{
				TS:               f.String("ts"),
				Channel:          f.OptString("channel"),
				Hidden:           f.OptBool("hidden"),
				EventTimestamp:   f.OptString("event_ts"),
				DeletedTimestamp: f.String("deleted_ts"),
			}
		case SubtypeChannelJoin, SubtypeChannelLeave, SubtypeGroupJoin, SubtypeGroupLeave:
			message = &MembershipMessage{
				Kind:    *subtype,
				TS:      f.String("ts"),
				Channel: f.OptString("channel"),
				User:    f.OptString("user"),
				Text:    f.OptString("text"),
				Inviter: f.OptString("inviter"),
			}
		case SubtypeChannelTopic, SubtypeGroupTopic, SubtypeChannelPurpose, SubtypeGroupPurpose, SubtypeChannelName, SubtypeGroupName:
			message = &UpdateMessage{
				Kind:    *subtype,
				TS:      f.String("ts"),
				Channel: f.OptString("channel"),
				User:    f.OptString("user"),
				Text:    f.OptString("text"),
				Value:   f.OptString(updateValueKeys[*subtype]),
				OldName: f.OptString("old_name"),
			}
		case SubtypeChannelArchive, SubtypeChannelUnarchive, SubtypeGroupArchive, SubtypeGroupUnarchive:
			message = &ArchiveMessage{
				Kind:    *subtype,
				TS:      f.String("ts"),
				Channel: f.OptString("channel"),
				User:    f.OptString("user"),
				Text:    f.OptString("text"),
				Members: f.OptStrings("members"),
			}
		case SubtypeFileShare, SubtypeFileMention:
			message = &FileShareMessage{
				Kind:    *subtype,
				TS:      f.String("ts"),
				Channel: f.OptString("channel"),
				User:    f.OptString("user"),
				Text:    f.OptString("text"),
				Upload:  f.OptBool("upload"),
				File:    decodeNestedFile(f, "file"),
			}
		case SubtypeFileComment:
			message = &FileCommentMessage{
				TS:      f.String("ts"),
				Channel: f.OptString("channel"),
				Text:    f.OptString("text"),
				File:    decodeNestedFile(f, "file"),
				Comment: decodeNestedComment(f, "comment"),
			}
		case SubtypePinnedItem, SubtypeUnpinnedItem:
			message = &PinMessage{
				Kind:     *subtype,
				TS:       f.String("ts"),
				Channel:  f.OptString("channel"),
				User:     f.OptString("user"),
				Text:     f.OptString("text"),
				ItemType: f.OptString("item_type"),
			}
		default:
			return nil, rtmerr.FromJSONDecode(v.Error("subtype", "unknown message subtype %q", *subtype))
		}
	}
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return message, nil
}

func decodeStandardMessage(f *frame.Fields) *StandardMessage {
	m := &StandardMessage{
		TS:              f.String("ts"),
		Channel:         f.OptString("channel"),
		User:            f.OptString("user"),
		Text:            f.OptString("text"),
		ThreadTimestamp: f.OptString("thread_ts"),
		IsStarred:       f.OptBool("is_starred"),
		PinnedTo:        f.OptStrings("pinned_to"),
		Attachments:     decodeAttachments(f),
	}
	f.Unmarshal("reactions", &m.Reactions)
	var edited slack.Edited
	if f.Unmarshal("edited", &edited) {
		m.Edited = &edited
	}
	return m
}

func decodeAttachments(f *frame.Fields) []slack.Attachment {
	var attachments []slack.Attachment
	f.Unmarshal("attachments", &attachments)
	return attachments
}

func decodeNestedMessage(f *frame.Fields, key string, required bool) Message {
	var obj frame.Value
	if required {
		obj = f.Object(key)
	} else if o, ok := f.OptObject(key); ok {
		obj = o
	} else {
		return nil
	}
	if f.Err() != nil {
		return nil
	}
	message, err := DecodeMessage(obj)
	f.Fail(err)
	return message
}

func decodeNestedFile(f *frame.Fields, key string) *File {
	obj, ok := f.OptObject(key)
	if !ok {
		return nil
	}
	file, err := DecodeFile(obj)
	f.Fail(err)
	return file
}

func decodeNestedComment(f *frame.Fields, key string) *Comment {
	obj, ok := f.OptObject(key)
	if !ok {
		return nil
	}
	comment, err := DecodeComment(obj)
	f.Fail(err)
	return comment
}
