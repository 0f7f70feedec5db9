package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

func parse(t *testing.T, s string) frame.Value {
	v, err := frame.ParseString(s)
	require.Nil(t, err)
	return v
}

func TestDecodeMessage_Standard(t *testing.T) {
	m, err := DecodeMessage(parse(t, `{"type":"message","ts":"1234567890.218332","user":"U1","text":"Hello world","channel":"C1"}`))
	require.Nil(t, err)
	msg, ok := m.(*StandardMessage)
	require.True(t, ok)
	assert.Equal(t, "", msg.Subtype())
	assert.Equal(t, "1234567890.218332", msg.Timestamp())
	assert.Equal(t, "Hello world", *msg.Text)
	assert.Equal(t, "U1", *msg.User)
	assert.Equal(t, "C1", *msg.Channel)
	assert.Nil(t, msg.IsStarred)
	assert.Nil(t, msg.PinnedTo)
	assert.Nil(t, msg.Reactions)
	assert.Nil(t, msg.Edited)
	assert.Nil(t, msg.Attachments)
	assert.Nil(t, msg.ThreadTimestamp)
}

func TestDecodeMessage_StandardExtended(t *testing.T) {
	m, err := DecodeMessage(parse(t, `{
		"type": "message",
		"ts": "1358546515.000008",
		"user": "U2147483896",
		"text": "Hello",
		"channel": "C2147483705",
		"is_starred": false,
		"pinned_to": ["C024BE7LT"],
		"reactions": [{"name": "astonished", "count": 3, "users": ["U1", "U2", "U3"]}],
		"edited": {"user": "U2147483697", "ts": "1355517524.000000"},
		"attachments": [{"fallback": "Required plain-text summary", "color": "#36a64f", "title": "Slack API Documentation"}]
	}`))
	require.Nil(t, err)
	msg := m.(*StandardMessage)
	require.NotNil(t, msg.IsStarred)
	assert.False(t, *msg.IsStarred)
	assert.Equal(t, []string{"C024BE7LT"}, msg.PinnedTo)
	require.Len(t, msg.Reactions, 1)
	assert.Equal(t, "astonished", msg.Reactions[0].Name)
	assert.Equal(t, 3, msg.Reactions[0].Count)
	require.NotNil(t, msg.Edited)
	assert.Equal(t, "U2147483697", msg.Edited.User)
	assert.Equal(t, "1355517524.000000", msg.Edited.Timestamp)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "#36a64f", msg.Attachments[0].Color)
	assert.Equal(t, "Slack API Documentation", msg.Attachments[0].Title)
}

func TestDecodeMessage_MissingTimestamp(t *testing.T) {
	m, err := DecodeMessage(parse(t, `{"type":"message","text":"no ts"}`))
	assert.Nil(t, m)
	require.NotNil(t, err)
	assert.True(t, rtmerr.Is(err, rtmerr.KindJSONDecode))
	assert.Contains(t, err.Error(), `field "ts": missing required field`)
}

func TestDecodeMessage_BadAttachments(t *testing.T) {
	_, err := DecodeMessage(parse(t, `{"ts":"1.0","attachments":"nope"}`))
	require.NotNil(t, err)
	assert.True(t, rtmerr.Is(err, rtmerr.KindJSONDecode))
	assert.Contains(t, err.Error(), `"attachments"`)
}

func TestDecodeMessage_Subtypes(t *testing.T) {
	tests := []struct {
		frame   string
		subtype string
		check   func(t *testing.T, m Message)
	}{
		{`{"subtype":"bot_message","ts":"1.0","bot_id":"B1","username":"github","icons":{"image_48":"x.png"}}`, SubtypeBotMessage, func(t *testing.T, m Message) {
			bm := m.(*BotMessage)
			assert.Equal(t, "B1", *bm.BotID)
			assert.Equal(t, "github", *bm.Username)
			assert.Equal(t, "x.png", bm.Icons["image_48"])
		}},
		{`{"subtype":"me_message","ts":"1.0","user":"U1","text":"waves"}`, SubtypeMeMessage, func(t *testing.T, m Message) {
			assert.Equal(t, "waves", *m.(*MeMessage).Text)
		}},
		{`{"subtype":"message_deleted","ts":"1.0","hidden":true,"deleted_ts":"0.5"}`, SubtypeMessageDeleted, func(t *testing.T, m Message) {
			dm := m.(*DeletedMessage)
			assert.Equal(t, "0.5", dm.DeletedTimestamp)
			assert.True(t, *dm.Hidden)
		}},
		{`{"subtype":"channel_join","ts":"1.0","user":"U1","inviter":"U2"}`, SubtypeChannelJoin, func(t *testing.T, m Message) {
			assert.Equal(t, "U2", *m.(*MembershipMessage).Inviter)
		}},
		{`{"subtype":"group_leave","ts":"1.0","user":"U1"}`, SubtypeGroupLeave, func(t *testing.T, m Message) {
			assert.Nil(t, m.(*MembershipMessage).Inviter)
		}},
		{`{"subtype":"channel_topic","ts":"1.0","user":"U1","topic":"lunch"}`, SubtypeChannelTopic, func(t *testing.T, m Message) {
			assert.Equal(t, "lunch", *m.(*UpdateMessage).Value)
		}},
		{`{"subtype":"group_purpose","ts":"1.0","purpose":"plans"}`, SubtypeGroupPurpose, func(t *testing.T, m Message) {
			assert.Equal(t, "plans", *m.(*UpdateMessage).Value)
		}},
		{`{"subtype":"channel_name","ts":"1.0","old_name":"a","name":"b"}`, SubtypeChannelName, func(t *testing.T, m Message) {
			um := m.(*UpdateMessage)
			assert.Equal(t, "a", *um.OldName)
			assert.Equal(t, "b", *um.Value)
		}},
		{`{"subtype":"channel_archive","ts":"1.0","members":["U1","U2"]}`, SubtypeChannelArchive, func(t *testing.T, m Message) {
			assert.Equal(t, []string{"U1", "U2"}, m.(*ArchiveMessage).Members)
		}},
		{`{"subtype":"group_unarchive","ts":"1.0"}`, SubtypeGroupUnarchive, func(t *testing.T, m Message) {
			assert.Nil(t, m.(*ArchiveMessage).Members)
		}},
		{`{"subtype":"file_share","ts":"1.0","upload":true,"file":{"id":"F1","name":"a.txt"}}`, SubtypeFileShare, func(t *testing.T, m Message) {
			fm := m.(*FileShareMessage)
			assert.True(t, *fm.Upload)
			assert.Equal(t, "F1", fm.File.ID)
		}},
		{`{"subtype":"file_comment","ts":"1.0","file":{"id":"F1"},"comment":{"id":"Fc1","comment":"nice"}}`, SubtypeFileComment, func(t *testing.T, m Message) {
			fm := m.(*FileCommentMessage)
			assert.Equal(t, "F1", fm.File.ID)
			assert.Equal(t, "nice", *fm.Comment.Comment)
		}},
		{`{"subtype":"pinned_item","ts":"1.0","item_type":"F"}`, SubtypePinnedItem, func(t *testing.T, m Message) {
			assert.Equal(t, "F", *m.(*PinMessage).ItemType)
		}},
		{`{"subtype":"unpinned_item","ts":"1.0"}`, SubtypeUnpinnedItem, func(t *testing.T, m Message) {
			assert.Nil(t, m.(*PinMessage).ItemType)
		}},
	}
	for _, test := range tests {
		t.Run(test.subtype, func(t *testing.T) {
			m, err := DecodeMessage(parse(t, test.frame))
			require.Nil(t, err)
			assert.Equal(t, test.subtype, m.Subtype())
			assert.Equal(t, "1.0", m.Timestamp())
			test.check(t, m)
		})
	}
}

func TestDecodeMessage_Changed(t *testing.T) {
	m, err := DecodeMessage(parse(t, `{
		"type": "message",
		"subtype": "message_changed",
		"hidden": true,
		"channel": "C1",
		"ts": "1358878755.000001",
		"message": {"type": "message", "user": "U1", "text": "Hello, world!", "ts": "1358878749.000002", "edited": {"user": "U1", "ts": "1358878755.000001"}},
		"previous_message": {"type": "message", "user": "U1", "text": "Helo, world", "ts": "1358878749.000002"}
	}`))
	require.Nil(t, err)
	cm := m.(*ChangedMessage)
	inner := cm.Message.(*StandardMessage)
	assert.Equal(t, "Hello, world!", *inner.Text)
	assert.Equal(t, "1358878755.000001", inner.Edited.Timestamp)
	assert.Equal(t, "Helo, world", *cm.PreviousMessage.(*StandardMessage).Text)
}

func TestDecodeMessage_ChangedErrors(t *testing.T) {
	_, err := DecodeMessage(parse(t, `{"subtype":"message_changed","ts":"1.0"}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `field "message": missing required field`)

	_, err = DecodeMessage(parse(t, `{"subtype":"message_changed","ts":"1.0","message":{"text":"x"}}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `field "message.ts": missing required field`)
}

func TestDecodeMessage_UnknownSubtype(t *testing.T) {
	_, err := DecodeMessage(parse(t, `{"subtype":"huddle_thread","ts":"1.0"}`))
	require.NotNil(t, err)
	assert.True(t, rtmerr.Is(err, rtmerr.KindJSONDecode))
	assert.Contains(t, err.Error(), "huddle_thread")
}

func TestDecodeMessage_SubtypeWrongShape(t *testing.T) {
	_, err := DecodeMessage(parse(t, `{"subtype":7,"ts":"1.0"}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `field "subtype": expected string, found number`)
}

func TestDecodeChannel(t *testing.T) {
	ch, err := DecodeChannel(parse(t, `{
		"id": "C024BE91L",
		"name": "fun",
		"created": 1360782804,
		"creator": "U024BE7LH",
		"is_channel": true,
		"members": ["U1"],
		"topic": {"value": "Fun times", "creator": "U024BE7LV", "last_set": 1369677212},
		"unread_count": 0
	}`))
	require.Nil(t, err)
	assert.Equal(t, "C024BE91L", ch.ID)
	assert.Equal(t, "fun", *ch.Name)
	assert.Equal(t, int64(1360782804), *ch.Created)
	assert.True(t, *ch.IsChannel)
	assert.Nil(t, ch.IsIM)
	assert.Equal(t, "Fun times", ch.Topic.Value)
	assert.Equal(t, int64(1369677212), *ch.Topic.LastSet)
	assert.Nil(t, ch.Purpose)
	assert.Equal(t, int64(0), *ch.UnreadCount)
}

func TestDecodeChannel_BadTopic(t *testing.T) {
	_, err := DecodeChannel(parse(t, `{"id":"C1","topic":{"creator":"U1"}}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `field "topic.value": missing required field`)
}

func TestDecodeUser(t *testing.T) {
	u, err := DecodeUser(parse(t, `{"id":"U1","name":"phil","is_bot":false,"profile":{"real_name":"Phil","email":"phil@example.com"}}`))
	require.Nil(t, err)
	assert.Equal(t, "U1", u.ID)
	assert.Equal(t, "phil", *u.Name)
	assert.False(t, *u.IsBot)
	assert.Equal(t, "phil@example.com", *u.Profile.Email)
	assert.Nil(t, u.Profile.Phone)

	_, err = DecodeUser(parse(t, `{"id":"U1","profile":{"email":42}}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `field "profile.email": expected string, found number`)
}

func TestDecodeFileAndComment(t *testing.T) {
	f, err := DecodeFile(parse(t, `{"id":"F1","name":"a.txt","size":1024,"is_public":true,"channels":["C1"]}`))
	require.Nil(t, err)
	assert.Equal(t, int64(1024), *f.Size)
	assert.True(t, *f.IsPublic)
	assert.Equal(t, []string{"C1"}, f.Channels)
	assert.Nil(t, f.Groups)

	_, err = DecodeFile(parse(t, `{"id":"F1","size":1.5}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "expected integer")

	c, err := DecodeComment(parse(t, `{"id":"Fc1","user":"U1","comment":"hi"}`))
	require.Nil(t, err)
	assert.Equal(t, "hi", *c.Comment)
}

func TestDecodeBot(t *testing.T) {
	b, err := DecodeBot(parse(t, `{"id":"B1","name":"bot","icons":{"image_48":"a.png"}}`))
	require.Nil(t, err)
	assert.Equal(t, "bot", *b.Name)
	assert.Equal(t, "a.png", b.Icons["image_48"])
	assert.Nil(t, b.AppID)

	_, err = DecodeBot(parse(t, `{"name":"bot"}`))
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), `field "id"`)
}

func TestDecodeItem(t *testing.T) {
	item, err := DecodeItem(parse(t, `{"type":"message","channel":"C1","ts":"1.0"}`))
	require.Nil(t, err)
	mi := item.(*MessageItem)
	assert.Equal(t, ItemTypeMessage, mi.ItemType())
	assert.Equal(t, "C1", mi.Channel)
	assert.Equal(t, "1.0", *mi.Timestamp)
	assert.Nil(t, mi.Message)

	item, err = DecodeItem(parse(t, `{"type":"file","file":"F1"}`))
	require.Nil(t, err)
	assert.Equal(t, "F1", item.(*FileItem).FileID)
	assert.Nil(t, item.(*FileItem).File)

	item, err = DecodeItem(parse(t, `{"type":"file","file":{"id":"F2","name":"x"}}`))
	require.Nil(t, err)
	assert.Equal(t, "F2", item.(*FileItem).FileID)
	assert.Equal(t, "x", *item.(*FileItem).File.Name)

	item, err = DecodeItem(parse(t, `{"type":"file_comment","file":"F1","file_comment":{"id":"Fc1","comment":"c"}}`))
	require.Nil(t, err)
	fci := item.(*FileCommentItem)
	assert.Equal(t, "F1", *fci.FileID)
	assert.Equal(t, "Fc1", fci.CommentID)
	assert.Equal(t, "c", *fci.Comment.Comment)

	item, err = DecodeItem(parse(t, `{"type":"im","channel":"D1"}`))
	require.Nil(t, err)
	assert.Equal(t, ItemTypeIM, item.ItemType())
	assert.Equal(t, "D1", item.(*ConversationItem).Channel)
}

func TestDecodeItem_Errors(t *testing.T) {
	tests := map[string]string{
		`{"channel":"C1"}`:                                  `field "type": missing required field`,
		`{"type":"planet"}`:                                 `unknown item type "planet"`,
		`{"type":"file"}`:                                   `field "file": missing required field`,
		`{"type":"file","file":5}`:                          `field "file": expected string or object, found number`,
		`{"type":"file_comment","file":"F1"}`:               `field "file_comment": missing required field`,
		`{"type":"message","channel":"C1","message":{}}`:    `field "message.ts": missing required field`,
		`{"type":"channel"}`:                                `field "channel": missing required field`,
		`{"type":"file","file":{"name":"no id"}}`:           `field "file.id": missing required field`,
	}
	for input, expected := range tests {
		_, err := DecodeItem(parse(t, input))
		require.NotNil(t, err, input)
		assert.True(t, rtmerr.Is(err, rtmerr.KindJSONDecode), input)
		assert.Contains(t, err.Error(), expected, input)
	}
}
