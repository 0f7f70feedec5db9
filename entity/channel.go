// Package entity contains the Slack objects embedded in RTM events (messages, channels,
// users, files, comments, bots and pinned/starred/reacted items), and their decoders.
//
// All decoders take a frame.Value pointing at the object and return an *rtmerr.Error of
// kind rtmerr.KindJSONDecode if a required field is missing or a field has the wrong shape.
// Optional fields are pointers or slices and are nil if absent.
package entity

import (
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// Channel is a public channel, private group or direct message conversation.
// Which fields are present depends on the event the channel is embedded in.
type Channel struct {
	ID          string
	Name        *string
	Created     *int64
	Creator     *string
	User        *string // Other party of a direct message conversation
	IsChannel   *bool
	IsGroup     *bool
	IsIM        *bool
	IsArchived  *bool
	IsGeneral   *bool
	IsMember    *bool
	Members     []string
	Topic       *Topic
	Purpose     *Topic
	LastRead    *string
	UnreadCount *int64
}

// Topic is the topic or purpose of a channel
type Topic struct {
	Value   string
	Creator *string
	LastSet *int64
}

// DecodeChannel decodes a channel object
func DecodeChannel(v frame.Value) (*Channel, error) {
	f := v.Fields()
	ch := &Channel{
		ID:          f.String("id"),
		Name:        f.OptString("name"),
		Created:     f.OptInt("created"),
		Creator:     f.OptString("creator"),
		User:        f.OptString("user"),
		IsChannel:   f.OptBool("is_channel"),
		IsGroup:     f.OptBool("is_group"),
		IsIM:        f.OptBool("is_im"),
		IsArchived:  f.OptBool("is_archived"),
		IsGeneral:   f.OptBool("is_general"),
		IsMember:    f.OptBool("is_member"),
		Members:     f.OptStrings("members"),
		Topic:       decodeTopic(f, "topic"),
		Purpose:     decodeTopic(f, "purpose"),
		LastRead:    f.OptString("last_read"),
		UnreadCount: f.OptInt("unread_count"),
	}
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return ch, nil
}

func decodeTopic(f *frame.Fields, key string) *Topic {
	obj, ok := f.OptObject(key)
	if !ok {
		return nil
	}
	tf := obj.Fields()
	topic := &Topic{
		Value:   tf.String("value"),
		Creator: tf.OptString("creator"),
		LastSet: tf.OptInt("last_set"),
	}
	if err := tf.Err(); err != nil {
		f.Fail(err)
		return nil
	}
	return topic
}
