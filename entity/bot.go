package entity

import (
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// Bot is a bot integration
type Bot struct {
	ID      string
	AppID   *string
	Name    *string
	Deleted *bool
	Icons   map[string]string // e.g. "image_48" -> URL
}

// DecodeBot decodes a bot object
func DecodeBot(v frame.Value) (*Bot, error) {
	f := v.Fields()
	bot := &Bot{
		ID:      f.String("id"),
		AppID:   f.OptString("app_id"),
		Name:    f.OptString("name"),
		Deleted: f.OptBool("deleted"),
		Icons:   f.StringMap("icons"),
	}
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return bot, nil
}
