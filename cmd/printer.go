package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"heckel.io/rtmtail/config"
	"heckel.io/rtmtail/entity"
	"heckel.io/rtmtail/event"
	"heckel.io/rtmtail/rtmerr"
	"heckel.io/rtmtail/util"
)

const (
	typeColumnWidth = 22
	maxBriefText    = 120
)

// printer writes decoded events and decode errors to the output, one line each
type printer struct {
	w       io.Writer
	mode    config.OutputMode
	typ     *color.Color
	subtype *color.Color
	failure *color.Color
}

func newPrinter(w io.Writer, mode config.OutputMode) *printer {
	return &printer{
		w:       w,
		mode:    mode,
		typ:     color.New(color.FgCyan, color.Bold),
		subtype: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (p *printer) Print(ev event.Event) {
	label := p.typ.Sprint(pad(ev.Type()))
	if p.mode == config.Full {
		data, err := json.Marshal(ev)
		if err != nil {
			p.PrintError(rtmerr.FromJSONEncode(err))
			return
		}
		fmt.Fprintf(p.w, "%s %s\n", label, string(data))
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", label, p.summary(ev))
}

func (p *printer) PrintError(err error) {
	e := rtmerr.From(err)
	fmt.Fprintf(p.w, "%s %s\n", p.failure.Sprint(pad(e.Kind.String())), e.Error())
}

func (p *printer) summary(ev event.Event) string {
	switch e := ev.(type) {
	case *event.Message:
		return p.messageSummary(e.Message)
	case *event.UserTyping:
		return fmt.Sprintf("[%s] %s is typing", e.Channel, e.User)
	case *event.PresenceChange:
		return fmt.Sprintf("%s is %s", e.User, e.Presence)
	case *event.ManualPresenceChange:
		return fmt.Sprintf("now %s", e.Presence)
	case *event.ReactionAdded:
		return fmt.Sprintf("%s reacted with :%s: to %s", e.User, e.Reaction, e.Item.ItemType())
	case *event.ReactionRemoved:
		return fmt.Sprintf("%s removed :%s: from %s", e.User, e.Reaction, e.Item.ItemType())
	case *event.ChannelMarked:
		return fmt.Sprintf("[%s] read up to %s", e.Channel, e.Timestamp)
	case *event.ChannelCreated:
		return fmt.Sprintf("#%s (%s)", deref(e.Channel.Name), e.Channel.ID)
	case *event.UserChange:
		return fmt.Sprintf("%s (%s)", deref(e.User.Name), e.User.ID)
	case *event.TeamJoin:
		return fmt.Sprintf("%s (%s)", deref(e.User.Name), e.User.ID)
	case *event.PrefChange:
		return fmt.Sprintf("%s = %s", e.Name, e.Value)
	case *event.MessageSent:
		return fmt.Sprintf("#%d confirmed at %s", e.ReplyTo, e.Timestamp)
	case *event.MessageError:
		return fmt.Sprintf("#%d rejected with code %d: %s", e.ReplyTo, e.Code, e.Message)
	case *event.Pong:
		return fmt.Sprintf("#%d", e.ReplyTo)
	default:
		return ""
	}
}

func (p *printer) messageSummary(m entity.Message) string {
	var channel, user, text string
	switch msg := m.(type) {
	case *entity.StandardMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Text)
	case *entity.BotMessage:
		channel, user, text = deref(msg.Channel), deref(msg.BotID), deref(msg.Text)
	case *entity.MeMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Text)
	case *entity.MembershipMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Text)
	case *entity.UpdateMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Value)
	case *entity.ArchiveMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Text)
	case *entity.FileShareMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Text)
	case *entity.FileCommentMessage:
		channel, text = deref(msg.Channel), deref(msg.Text)
	case *entity.PinMessage:
		channel, user, text = deref(msg.Channel), deref(msg.User), deref(msg.Text)
	case *entity.ChangedMessage:
		channel, text = deref(msg.Channel), "edited"
		if msg.Message != nil {
			text += " " + msg.Message.Timestamp()
		}
	case *entity.DeletedMessage:
		channel, text = deref(msg.Channel), "deleted "+msg.DeletedTimestamp
	default:
		text = m.Timestamp()
	}
	line := strings.TrimSpace(fmt.Sprintf("[%s] %s: %s", channel, user, shorten(util.RemoveSlackMarkup(text))))
	if m.Subtype() != "" {
		return p.subtype.Sprint(m.Subtype()) + " " + line
	}
	return line
}

func pad(s string) string {
	if len(s) >= typeColumnWidth {
		return s
	}
	return s + strings.Repeat(" ", typeColumnWidth-len(s))
}

func shorten(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > maxBriefText {
		return string(r[:maxBriefText]) + "..."
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
