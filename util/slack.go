package util

import (
	"regexp"
	"strings"
)

var (
	mrkdwnLinkRegex    = regexp.MustCompile(`<((?:https?|mailto):[^|>\s]+)(?:\|([^>]+))?>`)
	mrkdwnChannelRegex = regexp.MustCompile(`<#(C[A-Z0-9]+)(?:\|([^>]*))?>`)
	mrkdwnUserRegex    = regexp.MustCompile(`<@([UW][A-Z0-9]+)(?:\|([^>]*))?>`)
	mrkdwnSpecialRegex = regexp.MustCompile(`<!(here|channel|everyone)(?:\|[^>]*)?>`)
	mrkdwnCodeRegex    = regexp.MustCompile("`{1,3}([^`]+)`{1,3}")
	mrkdwnEntities     = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">")
)

// RemoveSlackMarkup turns Slack's mrkdwn back into plain text. Links are replaced by their
// label (or the URL if there is none), channel mentions become #name, labelled user mentions
// @name, unlabelled user mentions are dropped, and HTML entities are unescaped.
func RemoveSlackMarkup(text string) string {
	text = mrkdwnLinkRegex.ReplaceAllStringFunc(text, func(s string) string {
		m := mrkdwnLinkRegex.FindStringSubmatch(s)
		if m[2] != "" {
			return m[2]
		}
		return strings.TrimPrefix(m[1], "mailto:")
	})
	text = mrkdwnChannelRegex.ReplaceAllStringFunc(text, func(s string) string {
		m := mrkdwnChannelRegex.FindStringSubmatch(s)
		if m[2] != "" {
			return "#" + m[2]
		}
		return "#" + m[1]
	})
	text = mrkdwnUserRegex.ReplaceAllStringFunc(text, func(s string) string {
		if m := mrkdwnUserRegex.FindStringSubmatch(s); m[2] != "" {
			return "@" + m[2]
		}
		return ""
	})
	text = mrkdwnSpecialRegex.ReplaceAllString(text, "@$1")
	text = mrkdwnCodeRegex.ReplaceAllString(text, "$1")
	return mrkdwnEntities.Replace(text)
}
