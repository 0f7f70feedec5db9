// Package event decodes RTM frames into typed events. Every frame yields exactly one Event
// or an *rtmerr.Error; see Decode.
package event

import (
	"heckel.io/rtmtail/entity"
)

// Event type strings, as found in the "type" field of a frame
const (
	TypeHello                 = "hello"
	TypeMessage               = "message"
	TypeUserTyping            = "user_typing"
	TypeChannelMarked         = "channel_marked"
	TypeChannelCreated        = "channel_created"
	TypeChannelJoined         = "channel_joined"
	TypeChannelLeft           = "channel_left"
	TypeChannelDeleted        = "channel_deleted"
	TypeChannelRename         = "channel_rename"
	TypeChannelArchive        = "channel_archive"
	TypeChannelUnarchive      = "channel_unarchive"
	TypeChannelHistoryChanged = "channel_history_changed"
	TypeImCreated             = "im_created"
	TypeImOpen                = "im_open"
	TypeImClose               = "im_close"
	TypeImMarked              = "im_marked"
	TypeImHistoryChanged      = "im_history_changed"
	TypeGroupJoined           = "group_joined"
	TypeGroupLeft             = "group_left"
	TypeGroupOpen             = "group_open"
	TypeGroupClose            = "group_close"
	TypeGroupArchive          = "group_archive"
	TypeGroupUnarchive        = "group_unarchive"
	TypeGroupRename           = "group_rename"
	TypeGroupMarked           = "group_marked"
	TypeGroupHistoryChanged   = "group_history_changed"
	TypeFileCreated           = "file_created"
	TypeFileShared            = "file_shared"
	TypeFileUnshared          = "file_unshared"
	TypeFilePublic            = "file_public"
	TypeFilePrivate           = "file_private"
	TypeFileChange            = "file_change"
	TypeFileDeleted           = "file_deleted"
	TypeFileCommentAdded      = "file_comment_added"
	TypeFileCommentEdited     = "file_comment_edited"
	TypeFileCommentDeleted    = "file_comment_deleted"
	TypePinAdded              = "pin_added"
	TypePinRemoved            = "pin_removed"
	TypePresenceChange        = "presence_change"
	TypeManualPresenceChange  = "manual_presence_change"
	TypePrefChange            = "pref_change"
	TypeUserChange            = "user_change"
	TypeTeamJoin              = "team_join"
	TypeStarAdded             = "star_added"
	TypeStarRemoved           = "star_removed"
	TypeReactionAdded         = "reaction_added"
	TypeReactionRemoved       = "reaction_removed"
	TypeEmojiChanged          = "emoji_changed"
	TypeCommandsChanged       = "commands_changed"
	TypeTeamPlanChange        = "team_plan_change"
	TypeTeamPrefChange        = "team_pref_change"
	TypeTeamRename            = "team_rename"
	TypeTeamDomainChange      = "team_domain_change"
	TypeEmailDomainChanged    = "email_domain_changed"
	TypeBotAdded              = "bot_added"
	TypeBotChanged            = "bot_changed"
	TypeAccountsChanged       = "accounts_changed"
	TypeTeamMigrationStarted  = "team_migration_started"
	TypeReconnectURL          = "reconnect_url"
	TypeGoodbye               = "goodbye"
	TypePong                  = "pong"
)

// Pseudo types of the two confirmation events. Confirmation frames have no "type" field,
// so these never match a frame; they only identify the events.
const (
	TypeMessageSent  = "message_sent"
	TypeMessageError = "message_error"
)

// Event is a single decoded RTM event. It is one of the pointer types in this package.
type Event interface {
	Type() string
	isEvent()
}

// Hello is the first event sent after connecting
type Hello struct{}

// Message wraps a chat message of any subtype
type Message struct {
	Message entity.Message
}

// UserTyping is sent when a user is typing in a channel
type UserTyping struct {
	Channel string
	User    string
}

// ChannelMarked is sent when the read cursor of a channel moved
type ChannelMarked struct {
	Channel   string
	Timestamp string
}

// ChannelCreated is sent when a channel was created
type ChannelCreated struct {
	Channel *entity.Channel
}

// ChannelJoined is sent when the connected user joined a channel
type ChannelJoined struct {
	Channel *entity.Channel
}

// ChannelLeft is sent when the connected user left a channel
type ChannelLeft struct {
	Channel string
}

// ChannelDeleted is sent when a channel was deleted
type ChannelDeleted struct {
	Channel string
}

// ChannelRename is sent when a channel was renamed
type ChannelRename struct {
	Channel *entity.Channel
}

// ChannelArchive is sent when a channel was archived
type ChannelArchive struct {
	Channel string
	User    string
}

// ChannelUnarchive is sent when a channel was unarchived
type ChannelUnarchive struct {
	Channel string
	User    string
}

// ChannelHistoryChanged is sent when bulk changes were made to a channel's history
type ChannelHistoryChanged struct {
	Latest         string
	Timestamp      string
	EventTimestamp string
}

// ImCreated is sent when a direct message conversation was opened for the first time
type ImCreated struct {
	User    string
	Channel *entity.Channel
}

// ImOpen is sent when a direct message conversation was opened
type ImOpen struct {
	User    string
	Channel string
}

// ImClose is sent when a direct message conversation was closed
type ImClose struct {
	User    string
	Channel string
}

// ImMarked is sent when the read cursor of a direct message conversation moved
type ImMarked struct {
	Channel   string
	Timestamp string
}

// ImHistoryChanged is sent when bulk changes were made to a direct message history
type ImHistoryChanged struct {
	Latest         string
	Timestamp      string
	EventTimestamp string
}

// GroupJoined is sent when the connected user joined a private group
type GroupJoined struct {
	Channel *entity.Channel
}

// GroupLeft is sent when the connected user left a private group
type GroupLeft struct {
	Channel *entity.Channel
}

// GroupOpen is sent when a private group was opened
type GroupOpen struct {
	User    string
	Channel string
}

// GroupClose is sent when a private group was closed
type GroupClose struct {
	User    string
	Channel string
}

// GroupArchive is sent when a private group was archived
type GroupArchive struct {
	Channel string
}

// GroupUnarchive is sent when a private group was unarchived
type GroupUnarchive struct {
	Channel string
}

// GroupRename is sent when a private group was renamed
type GroupRename struct {
	Channel *entity.Channel
}

// GroupMarked is sent when the read cursor of a private group moved
type GroupMarked struct {
	Channel   string
	Timestamp string
}

// GroupHistoryChanged is sent when bulk changes were made to a private group's history
type GroupHistoryChanged struct {
	Latest         string
	Timestamp      string
	EventTimestamp string
}

// FileCreated is sent when a file was created
type FileCreated struct {
	File *entity.File
}

// FileShared is sent when a file was shared
type FileShared struct {
	File *entity.File
}

// FileUnshared is sent when a file was unshared
type FileUnshared struct {
	File *entity.File
}

// FilePublic is sent when a file was made public
type FilePublic struct {
	File *entity.File
}

// FilePrivate is sent when a file was made private. Unlike the other file
// events, it only carries the file ID.
type FilePrivate struct {
	File string
}

// FileChange is sent when a file was changed
type FileChange struct {
	File *entity.File
}

// FileDeleted is sent when a file was deleted
type FileDeleted struct {
	FileID         string
	EventTimestamp string
}

// FileCommentAdded is sent when a comment was added to a file
type FileCommentAdded struct {
	File    *entity.File
	Comment *entity.Comment
}

// FileCommentEdited is sent when a file comment was edited
type FileCommentEdited struct {
	File    *entity.File
	Comment *entity.Comment
}

// FileCommentDeleted is sent when a file comment was deleted
type FileCommentDeleted struct {
	File    *entity.File
	Comment string
}

// PinAdded is sent when an item was pinned to a channel
type PinAdded struct {
	User           string
	ChannelID      string
	Item           entity.Item
	EventTimestamp string
}

// PinRemoved is sent when an item was unpinned from a channel
type PinRemoved struct {
	User           string
	ChannelID      string
	Item           entity.Item
	HasPins        bool
	EventTimestamp string
}

// PresenceChange is sent when a user's presence changed
type PresenceChange struct {
	User     string
	Presence string
}

// ManualPresenceChange is sent when the connected user manually changed their presence
type ManualPresenceChange struct {
	Presence string
}

// PrefChange is sent when a preference of the connected user changed
type PrefChange struct {
	Name  string
	Value string
}

// UserChange is sent when a user's data changed
type UserChange struct {
	User *entity.User
}

// TeamJoin is sent when a new user joined the team
type TeamJoin struct {
	User *entity.User
}

// StarAdded is sent when an item was starred
type StarAdded struct {
	User           string
	Item           entity.Item
	EventTimestamp string
}

// StarRemoved is sent when an item was unstarred
type StarRemoved struct {
	User           string
	Item           entity.Item
	EventTimestamp string
}

// ReactionAdded is sent when a reaction was added to an item. The reaction
// name is sent as "name" on the wire.
type ReactionAdded struct {
	User           string
	Reaction       string
	Item           entity.Item
	ItemUser       *string
	EventTimestamp string
}

// ReactionRemoved is sent when a reaction was removed from an item
type ReactionRemoved struct {
	User           string
	Reaction       string
	Item           entity.Item
	ItemUser       *string
	EventTimestamp string
}

// EmojiChanged is sent when a custom emoji was added or removed
type EmojiChanged struct {
	EventTimestamp string
}

// CommandsChanged is sent when a slash command was added or changed
type CommandsChanged struct {
	EventTimestamp string
}

// TeamPlanChange is sent when the team's billing plan changed
type TeamPlanChange struct {
	Plan string
}

// TeamPrefChange is sent when a team preference changed
type TeamPrefChange struct {
	Name  string
	Value bool
}

// TeamRename is sent when the team was renamed
type TeamRename struct {
	Name string
}

// TeamDomainChange is sent when the team domain changed
type TeamDomainChange struct {
	URL    string
	Domain string
}

// EmailDomainChanged is sent when the team's email domain changed
type EmailDomainChanged struct {
	EmailDomain    string
	EventTimestamp string
}

// BotAdded is sent when a bot integration was added
type BotAdded struct {
	Bot *entity.Bot
}

// BotChanged is sent when a bot integration changed
type BotChanged struct {
	Bot *entity.Bot
}

// AccountsChanged is sent when the list of accounts signed in on this device changed
type AccountsChanged struct{}

// TeamMigrationStarted is sent when the team is being migrated between servers.
// The connection will be closed shortly after.
type TeamMigrationStarted struct{}

// ReconnectURL is an experimental event without payload
type ReconnectURL struct{}

// Goodbye is sent right before the server closes the connection
type Goodbye struct{}

// Pong answers a ping sent by the client
type Pong struct {
	ReplyTo int64
}

// MessageSent confirms that a message sent by the client was delivered
type MessageSent struct {
	ReplyTo   int64
	Timestamp string
	Text      string
}

// MessageError reports that a message sent by the client was rejected
type MessageError struct {
	ReplyTo int64
	Code    int64
	Message string
}

func (*Hello) Type() string                 { return TypeHello }
func (*Message) Type() string               { return TypeMessage }
func (*UserTyping) Type() string            { return TypeUserTyping }
func (*ChannelMarked) Type() string         { return TypeChannelMarked }
func (*ChannelCreated) Type() string        { return TypeChannelCreated }
func (*ChannelJoined) Type() string         { return TypeChannelJoined }
func (*ChannelLeft) Type() string           { return TypeChannelLeft }
func (*ChannelDeleted) Type() string        { return TypeChannelDeleted }
func (*ChannelRename) Type() string         { return TypeChannelRename }
func (*ChannelArchive) Type() string        { return TypeChannelArchive }
func (*ChannelUnarchive) Type() string      { return TypeChannelUnarchive }
func (*ChannelHistoryChanged) Type() string { return TypeChannelHistoryChanged }
func (*ImCreated) Type() string             { return TypeImCreated }
func (*ImOpen) Type() string                { return TypeImOpen }
func (*ImClose) Type() string               { return TypeImClose }
func (*ImMarked) Type() string              { return TypeImMarked }
func (*ImHistoryChanged) Type() string      { return TypeImHistoryChanged }
func (*GroupJoined) Type() string           { return TypeGroupJoined }
func (*GroupLeft) Type() string             { return TypeGroupLeft }
func (*GroupOpen) Type() string             { return TypeGroupOpen }
func (*GroupClose) Type() string            { return TypeGroupClose }
func (*GroupArchive) Type() string          { return TypeGroupArchive }
func (*GroupUnarchive) Type() string        { return TypeGroupUnarchive }
func (*GroupRename) Type() string           { return TypeGroupRename }
func (*GroupMarked) Type() string           { return TypeGroupMarked }
func (*GroupHistoryChanged) Type() string   { return TypeGroupHistoryChanged }
func (*FileCreated) Type() string           { return TypeFileCreated }
func (*FileShared) Type() string            { return TypeFileShared }
func (*FileUnshared) Type() string          { return TypeFileUnshared }
func (*FilePublic) Type() string            { return TypeFilePublic }
func (*FilePrivate) Type() string           { return TypeFilePrivate }
func (*FileChange) Type() string            { return TypeFileChange }
func (*FileDeleted) Type() string           { return TypeFileDeleted }
func (*FileCommentAdded) Type() string      { return TypeFileCommentAdded }
func (*FileCommentEdited) Type() string     { return TypeFileCommentEdited }
func (*FileCommentDeleted) Type() string    { return TypeFileCommentDeleted }
func (*PinAdded) Type() string              { return TypePinAdded }
func (*PinRemoved) Type() string            { return TypePinRemoved }
func (*PresenceChange) Type() string        { return TypePresenceChange }
func (*ManualPresenceChange) Type() string  { return TypeManualPresenceChange }
func (*PrefChange) Type() string            { return TypePrefChange }
func (*UserChange) Type() string            { return TypeUserChange }
func (*TeamJoin) Type() string              { return TypeTeamJoin }
func (*StarAdded) Type() string             { return TypeStarAdded }
func (*StarRemoved) Type() string           { return TypeStarRemoved }
func (*ReactionAdded) Type() string         { return TypeReactionAdded }
func (*ReactionRemoved) Type() string       { return TypeReactionRemoved }
func (*EmojiChanged) Type() string          { return TypeEmojiChanged }
func (*CommandsChanged) Type() string       { return TypeCommandsChanged }
func (*TeamPlanChange) Type() string        { return TypeTeamPlanChange }
func (*TeamPrefChange) Type() string        { return TypeTeamPrefChange }
func (*TeamRename) Type() string            { return TypeTeamRename }
func (*TeamDomainChange) Type() string      { return TypeTeamDomainChange }
func (*EmailDomainChanged) Type() string    { return TypeEmailDomainChanged }
func (*BotAdded) Type() string              { return TypeBotAdded }
func (*BotChanged) Type() string            { return TypeBotChanged }
func (*AccountsChanged) Type() string       { return TypeAccountsChanged }
func (*TeamMigrationStarted) Type() string  { return TypeTeamMigrationStarted }
func (*ReconnectURL) Type() string          { return TypeReconnectURL }
func (*Goodbye) Type() string               { return TypeGoodbye }
func (*Pong) Type() string                  { return TypePong }
func (*MessageSent) Type() string           { return TypeMessageSent }
func (*MessageError) Type() string          { return TypeMessageError }

func (*Hello) isEvent()                 {}
func (*Message) isEvent()               {}
func (*UserTyping) isEvent()            {}
func (*ChannelMarked) isEvent()         {}
func (*ChannelCreated) isEvent()        {}
func (*ChannelJoined) isEvent()         {}
func (*ChannelLeft) isEvent()           {}
func (*ChannelDeleted) isEvent()        {}
func (*ChannelRename) isEvent()         {}
func (*ChannelArchive) isEvent()        {}
func (*ChannelUnarchive) isEvent()      {}
func (*ChannelHistoryChanged) isEvent() {}
func (*ImCreated) isEvent()             {}
func (*ImOpen) isEvent()                {}
func (*ImClose) isEvent()               {}
func (*ImMarked) isEvent()              {}
func (*ImHistoryChanged) isEvent()      {}
func (*GroupJoined) isEvent()           {}
func (*GroupLeft) isEvent()             {}
func (*GroupOpen) isEvent()             {}
func (*GroupClose) isEvent()            {}
func (*GroupArchive) isEvent()          {}
func (*GroupUnarchive) isEvent()        {}
func (*GroupRename) isEvent()           {}
func (*GroupMarked) isEvent()           {}
func (*GroupHistoryChanged) isEvent()   {}
func (*FileCreated) isEvent()           {}
func (*FileShared) isEvent()            {}
func (*FileUnshared) isEvent()          {}
func (*FilePublic) isEvent()            {}
func (*FilePrivate) isEvent()           {}
func (*FileChange) isEvent()            {}
func (*FileDeleted) isEvent()           {}
func (*FileCommentAdded) isEvent()      {}
func (*FileCommentEdited) isEvent()     {}
func (*FileCommentDeleted) isEvent()    {}
func (*PinAdded) isEvent()              {}
func (*PinRemoved) isEvent()            {}
func (*PresenceChange) isEvent()        {}
func (*ManualPresenceChange) isEvent()  {}
func (*PrefChange) isEvent()            {}
func (*UserChange) isEvent()            {}
func (*TeamJoin) isEvent()              {}
func (*StarAdded) isEvent()             {}
func (*StarRemoved) isEvent()           {}
func (*ReactionAdded) isEvent()         {}
func (*ReactionRemoved) isEvent()       {}
func (*EmojiChanged) isEvent()          {}
func (*CommandsChanged) isEvent()       {}
func (*TeamPlanChange) isEvent()        {}
func (*TeamPrefChange) isEvent()        {}
func (*TeamRename) isEvent()            {}
func (*TeamDomainChange) isEvent()      {}
func (*EmailDomainChanged) isEvent()    {}
func (*BotAdded) isEvent()              {}
func (*BotChanged) isEvent()            {}
func (*AccountsChanged) isEvent()       {}
func (*TeamMigrationStarted) isEvent()  {}
func (*ReconnectURL) isEvent()          {}
func (*Goodbye) isEvent()               {}
func (*Pong) isEvent()                  {}
func (*MessageSent) isEvent()           {}
func (*MessageError) isEvent()          {}
