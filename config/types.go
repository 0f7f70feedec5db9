package config

// OutputMode defines how much of each event is printed
type OutputMode string

// All possible OutputMode constants
const (
	DefaultOutputMode = Full
	Full              = OutputMode("full")
	Brief             = OutputMode("brief")
)

// TokenType defines the kind of Slack token
type TokenType string

// All possible TokenType constants
const (
	BotToken     = TokenType("bot")
	UserToken    = TokenType("user")
	UnknownToken = TokenType("unknown")
)
