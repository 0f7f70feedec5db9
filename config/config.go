// Package config provides the main configuration
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

const (
	// DefaultAPIURL is the base URL of the Slack Web API, used to call rtm.connect
	DefaultAPIURL = slack.APIURL

	// DefaultPingInterval defines how often a ping is sent to keep the connection alive
	DefaultPingInterval = 30 * time.Second

	// DefaultReadTimeout defines after how long without any frame the connection is considered dead
	DefaultReadTimeout = 2 * time.Minute

	// DefaultReconnectTimeout defines how long reconnect attempts are made before giving up
	DefaultReconnectTimeout = 10 * time.Minute

	// StdinInput is the input file name that stands for standard input
	StdinInput = "-"
)

var (
	errMissingToken       = errors.New("missing bot token, pass --bot-token, set RTMTAIL_BOT_TOKEN env variable or bot-token config option")
	errInvalidToken       = errors.New("invalid token, must start with 'xoxb-' or 'xoxp-'")
	errInvalidReadTimeout = errors.New("read timeout must be larger than the ping interval")
	errInvalidPing        = errors.New("ping interval must be at least one second")
)

// Config is the main config struct for the application. Use New to instantiate a default config struct.
type Config struct {
	Token            string
	APIURL           string
	Input            string // Replay frames from this file instead of connecting, see StdinInput
	PingInterval     time.Duration
	ReadTimeout      time.Duration
	ReconnectTimeout time.Duration // Zero means retry forever
	Output           OutputMode
	Strict           bool // Stop at the first frame that cannot be decoded
	Color            bool
	Debug            bool
}

// New instantiates a default new config
func New(token string) *Config {
	return &Config{
		Token:            token,
		APIURL:           DefaultAPIURL,
		PingInterval:     DefaultPingInterval,
		ReadTimeout:      DefaultReadTimeout,
		ReconnectTimeout: DefaultReconnectTimeout,
		Output:           DefaultOutputMode,
		Color:            true,
	}
}

// TokenType returns the kind of token, based on its prefix
func (c *Config) TokenType() TokenType {
	switch {
	case strings.HasPrefix(c.Token, "xoxb-"):
		return BotToken
	case strings.HasPrefix(c.Token, "xoxp-"):
		return UserToken
	default:
		return UnknownToken
	}
}

// Replay returns true if frames are read from a file rather than a live connection
func (c *Config) Replay() bool {
	return c.Input != ""
}

// Validate checks that the config is consistent. A token and a valid API URL are
// only required when connecting.
func (c *Config) Validate() error {
	if _, err := ParseOutputMode(string(c.Output)); err != nil {
		return err
	} else if c.Replay() {
		return nil
	}
	if c.Token == "" || c.Token == "MUST_BE_SET" {
		return errMissingToken
	} else if c.TokenType() == UnknownToken {
		return errInvalidToken
	} else if c.PingInterval < time.Second {
		return errInvalidPing
	} else if c.ReadTimeout <= c.PingInterval {
		return errInvalidReadTimeout
	}
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	} else if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %s, scheme must be http or https", c.APIURL)
	} else if !strings.HasSuffix(u.Path, "/") {
		return fmt.Errorf("invalid API URL %s, path must end with a slash", c.APIURL)
	}
	return nil
}
