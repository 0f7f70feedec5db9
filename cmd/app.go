// Package cmd provides the rtmtail CLI application
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"heckel.io/rtmtail/config"
	"heckel.io/rtmtail/event"
	"heckel.io/rtmtail/rtm"
	"heckel.io/rtmtail/rtmerr"
	"heckel.io/rtmtail/util"
)

// New creates a new CLI application
func New() *cli.App {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, EnvVars: []string{"RTMTAIL_CONFIG_FILE"}, Value: "/etc/rtmtail/config.yml", DefaultText: "/etc/rtmtail/config.yml", Usage: "config file"},
		&cli.BoolFlag{Name: "debug", EnvVars: []string{"RTMTAIL_DEBUG"}, Value: false, Usage: "enable debugging output"},
		altsrc.NewStringFlag(&cli.StringFlag{Name: "bot-token", Aliases: []string{"t"}, EnvVars: []string{"RTMTAIL_BOT_TOKEN"}, DefaultText: "none", Usage: "bot token"}),
		altsrc.NewStringFlag(&cli.StringFlag{Name: "api-url", Aliases: []string{"u"}, EnvVars: []string{"RTMTAIL_API_URL"}, Value: config.DefaultAPIURL, Usage: "Slack Web API base URL, used to call rtm.connect"}),
		altsrc.NewStringFlag(&cli.StringFlag{Name: "input", Aliases: []string{"i"}, EnvVars: []string{"RTMTAIL_INPUT"}, Usage: "replay recorded frames from this file instead of connecting ('-' for stdin)"}),
		altsrc.NewDurationFlag(&cli.DurationFlag{Name: "ping-interval", Aliases: []string{"p"}, EnvVars: []string{"RTMTAIL_PING_INTERVAL"}, Value: config.DefaultPingInterval, Usage: "interval in which pings are sent to keep the connection alive"}),
		altsrc.NewDurationFlag(&cli.DurationFlag{Name: "read-timeout", Aliases: []string{"r"}, EnvVars: []string{"RTMTAIL_READ_TIMEOUT"}, Value: config.DefaultReadTimeout, Usage: "time without any frame after which the connection is considered dead"}),
		altsrc.NewDurationFlag(&cli.DurationFlag{Name: "reconnect-timeout", Aliases: []string{"R"}, EnvVars: []string{"RTMTAIL_RECONNECT_TIMEOUT"}, Value: config.DefaultReconnectTimeout, Usage: "give up reconnecting after this long (0 to retry forever)"}),
		altsrc.NewStringFlag(&cli.StringFlag{Name: "output", Aliases: []string{"o"}, EnvVars: []string{"RTMTAIL_OUTPUT"}, Value: string(config.DefaultOutputMode), DefaultText: string(config.DefaultOutputMode), Usage: "output mode [full or brief]"}),
		altsrc.NewBoolFlag(&cli.BoolFlag{Name: "strict", Aliases: []string{"s"}, EnvVars: []string{"RTMTAIL_STRICT"}, Usage: "exit on the first frame that cannot be decoded"}),
		altsrc.NewBoolFlag(&cli.BoolFlag{Name: "no-color", EnvVars: []string{"RTMTAIL_NO_COLOR"}, Usage: "disable colored output"}),
	}
	return &cli.App{
		Name:                   "rtmtail",
		Usage:                  "Tail the Slack RTM event stream and print the decoded events",
		UsageText:              "rtmtail [OPTION..]",
		HideHelp:               true,
		HideVersion:            true,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Reader:                 os.Stdin,
		Writer:                 os.Stdout,
		ErrWriter:              os.Stderr,
		Action:                 execRun,
		Before:                 initConfigFileInputSource("config", flags),
		Flags:                  flags,
	}
}

func execRun(c *cli.Context) error {
	// Read all the options
	output, err := config.ParseOutputMode(c.String("output"))
	if err != nil {
		return err
	}
	conf := config.New(c.String("bot-token"))
	conf.APIURL = c.String("api-url")
	conf.Input = c.String("input")
	conf.PingInterval = c.Duration("ping-interval")
	conf.ReadTimeout = c.Duration("read-timeout")
	conf.ReconnectTimeout = c.Duration("reconnect-timeout")
	conf.Output = output
	conf.Strict = c.Bool("strict")
	conf.Color = !c.Bool("no-color")
	conf.Debug = c.Bool("debug")

	// Validate options
	if err := conf.Validate(); err != nil {
		return err
	}
	initLogging(c.App.ErrWriter, conf)

	// Set up signal handling
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs: // Doesn't matter which
			log.Info().Msg("Signal received. Closing connection.")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Replay or listen, can be stopped by signal
	p := newPrinter(c.App.Writer, conf.Output)
	handler := func(ev event.Event, err error) error {
		if err != nil {
			if conf.Strict {
				return err
			}
			p.PrintError(err)
			return nil
		}
		p.Print(ev)
		return nil
	}
	if conf.Replay() {
		err = replay(c.App.Reader, conf.Input, handler)
	} else {
		err = rtm.New(conf).Listen(ctx, handler)
	}
	if err != nil {
		return err
	}
	log.Debug().Msg("Exiting.")
	return nil
}

func replay(stdin io.Reader, input string, handler rtm.Handler) error {
	if input == config.StdinInput {
		return rtm.Replay(stdin, handler)
	}
	f, err := os.Open(input)
	if err != nil {
		return rtmerr.FromIO(err)
	}
	defer f.Close()
	return rtm.Replay(f, handler)
}

func initLogging(w io.Writer, conf *config.Config) {
	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}
	color.NoColor = color.NoColor || !conf.Color
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// initConfigFileInputSource loads the YAML config file into the flags, but only if it exists. A missing
// file is fine if the config flag was left at its default, and an error if it was set explicitly.
func initConfigFileInputSource(configFlag string, flags []cli.Flag) cli.BeforeFunc {
	return func(c *cli.Context) error {
		configFile := c.String(configFlag)
		if c.IsSet(configFlag) && !util.FileExists(configFile) {
			return fmt.Errorf("config file %s does not exist", configFile)
		} else if !c.IsSet(configFlag) && !util.FileExists(configFile) {
			return nil
		}
		inputSource, err := altsrc.NewYamlSourceFromFile(configFile)
		if err != nil {
			return err
		}
		return altsrc.ApplyInputSourceValues(c, inputSource, flags)
	}
}
