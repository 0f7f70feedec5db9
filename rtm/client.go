// Package rtm connects to the Slack Real Time Messaging API and feeds every received frame
// through the event decoder
package rtm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/tidwall/sjson"
	"golang.org/x/sync/errgroup"
	"heckel.io/rtmtail/config"
	"heckel.io/rtmtail/event"
	"heckel.io/rtmtail/rtmerr"
)

const (
	writeTimeout = 10 * time.Second
)

var (
	errNotConnected = errors.New("not connected")
	errGoodbye      = errors.New("server said goodbye")
	errClosed       = errors.New("connection closed before confirmation")
)

// Handler is called for every received frame, with either the decoded event or the error
// that prevented decoding it. Returning an error stops Run and is passed on to its caller.
type Handler func(ev event.Event, err error) error

// Option configures a Client
type Option func(c *Client)

// WithHTTPClient sets the HTTP client used to call rtm.connect
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithDialer sets the websocket dialer
func WithDialer(dialer *websocket.Dialer) Option {
	return func(c *Client) {
		c.dialer = dialer
	}
}

// WithBackOff sets the reconnect policy used by Listen
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = newBackOff
	}
}

// Client is a single RTM connection. It is safe to call SendMessage while Run is active.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	dialer     *websocket.Dialer
	newBackOff func() backoff.BackOff
	conn       *websocket.Conn
	info       *slack.Info
	pending    map[int64]chan event.Event
	nextID     atomic.Int64
	mu         sync.Mutex // Guards conn, info and pending
	writeMu    sync.Mutex // Only one concurrent writer is allowed on a websocket connection
}

// New creates a new client. Call Connect and Run, or Listen, to receive events.
func New(conf *config.Config, options ...Option) *Client {
	c := &Client{
		config:     conf,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		dialer:     websocket.DefaultDialer,
		pending:    make(map[int64]chan event.Event),
	}
	c.newBackOff = c.defaultBackOff
	for _, option := range options {
		option(c)
	}
	return c
}

// Connect calls rtm.connect and dials the returned websocket URL. A rejected token or any
// other error reported by Slack is returned as an rtmerr.KindAPI error.
func (c *Client) Connect(ctx context.Context) (*slack.Info, error) {
	api := slack.New(c.config.Token,
		slack.OptionAPIURL(c.config.APIURL),
		slack.OptionHTTPClient(c.httpClient),
		slack.OptionDebug(c.config.Debug))
	info, wsURL, err := api.ConnectRTMContext(ctx)
	if err != nil {
		return nil, rtmerr.From(err)
	}
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, rtmerr.FromWebSocket(err)
	}
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = conn
	c.info = info
	c.mu.Unlock()
	logger := log.Info().Str("url", wsURL)
	if info.User != nil {
		logger = logger.Str("user", info.User.Name).Str("user_id", info.User.ID)
	}
	if info.Team != nil {
		logger = logger.Str("team", info.Team.Domain)
	}
	logger.Msg("[rtm] Connected")
	return info, nil
}

// Info returns the connection info returned by rtm.connect, or nil if not connected
func (c *Client) Info() *slack.Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Run reads frames until the connection fails, the server says goodbye, the handler
// returns an error, or ctx is cancelled. In the latter case, nil is returned.
//
// A goodbye from the server ends the run with a retryable rtmerr.KindWebSocket error, so
// that Listen reconnects.
func (c *Client) Run(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return rtmerr.FromWebSocket(errNotConnected)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		conn.Close() // Unblocks the reader
		return nil
	})
	g.Go(func() error {
		return c.readLoop(gctx, conn, handler)
	})
	g.Go(func() error {
		return c.pingLoop(gctx)
	})
	err := g.Wait()
	c.disconnect(conn)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, handler Handler) error {
	for {
		if err := conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout)); err != nil {
			return rtmerr.FromWebSocket(err)
		}
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return rtmerr.FromWebSocket(err)
		} else if messageType != websocket.TextMessage {
			continue
		}
		ev, err := event.DecodeBytes(data)
		if err != nil {
			log.Debug().Err(err).Str("frame", string(data)).Msg("[rtm] Cannot decode frame")
		} else {
			c.confirm(ev)
		}
		if err := handler(ev, err); err != nil {
			return err
		}
		if _, ok := ev.(*event.Goodbye); ok {
			return rtmerr.FromWebSocket(errGoodbye)
		}
	}
}

func (c *Client) pingLoop(ctx context.Context) error {
	if c.config.PingInterval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return err
			}
		}
	}
}

func (c *Client) ping() error {
	id := c.nextID.Add(1)
	data, err := encodeFrame(id, "ping", nil)
	if err != nil {
		return err
	}
	log.Trace().Int64("id", id).Msg("[rtm] Sending ping")
	return c.write(data)
}

// SendMessage sends a message to a channel and waits for the server to confirm it. If the
// server rejects the message, an rtmerr.KindAPI error carrying the server's reason is
// returned. Run must be active to receive the confirmation.
func (c *Client) SendMessage(ctx context.Context, channel, text string) (*event.MessageSent, error) {
	id := c.nextID.Add(1)
	data, err := encodeFrame(id, "message", map[string]string{"channel": channel, "text": text})
	if err != nil {
		return nil, err
	}
	confirmation := make(chan event.Event, 1)
	c.mu.Lock()
	c.pending[id] = confirmation
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()
	if err := c.write(data); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev, ok := <-confirmation:
		if !ok {
			return nil, rtmerr.FromWebSocket(errClosed)
		}
		switch e := ev.(type) {
		case *event.MessageSent:
			return e, nil
		case *event.MessageError:
			return nil, rtmerr.API(fmt.Sprintf("message %d rejected with code %d: %s", e.ReplyTo, e.Code, e.Message))
		default:
			return nil, rtmerr.Internalf("unexpected confirmation %s", ev.Type())
		}
	}
}

// Close closes the connection, which ends an active Run
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return nil
	}
	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
	c.writeMu.Unlock()
	c.disconnect(conn)
	return nil
}

// Listen connects and runs until ctx is cancelled, reconnecting with exponential backoff
// whenever the connection is lost. Errors that a reconnect cannot fix, such as a rejected
// token or an error returned by the handler, stop it immediately.
func (c *Client) Listen(ctx context.Context, handler Handler) error {
	b := c.newBackOff()
	operation := func() error {
		if _, err := c.Connect(ctx); err != nil {
			return retryable(err)
		}
		b.Reset()
		return retryable(c.Run(ctx, handler))
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Msg("[rtm] Connection lost, reconnecting")
	}
	err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (c *Client) defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.config.ReconnectTimeout
	return b
}

// retryable marks errors that a reconnect cannot fix as permanent. A nil error means Run
// was cancelled, which is final as well.
func retryable(err error) error {
	if err == nil {
		return nil
	} else if !rtmerr.Retryable(err) {
		return backoff.Permanent(err)
	}
	return err
}

func (c *Client) write(data []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return rtmerr.FromWebSocket(errNotConnected)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return rtmerr.FromWebSocket(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return rtmerr.FromWebSocket(err)
	}
	return nil
}

// confirm passes confirmations to the SendMessage call waiting for them
func (c *Client) confirm(ev event.Event) {
	var replyTo int64
	switch e := ev.(type) {
	case *event.MessageSent:
		replyTo = e.ReplyTo
	case *event.MessageError:
		replyTo = e.ReplyTo
	default:
		return
	}
	c.mu.Lock()
	confirmation, ok := c.pending[replyTo]
	if ok {
		delete(c.pending, replyTo)
	}
	c.mu.Unlock()
	if ok {
		confirmation <- ev // Buffered, never blocks
	}
}

// disconnect closes conn and fails all pending confirmations, unless a newer connection
// has replaced it already
func (c *Client) disconnect(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	conn.Close()
	c.conn = nil
	for id, confirmation := range c.pending {
		close(confirmation)
		delete(c.pending, id)
	}
}

// encodeFrame builds an outbound frame with the given ID, type and string fields
func encodeFrame(id int64, frameType string, fields map[string]string) ([]byte, error) {
	data, err := sjson.SetBytes([]byte(`{}`), "id", id)
	if err == nil {
		data, err = sjson.SetBytes(data, "type", frameType)
	}
	for key, value := range fields {
		if err != nil {
			break
		}
		data, err = sjson.SetBytes(data, key, value)
	}
	if err != nil {
		return nil, rtmerr.FromJSONEncode(err)
	}
	return data, nil
}
