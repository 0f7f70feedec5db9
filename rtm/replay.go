package rtm

import (
	"bufio"
	"bytes"
	"io"

	"heckel.io/rtmtail/event"
	"heckel.io/rtmtail/rtmerr"
)

const (
	maxFrameSize = 4 * 1024 * 1024
)

// Replay decodes recorded frames from r, one JSON frame per line, and passes them to the
// handler, just like Run does for live frames. Blank lines are skipped. Replay stops at
// the end of the input, or when the handler returns an error.
func Replay(r io.Reader, handler Handler) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := event.DecodeBytes(line)
		if err := handler(ev, err); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return rtmerr.FromIO(err)
	}
	return nil
}
