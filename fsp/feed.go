package fsp

import (
	"context"
	"fmt"
	"io"
)

// FeedBytes splits input into chunks of chunkSize bytes and feeds them
// to s, marking the last one final. Empty input is fed as a single
// empty final chunk. A chunkSize below 1 feeds everything at once.
// It stops at the first status other than StatusNeedData.
func FeedBytes[T any](s *Session[T], input []byte, chunkSize int) (Status, error) {
	if chunkSize < 1 {
		chunkSize = len(input)
	}
	pos := 0
	for {
		end := pos + chunkSize
		if end > len(input) {
			end = len(input)
		}
		final := end == len(input)
		st, err := s.Feed(input[pos:end], final)
		if st != StatusNeedData || final {
			return st, err
		}
		pos = end
	}
}

// FeedReader reads chunks of up to chunkSize bytes from r and feeds
// them to s until r reports io.EOF, which marks the final chunk.
// Bytes returned along with any other read error are fed before the
// error is reported.
// Cancellation is checked before every chunk fetch; a cancelled ctx
// simply stops the feeding and the session is left as it was.
func FeedReader[T any](ctx context.Context, s *Session[T], r io.Reader, chunkSize int) (Status, error) {
	if chunkSize < 1 {
		chunkSize = 4 * KiB
	}
	buf := make([]byte, chunkSize)
	for {
		select {
		case <-ctx.Done():
			return StatusError, ctx.Err()
		default:
		}

		n, rerr := r.Read(buf)
		final := rerr == io.EOF
		if n == 0 && rerr == nil {
			continue
		}
		if n > 0 || final {
			st, err := s.Feed(buf[:n], final)
			if st != StatusNeedData || final {
				return st, err
			}
		}
		if rerr != nil {
			return StatusError, fmt.Errorf("fsp: reading chunk: %w", rerr)
		}
	}
}
