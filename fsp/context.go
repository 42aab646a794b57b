package fsp

import (
	"fmt"
)

// Refill is the input hook a lexer calls when it needs more bytes.
// It copies up to len(p) bytes into p and returns how many it copied.
// A return of 0 means nothing is buffered right now; it never means
// end of input. Only Session delivers an authoritative end of input.
type Refill func(p []byte) int

// Context is the owned state of one streaming parse: a growable byte
// store with a write cursor (length) and a read cursor (cursor).
//
// Bytes in [cursor, length) are unread; bytes in [0, cursor) may be
// reclaimed by compaction at any time, including as a side effect of
// Append. Callers must not assume Cursor is stable across Append.
//
// A Context is not safe for concurrent use. Independent Contexts share
// nothing and may be used from different goroutines.
type Context struct {
	buf    []byte // len(buf) is the capacity
	length int
	cursor int

	moreExpected bool
	closed       bool

	maxCapacity int
	verbose     bool

	grows       int
	compactions int

	userData interface{}
}

// NewContext returns an empty context expecting more chunks, with a
// buffer of cfg.InitialCapacity bytes. A nil cfg means NewConfig().
func NewContext(cfg *Config) (*Context, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	err := cfg.validateCapacity()
	if err != nil {
		return nil, err
	}
	return &Context{
		buf:          make([]byte, cfg.initialCapacity()),
		moreExpected: true,
		maxCapacity:  cfg.MaxCapacity,
		verbose:      cfg.Verbose,
	}, nil
}

// Append copies data onto the end of the live region. When the data
// does not fit, unread bytes are first compacted to the front; only if
// that is still not enough does the capacity double (repeatedly) until
// the data fits. A failed growth returns an error wrapping ErrNoMemory
// and appends nothing.
//
// Appending zero bytes is a successful no-op, even after MarkFinal.
func (c *Context) Append(data []byte) error {
	if c == nil {
		return ErrNilContext
	}
	if c.closed {
		return ErrClosed
	}
	if len(data) == 0 {
		return nil
	}
	if !c.moreExpected {
		return ErrFinalized
	}

	if c.length+len(data) > len(c.buf) {
		c.compact()
		if c.length+len(data) > len(c.buf) {
			err := c.grow(c.length + len(data))
			if err != nil {
				return err
			}
		}
	}

	copy(c.buf[c.length:], data)
	c.length += len(data)
	return nil
}

// grow doubles the capacity until needed bytes fit. The unread region
// must already be compacted to offset 0.
func (c *Context) grow(needed int) (err error) {
	const maxInt = int(^uint(0) >> 1)

	newCap := len(c.buf)
	if newCap == 0 {
		newCap = DefaultBufferSize
	}
	for newCap < needed {
		if newCap > maxInt/2 {
			return fmt.Errorf("%w: %d bytes requested", ErrNoMemory, needed)
		}
		newCap *= 2
	}
	if c.maxCapacity > 0 && newCap > c.maxCapacity {
		if needed > c.maxCapacity {
			return fmt.Errorf("%w: %d bytes requested, limit is %d", ErrNoMemory, needed, c.maxCapacity)
		}
		newCap = c.maxCapacity
	}

	// the runtime reports impossible allocations by panicking
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNoMemory, r)
		}
	}()
	nb := make([]byte, newCap)
	copy(nb, c.buf[:c.length])

	if c.verbose {
		TSPrintf("fsp: grow stream buffer %d -> %d bytes (%d unread)", len(c.buf), newCap, c.length)
	} else {
		VPrintf("fsp: grow stream buffer %d -> %d bytes (%d unread)", len(c.buf), newCap, c.length)
	}
	c.buf = nb
	c.grows++
	return nil
}

// Read is the pull primitive behind the lexer's refill hook. It copies
// min(Available(), len(p)) unread bytes into p, advances the read cursor
// by that much and returns the count. It never blocks and never
// allocates; 0 only says nothing is buffered right now.
func (c *Context) Read(p []byte) int {
	if c == nil || c.closed || len(p) == 0 {
		return 0
	}
	n := copy(p, c.buf[c.cursor:c.length])
	c.cursor += n
	return n
}

// Refill returns Read as a Refill hook.
func (c *Context) Refill() Refill {
	return c.Read
}

// Compact shifts the unread bytes to the front of the buffer and resets
// the read cursor to 0. It never allocates and is idempotent.
func (c *Context) Compact() {
	if c == nil || c.closed {
		return
	}
	c.compact()
}

func (c *Context) compact() {
	unread := c.length - c.cursor
	if unread > 0 && c.cursor > 0 {
		copy(c.buf, c.buf[c.cursor:c.length])
	}
	if c.cursor > 0 {
		c.compactions++
	}
	c.length = unread
	c.cursor = 0
}

// Available returns the count of unread bytes.
func (c *Context) Available() int {
	if c == nil || c.closed {
		return 0
	}
	return c.length - c.cursor
}

// Len is the high-water mark of valid data in the buffer.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return c.length
}

// Cursor is the read position.
func (c *Context) Cursor() int {
	if c == nil {
		return 0
	}
	return c.cursor
}

// Capacity is the current size of the owned buffer.
func (c *Context) Capacity() int {
	if c == nil {
		return 0
	}
	return len(c.buf)
}

// Unread returns a copy of the unread bytes.
func (c *Context) Unread() []byte {
	if c == nil || c.closed {
		return nil
	}
	out := make([]byte, c.length-c.cursor)
	copy(out, c.buf[c.cursor:c.length])
	return out
}

// MoreExpected reports whether the producer may still supply chunks.
func (c *Context) MoreExpected() bool {
	if c == nil {
		return false
	}
	return c.moreExpected
}

// MarkFinal declares that no more chunks are coming: whatever is
// buffered, once exhausted, is the true end of input. It returns true
// the one time it flips the flag and false on every later call.
func (c *Context) MarkFinal() bool {
	if c == nil || !c.moreExpected {
		return false
	}
	c.moreExpected = false
	return true
}

// SetUserData attaches one caller-owned value to the context. The
// context only stores it; it never inspects or releases it.
func (c *Context) SetUserData(v interface{}) {
	if c != nil {
		c.userData = v
	}
}

// UserData returns the value given to SetUserData.
func (c *Context) UserData() interface{} {
	if c == nil {
		return nil
	}
	return c.userData
}

// Grows and Compactions count buffer reallocations and the compactions
// that actually moved the read cursor.
func (c *Context) Grows() int {
	if c == nil {
		return 0
	}
	return c.grows
}

func (c *Context) Compactions() int {
	if c == nil {
		return 0
	}
	return c.compactions
}

// Close releases the buffer. Later mutations return ErrClosed and
// queries report an empty context. Closing twice is harmless.
func (c *Context) Close() error {
	if c == nil {
		return ErrNilContext
	}
	c.closed = true
	c.buf = nil
	c.length = 0
	c.cursor = 0
	c.userData = nil
	return nil
}

func (c *Context) String() string {
	if c == nil {
		return "fsp.Context(nil)"
	}
	return fmt.Sprintf("fsp.Context{len: %d, cursor: %d, cap: %d, more: %v, closed: %v}",
		c.length, c.cursor, len(c.buf), c.moreExpected, c.closed)
}
