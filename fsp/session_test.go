package fsp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

// wordLexer splits its input on spaces and newlines. A word is only
// complete once its terminator arrives, so a partial word has to
// survive an empty refill.
type wordLexer struct {
	in      []byte
	next    int
	scratch [8]byte
	word    []byte
}

func (w *wordLexer) Lex(refill Refill) (string, bool, error) {
	for {
		if w.next == len(w.in) {
			n := refill(w.scratch[:])
			if n == 0 {
				return "", false, nil
			}
			w.in = w.scratch[:n]
			w.next = 0
		}
		c := w.in[w.next]
		w.next++
		switch c {
		case ' ', '\n':
			if len(w.word) > 0 {
				s := string(w.word)
				w.word = w.word[:0]
				return s, true, nil
			}
		case '!':
			return "", false, fmt.Errorf("unexpected byte %q", c)
		default:
			w.word = append(w.word, c)
		}
	}
}

func (w *wordLexer) EndOfInput() (string, bool, error) {
	if len(w.word) == 0 {
		return "", false, nil
	}
	s := string(w.word)
	w.word = w.word[:0]
	return s, true, nil
}

// wordParser collects words. STOP accepts early, ABORT gives up.
type wordParser struct {
	words     []string
	eofs      int
	moreAtEOF bool
}

func (p *wordParser) Push(tok string) (ParseState, error) {
	switch tok {
	case "STOP":
		return ParseAccept, nil
	case "ABORT":
		return ParseAbort, errors.New("abort requested")
	}
	p.words = append(p.words, tok)
	return ParseMore, nil
}

func (p *wordParser) PushEOF() (ParseState, error) {
	p.eofs++
	if p.moreAtEOF {
		return ParseMore, nil
	}
	return ParseAccept, nil
}

func newWordSession(threshold int) (*Session[string], *wordParser) {
	cfg := NewConfig()
	cfg.Threshold = threshold
	psr := &wordParser{}
	s, err := NewSession[string](cfg, &wordLexer{}, psr)
	panicOn(err)
	return s, psr
}

func Test020LexerWaitsForTheThreshold(t *testing.T) {

	cv.Convey(`While fewer than Threshold unread bytes are buffered and more chunks are expected, the lexer is not invoked`, t, func() {
		s, psr := newWordSession(8)

		st, err := s.Feed([]byte("ab"), false)
		panicOn(err)
		cv.So(st, cv.ShouldEqual, StatusNeedData)
		cv.So(s.Phase(), cv.ShouldEqual, PhaseFilling)
		cv.So(s.Stats().LexerCalls, cv.ShouldEqual, 0)

		st, err = s.Feed([]byte("cdef"), false)
		panicOn(err)
		cv.So(st, cv.ShouldEqual, StatusNeedData)
		cv.So(s.Stats().LexerCalls, cv.ShouldEqual, 0)

		cv.Convey(`and once the threshold is reached it drains, then goes back to filling when the lexer starves`, func() {
			st, err = s.Feed([]byte("gh ij"), false)
			panicOn(err)
			cv.So(st, cv.ShouldEqual, StatusNeedData)
			cv.So(s.Phase(), cv.ShouldEqual, PhaseFilling)
			cv.So(s.Stats().Drains, cv.ShouldEqual, 1)
			cv.So(psr.words, cv.ShouldResemble, []string{"abcdefgh"})
			cv.So(s.Context().Available(), cv.ShouldEqual, 0)

			cv.Convey(`and the partial word "ij" is finished by the final chunk, not cut short by the earlier empty read`, func() {
				st, err = s.Feed([]byte("kl"), true)
				panicOn(err)
				cv.So(st, cv.ShouldEqual, StatusOK)
				cv.So(s.Phase(), cv.ShouldEqual, PhaseFinished)
				cv.So(psr.words, cv.ShouldResemble, []string{"abcdefgh", "ijkl"})
				cv.So(psr.eofs, cv.ShouldEqual, 1)
			})
		})
	})
}

func Test021NoFalseEndOfInputUnderFragmentation(t *testing.T) {

	cv.Convey(`Feeding the same input in chunks of 1, 5, 1024 bytes and all at once yields the same words`, t, func() {
		input := []byte("alpha beta  gamma\ndelta epsilon zeta eta theta iota kappa lambda")
		var expect []string
		for _, threshold := range []int{1, 5, 16} {
			for _, chunkSize := range []int{1, 5, 1024, len(input)} {
				s, psr := newWordSession(threshold)
				st, err := FeedBytes(s, input, chunkSize)
				panicOn(err)
				cv.So(st, cv.ShouldEqual, StatusOK)
				if expect == nil {
					expect = psr.words
				}
				cv.So(psr.words, cv.ShouldResemble, expect)
				cv.So(psr.eofs, cv.ShouldEqual, 1)
			}
		}
		cv.So(strings.Join(expect, ","), cv.ShouldEqual, "alpha,beta,gamma,delta,epsilon,zeta,eta,theta,iota,kappa,lambda")
	})
}

func Test022EmptyFinalChunk(t *testing.T) {

	cv.Convey(`An empty final chunk on a fresh session delivers end of input once and parses nothing`, t, func() {
		s, psr := newWordSession(16)
		st, err := s.Feed(nil, true)
		panicOn(err)
		cv.So(st, cv.ShouldEqual, StatusOK)
		cv.So(len(psr.words), cv.ShouldEqual, 0)
		cv.So(psr.eofs, cv.ShouldEqual, 1)

		cv.Convey(`and feeding a finished session reports its terminal status with ErrFinished`, func() {
			st, err = s.Feed([]byte("more"), false)
			cv.So(err, cv.ShouldEqual, ErrFinished)
			cv.So(st, cv.ShouldEqual, StatusOK)
			cv.So(psr.eofs, cv.ShouldEqual, 1)
		})
	})
}

func Test023ParserOutcomesBecomeStatuses(t *testing.T) {

	cv.Convey(`Parser accept, parser abort, lexer errors and an unsatisfied parser at EOF each map to a status`, t, func() {

		cv.Convey(`accept before end of input finishes with StatusOK`, func() {
			s, psr := newWordSession(1)
			st, err := s.Feed([]byte("one STOP two "), false)
			panicOn(err)
			cv.So(st, cv.ShouldEqual, StatusOK)
			cv.So(psr.words, cv.ShouldResemble, []string{"one"})
			cv.So(psr.eofs, cv.ShouldEqual, 0)
		})

		cv.Convey(`abort finishes with StatusError and the parser's error`, func() {
			s, _ := newWordSession(1)
			st, err := s.Feed([]byte("one ABORT "), false)
			cv.So(st, cv.ShouldEqual, StatusError)
			cv.So(err.Error(), cv.ShouldEqual, "abort requested")
			last, lastErr := s.Status()
			cv.So(last, cv.ShouldEqual, StatusError)
			cv.So(lastErr, cv.ShouldEqual, err)
		})

		cv.Convey(`a lexer error finishes with StatusError`, func() {
			s, _ := newWordSession(1)
			st, err := s.Feed([]byte("one ! two"), true)
			cv.So(st, cv.ShouldEqual, StatusError)
			cv.So(err, cv.ShouldNotBeNil)
		})

		cv.Convey(`a parser still wanting input after end of input is an error`, func() {
			s, psr := newWordSession(1)
			psr.moreAtEOF = true
			st, err := s.Feed([]byte("one"), true)
			cv.So(st, cv.ShouldEqual, StatusError)
			cv.So(err, cv.ShouldEqual, ErrIncompleteParse)
			cv.So(psr.words, cv.ShouldResemble, []string{"one"})
		})
	})
}

func Test024OutOfMemoryLeavesTheSessionUsable(t *testing.T) {

	cv.Convey(`A chunk the buffer cannot grow to hold reports StatusNoMemory, and the session stays valid`, t, func() {
		cfg := NewConfig()
		cfg.InitialCapacity = 16
		cfg.MaxCapacity = 64
		cfg.Threshold = 32
		psr := &wordParser{}
		s, err := NewSession[string](cfg, &wordLexer{}, psr)
		panicOn(err)

		st, err := s.Feed([]byte("abc "), false)
		panicOn(err)
		cv.So(st, cv.ShouldEqual, StatusNeedData)

		st, err = s.Feed(bytes.Repeat([]byte("x"), 100), false)
		cv.So(st, cv.ShouldEqual, StatusNoMemory)
		cv.So(errors.Is(err, ErrNoMemory), cv.ShouldBeTrue)
		cv.So(s.Phase(), cv.ShouldEqual, PhaseFilling)
		cv.So(string(s.Context().Unread()), cv.ShouldEqual, "abc ")

		st, err = s.Feed([]byte("def"), true)
		panicOn(err)
		cv.So(st, cv.ShouldEqual, StatusOK)
		cv.So(psr.words, cv.ShouldResemble, []string{"abc", "def"})
		panicOn(s.Close())
	})
}

func Test025SessionConfigNeedsAThreshold(t *testing.T) {

	cv.Convey(`A session cannot be built without a threshold, because the right value depends on the grammar`, t, func() {
		_, err := NewSession[string](NewConfig(), &wordLexer{}, &wordParser{})
		cv.So(err, cv.ShouldEqual, ErrNoThreshold)

		_, err = NewSession[string](nil, &wordLexer{}, &wordParser{})
		cv.So(err, cv.ShouldEqual, ErrNoThreshold)

		cfg := NewConfig()
		cfg.Threshold = 4
		_, err = NewSession[string](cfg, nil, &wordParser{})
		cv.So(err, cv.ShouldNotBeNil)
	})
}

func Test026UserHandleTravelsWithTheSession(t *testing.T) {

	cv.Convey(`Host code can hang one value on the session's context and get it back inside callbacks`, t, func() {
		s, _ := newWordSession(4)
		type hostState struct{ name string }
		hs := &hostState{name: "session-1"}
		s.Context().SetUserData(hs)
		cv.So(s.Context().UserData().(*hostState).name, cv.ShouldEqual, "session-1")
	})
}

// trickleReader hands out at most n bytes per Read.
type trickleReader struct {
	r *bytes.Reader
	n int
}

func (t *trickleReader) Read(p []byte) (int, error) {
	if len(p) > t.n {
		p = p[:t.n]
	}
	return t.r.Read(p)
}

func Test027FeedReaderStreamsUntilEOF(t *testing.T) {

	cv.Convey(`FeedReader feeds whatever the reader yields and marks io.EOF as the final chunk`, t, func() {
		s, psr := newWordSession(5)
		r := &trickleReader{r: bytes.NewReader([]byte("one two three")), n: 2}
		st, err := FeedReader(context.Background(), s, r, 64)
		panicOn(err)
		cv.So(st, cv.ShouldEqual, StatusOK)
		cv.So(psr.words, cv.ShouldResemble, []string{"one", "two", "three"})

		cv.Convey(`and stops feeding once its context is cancelled`, func() {
			s, psr := newWordSession(5)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			st, err := FeedReader(ctx, s, bytes.NewReader([]byte("one two")), 64)
			cv.So(st, cv.ShouldEqual, StatusError)
			cv.So(err, cv.ShouldEqual, context.Canceled)
			cv.So(psr.eofs, cv.ShouldEqual, 0)
			cv.So(s.Phase(), cv.ShouldEqual, PhaseFilling)
		})
	})
}

// failingReader yields data once, together with err.
type failingReader struct {
	data []byte
	err  error
	done bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.done {
		return 0, f.err
	}
	f.done = true
	return copy(p, f.data), f.err
}

func Test029FeedReaderKeepsBytesReadWithAnError(t *testing.T) {

	cv.Convey(`Bytes that arrive together with a read error are fed before the error is returned`, t, func() {
		boom := errors.New("disk on fire")
		s, psr := newWordSession(1)
		r := &failingReader{data: []byte("alpha beta "), err: boom}
		st, err := FeedReader(context.Background(), s, r, 64)
		cv.So(st, cv.ShouldEqual, StatusError)
		cv.So(errors.Is(err, boom), cv.ShouldBeTrue)
		cv.So(s.Stats().Bytes, cv.ShouldEqual, 11)
		cv.So(psr.words, cv.ShouldResemble, []string{"alpha", "beta"})
		cv.So(s.Phase(), cv.ShouldEqual, PhaseFilling)
	})
}

func Test028PhaseAndStatusNames(t *testing.T) {

	cv.Convey(`Phases, statuses and parse states print readably`, t, func() {
		cv.So(PhaseFilling.String(), cv.ShouldEqual, "FILLING")
		cv.So(PhaseDraining.String(), cv.ShouldEqual, "DRAINING")
		cv.So(PhaseFinished.String(), cv.ShouldEqual, "FINISHED")
		cv.So(StatusNeedData.String(), cv.ShouldEqual, "need-data")
		cv.So(StatusNoMemory.String(), cv.ShouldEqual, "out-of-memory")
		cv.So(ParseAbort.String(), cv.ShouldEqual, "abort")
		cv.So(StatusOf(nil), cv.ShouldEqual, StatusOK)
		cv.So(StatusOf(ErrClosed), cv.ShouldEqual, StatusError)
	})
}
