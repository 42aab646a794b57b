package toylang

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dajobe/libfsp/fsp"
)

var continuationPrompt = "... "

type lineReader interface {
	Getline(prompt *string) (string, error)
}

// plainLines reads lines without liner. Useful when there is no real
// terminal, like under test or emacs.
type plainLines struct {
	prompt string
	reader *bufio.Reader
	out    io.Writer
}

func (pl *plainLines) Getline(prompt *string) (string, error) {
	if prompt == nil {
		fmt.Fprint(pl.out, pl.prompt)
	} else {
		fmt.Fprint(pl.out, *prompt)
	}
	return getLine(pl.reader)
}

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// replSession is one parse session fed a line at a time. Statements
// and recovered errors are printed as soon as they complete.
type replSession struct {
	cfg  *ReplConfig
	out  io.Writer
	prog *Program
	psr  *Parser
	sess *fsp.Session[Token]

	shown     int
	errsShown int
}

func (r *replSession) reset() error {
	if r.sess != nil {
		r.sess.Close()
	}
	r.prog = &Program{}
	r.psr = NewParser(r.prog, r.cfg.Recover)
	s, err := fsp.NewSession[Token](&r.cfg.Config, NewLexer(), r.psr)
	if err != nil {
		return err
	}
	r.sess = s
	r.shown = 0
	r.errsShown = 0
	return nil
}

func (r *replSession) feed(chunk []byte, final bool) (fsp.Status, error) {
	st, err := r.sess.Feed(chunk, final)
	r.flush()
	if err != nil && !r.recorded(err) {
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
	return st, err
}

func (r *replSession) flush() {
	if len(r.prog.Statements) > r.shown {
		err := writeStatements(r.out, r.cfg.Format, r.prog.Statements[r.shown:], false)
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		r.shown = len(r.prog.Statements)
	}
	for ; r.errsShown < len(r.prog.Errors); r.errsShown++ {
		fmt.Fprintf(r.out, "error: %v\n", r.prog.Errors[r.errsShown])
	}
}

func (r *replSession) recorded(err error) bool {
	for _, e := range r.prog.Errors {
		if e == err {
			return true
		}
	}
	return false
}

func (r *replSession) printStats() {
	st := r.sess.Stats()
	fmt.Fprintf(r.out, "phase %v; %d chunks, %d bytes, %d tokens, %d lexer calls, %d drains; buffer %d bytes (%d grows, %d compactions), %d unread\n",
		r.sess.Phase(), st.Chunks, st.Bytes, st.Tokens, st.LexerCalls, st.Drains,
		st.Capacity, st.Grows, st.Compactions, r.sess.Context().Available())
}

// Repl feeds every line entered, plus its newline, to a session as one
// non-final chunk. End of input (Ctrl-d) or .quit sends the final chunk.
func Repl(cfg *ReplConfig, in io.Reader, out io.Writer) error {
	var lines lineReader
	if cfg.NoLiner {
		lines = &plainLines{prompt: cfg.Prompt, reader: bufio.NewReader(in), out: out}
	} else {
		pr := NewPrompter(cfg.Prompt)
		defer pr.Close()
		lines = pr
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "fsp toylang repl, threshold %d. Each line is fed as a chunk.\n", cfg.Threshold)
		fmt.Fprintf(out, "commands: .stats .verb .reset .quit; Ctrl-d ends the input.\n")
	}

	r := &replSession{cfg: cfg, out: out}
	err := r.reset()
	if err != nil {
		return err
	}

loop:
	for {
		var prompt *string
		if r.psr.State() != ExpectStatement {
			prompt = &continuationPrompt
		}
		line, err := lines.Getline(prompt)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case ".quit":
			break loop
		case ".stats":
			r.printStats()
			continue
		case ".verb":
			fsp.Verbose = !fsp.Verbose
			fmt.Fprintf(out, "verbose: %v.\n", fsp.Verbose)
			continue
		case ".reset":
			err = r.reset()
			if err != nil {
				return err
			}
			continue
		}

		st, _ := r.feed([]byte(line+"\n"), false)
		switch st {
		case fsp.StatusNeedData:
		case fsp.StatusNoMemory:
			// the session is intact; the line was not taken.
		default:
			fmt.Fprintf(out, "session finished (%v), starting over.\n", st)
			err = r.reset()
			if err != nil {
				return err
			}
		}
	}

	st, _ := r.feed(nil, true)
	if !cfg.Quiet {
		fmt.Fprintf(out, "%v: %d statements.\n", st, len(r.prog.Statements))
	}
	defer r.sess.Close()
	return finishProgram(cfg, out, r.prog)
}

// RunBatch parses all of in as one stream, read in chunks of
// cfg.ChunkSize, and writes the statements to out in cfg.Format.
func RunBatch(ctx context.Context, cfg *ReplConfig, in io.Reader, out io.Writer) (*Program, error) {
	prog := &Program{}
	s, err := fsp.NewSession[Token](&cfg.Config, NewLexer(), NewParser(prog, cfg.Recover))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	st, err := fsp.FeedReader(ctx, s, in, cfg.ChunkSize)
	if cfg.Verbose {
		stats := s.Stats()
		fsp.TSPrintf("%v after %d chunks, %d bytes, %d tokens, %d lexer calls, %d drains",
			st, stats.Chunks, stats.Bytes, stats.Tokens, stats.LexerCalls, stats.Drains)
	}

	werr := writeStatements(out, cfg.Format, prog.Statements, true)
	if err == nil && st != fsp.StatusOK {
		err = fmt.Errorf("toylang: parse ended with status %v", st)
	}
	if err != nil {
		return prog, err
	}
	if werr != nil {
		return prog, werr
	}
	return prog, finishProgram(cfg, out, prog)
}

// RunFile is RunBatch over the named file.
func RunFile(ctx context.Context, cfg *ReplConfig, path string, out io.Writer) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return RunBatch(ctx, cfg, f, out)
}

func finishProgram(cfg *ReplConfig, out io.Writer, prog *Program) error {
	if cfg.Digest {
		d, err := Digest(prog.Statements)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "digest: %016x\n", d)
	}
	if cfg.Save != "" {
		err := SaveProgram(cfg.Save, prog)
		if err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "saved %d statements to '%s'.\n", len(prog.Statements), cfg.Save)
		}
	}
	return nil
}

// writeStatements renders stmts in format. msgpack is written as raw
// bytes when raw is set, as hex otherwise.
func writeStatements(w io.Writer, format string, stmts []Statement, raw bool) error {
	prog := &Program{Statements: stmts}
	switch format {
	case "json":
		by, err := ProgramToJSON(prog)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", by)
		return err
	case "msgpack":
		by, err := ProgramToMsgpack(prog)
		if err != nil {
			return err
		}
		if raw {
			_, err = w.Write(by)
		} else {
			_, err = fmt.Fprintf(w, "%x\n", by)
		}
		return err
	case "goon":
		return DumpProgram(w, prog)
	}
	for _, st := range stmts {
		_, err := fmt.Fprintln(w, st)
		if err != nil {
			return err
		}
	}
	return nil
}

// like main() for the fsp command, in library form.
func ReplMain(cfg *ReplConfig) {
	if cfg.Load != "" {
		prog, err := LoadProgram(cfg.Load)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		err = writeStatements(os.Stdout, cfg.Format, prog.Statements, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	args := cfg.Flags.Args()
	if len(args) == 0 && !cfg.Batch {
		err := Repl(cfg, os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	var prog *Program
	var err error
	if len(args) > 0 {
		prog, err = RunFile(context.Background(), cfg, args[0], os.Stdout)
	} else {
		prog, err = RunBatch(context.Background(), cfg, os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if prog != nil && len(prog.Errors) > 1 {
			for _, e := range prog.Errors[1:] {
				fmt.Fprintf(os.Stderr, "%v\n", e)
			}
		}
		os.Exit(1)
	}
}
