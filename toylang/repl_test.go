package toylang

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func newTestReplConfig(batch bool) *ReplConfig {
	cfg := NewReplConfig("fsp-test")
	cfg.DefineFlags()
	panicOn(cfg.Flags.Parse(nil))
	cfg.NoLiner = true
	cfg.Quiet = true
	cfg.Batch = batch
	panicOn(cfg.ValidateConfig())
	return cfg
}

func Test130ReplFeedsALineAtATime(t *testing.T) {

	cv.Convey(`At the repl each line is a chunk, statements print as they complete, and a statement may span lines`, t, func() {
		cfg := newTestReplConfig(false)
		cv.So(cfg.Threshold, cv.ShouldEqual, 1)
		cv.So(cfg.Format, cv.ShouldEqual, "text")

		in := strings.NewReader("print 1;\nlet x =\n  2;\n.stats\nprint \"\"\"a\nb\"\"\";\n.quit\nprint 3;\n")
		var out bytes.Buffer
		panicOn(Repl(cfg, in, &out))

		got := out.String()
		cv.So(got, cv.ShouldContainSubstring, "print 1;\n")
		cv.So(got, cv.ShouldContainSubstring, "let x = 2;\n")
		cv.So(got, cv.ShouldContainSubstring, "phase FILLING")
		cv.So(got, cv.ShouldContainSubstring, `print "a\nb";`)
		cv.So(got, cv.ShouldContainSubstring, continuationPrompt)
		cv.So(got, cv.ShouldNotContainSubstring, "print 3;")
	})
}

func Test131ReplStartsOverAfterAnError(t *testing.T) {

	cv.Convey(`A syntax error at the repl is reported and a fresh session takes the next line`, t, func() {
		cfg := newTestReplConfig(false)
		cfg.Digest = true

		in := strings.NewReader("print @;\nprint 2;\n")
		var out bytes.Buffer
		panicOn(Repl(cfg, in, &out))

		got := out.String()
		cv.So(got, cv.ShouldContainSubstring, "unexpected character '@'")
		cv.So(got, cv.ShouldContainSubstring, "starting over")
		cv.So(got, cv.ShouldContainSubstring, "print 2;\n")
		cv.So(got, cv.ShouldContainSubstring, "digest: ")
	})
}

func Test132BatchModeStreamsAReader(t *testing.T) {

	cv.Convey(`Batch mode reads the whole stream in small chunks and writes the statements as JSON`, t, func() {
		cfg := newTestReplConfig(true)
		cv.So(cfg.Threshold, cv.ShouldEqual, DefaultThreshold)
		cfg.ChunkSize = 3
		cfg.Format = "json"

		var out bytes.Buffer
		prog, err := RunBatch(context.Background(), cfg, strings.NewReader(longProgram), &out)
		panicOn(err)
		cv.So(len(prog.Statements), cv.ShouldEqual, 8)

		back, err := ProgramFromJSON(out.Bytes())
		panicOn(err)
		cv.So(back.Statements, cv.ShouldResemble, prog.Statements)

		cv.Convey(`and reports a parse that did not finish cleanly as an error`, func() {
			out.Reset()
			_, err := RunBatch(context.Background(), cfg, strings.NewReader(`print "open`), &out)
			cv.So(err, cv.ShouldNotBeNil)
		})
	})
}

func Test133ConfigRejectsUnknownFormats(t *testing.T) {

	cv.Convey(`ValidateConfig refuses an unknown output format and a negative chunk size`, t, func() {
		cfg := NewReplConfig("fsp-test")
		cfg.DefineFlags()
		panicOn(cfg.Flags.Parse([]string{"-format", "xml"}))
		cv.So(cfg.ValidateConfig(), cv.ShouldNotBeNil)

		cfg = NewReplConfig("fsp-test")
		cfg.DefineFlags()
		panicOn(cfg.Flags.Parse([]string{"-chunk", "-2"}))
		cv.So(cfg.ValidateConfig(), cv.ShouldNotBeNil)

		cfg = NewReplConfig("fsp-test")
		cfg.DefineFlags()
		panicOn(cfg.Flags.Parse([]string{"-threshold", "8", "-format", "goon", "input.toy"}))
		panicOn(cfg.ValidateConfig())
		cv.So(cfg.Threshold, cv.ShouldEqual, 8)
	})
}

func Test134RunFileParsesAndClosesTheFile(t *testing.T) {

	cv.Convey(`RunFile streams a named file through the batch parser`, t, func() {
		dir, err := os.MkdirTemp("", "toylang-runfile")
		panicOn(err)
		defer os.RemoveAll(dir)
		fn := filepath.Join(dir, "prog.toy")
		panicOn(os.WriteFile(fn, []byte(longProgram), 0644))

		cfg := newTestReplConfig(true)
		cfg.ChunkSize = 3
		var out bytes.Buffer
		prog, err := RunFile(context.Background(), cfg, fn, &out)
		panicOn(err)
		cv.So(len(prog.Statements), cv.ShouldEqual, 8)
		cv.So(out.String(), cv.ShouldContainSubstring, `let greeting = "hello, world";`)

		cv.Convey(`and a missing file is an error before any parsing`, func() {
			prog, err := RunFile(context.Background(), cfg, filepath.Join(dir, "absent.toy"), &out)
			cv.So(prog, cv.ShouldBeNil)
			cv.So(os.IsNotExist(err), cv.ShouldBeTrue)
		})
	})
}
