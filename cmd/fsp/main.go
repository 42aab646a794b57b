/*
The fsp command parses toylang statements through the streaming
chunk buffer, either line by line at a repl or as one stream from a
file or stdin.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dajobe/libfsp/toylang"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("fsp command line help:\n")
	myflags.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg := toylang.NewReplConfig("fsp")
	cfg.DefineFlags()
	err := cfg.Flags.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}

	if err != nil {
		panic(err)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fsp command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	toylang.ReplMain(cfg)
}
