package toylang

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/glycerine/liner"
)

var historyFile = filepath.Join(os.Getenv("HOME"), ".fsphist")

var completionKeywords = []string{`print `, `let `, `.quit`, `.stats`, `.verb`, `.reset`}

// Prompter reads repl lines through the liner line editor, with history
// and completion of keywords and dot commands.
type Prompter struct {
	prompt   string
	prompter *liner.State
}

func NewPrompter(prompt string) *Prompter {
	p := &Prompter{
		prompt:   prompt,
		prompter: liner.NewLiner(),
	}

	p.prompter.SetCtrlCAborts(false)
	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range completionKeywords {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}
		return
	})

	if f, err := os.Open(historyFile); err == nil {
		p.prompter.ReadHistory(f)
		f.Close()
	}
	return p
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if f, err := os.Create(historyFile); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

func (p *Prompter) Getline(prompt *string) (line string, err error) {
	if prompt == nil {
		line, err = p.prompter.Prompt(p.prompt)
	} else {
		line, err = p.prompter.Prompt(*prompt)
	}
	if err == nil {
		p.prompter.AppendHistory(line)
		return line, nil
	}
	return "", err
}
