package toylang

import (
	"errors"
	"fmt"
	"os"

	"github.com/glycerine/greenpack/msgp"
)

// SaveProgram writes the statements of prog to path as a greenpack
// stream: an array header followed by one map per statement. It refuses
// to overwrite an existing file.
func SaveProgram(path string, prog *Program) error {
	if FileExists(path) {
		return fmt.Errorf("toylang: refusing to write to existing file '%s'", path)
	}
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("toylang: creating '%s': %w", path, err)
	}

	err = writeProgram(msgp.NewWriter(f), prog)
	if err != nil {
		err = fmt.Errorf("toylang: saving to '%s': %w", path, err)
	}
	cerr := f.Close()
	if err == nil && cerr != nil {
		err = fmt.Errorf("toylang: closing '%s': %w", path, cerr)
	}
	if err != nil {
		// never leave a partial file behind.
		os.Remove(path)
		return err
	}
	return nil
}

var createFile = os.Create

func writeProgram(w *msgp.Writer, prog *Program) error {
	err := w.WriteArrayHeader(uint32(len(prog.Statements)))
	if err != nil {
		return err
	}
	for i := range prog.Statements {
		err = writeStatement(w, &prog.Statements[i])
		if err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return w.Flush()
}

func writeStatement(w *msgp.Writer, st *Statement) error {
	err := w.WriteMapHeader(6)
	if err != nil {
		return err
	}
	for _, kv := range []struct{ k, v string }{
		{"kind", st.Kind},
		{"name", st.Name},
		{"value", st.Value},
		{"vtype", st.ValueType},
	} {
		err = w.WriteString(kv.k)
		if err != nil {
			return err
		}
		err = w.WriteString(kv.v)
		if err != nil {
			return err
		}
	}
	for _, kv := range []struct {
		k string
		v int
	}{
		{"line", st.Line},
		{"col", st.Column},
	} {
		err = w.WriteString(kv.k)
		if err != nil {
			return err
		}
		err = w.WriteInt(kv.v)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadProgram reads a file written by SaveProgram.
func LoadProgram(path string) (*Program, error) {
	if !FileExists(path) {
		return nil, fmt.Errorf("toylang: file '%s' does not exist", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r := msgp.NewReader(f)
	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, fmt.Errorf("toylang: reading '%s': %w", path, err)
	}
	// every statement takes at least one byte, its map header.
	if int64(n) > fi.Size() {
		return nil, fmt.Errorf("toylang: '%s' claims %d statements in %d bytes: %w",
			path, n, fi.Size(), ErrCorruptSave)
	}
	prog := &Program{}
	for i := uint32(0); i < n; i++ {
		var st Statement
		err = readStatement(r, &st)
		if err != nil {
			return nil, fmt.Errorf("toylang: reading statement %d of '%s': %w", i, path, err)
		}
		prog.Statements = append(prog.Statements, st)
	}
	return prog, nil
}

var ErrCorruptSave = errors.New("corrupt save file")

func readStatement(r *msgp.Reader, st *Statement) error {
	n, err := r.ReadMapHeader()
	if err != nil {
		return err
	}
	for ; n > 0; n-- {
		key, err := r.ReadString()
		if err != nil {
			return err
		}
		switch key {
		case "kind":
			st.Kind, err = r.ReadString()
		case "name":
			st.Name, err = r.ReadString()
		case "value":
			st.Value, err = r.ReadString()
		case "vtype":
			st.ValueType, err = r.ReadString()
		case "line":
			st.Line, err = r.ReadInt()
		case "col":
			st.Column, err = r.ReadInt()
		default:
			err = r.Skip()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func FileExists(name string) bool {
	fi, err := os.Stat(name)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}
