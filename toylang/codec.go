package toylang

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/shurcooL/go-goon"
	"github.com/ugorji/go/codec"
)

type codecHelper struct {
	initialized bool
	mh          codec.MsgpackHandle
	jh          codec.JsonHandle
}

func (m *codecHelper) init() {
	if m.initialized {
		return
	}

	m.mh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.mh.RawToString = true
	m.mh.WriteExt = true
	m.mh.SignedInteger = true
	m.mh.Canonical = true // sort maps before writing them

	m.jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.jh.SignedInteger = true
	m.jh.Canonical = true

	m.initialized = true
}

var progCodec codecHelper

func init() {
	progCodec.init()
}

// ProgramToJSON renders the statements of prog as JSON. Errors are not
// part of the encoding.
func ProgramToJSON(prog *Program) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &progCodec.jh)
	err := enc.Encode(prog)
	if err != nil {
		return nil, fmt.Errorf("toylang: json encoding: %w", err)
	}
	return w.Bytes(), nil
}

func ProgramFromJSON(by []byte) (*Program, error) {
	prog := &Program{}
	dec := codec.NewDecoderBytes(by, &progCodec.jh)
	err := dec.Decode(prog)
	if err != nil {
		return nil, fmt.Errorf("toylang: json decoding: %w", err)
	}
	return prog, nil
}

// ProgramToMsgpack is the reflection based msgpack encoding. It reads
// the same as the MarshalMsg encoding, field for field.
func ProgramToMsgpack(prog *Program) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &progCodec.mh)
	err := enc.Encode(prog)
	if err != nil {
		return nil, fmt.Errorf("toylang: msgpack encoding: %w", err)
	}
	return w.Bytes(), nil
}

func ProgramFromMsgpack(by []byte) (*Program, error) {
	prog := &Program{}
	dec := codec.NewDecoderBytes(by, &progCodec.mh)
	err := dec.Decode(prog)
	if err != nil {
		return nil, fmt.Errorf("toylang: msgpack decoding: %w", err)
	}
	return prog, nil
}

// DumpProgram writes a Go-syntax dump of the statements, for debugging.
func DumpProgram(w io.Writer, prog *Program) error {
	_, err := goon.Fdump(w, prog.Statements)
	return err
}
