package toylang

import (
	"encoding/binary"

	"github.com/glycerine/blake2b"
)

// Digest returns an 8 byte BLAKE2b hash of the msgpack encoding of
// stmts. Two parses of the same text agree on it however the text was
// chunked.
func Digest(stmts []Statement) (uint64, error) {
	prog := Program{Statements: stmts}
	raw, err := prog.MarshalMsg(nil)
	if err != nil {
		return 0, err
	}
	return blake2bUint64(raw)
}

func blake2bUint64(raw []byte) (uint64, error) {
	cfg := &blake2b.Config{Size: 8}
	h, err := blake2b.New(cfg)
	if err != nil {
		return 0, err
	}
	h.Write(raw)
	by := h.Sum(nil)
	return binary.LittleEndian.Uint64(by[:8]), nil
}
