package toylang

// NOTE: THIS FILE WAS PRODUCED BY THE
// MSGP CODE GENERATION TOOL (github.com/tinylib/msgp)
// DO NOT EDIT

import (
	"github.com/tinylib/msgp/msgp"
)

// DecodeMsg implements msgp.Decodable
func (z *Program) DecodeMsg(dc *msgp.Reader) (err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, err = dc.ReadMapHeader()
	if err != nil {
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, err = dc.ReadMapKeyPtr()
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "stmts":
			var zb0002 uint32
			zb0002, err = dc.ReadArrayHeader()
			if err != nil {
				return
			}
			if cap(z.Statements) >= int(zb0002) {
				z.Statements = (z.Statements)[:zb0002]
			} else {
				z.Statements = make([]Statement, zb0002)
			}
			for za0001 := range z.Statements {
				err = z.Statements[za0001].DecodeMsg(dc)
				if err != nil {
					return
				}
			}
		default:
			err = dc.Skip()
			if err != nil {
				return
			}
		}
	}
	return
}

// EncodeMsg implements msgp.Encodable
func (z *Program) EncodeMsg(en *msgp.Writer) (err error) {
	// map header, size 1
	// write "stmts"
	err = en.Append(0x81, 0xa5, 0x73, 0x74, 0x6d, 0x74, 0x73)
	if err != nil {
		return
	}
	err = en.WriteArrayHeader(uint32(len(z.Statements)))
	if err != nil {
		return
	}
	for za0001 := range z.Statements {
		err = z.Statements[za0001].EncodeMsg(en)
		if err != nil {
			return
		}
	}
	return
}

// MarshalMsg implements msgp.Marshaler
func (z *Program) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 1
	// string "stmts"
	o = append(o, 0x81, 0xa5, 0x73, 0x74, 0x6d, 0x74, 0x73)
	o = msgp.AppendArrayHeader(o, uint32(len(z.Statements)))
	for za0001 := range z.Statements {
		o, err = z.Statements[za0001].MarshalMsg(o)
		if err != nil {
			return
		}
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Program) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "stmts":
			var zb0002 uint32
			zb0002, bts, err = msgp.ReadArrayHeaderBytes(bts)
			if err != nil {
				return
			}
			if cap(z.Statements) >= int(zb0002) {
				z.Statements = (z.Statements)[:zb0002]
			} else {
				z.Statements = make([]Statement, zb0002)
			}
			for za0001 := range z.Statements {
				bts, err = z.Statements[za0001].UnmarshalMsg(bts)
				if err != nil {
					return
				}
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Program) Msgsize() (s int) {
	s = 1 + 6 + msgp.ArrayHeaderSize
	for za0001 := range z.Statements {
		s += z.Statements[za0001].Msgsize()
	}
	return
}

// DecodeMsg implements msgp.Decodable
func (z *Statement) DecodeMsg(dc *msgp.Reader) (err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, err = dc.ReadMapHeader()
	if err != nil {
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, err = dc.ReadMapKeyPtr()
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "kind":
			z.Kind, err = dc.ReadString()
			if err != nil {
				return
			}
		case "name":
			z.Name, err = dc.ReadString()
			if err != nil {
				return
			}
		case "value":
			z.Value, err = dc.ReadString()
			if err != nil {
				return
			}
		case "vtype":
			z.ValueType, err = dc.ReadString()
			if err != nil {
				return
			}
		case "line":
			z.Line, err = dc.ReadInt()
			if err != nil {
				return
			}
		case "col":
			z.Column, err = dc.ReadInt()
			if err != nil {
				return
			}
		default:
			err = dc.Skip()
			if err != nil {
				return
			}
		}
	}
	return
}

// EncodeMsg implements msgp.Encodable
func (z *Statement) EncodeMsg(en *msgp.Writer) (err error) {
	// map header, size 6
	// write "kind"
	err = en.Append(0x86, 0xa4, 0x6b, 0x69, 0x6e, 0x64)
	if err != nil {
		return
	}
	err = en.WriteString(z.Kind)
	if err != nil {
		return
	}
	// write "name"
	err = en.Append(0xa4, 0x6e, 0x61, 0x6d, 0x65)
	if err != nil {
		return
	}
	err = en.WriteString(z.Name)
	if err != nil {
		return
	}
	// write "value"
	err = en.Append(0xa5, 0x76, 0x61, 0x6c, 0x75, 0x65)
	if err != nil {
		return
	}
	err = en.WriteString(z.Value)
	if err != nil {
		return
	}
	// write "vtype"
	err = en.Append(0xa5, 0x76, 0x74, 0x79, 0x70, 0x65)
	if err != nil {
		return
	}
	err = en.WriteString(z.ValueType)
	if err != nil {
		return
	}
	// write "line"
	err = en.Append(0xa4, 0x6c, 0x69, 0x6e, 0x65)
	if err != nil {
		return
	}
	err = en.WriteInt(z.Line)
	if err != nil {
		return
	}
	// write "col"
	err = en.Append(0xa3, 0x63, 0x6f, 0x6c)
	if err != nil {
		return
	}
	err = en.WriteInt(z.Column)
	if err != nil {
		return
	}
	return
}

// MarshalMsg implements msgp.Marshaler
func (z *Statement) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 6
	// string "kind"
	o = append(o, 0x86, 0xa4, 0x6b, 0x69, 0x6e, 0x64)
	o = msgp.AppendString(o, z.Kind)
	// string "name"
	o = append(o, 0xa4, 0x6e, 0x61, 0x6d, 0x65)
	o = msgp.AppendString(o, z.Name)
	// string "value"
	o = append(o, 0xa5, 0x76, 0x61, 0x6c, 0x75, 0x65)
	o = msgp.AppendString(o, z.Value)
	// string "vtype"
	o = append(o, 0xa5, 0x76, 0x74, 0x79, 0x70, 0x65)
	o = msgp.AppendString(o, z.ValueType)
	// string "line"
	o = append(o, 0xa4, 0x6c, 0x69, 0x6e, 0x65)
	o = msgp.AppendInt(o, z.Line)
	// string "col"
	o = append(o, 0xa3, 0x63, 0x6f, 0x6c)
	o = msgp.AppendInt(o, z.Column)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (z *Statement) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	_ = field
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "kind":
			z.Kind, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				return
			}
		case "name":
			z.Name, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				return
			}
		case "value":
			z.Value, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				return
			}
		case "vtype":
			z.ValueType, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				return
			}
		case "line":
			z.Line, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				return
			}
		case "col":
			z.Column, bts, err = msgp.ReadIntBytes(bts)
			if err != nil {
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *Statement) Msgsize() (s int) {
	s = 1 + 5 + msgp.StringPrefixSize + len(z.Kind) + 5 + msgp.StringPrefixSize + len(z.Name) + 6 + msgp.StringPrefixSize + len(z.Value) + 6 + msgp.StringPrefixSize + len(z.ValueType) + 5 + msgp.IntSize + 4 + msgp.IntSize
	return
}
