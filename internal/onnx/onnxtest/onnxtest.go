// Package onnxtest builds serialized ONNX messages for tests.
//
// Builders return Message values holding protobuf wire bytes, so fixtures
// exercise the real decoder instead of constructing IR structs directly.
package onnxtest

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is a serialized protobuf message under construction.
type Message []byte

// Varint appends a varint field.
func (m Message) Varint(num protowire.Number, v uint64) Message {
	m = protowire.AppendTag(m, num, protowire.VarintType)
	return protowire.AppendVarint(m, v)
}

// Int appends a signed varint field (int32, int64 or enum).
func (m Message) Int(num protowire.Number, v int64) Message {
	return m.Varint(num, uint64(v)) //nolint:gosec // G115: two's complement on the wire.
}

// Bytes appends a length-delimited field.
func (m Message) Bytes(num protowire.Number, b []byte) Message {
	m = protowire.AppendTag(m, num, protowire.BytesType)
	return protowire.AppendBytes(m, b)
}

// Text appends a string field.
func (m Message) Text(num protowire.Number, s string) Message {
	m = protowire.AppendTag(m, num, protowire.BytesType)
	return protowire.AppendString(m, s)
}

// Sub appends an embedded message field.
func (m Message) Sub(num protowire.Number, sub Message) Message {
	return m.Bytes(num, sub)
}

// Float appends a float field.
func (m Message) Float(num protowire.Number, f float32) Message {
	m = protowire.AppendTag(m, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(m, math.Float32bits(f))
}

// PackedInts appends a packed repeated varint field.
func (m Message) PackedInts(num protowire.Number, vs ...int64) Message {
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v)) //nolint:gosec // G115: two's complement on the wire.
	}
	return m.Bytes(num, packed)
}

// PackedUints appends a packed repeated unsigned varint field.
func (m Message) PackedUints(num protowire.Number, vs ...uint64) Message {
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, v)
	}
	return m.Bytes(num, packed)
}

// PackedFloats appends a packed repeated float field.
func (m Message) PackedFloats(num protowire.Number, fs ...float32) Message {
	var packed []byte
	for _, f := range fs {
		packed = protowire.AppendFixed32(packed, math.Float32bits(f))
	}
	return m.Bytes(num, packed)
}

// PackedDoubles appends a packed repeated double field.
func (m Message) PackedDoubles(num protowire.Number, fs ...float64) Message {
	var packed []byte
	for _, f := range fs {
		packed = protowire.AppendFixed64(packed, math.Float64bits(f))
	}
	return m.Bytes(num, packed)
}

// Model builds a ModelProto.
func Model(irVersion int64, graph Message, opsets []Message, functions ...Message) Message {
	m := Message{}.Int(1, irVersion)
	for _, o := range opsets {
		m = m.Sub(8, o)
	}
	if graph != nil {
		m = m.Sub(7, graph)
	}
	for _, f := range functions {
		m = m.Sub(25, f)
	}
	return m
}

// Graph builds a GraphProto.
func Graph(name string, inputs, outputs, nodes []Message) Message {
	m := Message{}
	for _, n := range nodes {
		m = m.Sub(1, n)
	}
	m = m.Text(2, name)
	for _, vi := range inputs {
		m = m.Sub(11, vi)
	}
	for _, vi := range outputs {
		m = m.Sub(12, vi)
	}
	return m
}

// Initializer appends an initializer tensor to a GraphProto.
func Initializer(graph, tensor Message) Message {
	return graph.Sub(5, tensor)
}

// Function builds a FunctionProto.
func Function(domain, name string, inputs, outputs, attrs []string, nodes []Message, opsets ...Message) Message {
	m := Message{}.Text(1, name)
	for _, s := range inputs {
		m = m.Text(4, s)
	}
	for _, s := range outputs {
		m = m.Text(5, s)
	}
	for _, s := range attrs {
		m = m.Text(6, s)
	}
	for _, n := range nodes {
		m = m.Sub(7, n)
	}
	for _, o := range opsets {
		m = m.Sub(9, o)
	}
	return m.Text(10, domain)
}

// Node builds a NodeProto.
func Node(opType string, inputs, outputs []string, attrs ...Message) Message {
	m := Message{}
	for _, s := range inputs {
		m = m.Text(1, s)
	}
	for _, s := range outputs {
		m = m.Text(2, s)
	}
	m = m.Text(4, opType)
	for _, a := range attrs {
		m = m.Sub(5, a)
	}
	return m
}

// Opset builds an OperatorSetIdProto.
func Opset(domain string, version int64) Message {
	return Message{}.Text(1, domain).Int(2, version)
}

// ValueInfo builds a tensor-typed ValueInfoProto with a shape made of dims.
func ValueInfo(name string, elemType int32, dims ...Message) Message {
	shape := Message{}
	for _, d := range dims {
		shape = shape.Sub(1, d)
	}
	tensorType := Message{}.Int(1, int64(elemType)).Sub(2, shape)
	return Message{}.Text(1, name).Sub(2, Message{}.Sub(1, tensorType))
}

// Dim builds a static dimension.
func Dim(v int64) Message {
	return Message{}.Int(1, v)
}

// DimParam builds a symbolic dimension.
func DimParam(name string) Message {
	return Message{}.Text(2, name)
}

// Tensor builds a TensorProto header; append the payload with the Packed*
// methods (4 float_data, 5 int32_data, 7 int64_data, 10 double_data,
// 11 uint64_data) or Bytes(6, ...) for string_data.
func Tensor(name string, dataType int32, dims ...int64) Message {
	m := Message{}
	if len(dims) > 0 {
		m = m.PackedInts(1, dims...)
	}
	return m.Int(2, int64(dataType)).Text(8, name)
}

// Attribute types as they appear on the wire.
const (
	attrFloat   = 1
	attrInt     = 2
	attrString  = 3
	attrGraph   = 5
	attrFloats  = 6
	attrInts    = 7
	attrStrings = 8
)

// IntAttr builds an INT attribute.
func IntAttr(name string, v int64) Message {
	return Message{}.Text(1, name).Int(3, v).Int(20, attrInt)
}

// FloatAttr builds a FLOAT attribute.
func FloatAttr(name string, f float32) Message {
	return Message{}.Text(1, name).Float(2, f).Int(20, attrFloat)
}

// StringAttr builds a STRING attribute.
func StringAttr(name, s string) Message {
	return Message{}.Text(1, name).Text(4, s).Int(20, attrString)
}

// GraphAttr builds a GRAPH attribute.
func GraphAttr(name string, graph Message) Message {
	return Message{}.Text(1, name).Sub(6, graph).Int(20, attrGraph)
}

// FloatsAttr builds a FLOATS attribute.
func FloatsAttr(name string, fs ...float32) Message {
	return Message{}.Text(1, name).PackedFloats(7, fs...).Int(20, attrFloats)
}

// IntsAttr builds an INTS attribute.
func IntsAttr(name string, vs ...int64) Message {
	return Message{}.Text(1, name).PackedInts(8, vs...).Int(20, attrInts)
}

// StringsAttr builds a STRINGS attribute.
func StringsAttr(name string, ss ...string) Message {
	m := Message{}.Text(1, name)
	for _, s := range ss {
		m = m.Text(9, s)
	}
	return m.Int(20, attrStrings)
}
