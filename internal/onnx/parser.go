package onnx

import (
	"errors"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ParseFile parses an ONNX model from file.
//
//nolint:gosec // G304: Path is provided by user, file inclusion is intentional for ONNX model loading
func ParseFile(path string) (*ModelProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an ONNX model from bytes.
func Parse(data []byte) (*ModelProto, error) {
	model := &ModelProto{}
	if err := readMessage(data, model, 0); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return model, nil
}

// ParseGraph parses a serialized GraphProto.
func ParseGraph(data []byte) (*GraphProto, error) {
	graph := &GraphProto{}
	if err := readMessage(data, graph, 0); err != nil {
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	return graph, nil
}

// ParseFunction parses a serialized FunctionProto.
func ParseFunction(data []byte) (*FunctionProto, error) {
	fn := &FunctionProto{}
	if err := readMessage(data, fn, 0); err != nil {
		return nil, fmt.Errorf("failed to parse function: %w", err)
	}
	return fn, nil
}

// maxNestingDepth bounds how deeply messages may nest (graph attributes
// can contain graphs). Real models stay far below it.
const maxNestingDepth = 1000

// ErrNestingTooDeep is returned for input nesting more than maxNestingDepth
// messages.
var ErrNestingTooDeep = errors.New("message nesting too deep")

// parser walks the fields of one protobuf message. Sub-messages get their
// own parser over the length-delimited payload, one level deeper.
//
// Byte fields (RawData, S, Strings, StringData) alias the input buffer.
type parser struct {
	data  []byte
	depth int
}

// readMessage decodes data into msg, which sits depth messages below the
// top-level one.
func readMessage(data []byte, msg interface{}, depth int) error {
	if depth > maxNestingDepth {
		return ErrNestingTooDeep
	}
	p := &parser{data: data, depth: depth}
	var err error
	switch m := msg.(type) {
	case *ModelProto:
		err = p.readModelProto(m)
	case *GraphProto:
		err = p.readGraphProto(m)
	case *FunctionProto:
		err = p.readFunctionProto(m)
	case *NodeProto:
		err = p.readNodeProto(m)
	case *TensorProto:
		err = p.readTensorProto(m)
	case *ValueInfoProto:
		err = p.readValueInfoProto(m)
	case *TypeProto:
		err = p.readTypeProto(m)
	case *TensorTypeProto:
		err = p.readTensorTypeProto(m)
	case *SequenceTypeProto:
		err = p.readElemType(&m.ElemType)
	case *OptionalTypeProto:
		err = p.readElemType(&m.ElemType)
	case *MapTypeProto:
		err = p.readMapTypeProto(m)
	case *TensorShapeProto:
		err = p.readTensorShapeProto(m)
	case *DimensionProto:
		err = p.readDimensionProto(m)
	case *AttributeProto:
		err = p.readAttributeProto(m)
	case *OperatorSetID:
		err = p.readOperatorSetID(m)
	case *StringStringEntry:
		err = p.readStringStringEntry(m)
	default:
		return fmt.Errorf("unknown message type: %T", msg)
	}
	if err != nil {
		return fmt.Errorf("%T: %w", msg, err)
	}
	return nil
}

// readModelProto reads ModelProto message.
//
//nolint:gocognit,gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func (p *parser) readModelProto(m *ModelProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // ir_version
			m.IRVersion, err = p.int64(typ)
		case 2: // producer_name
			m.ProducerName, err = p.string(typ)
		case 3: // producer_version
			m.ProducerVersion, err = p.string(typ)
		case 4: // domain
			m.Domain, err = p.string(typ)
		case 5: // model_version
			m.ModelVersion, err = p.int64(typ)
		case 6: // doc_string
			m.DocString, err = p.string(typ)
		case 7: // graph
			m.Graph = &GraphProto{}
			err = p.message(typ, m.Graph)
		case 8: // opset_import
			opset := OperatorSetID{}
			err = p.message(typ, &opset)
			m.OpsetImport = append(m.OpsetImport, opset)
		case 14: // metadata_props
			entry := StringStringEntry{}
			err = p.message(typ, &entry)
			m.MetadataProps = append(m.MetadataProps, entry)
		case 25: // functions
			fn := FunctionProto{}
			err = p.message(typ, &fn)
			m.Functions = append(m.Functions, fn)
		default:
			err = p.skip(num, typ)
		}

		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readGraphProto reads GraphProto message.
//
//nolint:gocognit,gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func (p *parser) readGraphProto(m *GraphProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // node
			node := NodeProto{}
			err = p.message(typ, &node)
			m.Nodes = append(m.Nodes, node)
		case 2: // name
			m.Name, err = p.string(typ)
		case 5: // initializer
			tensor := TensorProto{}
			err = p.message(typ, &tensor)
			m.Initializers = append(m.Initializers, tensor)
		case 10: // doc_string
			m.DocString, err = p.string(typ)
		case 11: // input
			vi := ValueInfoProto{}
			err = p.message(typ, &vi)
			m.Inputs = append(m.Inputs, vi)
		case 12: // output
			vi := ValueInfoProto{}
			err = p.message(typ, &vi)
			m.Outputs = append(m.Outputs, vi)
		case 13: // value_info
			vi := ValueInfoProto{}
			err = p.message(typ, &vi)
			m.ValueInfo = append(m.ValueInfo, vi)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readFunctionProto reads FunctionProto message.
//
//nolint:gocognit,gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func (p *parser) readFunctionProto(m *FunctionProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		var s string
		switch num {
		case 1: // name
			m.Name, err = p.string(typ)
		case 4: // input
			s, err = p.string(typ)
			m.Inputs = append(m.Inputs, s)
		case 5: // output
			s, err = p.string(typ)
			m.Outputs = append(m.Outputs, s)
		case 6: // attribute
			s, err = p.string(typ)
			m.Attributes = append(m.Attributes, s)
		case 7: // node
			node := NodeProto{}
			err = p.message(typ, &node)
			m.Nodes = append(m.Nodes, node)
		case 8: // doc_string
			m.DocString, err = p.string(typ)
		case 9: // opset_import
			opset := OperatorSetID{}
			err = p.message(typ, &opset)
			m.OpsetImport = append(m.OpsetImport, opset)
		case 10: // domain
			m.Domain, err = p.string(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readNodeProto reads NodeProto message.
func (p *parser) readNodeProto(m *NodeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		var s string
		switch num {
		case 1: // input
			s, err = p.string(typ)
			m.Inputs = append(m.Inputs, s)
		case 2: // output
			s, err = p.string(typ)
			m.Outputs = append(m.Outputs, s)
		case 3: // name
			m.Name, err = p.string(typ)
		case 4: // op_type
			m.OpType, err = p.string(typ)
		case 5: // attribute
			attr := AttributeProto{}
			err = p.message(typ, &attr)
			m.Attributes = append(m.Attributes, attr)
		case 6: // doc_string
			m.DocString, err = p.string(typ)
		case 7: // domain
			m.Domain, err = p.string(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readTensorProto reads TensorProto message.
//
//nolint:gocognit,gocyclo,cyclop,funlen // Protobuf parsing; every legacy payload encoding has its own field
func (p *parser) readTensorProto(m *TensorProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // dims
			err = p.varints(typ, func(v uint64) {
				m.Dims = append(m.Dims, int64(v)) //nolint:gosec // G115: int64 field.
			})
		case 2: // data_type
			m.DataType, err = p.int32(typ)
		case 4: // float_data
			err = p.fixed32s(typ, func(v uint32) {
				m.FloatData = append(m.FloatData, math.Float32frombits(v))
			})
		case 5: // int32_data
			err = p.varints(typ, func(v uint64) {
				m.Int32Data = append(m.Int32Data, int32(v)) //nolint:gosec // G115: int32 field.
			})
		case 6: // string_data
			var b []byte
			b, err = p.bytes(typ)
			m.StringData = append(m.StringData, b)
		case 7: // int64_data
			err = p.varints(typ, func(v uint64) {
				m.Int64Data = append(m.Int64Data, int64(v)) //nolint:gosec // G115: int64 field.
			})
		case 8: // name
			m.Name, err = p.string(typ)
		case 9: // raw_data
			m.RawData, err = p.bytes(typ)
		case 10: // double_data
			err = p.fixed64s(typ, func(v uint64) {
				m.DoubleData = append(m.DoubleData, math.Float64frombits(v))
			})
		case 11: // uint64_data
			err = p.varints(typ, func(v uint64) {
				m.Uint64Data = append(m.Uint64Data, v)
			})
		case 12: // doc_string
			m.DocString, err = p.string(typ)
		case 14: // data_location
			m.DataLocation, err = p.int32(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readValueInfoProto reads ValueInfoProto message.
func (p *parser) readValueInfoProto(m *ValueInfoProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // name
			m.Name, err = p.string(typ)
		case 2: // type
			m.Type = &TypeProto{}
			err = p.message(typ, m.Type)
		case 3: // doc_string
			m.DocString, err = p.string(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readTypeProto reads TypeProto message. The variants form a oneof: the
// last one on the wire wins.
func (p *parser) readTypeProto(m *TypeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // tensor_type
			*m = TypeProto{TensorType: &TensorTypeProto{}}
			err = p.message(typ, m.TensorType)
		case 4: // sequence_type
			*m = TypeProto{SequenceType: &SequenceTypeProto{}}
			err = p.message(typ, m.SequenceType)
		case 5: // map_type
			*m = TypeProto{MapType: &MapTypeProto{}}
			err = p.message(typ, m.MapType)
		case 9: // optional_type
			*m = TypeProto{OptionalType: &OptionalTypeProto{}}
			err = p.message(typ, m.OptionalType)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readTensorTypeProto reads TensorTypeProto message.
func (p *parser) readTensorTypeProto(m *TensorTypeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // elem_type
			m.ElemType, err = p.int32(typ)
		case 2: // shape
			m.Shape = &TensorShapeProto{}
			err = p.message(typ, m.Shape)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readElemType reads the elem_type field shared by sequence and optional types.
func (p *parser) readElemType(elem **TypeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // elem_type
			*elem = &TypeProto{}
			err = p.message(typ, *elem)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readMapTypeProto reads TypeProto.Map message.
func (p *parser) readMapTypeProto(m *MapTypeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // key_type
			m.KeyType, err = p.int32(typ)
		case 2: // value_type
			m.ValueType = &TypeProto{}
			err = p.message(typ, m.ValueType)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readTensorShapeProto reads TensorShapeProto message.
func (p *parser) readTensorShapeProto(m *TensorShapeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // dim
			dim := DimensionProto{}
			err = p.message(typ, &dim)
			m.Dims = append(m.Dims, dim)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readDimensionProto reads TensorShapeProto.Dimension message. The last of
// dim_value and dim_param on the wire wins, as for any oneof.
func (p *parser) readDimensionProto(m *DimensionProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // dim_value
			m.DimValue, err = p.int64(typ)
			m.DimParam, m.HasValue = "", true
		case 2: // dim_param
			m.DimParam, err = p.string(typ)
			m.DimValue, m.HasValue = 0, false
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readAttributeProto reads AttributeProto message.
//
//nolint:gocognit,gocyclo,cyclop,funlen // Protobuf parsing requires field-by-field switch logic
func (p *parser) readAttributeProto(m *AttributeProto) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // name
			m.Name, err = p.string(typ)
		case 2: // f
			var bits uint32
			bits, err = p.fixed32(typ)
			m.F = math.Float32frombits(bits)
		case 3: // i
			m.I, err = p.int64(typ)
		case 4: // s
			m.S, err = p.bytes(typ)
		case 5: // t
			m.T = &TensorProto{}
			err = p.message(typ, m.T)
		case 6: // g
			m.G = &GraphProto{}
			err = p.message(typ, m.G)
		case 7: // floats
			err = p.fixed32s(typ, func(v uint32) {
				m.Floats = append(m.Floats, math.Float32frombits(v))
			})
		case 8: // ints
			err = p.varints(typ, func(v uint64) {
				m.Ints = append(m.Ints, int64(v)) //nolint:gosec // G115: int64 field.
			})
		case 9: // strings
			var b []byte
			b, err = p.bytes(typ)
			m.Strings = append(m.Strings, b)
		case 10: // tensors
			tensor := TensorProto{}
			err = p.message(typ, &tensor)
			m.Tensors = append(m.Tensors, tensor)
		case 11: // graphs
			graph := GraphProto{}
			err = p.message(typ, &graph)
			m.Graphs = append(m.Graphs, graph)
		case 13: // doc_string
			m.DocString, err = p.string(typ)
		case 20: // type
			m.Type, err = p.int32(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readOperatorSetID reads OperatorSetIdProto message.
func (p *parser) readOperatorSetID(m *OperatorSetID) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // domain
			m.Domain, err = p.string(typ)
		case 2: // version
			m.Version, err = p.int64(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

// readStringStringEntry reads StringStringEntryProto message.
func (p *parser) readStringStringEntry(m *StringStringEntry) error {
	for {
		num, typ, ok, err := p.next()
		if err != nil || !ok {
			return err
		}

		switch num {
		case 1: // key
			m.Key, err = p.string(typ)
		case 2: // value
			m.Value, err = p.string(typ)
		default:
			err = p.skip(num, typ)
		}
		if err != nil {
			return fieldError(num, err)
		}
	}
}

func fieldError(num protowire.Number, err error) error {
	return fmt.Errorf("field %d: %w", num, err)
}

// wireTypeError reports a field encoded with an unexpected wire type.
func wireTypeError(got, want protowire.Type) error {
	return fmt.Errorf("wire type %d, want %d", got, want)
}

// next reads the next field tag. ok is false at the end of the message.
func (p *parser) next() (num protowire.Number, typ protowire.Type, ok bool, err error) {
	if len(p.data) == 0 {
		return 0, 0, false, nil
	}
	num, typ, n := protowire.ConsumeTag(p.data)
	if n < 0 {
		return 0, 0, false, protowire.ParseError(n)
	}
	p.data = p.data[n:]
	return num, typ, true, nil
}

// advance drops n consumed bytes, or converts a negative n to an error.
func (p *parser) advance(n int) error {
	if n < 0 {
		return protowire.ParseError(n)
	}
	p.data = p.data[n:]
	return nil
}

func (p *parser) varint(typ protowire.Type) (uint64, error) {
	if typ != protowire.VarintType {
		return 0, wireTypeError(typ, protowire.VarintType)
	}
	v, n := protowire.ConsumeVarint(p.data)
	return v, p.advance(n)
}

func (p *parser) int64(typ protowire.Type) (int64, error) {
	v, err := p.varint(typ)
	return int64(v), err //nolint:gosec // G115: Protobuf int64 is two's complement.
}

func (p *parser) int32(typ protowire.Type) (int32, error) {
	v, err := p.varint(typ)
	return int32(v), err //nolint:gosec // G115: Protobuf int32 and enums fit in int32.
}

func (p *parser) fixed32(typ protowire.Type) (uint32, error) {
	if typ != protowire.Fixed32Type {
		return 0, wireTypeError(typ, protowire.Fixed32Type)
	}
	v, n := protowire.ConsumeFixed32(p.data)
	return v, p.advance(n)
}

func (p *parser) bytes(typ protowire.Type) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, wireTypeError(typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeBytes(p.data)
	return v, p.advance(n)
}

func (p *parser) string(typ protowire.Type) (string, error) {
	b, err := p.bytes(typ)
	return string(b), err
}

// message decodes a length-delimited sub-message into msg.
func (p *parser) message(typ protowire.Type, msg interface{}) error {
	data, err := p.bytes(typ)
	if err != nil {
		return err
	}
	return readMessage(data, msg, p.depth+1)
}

func (p *parser) skip(num protowire.Number, typ protowire.Type) error {
	return p.advance(protowire.ConsumeFieldValue(num, typ, p.data))
}

// Repeated scalars may arrive packed (one length-delimited field) or as
// individual fields; both are accepted.

func (p *parser) varints(typ protowire.Type, add func(uint64)) error {
	if typ != protowire.BytesType {
		v, err := p.varint(typ)
		if err == nil {
			add(v)
		}
		return err
	}
	packed, err := p.bytes(typ)
	if err != nil {
		return err
	}
	for len(packed) > 0 {
		v, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return protowire.ParseError(n)
		}
		add(v)
		packed = packed[n:]
	}
	return nil
}

func (p *parser) fixed32s(typ protowire.Type, add func(uint32)) error {
	if typ != protowire.BytesType {
		v, err := p.fixed32(typ)
		if err == nil {
			add(v)
		}
		return err
	}
	packed, err := p.bytes(typ)
	if err != nil {
		return err
	}
	for len(packed) > 0 {
		v, n := protowire.ConsumeFixed32(packed)
		if n < 0 {
			return protowire.ParseError(n)
		}
		add(v)
		packed = packed[n:]
	}
	return nil
}

func (p *parser) fixed64s(typ protowire.Type, add func(uint64)) error {
	if typ != protowire.BytesType {
		if typ != protowire.Fixed64Type {
			return wireTypeError(typ, protowire.Fixed64Type)
		}
		v, n := protowire.ConsumeFixed64(p.data)
		if err := p.advance(n); err != nil {
			return err
		}
		add(v)
		return nil
	}
	packed, err := p.bytes(typ)
	if err != nil {
		return err
	}
	for len(packed) > 0 {
		v, n := protowire.ConsumeFixed64(packed)
		if n < 0 {
			return protowire.ParseError(n)
		}
		add(v)
		packed = packed[n:]
	}
	return nil
}
