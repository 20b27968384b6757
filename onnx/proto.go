package onnx

import internalonnx "github.com/born-ml/onnxtext/internal/onnx"

// IR types. See the internal package for field documentation.
type (
	Proto             = internalonnx.Proto
	ModelProto        = internalonnx.ModelProto
	GraphProto        = internalonnx.GraphProto
	FunctionProto     = internalonnx.FunctionProto
	NodeProto         = internalonnx.NodeProto
	NodeList          = internalonnx.NodeList
	AttributeProto    = internalonnx.AttributeProto
	AttributeList     = internalonnx.AttributeList
	ValueInfoProto    = internalonnx.ValueInfoProto
	ValueInfoList     = internalonnx.ValueInfoList
	TypeProto         = internalonnx.TypeProto
	TensorTypeProto   = internalonnx.TensorTypeProto
	SequenceTypeProto = internalonnx.SequenceTypeProto
	MapTypeProto      = internalonnx.MapTypeProto
	OptionalTypeProto = internalonnx.OptionalTypeProto
	TensorShapeProto  = internalonnx.TensorShapeProto
	DimensionProto    = internalonnx.DimensionProto
	TensorProto       = internalonnx.TensorProto
	OperatorSetID     = internalonnx.OperatorSetID
	StringStringEntry = internalonnx.StringStringEntry
)

// DimValue returns a dimension with a static value.
func DimValue(v int64) DimensionProto {
	return internalonnx.DimValue(v)
}

// DimParam returns a symbolic dimension.
func DimParam(name string) DimensionProto {
	return internalonnx.DimParam(name)
}

// Element data types (TensorProto.DataType, TensorTypeProto.ElemType).
const (
	TensorProtoUndefined  = internalonnx.TensorProtoUndefined
	TensorProtoFloat      = internalonnx.TensorProtoFloat
	TensorProtoUint8      = internalonnx.TensorProtoUint8
	TensorProtoInt8       = internalonnx.TensorProtoInt8
	TensorProtoUint16     = internalonnx.TensorProtoUint16
	TensorProtoInt16      = internalonnx.TensorProtoInt16
	TensorProtoInt32      = internalonnx.TensorProtoInt32
	TensorProtoInt64      = internalonnx.TensorProtoInt64
	TensorProtoString     = internalonnx.TensorProtoString
	TensorProtoBool       = internalonnx.TensorProtoBool
	TensorProtoFloat16    = internalonnx.TensorProtoFloat16
	TensorProtoDouble     = internalonnx.TensorProtoDouble
	TensorProtoUint32     = internalonnx.TensorProtoUint32
	TensorProtoUint64     = internalonnx.TensorProtoUint64
	TensorProtoComplex64  = internalonnx.TensorProtoComplex64
	TensorProtoComplex128 = internalonnx.TensorProtoComplex128
	TensorProtoBfloat16   = internalonnx.TensorProtoBfloat16
)

// Attribute types (AttributeProto.Type).
const (
	AttributeProtoUndefined = internalonnx.AttributeProtoUndefined
	AttributeProtoFloat     = internalonnx.AttributeProtoFloat
	AttributeProtoInt       = internalonnx.AttributeProtoInt
	AttributeProtoString    = internalonnx.AttributeProtoString
	AttributeProtoTensor    = internalonnx.AttributeProtoTensor
	AttributeProtoGraph     = internalonnx.AttributeProtoGraph
	AttributeProtoFloats    = internalonnx.AttributeProtoFloats
	AttributeProtoInts      = internalonnx.AttributeProtoInts
	AttributeProtoStrings   = internalonnx.AttributeProtoStrings
	AttributeProtoTensors   = internalonnx.AttributeProtoTensors
	AttributeProtoGraphs    = internalonnx.AttributeProtoGraphs
)
