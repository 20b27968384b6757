package onnx

// ONNX protobuf data structures (hand-written).
//
// Every message kind the printer understands implements Proto. The set is
// closed: isProto is unexported, so only this package can add kinds.

// Proto is a printable ONNX IR node.
type Proto interface {
	isProto()
}

// ModelProto represents an ONNX model.
type ModelProto struct {
	IRVersion       int64               // IR version (e.g., 7, 8, 9)
	OpsetImport     []OperatorSetID     // Opset version(s)
	ProducerName    string              // Framework name (e.g., "pytorch", "tf")
	ProducerVersion string              // Framework version
	Domain          string              // Model domain
	ModelVersion    int64               // Model version number
	DocString       string              // Model description
	Graph           *GraphProto         // Computation graph
	MetadataProps   []StringStringEntry // Key-value metadata
	Functions       []FunctionProto     // Model-local functions
}

// GraphProto represents the computation graph.
type GraphProto struct {
	Name         string        // Graph name
	Nodes        NodeList      // Operation nodes
	Inputs       ValueInfoList // Graph inputs
	Outputs      ValueInfoList // Graph outputs
	Initializers []TensorProto // Weight tensors
	DocString    string        // Graph description
	ValueInfo    ValueInfoList // Intermediate tensor info
}

// FunctionProto is a reusable sub-computation local to a model.
type FunctionProto struct {
	Name        string          // Function name (the op_type callers use)
	Domain      string          // Domain callers use to reference it
	OpsetImport []OperatorSetID // Opsets the body depends on
	Inputs      []string        // Formal input names
	Outputs     []string        // Formal output names
	Attributes  []string        // Formal attribute names
	Nodes       NodeList        // Body
	DocString   string
}

// NodeProto represents a single operation.
type NodeProto struct {
	Name       string        // Node name (optional)
	OpType     string        // Operation type (e.g., "Conv", "MatMul", "Relu")
	Inputs     []string      // Input tensor names
	Outputs    []string      // Output tensor names
	Attributes AttributeList // Operation attributes
	Domain     string        // Custom domain (empty for default)
	DocString  string        // Node description
}

// ValueInfoList is an ordered list of graph inputs or outputs.
type ValueInfoList []ValueInfoProto

// AttributeList is the ordered attribute list of a node.
type AttributeList []AttributeProto

// NodeList is an ordered list of nodes (a graph or function body).
type NodeList []NodeProto

// TensorProto represents a constant tensor (initializer or attribute value).
type TensorProto struct {
	Name         string    // Tensor name
	DataType     int32     // Element data type
	Dims         []int64   // Tensor shape
	RawData      []byte    // Raw binary data (not printed)
	FloatData    []float32 // FLOAT
	Int32Data    []int32   // INT8, INT16, INT32, UINT8, UINT16, BOOL, FLOAT16 bits
	Int64Data    []int64   // INT64
	Uint64Data   []uint64  // UINT32, UINT64
	DoubleData   []float64 // DOUBLE
	StringData   [][]byte  // STRING
	DataLocation int32     // DataLocationDefault or DataLocationExternal
	DocString    string    // Tensor description
}

// ValueInfoProto describes input/output tensor specifications.
type ValueInfoProto struct {
	Name      string     // Tensor name
	Type      *TypeProto // Type information
	DocString string     // Description
}

// TypeProto describes a value type. At most one variant is set.
type TypeProto struct {
	TensorType   *TensorTypeProto   // Tensor type (most common)
	SequenceType *SequenceTypeProto // seq(T)
	MapType      *MapTypeProto      // map(K, V)
	OptionalType *OptionalTypeProto // optional(T)
}

// TensorTypeProto describes tensor shape and element type.
type TensorTypeProto struct {
	ElemType int32             // Element data type
	Shape    *TensorShapeProto // Tensor shape (nil when unknown rank)
}

// SequenceTypeProto is a homogeneous sequence type.
type SequenceTypeProto struct {
	ElemType *TypeProto
}

// MapTypeProto maps a primitive key type to a value type.
type MapTypeProto struct {
	KeyType   int32
	ValueType *TypeProto
}

// OptionalTypeProto wraps a type that may be absent.
type OptionalTypeProto struct {
	ElemType *TypeProto
}

// TensorShapeProto describes tensor dimensions.
type TensorShapeProto struct {
	Dims []DimensionProto // Dimensions
}

// DimensionProto describes a single dimension.
//
// HasValue reports whether DimValue is set; DimValue and DimParam form a
// oneof, and a dimension with neither is unknown.
type DimensionProto struct {
	DimValue int64  // Static dimension value (e.g., 224 for image size)
	DimParam string // Dynamic dimension name (e.g., "batch_size")
	HasValue bool
}

// DimValue returns a dimension with a static value.
func DimValue(v int64) DimensionProto {
	return DimensionProto{DimValue: v, HasValue: true}
}

// DimParam returns a symbolic dimension.
func DimParam(name string) DimensionProto {
	return DimensionProto{DimParam: name}
}

// AttributeProto represents node attributes.
type AttributeProto struct {
	Name      string        // Attribute name
	Type      int32         // Attribute type
	F         float32       // FLOAT value
	I         int64         // INT value
	S         []byte        // STRING value
	T         *TensorProto  // TENSOR value
	G         *GraphProto   // GRAPH value
	Floats    []float32     // FLOATS array
	Ints      []int64       // INTS array
	Strings   [][]byte      // STRINGS array
	Tensors   []TensorProto // TENSORS array
	Graphs    []GraphProto  // GRAPHS array
	DocString string        // Description
}

// OperatorSetID identifies opset version.
type OperatorSetID struct {
	Domain  string // Operator domain (empty for default)
	Version int64  // Opset version number
}

// StringStringEntry represents key-value metadata.
type StringStringEntry struct {
	Key   string
	Value string
}

func (*DimensionProto) isProto()   {}
func (*TensorShapeProto) isProto() {}
func (*TensorTypeProto) isProto()  {}
func (*TypeProto) isProto()        {}
func (*TensorProto) isProto()      {}
func (*ValueInfoProto) isProto()   {}
func (ValueInfoList) isProto()     {}
func (*AttributeProto) isProto()   {}
func (AttributeList) isProto()     {}
func (*NodeProto) isProto()        {}
func (NodeList) isProto()          {}
func (*GraphProto) isProto()       {}
func (*FunctionProto) isProto()    {}
func (*OperatorSetID) isProto()    {}

// ONNX data types (TensorProto.DataType).
const (
	TensorProtoUndefined  = 0
	TensorProtoFloat      = 1  // float32
	TensorProtoUint8      = 2  // uint8
	TensorProtoInt8       = 3  // int8
	TensorProtoUint16     = 4  // uint16
	TensorProtoInt16      = 5  // int16
	TensorProtoInt32      = 6  // int32
	TensorProtoInt64      = 7  // int64
	TensorProtoString     = 8  // string
	TensorProtoBool       = 9  // bool
	TensorProtoFloat16    = 10 // float16
	TensorProtoDouble     = 11 // float64
	TensorProtoUint32     = 12 // uint32
	TensorProtoUint64     = 13 // uint64
	TensorProtoComplex64  = 14 // complex64
	TensorProtoComplex128 = 15 // complex128
	TensorProtoBfloat16   = 16 // bfloat16
)

// ONNX attribute types (AttributeProto.Type).
const (
	AttributeProtoUndefined = 0
	AttributeProtoFloat     = 1  // FLOAT
	AttributeProtoInt       = 2  // INT
	AttributeProtoString    = 3  // STRING
	AttributeProtoTensor    = 4  // TENSOR
	AttributeProtoGraph     = 5  // GRAPH
	AttributeProtoFloats    = 6  // FLOATS
	AttributeProtoInts      = 7  // INTS
	AttributeProtoStrings   = 8  // STRINGS
	AttributeProtoTensors   = 9  // TENSORS
	AttributeProtoGraphs    = 10 // GRAPHS
)

// Tensor data locations (TensorProto.DataLocation).
const (
	DataLocationDefault  = 0
	DataLocationExternal = 1
)

var elemTypeNames = map[int32]string{
	TensorProtoFloat:      "float",
	TensorProtoUint8:      "uint8",
	TensorProtoInt8:       "int8",
	TensorProtoUint16:     "uint16",
	TensorProtoInt16:      "int16",
	TensorProtoInt32:      "int32",
	TensorProtoInt64:      "int64",
	TensorProtoString:     "string",
	TensorProtoBool:       "bool",
	TensorProtoFloat16:    "float16",
	TensorProtoDouble:     "double",
	TensorProtoUint32:     "uint32",
	TensorProtoUint64:     "uint64",
	TensorProtoComplex64:  "complex64",
	TensorProtoComplex128: "complex128",
	TensorProtoBfloat16:   "bfloat16",
}

// ElemTypeName returns the text name of an element type code, or "" for
// codes outside the table.
func ElemTypeName(code int32) string {
	return elemTypeNames[code]
}
