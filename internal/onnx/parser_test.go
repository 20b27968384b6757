package onnx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/onnxtext/internal/onnx/onnxtest"
)

func defaultOpsets() []onnxtest.Message {
	return []onnxtest.Message{onnxtest.Opset("", 13)}
}

// buildSimpleAddModel creates a minimal ONNX model: Z = X + Y.
func buildSimpleAddModel() []byte {
	x := onnxtest.ValueInfo("X", TensorProtoFloat, onnxtest.DimParam("N"), onnxtest.Dim(784))
	y := onnxtest.ValueInfo("Y", TensorProtoFloat, onnxtest.DimParam("N"), onnxtest.Dim(784))
	z := onnxtest.ValueInfo("Z", TensorProtoFloat, onnxtest.DimParam("N"), onnxtest.Dim(784))
	add := onnxtest.Node("Add", []string{"X", "Y"}, []string{"Z"})
	graph := onnxtest.Graph("simple_add",
		[]onnxtest.Message{x, y}, []onnxtest.Message{z}, []onnxtest.Message{add})
	return onnxtest.Model(7, graph, defaultOpsets())
}

// buildMatMulModel creates Y = MatMul(X, W) with W as a 4x4 initializer.
func buildMatMulModel() []byte {
	x := onnxtest.ValueInfo("X", TensorProtoFloat, onnxtest.Dim(1), onnxtest.Dim(4))
	w := onnxtest.ValueInfo("W", TensorProtoFloat, onnxtest.Dim(4), onnxtest.Dim(4))
	y := onnxtest.ValueInfo("Y", TensorProtoFloat, onnxtest.Dim(1), onnxtest.Dim(4))
	matmul := onnxtest.Node("MatMul", []string{"X", "W"}, []string{"Y"})
	graph := onnxtest.Graph("matmul_graph",
		[]onnxtest.Message{x, w}, []onnxtest.Message{y}, []onnxtest.Message{matmul})

	weight := onnxtest.Tensor("W", TensorProtoFloat, 4, 4).Bytes(9, make([]byte, 4*4*4))
	graph = onnxtest.Initializer(graph, weight)
	return onnxtest.Model(7, graph, defaultOpsets())
}

// TestParseSimpleAdd tests parsing a simple Add operation.
func TestParseSimpleAdd(t *testing.T) {
	model, err := Parse(buildSimpleAddModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if model.IRVersion != 7 {
		t.Errorf("Expected IR version 7, got %d", model.IRVersion)
	}
	if model.Graph == nil {
		t.Fatal("Graph is nil")
	}
	if model.Graph.Name != "simple_add" {
		t.Errorf("Expected graph name 'simple_add', got '%s'", model.Graph.Name)
	}
	if len(model.Graph.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(model.Graph.Nodes))
	}

	node := model.Graph.Nodes[0]
	if node.OpType != "Add" {
		t.Errorf("Expected OpType 'Add', got '%s'", node.OpType)
	}
	if len(node.Inputs) != 2 || node.Inputs[0] != "X" || node.Inputs[1] != "Y" {
		t.Errorf("Expected inputs [X Y], got %v", node.Inputs)
	}
	if len(node.Outputs) != 1 || node.Outputs[0] != "Z" {
		t.Errorf("Expected outputs [Z], got %v", node.Outputs)
	}
}

// TestParseWithInitializer tests parsing a model with weight tensors.
func TestParseWithInitializer(t *testing.T) {
	model, err := Parse(buildMatMulModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Initializers) != 1 {
		t.Fatalf("Expected 1 initializer, got %d", len(model.Graph.Initializers))
	}

	init := model.Graph.Initializers[0]
	if init.Name != "W" {
		t.Errorf("Expected initializer name 'W', got '%s'", init.Name)
	}
	if init.DataType != TensorProtoFloat {
		t.Errorf("Expected data type float32, got %d", init.DataType)
	}
	if len(init.Dims) != 2 || init.Dims[0] != 4 || init.Dims[1] != 4 {
		t.Errorf("Expected dims [4 4], got %v", init.Dims)
	}

	expectedSize := 4 * 4 * 4 // 4x4 matrix, float32 = 4 bytes
	if len(init.RawData) != expectedSize {
		t.Errorf("Expected raw data size %d, got %d", expectedSize, len(init.RawData))
	}
}

// TestParseInputOutput tests parsing input/output specifications.
func TestParseInputOutput(t *testing.T) {
	model, err := Parse(buildSimpleAddModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.Graph.Inputs) != 2 {
		t.Errorf("Expected 2 inputs, got %d", len(model.Graph.Inputs))
	}
	if len(model.Graph.Outputs) != 1 {
		t.Errorf("Expected 1 output, got %d", len(model.Graph.Outputs))
	}

	input := model.Graph.Inputs[0]
	if input.Name != "X" {
		t.Errorf("Expected input name 'X', got '%s'", input.Name)
	}
	if input.Type == nil || input.Type.TensorType == nil {
		t.Fatal("Input type info is nil")
	}

	tt := input.Type.TensorType
	if tt.ElemType != TensorProtoFloat {
		t.Errorf("Expected float32 type, got %d", tt.ElemType)
	}
	if tt.Shape == nil || len(tt.Shape.Dims) != 2 {
		t.Fatalf("Expected 2 dims, got %+v", tt.Shape)
	}
	if tt.Shape.Dims[0].HasValue || tt.Shape.Dims[0].DimParam != "N" {
		t.Errorf("Expected symbolic dim 'N', got %+v", tt.Shape.Dims[0])
	}
	if !tt.Shape.Dims[1].HasValue || tt.Shape.Dims[1].DimValue != 784 {
		t.Errorf("Expected dim 784, got %+v", tt.Shape.Dims[1])
	}
}

// TestParseOpsetVersion tests parsing opset version.
func TestParseOpsetVersion(t *testing.T) {
	model, err := Parse(buildSimpleAddModel())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(model.OpsetImport) != 1 {
		t.Fatalf("Expected 1 opset import, got %d", len(model.OpsetImport))
	}
	if v := model.OpsetImport[0].Version; v != 13 {
		t.Errorf("Expected opset version 13, got %d", v)
	}
}

// TestParseAttributes tests every attribute kind the printer renders.
func TestParseAttributes(t *testing.T) {
	body := onnxtest.Graph("body", nil, nil, nil)
	node := onnxtest.Node("Custom", []string{"X"}, []string{"Y"},
		onnxtest.IntAttr("axis", -1),
		onnxtest.FloatAttr("alpha", 0.25),
		onnxtest.StringAttr("mode", "edge"),
		onnxtest.IntsAttr("kernel_shape", 3, 3),
		onnxtest.FloatsAttr("scales", 1, 2),
		onnxtest.StringsAttr("names", "a", "b"),
		onnxtest.GraphAttr("body", body),
	)
	graph := onnxtest.Graph("attrs", nil, nil, []onnxtest.Message{node})

	model, err := Parse(onnxtest.Model(8, graph, defaultOpsets()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	attrs := model.Graph.Nodes[0].Attributes
	if len(attrs) != 7 {
		t.Fatalf("Expected 7 attributes, got %d", len(attrs))
	}

	if a := attrs[0]; a.Type != AttributeProtoInt || a.I != -1 {
		t.Errorf("axis: got type %d value %d", a.Type, a.I)
	}
	if a := attrs[1]; a.Type != AttributeProtoFloat || a.F != 0.25 {
		t.Errorf("alpha: got type %d value %v", a.Type, a.F)
	}
	if a := attrs[2]; a.Type != AttributeProtoString || string(a.S) != "edge" {
		t.Errorf("mode: got type %d value %q", a.Type, a.S)
	}
	if a := attrs[3]; a.Type != AttributeProtoInts || len(a.Ints) != 2 || a.Ints[0] != 3 || a.Ints[1] != 3 {
		t.Errorf("kernel_shape: got type %d value %v", a.Type, a.Ints)
	}
	if a := attrs[4]; a.Type != AttributeProtoFloats || len(a.Floats) != 2 || a.Floats[1] != 2 {
		t.Errorf("scales: got type %d value %v", a.Type, a.Floats)
	}
	if a := attrs[5]; a.Type != AttributeProtoStrings || len(a.Strings) != 2 || string(a.Strings[1]) != "b" {
		t.Errorf("names: got type %d value %q", a.Type, a.Strings)
	}
	if a := attrs[6]; a.Type != AttributeProtoGraph || a.G == nil || a.G.Name != "body" {
		t.Errorf("body: got type %d graph %+v", a.Type, a.G)
	}
}

// TestParseTensorPayloads tests the legacy typed payload fields.
func TestParseTensorPayloads(t *testing.T) {
	unpacked := onnxtest.Tensor("i32", TensorProtoInt32, 2).Int(5, -4).Int(5, 5)
	tensors := []onnxtest.Message{
		onnxtest.Tensor("f", TensorProtoFloat, 2).PackedFloats(4, 1.5, -2),
		unpacked,
		onnxtest.Tensor("i64", TensorProtoInt64, 1).PackedInts(7, -9),
		onnxtest.Tensor("u64", TensorProtoUint64, 1).PackedUints(11, 1<<63),
		onnxtest.Tensor("d", TensorProtoDouble, 1).PackedDoubles(10, 0.125),
		onnxtest.Tensor("s", TensorProtoString, 2).Bytes(6, []byte("a")).Bytes(6, []byte("b")),
	}
	graph := onnxtest.Graph("payloads", nil, nil, nil)
	for _, tensor := range tensors {
		graph = onnxtest.Initializer(graph, tensor)
	}

	model, err := Parse(onnxtest.Model(8, graph, defaultOpsets()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	inits := model.Graph.Initializers
	if len(inits) != len(tensors) {
		t.Fatalf("Expected %d initializers, got %d", len(tensors), len(inits))
	}
	if got := inits[0].FloatData; len(got) != 2 || got[0] != 1.5 || got[1] != -2 {
		t.Errorf("float_data: got %v", got)
	}
	if got := inits[1].Int32Data; len(got) != 2 || got[0] != -4 || got[1] != 5 {
		t.Errorf("int32_data: got %v", got)
	}
	if got := inits[2].Int64Data; len(got) != 1 || got[0] != -9 {
		t.Errorf("int64_data: got %v", got)
	}
	if got := inits[3].Uint64Data; len(got) != 1 || got[0] != 1<<63 {
		t.Errorf("uint64_data: got %v", got)
	}
	if got := inits[4].DoubleData; len(got) != 1 || got[0] != 0.125 {
		t.Errorf("double_data: got %v", got)
	}
	if got := inits[5].StringData; len(got) != 2 || string(got[0]) != "a" || string(got[1]) != "b" {
		t.Errorf("string_data: got %q", got)
	}
}

// TestParseFunctions tests model-local functions.
func TestParseFunctions(t *testing.T) {
	body := []onnxtest.Message{
		onnxtest.Node("Sigmoid", []string{"X"}, []string{"S"}),
		onnxtest.Node("Mul", []string{"X", "S"}, []string{"Y"}),
	}
	fn := onnxtest.Function("custom", "Swish",
		[]string{"X"}, []string{"Y"}, []string{"beta"}, body,
		onnxtest.Opset("", 18))
	data := onnxtest.Model(8, onnxtest.Graph("main", nil, nil, nil), defaultOpsets(), fn)

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(model.Functions) != 1 {
		t.Fatalf("Expected 1 function, got %d", len(model.Functions))
	}

	got := model.Functions[0]
	if got.Name != "Swish" || got.Domain != "custom" {
		t.Errorf("Expected custom.Swish, got %s.%s", got.Domain, got.Name)
	}
	if len(got.Attributes) != 1 || got.Attributes[0] != "beta" {
		t.Errorf("Expected attributes [beta], got %v", got.Attributes)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].OpType != "Mul" {
		t.Errorf("Expected body Sigmoid, Mul; got %d nodes", len(got.Nodes))
	}
	if len(got.OpsetImport) != 1 || got.OpsetImport[0].Version != 18 {
		t.Errorf("Expected opset 18, got %v", got.OpsetImport)
	}

	standalone, err := ParseFunction(fn)
	if err != nil {
		t.Fatalf("ParseFunction failed: %v", err)
	}
	if standalone.Name != "Swish" {
		t.Errorf("Expected function name 'Swish', got '%s'", standalone.Name)
	}
}

// TestParseGraph tests decoding a bare GraphProto.
func TestParseGraph(t *testing.T) {
	graph, err := ParseGraph(onnxtest.Graph("g", nil, nil,
		[]onnxtest.Message{onnxtest.Node("Relu", []string{"x"}, []string{"y"})}))
	if err != nil {
		t.Fatalf("ParseGraph failed: %v", err)
	}
	if graph.Name != "g" || len(graph.Nodes) != 1 {
		t.Errorf("Expected graph 'g' with 1 node, got '%s' with %d", graph.Name, len(graph.Nodes))
	}
}

// TestParseTypeVariants tests that non-tensor types are decoded.
func TestParseTypeVariants(t *testing.T) {
	elem := onnxtest.Message{}.Sub(1, onnxtest.Message{}.Int(1, TensorProtoFloat))
	seq := onnxtest.Message{}.Sub(4, onnxtest.Message{}.Sub(1, elem))
	opt := onnxtest.Message{}.Sub(9, onnxtest.Message{}.Sub(1, elem))
	inputs := []onnxtest.Message{
		onnxtest.Message{}.Text(1, "s").Sub(2, seq),
		onnxtest.Message{}.Text(1, "o").Sub(2, opt),
	}

	graph, err := ParseGraph(onnxtest.Graph("types", inputs, nil, nil))
	if err != nil {
		t.Fatalf("ParseGraph failed: %v", err)
	}

	s := graph.Inputs[0].Type
	if s == nil || s.SequenceType == nil || s.SequenceType.ElemType.TensorType == nil {
		t.Errorf("Expected sequence of tensor, got %+v", s)
	}
	o := graph.Inputs[1].Type
	if o == nil || o.OptionalType == nil || o.OptionalType.ElemType.TensorType == nil {
		t.Errorf("Expected optional tensor, got %+v", o)
	}
}

// TestParseTypeLastVariantWins tests that a later type variant replaces an
// earlier one.
func TestParseTypeLastVariantWins(t *testing.T) {
	elem := onnxtest.Message{}.Sub(1, onnxtest.Message{}.Int(1, TensorProtoFloat))
	typ := onnxtest.Message{}.
		Sub(1, onnxtest.Message{}.Int(1, TensorProtoFloat)).
		Sub(4, onnxtest.Message{}.Sub(1, elem))
	inputs := []onnxtest.Message{onnxtest.Message{}.Text(1, "x").Sub(2, typ)}

	graph, err := ParseGraph(onnxtest.Graph("types", inputs, nil, nil))
	if err != nil {
		t.Fatalf("ParseGraph failed: %v", err)
	}

	got := graph.Inputs[0].Type
	if got.TensorType != nil {
		t.Errorf("Expected tensor_type to be cleared, got %+v", got.TensorType)
	}
	if got.SequenceType == nil {
		t.Fatal("Expected sequence_type to be set")
	}
	if text := ToText(got); text != "" {
		t.Errorf("Expected sequence type to print nothing, got %q", text)
	}
}

// nestedGraph returns a graph whose single node carries a graph attribute,
// levels deep.
func nestedGraph(levels int) onnxtest.Message {
	g := onnxtest.Graph("leaf", nil, nil, nil)
	for i := 0; i < levels; i++ {
		node := onnxtest.Node("If", []string{"c"}, []string{"y"}, onnxtest.GraphAttr("then_branch", g))
		g = onnxtest.Graph("body", nil, nil, []onnxtest.Message{node})
	}
	return g
}

// TestParseNestingLimit tests that deeply nested subgraphs are rejected.
func TestParseNestingLimit(t *testing.T) {
	graph, err := ParseGraph(nestedGraph(20))
	if err != nil {
		t.Fatalf("ParseGraph failed: %v", err)
	}
	if graph.Name != "body" || len(graph.Nodes) != 1 {
		t.Errorf("Expected graph 'body' with 1 node, got %+v", graph)
	}

	// Each level is three messages: graph, node, attribute.
	_, err = ParseGraph(nestedGraph(maxNestingDepth/3 + 1))
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Expected ErrNestingTooDeep, got %v", err)
	}

	model := onnxtest.Model(8, nestedGraph(maxNestingDepth/3+1), defaultOpsets())
	if _, err := Parse(model); !errors.Is(err, ErrNestingTooDeep) {
		t.Errorf("Expected ErrNestingTooDeep from Parse, got %v", err)
	}
}

// TestParseSkipsUnknownFields tests forward compatibility.
func TestParseSkipsUnknownFields(t *testing.T) {
	data := onnxtest.Model(7, onnxtest.Graph("g", nil, nil, nil), defaultOpsets()).
		Text(20, "training_info").Int(99, 1).Float(98, 1)

	model, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.Graph == nil || model.Graph.Name != "g" {
		t.Errorf("Expected graph 'g', got %+v", model.Graph)
	}
}

// TestParseFile tests parsing from file.
func TestParseFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.onnx")
	if err := os.WriteFile(tmpFile, buildSimpleAddModel(), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	model, err := ParseFile(tmpFile)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if model.Graph == nil || len(model.Graph.Nodes) != 1 {
		t.Errorf("Expected graph with 1 node, got %+v", model.Graph)
	}
}

// TestParseInvalidFile tests error handling for non-existent file.
func TestParseInvalidFile(t *testing.T) {
	if _, err := ParseFile("/nonexistent/file.onnx"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

// TestParseEmptyData tests that an empty message decodes to defaults.
func TestParseEmptyData(t *testing.T) {
	model, err := Parse([]byte{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.Graph != nil {
		t.Errorf("Expected no graph, got %+v", model.Graph)
	}
}

// TestParseTruncated tests error handling for cut-off input.
func TestParseTruncated(t *testing.T) {
	data := buildSimpleAddModel()
	if _, err := Parse(data[:len(data)-3]); err == nil {
		t.Error("Expected error for truncated data, got nil")
	}
}

// TestParseWrongWireType tests that a mistyped field is rejected.
func TestParseWrongWireType(t *testing.T) {
	data := onnxtest.Message{}.Text(1, "seven") // ir_version must be a varint
	if _, err := Parse(data); err == nil {
		t.Error("Expected error for wrong wire type, got nil")
	}
}
