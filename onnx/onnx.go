// Package onnx prints ONNX models as compact, human-readable text.
//
// The text form is meant for debugging, diffing and documentation. It is not
// a serialization format: there is no parser for it, and raw or external
// tensor data, float16 payloads and tensor names are left out.
//
// # Example Usage
//
//	import "github.com/born-ml/onnxtext/onnx"
//
//	model, err := onnx.ParseFile("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(onnx.ToText(model.Graph))
//
// Output for a two-node graph:
//
//	main (float[N,3] X) => (float[N,3] Y) {
//	H = Relu(X)
//	Y = LeakyRelu<alpha = 0.1>(H)
//	}
//
// # Printable Kinds
//
// Any value implementing [Proto] can be printed: dimensions, shapes, tensor
// types, types, tensors, value infos and their lists, attributes and their
// lists, nodes and node lists, graphs, functions and opset imports.
package onnx

import (
	"io"

	internalonnx "github.com/born-ml/onnxtext/internal/onnx"
)

// Printer writes the text form of IR values to an io.Writer.
//
// The first write error is kept and returned by Err; later writes are
// skipped. A Printer must not be shared between goroutines.
type Printer = internalonnx.Printer

// NewPrinter returns a Printer writing to w.
//
// The printer neither buffers nor closes w.
func NewPrinter(w io.Writer) *Printer {
	return internalonnx.NewPrinter(w)
}

// ToText returns the text form of node.
//
// Example:
//
//	node := &onnx.NodeProto{OpType: "Relu", Inputs: []string{"x"}, Outputs: []string{"y"}}
//	fmt.Println(onnx.ToText(node)) // y = Relu(x)
func ToText(node Proto) string {
	return internalonnx.ToText(node)
}

// Fprint writes the text form of node to w and returns the first write
// error, if any.
func Fprint(w io.Writer, node Proto) error {
	return internalonnx.Fprint(w, node)
}

// Parse decodes a serialized ModelProto.
func Parse(data []byte) (*ModelProto, error) {
	return internalonnx.Parse(data)
}

// ParseFile reads and decodes an .onnx file.
func ParseFile(path string) (*ModelProto, error) {
	return internalonnx.ParseFile(path)
}

// ParseGraph decodes a serialized GraphProto.
func ParseGraph(data []byte) (*GraphProto, error) {
	return internalonnx.ParseGraph(data)
}

// ParseFunction decodes a serialized FunctionProto.
func ParseFunction(data []byte) (*FunctionProto, error) {
	return internalonnx.ParseFunction(data)
}

// ModelInfo summarizes an ONNX model.
type ModelInfo = internalonnx.ModelInfo

// GetModelInfo summarizes a parsed model.
//
// Example:
//
//	info := onnx.GetModelInfo(model)
//	fmt.Printf("Opset: %d\n", info.OpsetVersion)
//	fmt.Printf("Inputs: %v\n", info.InputNames)
func GetModelInfo(model *ModelProto) *ModelInfo {
	return internalonnx.GetModelInfo(model)
}

// ErrNestingTooDeep is returned by the Parse functions for input whose
// messages nest too deeply, such as runaway subgraph attributes.
var ErrNestingTooDeep = internalonnx.ErrNestingTooDeep

// GetModelInfoFile parses an ONNX file and summarizes it.
func GetModelInfoFile(path string) (*ModelInfo, error) {
	return internalonnx.GetModelInfoFile(path)
}
