// Package onnx reads ONNX models and prints their IR as text.
//
// The IR types are hand-written mirrors of the onnx.proto messages the
// printer needs. Parse decodes the protobuf wire format into them; the
// Printer renders graphs, functions, nodes, attributes, tensors and types
// in the compact text form ONNX uses for debugging and diffs:
//
//	main (float[N,3] X) => (float[N,3] Y) {
//	H = Relu(X)
//	Y = LeakyRelu<alpha = 0.1>(H)
//	}
//
// The text form is write-only. Raw and external tensor data, float16 and
// bfloat16 payloads and tensor names are not rendered.
//
// Example usage:
//
//	model, err := onnx.ParseFile("resnet50.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := onnx.Fprint(os.Stdout, model.Graph); err != nil {
//	    log.Fatal(err)
//	}
package onnx
