// Package main provides the onnxtext CLI, which prints ONNX models as text.
package main

import (
	"os"
)

const version = "v0.1.0"

func main() {
	opts := newGlobalOptions()
	if err := run(newRootCommand(opts), opts); err != nil {
		os.Exit(1)
	}
}
