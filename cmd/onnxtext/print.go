package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/onnxtext/onnx"
)

// errFunctionNotFound is returned by print --function for an unknown name.
var errFunctionNotFound = errors.New("function not found")

type printOptions struct {
	output    string
	functions bool
	function  string
}

func newPrintCommand(global *globalOptions) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print MODEL",
		Short: "Print the main graph and model-local functions of an ONNX model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.OutOrStdout(), args[0], opts, global.logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "write to `FILE` instead of stdout")
	flags.BoolVar(&opts.functions, "functions", true, "print model-local functions after the graph")
	flags.StringVar(&opts.function, "function", "", "print only the function `NAME`")
	return cmd
}

func runPrint(stdout io.Writer, path string, opts *printOptions, logger *zap.Logger) (err error) {
	model, err := onnx.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Debug("parsed model",
		zap.String("path", path),
		zap.Int64("ir_version", model.IRVersion),
		zap.Int("functions", len(model.Functions)),
		zap.Bool("has_graph", model.Graph != nil),
	)

	if opts.output == "" {
		return writeModel(stdout, model, opts)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := writeModel(w, model, opts); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Debug("wrote text", zap.String("output", opts.output))
	return nil
}

// writeModel prints the selected parts of model, separating graph and
// functions with a blank line.
func writeModel(w io.Writer, model *onnx.ModelProto, opts *printOptions) error {
	p := onnx.NewPrinter(w)

	if opts.function != "" {
		fn := findFunction(model, opts.function)
		if fn == nil {
			return fmt.Errorf("%w: %s", errFunctionNotFound, opts.function)
		}
		p.Print(fn)
		return p.Err()
	}

	printed := false
	if model.Graph != nil {
		p.Print(model.Graph)
		printed = true
	}
	if !opts.functions {
		return p.Err()
	}
	for i := range model.Functions {
		if err := p.Err(); err != nil {
			return err
		}
		if printed {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		p.Print(&model.Functions[i])
		printed = true
	}
	return p.Err()
}

func findFunction(model *onnx.ModelProto, name string) *onnx.FunctionProto {
	for i := range model.Functions {
		if model.Functions[i].Name == name {
			return &model.Functions[i]
		}
	}
	return nil
}
