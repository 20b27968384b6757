package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/onnxtext/onnx"
)

func newInfoCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info MODEL",
		Short: "Show a YAML summary of an ONNX model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := onnx.GetModelInfoFile(args[0])
			if err != nil {
				return err
			}
			global.logger.Debug("summarized model",
				zap.String("path", args[0]),
				zap.Int("nodes", info.NodeCount),
			)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(info); err != nil {
				return fmt.Errorf("failed to encode info: %w", err)
			}
			return enc.Close()
		},
	}
}
