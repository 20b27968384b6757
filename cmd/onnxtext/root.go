package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	verbose   bool
	logger    *zap.Logger
	newLogger func(verbose bool) (*zap.Logger, error)
}

func newGlobalOptions() *globalOptions {
	return &globalOptions{logger: zap.NewNop(), newLogger: newLogger}
}

// run executes cmd and syncs the logger whether or not the command failed.
func run(cmd *cobra.Command, opts *globalOptions) error {
	defer func() {
		_ = opts.logger.Sync() // fails harmlessly on a terminal stderr
	}()
	return cmd.Execute()
}

func newRootCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "onnxtext",
		Short:        "Print ONNX models as human-readable text",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			logger, err := opts.newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(
		newPrintCommand(opts),
		newInfoCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// newLogger returns a development logger writing to stderr when verbose is
// set, and a no-op logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopmentConfig().Build()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "onnxtext %s\n", version)
			return err
		},
	}
}
