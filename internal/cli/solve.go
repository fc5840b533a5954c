package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"aptedsp/internal/adapters"
	"aptedsp/internal/app"
	"aptedsp/internal/ports"
)

type solveOptions struct {
	Input  string
	Format string
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Resolve an EDSP scenario and print the resulting answer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "", "Scenario file path (defaults to stdin)")
	cmd.Flags().StringVar(&opts.Format, "format", "edsp", "Scenario format: edsp or yaml")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runSolve(ctx context.Context, cmd *cobra.Command, opts solveOptions) error {
	input := resolveString(cmd, opts.Input, "input", "input")
	format := resolveString(cmd, opts.Format, "format", "format")

	source, err := newScenarioSource(input, format)
	if err != nil {
		return err
	}
	sink := adapters.NewEDSPWriter(os.Stdout)

	service := app.NewService(source, sink)
	answer, err := service.Solve(ctx)
	if err != nil {
		return err
	}
	if answer.IsError() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(string(answer.Err.Kind) + ": " + answer.Err.Message)
	}
	return nil
}

func newScenarioSource(input, format string) (ports.ScenarioSource, error) {
	switch strings.ToLower(format) {
	case "yaml":
		if input == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("--input is required with --format yaml")
		}
		return adapters.NewScenarioFileAdapter(input), nil
	case "edsp", "":
		if input == "" {
			return adapters.NewEDSPReader(os.Stdin), nil
		}
		f, err := os.Open(input)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("scenario file not found").
				WithCause(err)
		}
		return adapters.NewEDSPReader(f), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown format %q", format))
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
		return value
	}
	return viper.GetString(key)
}
