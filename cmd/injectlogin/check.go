package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mpyw/injectlogin/internal/emit"
	"github.com/mpyw/injectlogin/internal/round"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Fail if the generated file is missing or out of date",
		Args:  cobra.ArbitraryArgs,
		Long: `check runs the generator without writing and compares its output with
the file on disk. It exits non-zero when they differ, which makes it
suitable for CI.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.generate(cmd.Context(), emit.CheckChannel{Dir: a.dirChannel()})
			if errors.Is(err, emit.ErrStale) {
				return errors.WithHint(err, "run injectlogin to regenerate")
			}
			if err != nil {
				return err
			}

			if res != nil && res.State == round.Done {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", res.File.Name)
			}

			return nil
		},
	}
}
