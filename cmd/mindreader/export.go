package main

import (
	"fmt"

	"github.com/danielpatrickdp/mindreader/internal/replay"
	"github.com/spf13/cobra"
)

// #region command
func newExportCmd(a *app) *cobra.Command {
	var sessionID, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a stored session as a replay fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionID == "" || out == "" {
				return a.usage(cmd, "export --session id --out fixture.json")
			}
			f, err := a.sessionFixture(sessionID)
			if err != nil {
				return a.fail(cmd, err)
			}
			if err := replay.WriteFixture(out, f); err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d turns to %s\n", len(f.Choices), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "stored session id")
	cmd.Flags().StringVar(&out, "out", "", "fixture path to write")
	return cmd
}

// #endregion command
