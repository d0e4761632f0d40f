package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xelth-com/eckform/internal/buildinfo"
)

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record and reset the id counter",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			st, closeStore, err := openStore(a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()

			n := st.Count()
			st.ClearAll()
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️ Cleared %d records\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			info := buildinfo.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "eckform %s", info.Version)
			if info.CommitHash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s)", info.CommitHash)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " built %s", info.BuildTime)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		},
	}
}
