package cmd

import (
	"fmt"

	"tarcheck/core/archive"

	"github.com/spf13/cobra"
)

var listLong bool

// listCmd prints the members of an archive.
var listCmd = &cobra.Command{
	Use:   "list <archive>",
	Short: "List the members of an archive in storage order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		out := cmd.OutOrStdout()
		if !listLong {
			paths, err := archive.List(cmd.Context(), rt.opener, args[0])
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		}

		rc, err := rt.opener.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer rc.Close()

		return archive.Walk(cmd.Context(), rc, func(e *archive.Entry) error {
			if e.Path == "" {
				return nil
			}
			fmt.Fprintf(out, "%-7s %12d %s\n", e.Kind, e.Size, e.Path)
			return nil
		})
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Show member kind and size")
	RootCmd.AddCommand(listCmd)
}
