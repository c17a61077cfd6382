package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/hostbridge/js"
)

func newMembersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "members <HostType>",
		Short: "List the members a host type exposes under the profile.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.profile()
			if err != nil {
				return err
			}
			reg := js.DefaultRegistry()
			typeName := args[0]

			if !reg.TypeVisible(typeName, profile) {
				return fmt.Errorf("host type %q is not available under %s", typeName, profile)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range reg.Members(typeName, profile) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, m.Kind, m.Owner)
			}
			return w.Flush()
		},
	}
}
