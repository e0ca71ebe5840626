package cmd

import (
	"errors"
	"fmt"

	"github.com/agentic-research/shapekit/guard"
	"github.com/agentic-research/shapekit/union"
	"github.com/spf13/cobra"
)

func newGuardCmd(a *app) *cobra.Command {
	var (
		types string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "guard [initial] [write...]",
		Short: "Replay writes against a guarded slot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors, err := union.ParseList(types)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.Guard.Limit
			}
			var opts []guard.Option
			if limit != 0 {
				opts = append(opts, guard.WithLimit(limit))
			}

			slot, err := guard.New(parseValue(args[0]), descriptors, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, arg := range args[1:] {
				ok, err := slot.Set(parseValue(arg))
				outcome := "rejected"
				switch {
				case errors.Is(err, guard.ErrAttemptsExceeded):
					outcome = "refused"
				case ok:
					outcome = "accepted"
				}
				if _, err := fmt.Fprintf(out, "write %d: %s\n", i+1, outcome); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(out, "state: %s\nvalue: ", slot.State()); err != nil {
				return err
			}
			return writeJSON(out, slot.Get())
		},
	}
	cmd.Flags().StringVarP(&types, "types", "t", "", "Comma-separated type names accepted by the slot")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of write attempts (0 = unbounded)")
	_ = cmd.MarkFlagRequired("types")
	return cmd
}
