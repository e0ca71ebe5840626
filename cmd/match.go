package cmd

import (
	"errors"

	"github.com/agentic-research/shapekit/internal/logging"
	"github.com/agentic-research/shapekit/union"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errUnmatched = errors.New("unmatched")

func newMatchCmd(_ *app) *cobra.Command {
	var types string

	cmd := &cobra.Command{
		Use:   "match [value]",
		Short: "Check a JSON value against a union of type names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors, err := union.ParseList(types)
			if err != nil {
				return err
			}
			res, err := union.Match(parseValue(args[0]), descriptors...)
			if err != nil {
				return err
			}
			if !res.Matched() {
				return errUnmatched
			}
			logging.L().Debug("matched", zap.Stringer("descriptor", res.Descriptor()))
			v, _ := res.Value()
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&types, "types", "t", "", "Comma-separated type names (string, number, bigint, boolean, symbol, array, object, null, undefined)")
	_ = cmd.MarkFlagRequired("types")
	return cmd
}
