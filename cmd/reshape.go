package cmd

import (
	"fmt"
	"math/rand"

	"github.com/agentic-research/shapekit/api"
	"github.com/agentic-research/shapekit/kind"
	"github.com/agentic-research/shapekit/reshape"
	"github.com/spf13/cobra"
)

func newInvertCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invert [file]",
		Short: "Swap the keys and values of a flat object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}
			obj, ok := tree.(*api.Object)
			if !ok {
				return fmt.Errorf("invert: want an object, got %s", kind.Of(tree))
			}
			return writeJSON(cmd.OutOrStdout(), reshape.Invert(obj))
		},
	}
}

func newShuffleCmd(_ *app) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "shuffle [json-array]",
		Short: "Randomly permute a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, ok := parseValue(args[0]).([]any)
			if !ok {
				return fmt.Errorf("shuffle: want a JSON array, got %q", args[0])
			}
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewSource(seed))
			}
			return writeJSON(cmd.OutOrStdout(), reshape.Shuffle(items, rng))
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible permutation")
	return cmd
}
