package cmd

import (
	"errors"
	"fmt"

	"github.com/agentic-research/shapekit/internal/source"
	"github.com/agentic-research/shapekit/search"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("not found")

type searchFunc func(tree any, needle string) (any, error)

var searchModes = map[string]searchFunc{
	"key": func(tree any, needle string) (any, error) {
		v, found, err := search.FirstByKey(tree, needle)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errNotFound
		}
		return v, nil
	},
	"all-keys": func(tree any, needle string) (any, error) {
		return search.AllByKey(tree, needle)
	},
	"value": func(tree any, needle string) (any, error) {
		k, found, err := search.FirstByValue(tree, parseValue(needle))
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errNotFound
		}
		return k, nil
	},
	"all-values": func(tree any, needle string) (any, error) {
		return search.AllByValue(tree, parseValue(needle))
	},
}

type recordResult struct {
	ID     string `json:"id"`
	Result any    `json:"result"`
}

func newSearchCmd(_ *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "search (key|all-keys|value|all-values) [file] [needle]",
		Short: "Search a JSON/YAML document or a SQLite record table",
		Long: `Search walks the document depth-first and reports the first or every
key (or value) matching the needle. Value needles are parsed as JSON when
possible, so 42 matches a number and "42" a string. The key and value
modes fail with "not found" when nothing matches, so a key holding null
prints null while a missing key is an error.

With --db, every record of the results(id, record) table is searched and
one line is printed per record. Records without a match are skipped in the
key and value modes.`,
		Args: func(cmd *cobra.Command, args []string) error {
			want := 3
			if dbPath != "" {
				want = 2
			}
			if len(args) != want {
				return fmt.Errorf("accepts %d arg(s), received %d", want, len(args))
			}
			if _, ok := searchModes[args[0]]; !ok {
				return fmt.Errorf("unknown search mode %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fn := searchModes[args[0]]
			out := cmd.OutOrStdout()

			if dbPath != "" {
				needle := args[1]
				return source.StreamSQLite(cmd.Context(), dbPath, func(rec source.Record) error {
					res, err := fn(rec.Tree, needle)
					if errors.Is(err, errNotFound) {
						return nil
					}
					if err != nil {
						return fmt.Errorf("record %s: %w", rec.ID, err)
					}
					return writeJSON(out, recordResult{ID: rec.ID, Result: res})
				})
			}

			tree, err := loadTree(args[1])
			if err != nil {
				return err
			}
			res, err := fn(tree, args[2])
			if err != nil {
				return err
			}
			return writeJSON(out, res)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database with a results(id, record) table")
	return cmd
}

func newQueryCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query [file] [jsonpath]",
		Short: "Evaluate a JSONPath expression against a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(args[0])
			if err != nil {
				return err
			}
			res, err := search.Query(tree, args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}
