package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentic-research/shapekit/api"
	"github.com/agentic-research/shapekit/internal/config"
	"github.com/agentic-research/shapekit/internal/logging"
	"github.com/agentic-research/shapekit/internal/source"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

const defaultConfigPath = ".shapekit.yaml"

// app carries state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg     *config.Config
	restore func()
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "shapekit",
		Short:         "Runtime type unions, guarded slots and structural search over JSON trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.restore != nil {
				a.restore()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "Path to YAML config")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (console, json)")

	root.AddCommand(
		newMatchCmd(a),
		newGuardCmd(a),
		newSearchCmd(a),
		newQueryCmd(a),
		newFetchCmd(a),
		newInvertCmd(a),
		newShuffleCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	dir, name := splitPath(a.configPath)
	cfg, err := config.Load(osfs.New(dir), name)
	switch {
	case err == nil:
		a.cfg = cfg
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		// No config file, keep defaults.
	default:
		return err
	}

	level, format := a.cfg.Logging.Level, a.cfg.Logging.Format
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.logFormat != "" {
		format = a.logFormat
	}
	l, err := logging.New(level, format)
	if err != nil {
		return err
	}
	a.restore = logging.Set(l)
	return nil
}

// splitPath resolves path against the working directory and splits it into
// a filesystem root and a name relative to it.
func splitPath(path string) (dir, name string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Dir(path), filepath.Base(path)
}

func loadTree(path string) (any, error) {
	dir, name := splitPath(path)
	return source.LoadFile(osfs.New(dir), name)
}

// parseValue reads a command-line argument as JSON, falling back to the raw
// string when it is not valid JSON.
func parseValue(arg string) any {
	v, err := api.DecodeJSON([]byte(arg))
	if err != nil {
		return arg
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
