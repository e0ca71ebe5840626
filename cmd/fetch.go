package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentic-research/shapekit/fetch"
	"github.com/spf13/cobra"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		method  string
		headers []string
		body    string
	)

	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Request a URL and print the decoded JSON response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []fetch.Option{fetch.WithMethod(method)}
			for k, v := range a.cfg.Fetch.Headers {
				opts = append(opts, fetch.WithHeader(k, v))
			}
			for _, h := range headers {
				k, v, ok := strings.Cut(h, ":")
				if !ok {
					return fmt.Errorf("invalid header %q, want key:value", h)
				}
				opts = append(opts, fetch.WithHeader(strings.TrimSpace(k), strings.TrimSpace(v)))
			}
			if body != "" {
				opts = append(opts, fetch.WithBody(strings.NewReader(body)))
			}

			ctx := cmd.Context()
			if a.cfg.Fetch.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Fetch.Timeout)
				defer cancel()
			}

			v, err := fetch.JSON(ctx, args[0], opts...)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().StringVarP(&method, "request", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Request header as key:value (repeatable)")
	cmd.Flags().StringVarP(&body, "data", "d", "", "Request body")
	return cmd
}
