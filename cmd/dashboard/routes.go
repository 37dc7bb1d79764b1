package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	dashboard "github.com/vango-go/dashboard"
)

func routesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List registered pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app := buildApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), false)
			printRoutes(cmd.OutOrStdout(), app.Routes())
			return nil
		},
	}
}

func printRoutes(w io.Writer, routes []*dashboard.Route) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTITLE")
	for _, r := range routes {
		title := r.Title()
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", r.Path, title)
	}
	tw.Flush()
}
