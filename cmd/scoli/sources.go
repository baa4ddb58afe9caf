package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/scoli/pkg/importer"
)

func newSourcesCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage the dataset sources",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the sources and their last check",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSources(rootOpts, func(sdb *importer.SourceDB) error {
					sources, err := sdb.ListSources()
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					for _, src := range sources {
						checked := "never"
						if src.LastCheck != nil {
							checked = humanize.Time(time.Unix(*src.LastCheck, 0))
						}
						fmt.Fprintf(out, "%-12s %-10s %-10s checked %s\n", src.AdapterID, src.Status(), src.Table, checked)
						if src.Remote() {
							fmt.Fprintf(out, "             %s\n", src.SourceURL)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "set-url ID URL",
			Short: "Override the URL of a remote source",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSources(rootOpts, func(sdb *importer.SourceDB) error {
					a, err := importer.Get(args[0])
					if err != nil {
						return err
					}
					if a.DefaultURL() == "" {
						return fmt.Errorf("%s is read from the data directory and has no URL", a.ID())
					}
					if err := sdb.SetURL(a.ID(), args[1]); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", a.ID(), args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Check that the remote sources are reachable",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSources(rootOpts, func(sdb *importer.SourceDB) error {
					checker := importer.NewChecker(sdb, rootOpts.logger, time.Hour)
					if failed := checker.CheckAll(cmd.Context()); failed > 0 {
						return fmt.Errorf("%d source(s) unreachable", failed)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

// withSources opens the source database, registers the known adapters and
// drops rows of removed ones before calling fn.
func withSources(rootOpts *rootOptions, fn func(*importer.SourceDB) error) error {
	sdb, err := importer.OpenSourceDB(rootOpts.cfg.SourcesDB)
	if err != nil {
		return err
	}
	defer sdb.Close()

	adapters := importer.All()
	if err := sdb.Seed(adapters); err != nil {
		return err
	}
	n, err := sdb.Prune(adapters)
	if err != nil {
		return err
	}
	if n > 0 {
		rootOpts.logger.Info("removed stale sources", "count", n)
	}
	return fn(sdb)
}
