package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/scoli/pkg/importer"
	"github.com/hazyhaar/scoli/pkg/store"
)

func newBuildCommand(rootOpts *rootOptions) *cobra.Command {
	var dataDir, output, db string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the metadata SQL file",
		Long: `Fetch the county table, normalize the school registry and write one
INSERT statement per row for the counties, schools, authors, titles and
characters tables. A manifest.yaml is written beside the output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			if cmd.Flags().Changed("data") {
				cfg.DataDir = dataDir
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("db") {
				cfg.DB = db
			}
			return runBuild(cmd, rootOpts, cfg)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "directory holding schools.csv and the metadata datasets")
	cmd.Flags().StringVarP(&output, "output", "o", "", "SQL output file")
	cmd.Flags().StringVar(&db, "db", "", "also load the rows into this SQLite database")

	return cmd
}

func runBuild(cmd *cobra.Command, rootOpts *rootOptions, cfg config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := importer.BuildOptions{
		DataDir:        cfg.DataDir,
		Output:         cfg.Output,
		CountiesURL:    cfg.CountiesURL,
		CountiesFormat: cfg.CountiesFormat,
		SchoolsFormat:  cfg.SchoolsFormat,
		MetaFormat:     cfg.MetaFormat,
		Logger:         rootOpts.logger,
	}

	if cfg.SourcesDB != "" {
		sdb, err := importer.OpenSourceDB(cfg.SourcesDB)
		if err != nil {
			return err
		}
		defer sdb.Close()
		opts.Sources = sdb
	}
	if cfg.DB != "" {
		st, err := store.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Store = st
	}

	m, err := importer.Build(ctx, opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d statements (run %s)\n", cfg.Output, m.Rows(), m.RunID)
	for _, t := range m.Tables {
		fmt.Fprintf(out, "  %-12s %d\n", t.Name, t.Rows)
	}
	return nil
}
