package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/scoli/pkg/schoolname"
)

func newNormalizeCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [NAME...]",
		Short: "Normalize school names",
		Long: `Print the canonical form of each NAME, one per line. Without arguments
names are read from standard input, one per line. Stops at the first
malformed name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := bufio.NewWriter(cmd.OutOrStdout())
			defer out.Flush()
			if len(args) > 0 {
				for i, name := range args {
					if err := normalizeOne(out, name); err != nil {
						return fmt.Errorf("argument %d: %w", i+1, err)
					}
				}
				return nil
			}
			return normalizeLines(out, cmd.InOrStdin())
		},
	}
	return cmd
}

func normalizeLines(out *bufio.Writer, in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if err := normalizeOne(out, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	return sc.Err()
}

func normalizeOne(out *bufio.Writer, name string) error {
	norm, err := schoolname.Normalize(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, norm)
	return err
}
