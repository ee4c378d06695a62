package main

import (
	"fmt"
	"io"
	"time"

	"github.com/akyairhashvil/kamreen/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF service report",
		Long:  `Write a PDF with the service interval, the filter accumulator and every tank.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts, func(a *app, out io.Writer) error {
				at := time.Now()
				path := outPath
				if path == "" {
					path = report.DefaultPath(a.cfg.ReportsDir, at)
				}
				if err := report.WriteFile(path, a.engine.Snapshot(), at); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintf(out, "Report saved to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Report file (default <reports_dir>/kamreen_report_<time>.pdf)")
	return cmd
}
