package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ned-tools/fai-report/internal/manifest"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <manifest.yaml>",
		Short: "Build a report from a YAML manifest",
		Long: `Builds a PDF report without the web form.

The manifest lists the cover page fields and, for each photo, its category,
slot (0-4) and file path. A photo may also set a label or include: false to
edit its entry in the final draft.`,
		Example: `  # Write NED_FAI_Report.pdf in the current directory
  fai-report build report.yaml

  # Choose the output file
  fai-report build report.yaml --output out/server-42.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			meta, err := m.Metadata(time.Now())
			if err != nil {
				return err
			}

			parts := newComponents(opts.cfg)
			sess := parts.newSession("build")

			bar := progressbar.NewOptions(len(m.Photos)+1,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Preparing photos...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)

			if err := m.Capture(sess, func(manifest.Photo) { _ = bar.Add(1) }); err != nil {
				return err
			}
			if _, err := m.ApplyEdits(sess); err != nil {
				return err
			}

			bar.Describe("[cyan][bold]Rendering report...[reset]")
			var buf bytes.Buffer
			pages, err := sess.Export(meta, &buf)
			if err != nil {
				return err
			}
			_ = bar.Add(1)

			if output == "" {
				output = opts.cfg.Document.Filename
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			done := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d pages)\n", done.Render("Wrote"), output, pages)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: document.filename from config)")

	return cmd
}
