/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Author: Sendu Bala <sb10@sanger.ac.uk>
 *
 * Permission is hereby granted, free of charge, to any person obtaining
 * a copy of this software and associated documentation files (the
 * "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish,
 * distribute, sublicense, and/or sell copies of the Software, and to
 * permit persons to whom the Software is furnished to do so, subject to
 * the following conditions:
 *
 * The above copyright notice and this permission notice shall be included
 * in all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
 * EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
 * MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY
 * CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
 * TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 ******************************************************************************/

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/conchoecia/gloTK/meraculous"
	"github.com/conchoecia/gloTK/report"
)

// options for this cmd.
var reportCensor []string

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a Markdown report for completed Meraculous runs.",
	Long: `Render a Markdown report for completed Meraculous runs.

Pass one or more Meraculous run directories. For each, the assembly
parameters are read back out of log/meraculous.log and a Markdown report is
written to a reports directory next to the run directory's parent.

Strings given with -c are censored from the report, so it can be shared with
non-collaborators without leaking local paths or sample codenames.
`,
	Run: func(_ *cobra.Command, runDirs []string) {
		if len(runDirs) == 0 {
			die("at least one Meraculous run directory is required")
		}

		wd, err := os.Getwd()
		if err != nil {
			die("%s", err.Error())
		}

		for _, runDir := range runDirs {
			analyzer, err := report.New(runDir, reportCensor)
			if err != nil {
				die("%s", err.Error())
			}

			path, err := analyzer.Generate(meraculous.ReportsDir(wd))
			if err != nil {
				die("%s", err.Error())
			}

			cliPrint("%s\n", path)
		}
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)

	// flags specific to this sub-command
	reportCmd.Flags().StringSliceVarP(&reportCensor, "censor", "c", nil,
		"strings to censor from the report")
}
