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

	"github.com/conchoecia/gloTK/project"
)

// options for this cmd.
var projectInputConfig string

// projectCmd represents the project command.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Initialise the current directory as a gloTK project.",
	Long: `Initialise the current directory as a gloTK project.

The config file given with -i is parsed and validated, then recorded under
gloTK_info/ both verbatim and as YAML. Every read file the config declares is
symlinked into gloTK_reads/reads0/, and a config pointing at those symlinks
is persisted as gloTK_info/read_configs/reads0.yaml.

Run this in an empty directory; a directory that is already a gloTK project
is refused.
`,
	Run: func(_ *cobra.Command, _ []string) {
		wd, err := os.Getwd()
		if err != nil {
			die("%s", err.Error())
		}

		p, err := project.Init(wd, projectInputConfig)
		if err != nil {
			die("%s", err.Error())
		}

		info("initialised gloTK project in %s with %d libraries and %d read files",
			p.Dir, len(p.Config.LibSeqs), len(p.Config.AllReads()))
	},
}

func init() {
	RootCmd.AddCommand(projectCmd)

	// flags specific to this sub-command
	projectCmd.Flags().StringVarP(&projectInputConfig, "inputConfig", "i", "",
		"the Meraculous config file to initialise the project from")
	markFlagRequired(projectCmd, "inputConfig")
}
