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
	"github.com/spf13/cobra"

	"github.com/conchoecia/gloTK/merconf"
	"github.com/conchoecia/gloTK/reads"
)

// options for this cmd.
var infoInputConfig string

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarise the read libraries a Meraculous config declares.",
	Long: `Summarise the read libraries a Meraculous config declares.

The config given with -i is parsed and validated, then every read file of
every lib_seq library is scanned and its read count, base count, GC content
and mean read length printed as tab-separated values.
`,
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := merconf.Parse(infoInputConfig)
		if err != nil {
			die("%s", err.Error())
		}

		cliPrint("library\tfile\treads\tbases\tportionGC\tavgReadLen\n")

		for _, ls := range cfg.LibSeqs {
			for _, path := range ls.Reads() {
				fi, err := reads.Info(path)
				if err != nil {
					die("%s", err.Error())
				}

				cliPrint("%s\t%s\t%d\t%d\t%.4f\t%.1f\n",
					ls.Name, path, fi.Reads, fi.Bases, fi.PortionGC, fi.AvgReadLen)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)

	// flags specific to this sub-command
	infoCmd.Flags().StringVarP(&infoInputConfig, "inputConfig", "i", "",
		"the Meraculous config file to summarise")
	markFlagRequired(infoCmd, "inputConfig")
}
