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
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/conchoecia/gloTK/config"
	"github.com/conchoecia/gloTK/meraculous"
	"github.com/conchoecia/gloTK/merconf"
	"github.com/conchoecia/gloTK/report"
	"github.com/conchoecia/gloTK/sweep"
)

const (
	ErrSweepRangeIncomplete = Error("--sstart, --sstop and --sinterval must be given together")
	ErrSweepValuesMissing   = Error("either --slist or --sstart/--sstop/--sinterval is required")
	ErrBadSweepValue        = Error("--slist values must be integers")

	dirPerm = 0755
)

// options for this cmd.
var (
	sweepInputConfig string
	sweepParam       string
	sweepList        string
	sweepStart       int
	sweepStop        int
	sweepInterval    int
	sweepPrefix      string
	sweepIndex       int
	sweepGenus       string
	sweepSpecies     string
	sweepTriplet     bool
	sweepOutDir      string
	sweepRun         bool
)

// sweepCmd represents the sweep command.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Generate a family of Meraculous configs for a parameter sweep.",
	Long: `Generate a family of Meraculous configs for a parameter sweep.

Supply a base config with -i and the parameter to sweep with -s (mer_size or
bubble_depth_threshold). The sweep values come either from --slist as a
comma-separated list, or from an inclusive --sstart/--sstop/--sinterval
range. mer_size values must be positive odd integers.

Each generated config is the base config with only the swept parameter (and,
with --triplet, diploid_mode cycling through 0, 1 and 2 per sweep value)
overridden, written to the -o directory with a generated name of the form
<prefix><index>_<date>_ME_[genus_][species_]k<mer>[_d<ploidy>].

With --run, Meraculous is invoked on every generated config from an
assemblies directory under the current working directory, with a report
rendered for each completed run. The number of simultaneous assemblies and
the total process budget are taken from GLOTK_SIMULTANEOUS and
GLOTK_MAX_PROCS (see the .env support in the config package); each assembly
gets an equal share of the budget via local_num_procs.
`,
	Run: func(_ *cobra.Command, _ []string) {
		c, err := config.FromEnv()
		if err != nil {
			die("%s", err.Error())
		}

		values, err := sweepValues()
		if err != nil {
			die("%s", err.Error())
		}

		procsPerAssembly := c.MaxProcs / c.Simultaneous
		if procsPerAssembly < 1 {
			procsPerAssembly = 1
		}

		base, err := merconf.Parse(sweepInputConfig)
		if err != nil {
			die("%s", err.Error())
		}

		planner := &sweep.Planner{
			Param:  sweep.Parameter(sweepParam),
			Values: values,
			Naming: sweep.NamingContext{
				Prefix:     sweepPrefix,
				StartIndex: sweepIndex,
				Genus:      sweepGenus,
				Species:    sweepSpecies,
			},
			Triplet:    sweepTriplet,
			LocalProcs: procsPerAssembly,
		}

		members, err := planner.Plan(base, sweepOutDir)
		if err != nil {
			die("%s", err.Error())
		}

		info("generated %d config files in %s", len(members), sweepOutDir)

		for _, m := range members {
			cliPrint("%s\t%s\n", m.Name, m.Path)
		}

		if !sweepRun {
			return
		}

		runAssemblies(c, members)
	},
}

// sweepValues resolves the --slist vs --sstart/--sstop/--sinterval flags,
// which are mutually exclusive ways of saying the same thing.
func sweepValues() ([]int, error) {
	rangeFlags := 0

	for _, set := range []bool{sweepStart != 0, sweepStop != 0, sweepInterval != 0} {
		if set {
			rangeFlags++
		}
	}

	if sweepList != "" {
		return parseSweepList(sweepList)
	}

	switch rangeFlags {
	case 0:
		return nil, ErrSweepValuesMissing
	case 3:
		return sweep.Values(sweepStart, sweepStop, sweepInterval)
	default:
		return nil, ErrSweepRangeIncomplete
	}
}

func parseSweepList(list string) ([]int, error) {
	parts := strings.Split(list, ",")
	values := make([]int, 0, len(parts))

	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, ErrBadSweepValue
		}

		values = append(values, v)
	}

	return values, nil
}

// runAssemblies invokes the assembler once per generated config with a
// bounded pool of simultaneous runs, then renders a report for each run that
// produced a Meraculous output tree.
func runAssemblies(c *config.Config, members []sweep.Member) {
	wd, err := os.Getwd()
	if err != nil {
		die("%s", err.Error())
	}

	assembliesDir := meraculous.AssembliesDir(wd)
	if err := os.MkdirAll(assembliesDir, dirPerm); err != nil {
		die("%s", err.Error())
	}

	m := meraculous.New()
	if c.MeraculousExe != "" {
		m.Exe = c.MeraculousExe
	}

	var wg sync.WaitGroup

	tokens := make(chan struct{}, c.Simultaneous)

	for _, member := range members {
		wg.Add(1)

		go func(member sweep.Member) {
			defer wg.Done()

			tokens <- struct{}{}
			defer func() { <-tokens }()

			cmd := m.Command(member.Path, member.Name)

			info("running assembly %s:\n%s", member.Name, cmd)

			if err := executeCmd(cmd, assembliesDir); err != nil {
				warn("assembly %s failed: %s", member.Name, err.Error())

				return
			}

			generateRunReport(wd, member.Name)
		}(member)
	}

	wg.Wait()
}

func generateRunReport(wd, runName string) {
	analyzer, err := report.New(meraculous.RunDir(wd, runName), nil)
	if err != nil {
		warn("no report for %s: %s", runName, err.Error())

		return
	}

	path, err := analyzer.Generate(meraculous.ReportsDir(wd))
	if err != nil {
		warn("report generation for %s failed: %s", runName, err.Error())

		return
	}

	info("report for %s written to %s", runName, path)
}

func executeCmd(cmd, dir string) error {
	execCmd := exec.Command("bash", "-c", "set -o pipefail; "+cmd)
	execCmd.Dir = dir
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	return execCmd.Run()
}

func init() {
	RootCmd.AddCommand(sweepCmd)

	// flags specific to this sub-command
	sweepCmd.Flags().StringVarP(&sweepInputConfig, "inputConfig", "i", "",
		"the Meraculous config file the sweep is based on")
	markFlagRequired(sweepCmd, "inputConfig")
	sweepCmd.Flags().StringVarP(&sweepParam, "sweep", "s", string(sweep.MerSize),
		"parameter to sweep: mer_size or bubble_depth_threshold")
	sweepCmd.Flags().StringVar(&sweepList, "slist", "",
		"comma-separated sweep values")
	sweepCmd.Flags().IntVar(&sweepStart, "sstart", 0,
		"start of the sweep range")
	sweepCmd.Flags().IntVar(&sweepStop, "sstop", 0,
		"end of the sweep range, inclusive")
	sweepCmd.Flags().IntVar(&sweepInterval, "sinterval", 0,
		"interval between sweep values")
	sweepCmd.Flags().StringVarP(&sweepPrefix, "prefix", "p", sweep.DefaultPrefix,
		"assembly prefix used to name config files and output directories")
	sweepCmd.Flags().IntVarP(&sweepIndex, "index", "I", 0,
		"starting assembly index for generated names")
	sweepCmd.Flags().StringVarP(&sweepGenus, "genus", "G", "",
		"genus name embedded in generated names")
	sweepCmd.Flags().StringVarP(&sweepSpecies, "species", "S", "",
		"species/sample name embedded in generated names")
	sweepCmd.Flags().BoolVar(&sweepTriplet, "triplet", false,
		"emit three configs per sweep value, cycling diploid_mode 0,1,2")
	sweepCmd.Flags().StringVarP(&sweepOutDir, "output", "o", "configs",
		"directory to write generated config files to")
	sweepCmd.Flags().BoolVar(&sweepRun, "run", false,
		"run Meraculous on every generated config")
}
