/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Authors:
 *	- Sendu Bala <sb10@sanger.ac.uk>
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

// package report renders a static Markdown report for one completed
// Meraculous run from its log file and output directory tree.

package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNotMeraculousRun = Error("directory does not look like a Meraculous run")

	logSubdir    = "log"
	importSubdir = "meraculous_import"
	logFilename  = "meraculous.log"
	reportSuffix = "_report.md"
	dirPerm      = 0755
	filePerm     = 0644
)

// RunParams are the assembly parameters grepped back out of a run's log.
// They are kept as text: the report only displays them.
type RunParams struct {
	MerSize        string
	DiploidMode    string
	GenomeSize     string
	MinDepthCutoff string
}

// Analyzer generates a report for one Meraculous run directory. Censor
// strings (eg. local path components) are stripped from everything that ends
// up in the report, so it can be sent to non-collaborators.
type Analyzer struct {
	runDir   string
	name     string
	replacer *strings.Replacer
}

// New creates an Analyzer for the given run directory, or an error if the
// directory does not contain the log/ and meraculous_import/ subdirectories
// every Meraculous run has.
func New(runDir string, censor []string) (*Analyzer, error) {
	absDir, err := filepath.Abs(strings.TrimSpace(runDir))
	if err != nil {
		return nil, err
	}

	for _, subdir := range []string{logSubdir, importSubdir} {
		info, err := os.Stat(filepath.Join(absDir, subdir))
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s has no %s subdirectory", ErrNotMeraculousRun, absDir, subdir)
		}
	}

	oldnew := make([]string, 0, len(censor)*2)
	for _, c := range censor {
		if c == "" {
			continue
		}

		oldnew = append(oldnew, c, "")
	}

	return &Analyzer{
		runDir:   absDir,
		name:     filepath.Base(absDir),
		replacer: strings.NewReplacer(oldnew...),
	}, nil
}

// Name returns the run name, taken from the run directory's basename.
func (a *Analyzer) Name() string {
	return a.Censor(a.name)
}

// Censor strips every configured censor string from the given text.
func (a *Analyzer) Censor(text string) string {
	return a.replacer.Replace(text)
}

// Params scans the run's log for the assembly parameters. A parameter the
// log never mentions is left empty.
func (a *Analyzer) Params() (RunParams, error) {
	var params RunParams

	wanted := map[string]*string{
		"mer_size":         &params.MerSize,
		"diploid_mode":     &params.DiploidMode,
		"genome_size":      &params.GenomeSize,
		"min_depth_cutoff": &params.MinDepthCutoff,
	}

	file, err := os.Open(filepath.Join(a.runDir, logSubdir, logFilename))
	if err != nil {
		return params, err
	}

	defer file.Close()

	remaining := len(wanted)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() && remaining > 0 {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		for query, dest := range wanted {
			if *dest == "" && strings.Contains(fields[0], query) {
				*dest = fields[1]
				remaining--
			}
		}
	}

	return params, scanner.Err()
}

// Generate writes the run's Markdown report to
// <reportsDir>/<run>/<run>_report.md and returns the path to it.
func (a *Analyzer) Generate(reportsDir string) (string, error) {
	params, err := a.Params()
	if err != nil {
		return "", err
	}

	outDir := filepath.Join(reportsDir, a.Name())
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, a.Name()+reportSuffix)

	return outPath, os.WriteFile(outPath, []byte(a.render(params)), filePerm)
}

func (a *Analyzer) render(params RunParams) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Meraculous run report: %s\n\n", a.Name())
	sb.WriteString("## Run parameters\n\n")
	sb.WriteString("| parameter | value |\n")
	sb.WriteString("| --- | --- |\n")
	fmt.Fprintf(&sb, "| mer_size | %s |\n", params.MerSize)
	fmt.Fprintf(&sb, "| diploid_mode | %s |\n", params.DiploidMode)
	fmt.Fprintf(&sb, "| genome_size | %s |\n", params.GenomeSize)
	fmt.Fprintf(&sb, "| min_depth_cutoff | %s |\n", params.MinDepthCutoff)

	return a.Censor(sb.String())
}
