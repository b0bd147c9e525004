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

// package merconf parses, validates and serializes Meraculous assembly
// configuration files.

package merconf

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/inconshreveable/log15"

	"github.com/conchoecia/gloTK/libseq"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrMissingRequiredParam = Error("required parameter not specified in config file")
	ErrNegativeParam        = Error("parameter specified as a negative number in config file")
	ErrUnexpectedWhitespace = Error("config line has more than a parameter and a value")
	ErrBadParamValue        = Error("parameter value could not be converted to its declared type")
	ErrDuplicateReadLink    = Error("read file link destination already exists; " +
		"two lib_seq lines probably resolve to the same filename")

	commentPrefix = "#"
)

// logger reports unrecognised config parameters, which are skipped rather
// than fatal so newer config dialects still parse.
var logger = log15.New("pkg", "merconf")

// Config is one full Meraculous assembly configuration: the fixed scalar
// parameter schema, the diploid-mode sub-parameters, and the ordered lib_seq
// libraries. Required parameters start at negative sentinels so validation
// can tell "never set" apart from a user-supplied value.
type Config struct {
	GenomeSize              float64 `yaml:"genome_size"`
	MerSize                 int     `yaml:"mer_size"`
	MinDepthCutoff          int     `yaml:"min_depth_cutoff"`
	NumPrefixBlocks         int     `yaml:"num_prefix_blocks"`
	DiploidMode             int     `yaml:"diploid_mode"`
	UseCluster              int     `yaml:"use_cluster"`
	NoReadValidation        int     `yaml:"no_read_validation"`
	FallbackOnEstInsertSize int     `yaml:"fallback_on_est_insert_size"`
	GapCloseAggressive      int     `yaml:"gap_close_aggressive"`
	GapCloseRptDepthRatio   float64 `yaml:"gap_close_rpt_depth_ratio"`
	LocalNumProcs           int     `yaml:"local_num_procs"`
	LocalMaxRetries         int     `yaml:"local_max_retries"`

	// diploid-mode sub-parameters; flat in the file representation
	BubbleDepthThreshold int `yaml:"bubble_depth_threshold"`
	StrictHaplotypes     int `yaml:"strict_haplotypes"`

	LibSeqs []*libseq.LibSeq `yaml:"lib_seq"`
}

// New returns a Config with every defaulted parameter at its documented
// default and every required parameter at its negative unset sentinel.
func New() *Config {
	return &Config{
		GenomeSize:            -0.1,
		MerSize:               -1,
		NumPrefixBlocks:       -1,
		GapCloseRptDepthRatio: 2.0,
		LocalNumProcs:         1,
		StrictHaplotypes:      1,
	}
}

// scalar describes one schema entry: its file name, whether the config file
// must set it, and a pointer to its typed slot in Config.
type scalar struct {
	name     string
	required bool
	i        *int
	f        *float64
}

func (s scalar) value() float64 {
	if s.f != nil {
		return *s.f
	}

	return float64(*s.i)
}

func (s scalar) set(raw string) error {
	if s.f != nil {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %s %s", ErrBadParamValue, s.name, raw)
		}

		*s.f = v

		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrBadParamValue, s.name, raw)
	}

	*s.i = v

	return nil
}

func (s scalar) render() string {
	if s.f != nil {
		return strconv.FormatFloat(*s.f, 'g', -1, 64)
	}

	return strconv.Itoa(*s.i)
}

// scalars returns the schema in file-serialization order, which is an
// external contract: Meraculous and downstream tooling read these files.
// The diploid-mode sub-parameters come last.
func (c *Config) scalars() []scalar {
	return []scalar{
		{name: "genome_size", required: true, f: &c.GenomeSize},
		{name: "mer_size", required: true, i: &c.MerSize},
		{name: "min_depth_cutoff", i: &c.MinDepthCutoff},
		{name: "num_prefix_blocks", required: true, i: &c.NumPrefixBlocks},
		{name: "diploid_mode", i: &c.DiploidMode},
		{name: "use_cluster", i: &c.UseCluster},
		{name: "no_read_validation", i: &c.NoReadValidation},
		{name: "fallback_on_est_insert_size", i: &c.FallbackOnEstInsertSize},
		{name: "gap_close_aggressive", i: &c.GapCloseAggressive},
		{name: "gap_close_rpt_depth_ratio", f: &c.GapCloseRptDepthRatio},
		{name: "local_num_procs", i: &c.LocalNumProcs},
		{name: "local_max_retries", i: &c.LocalMaxRetries},
		{name: "bubble_depth_threshold", i: &c.BubbleDepthThreshold},
		{name: "strict_haplotypes", i: &c.StrictHaplotypes},
	}
}

// Parse reads a line-oriented Meraculous config file into a Config. Blank
// lines and #-comments are skipped; lib_seq lines are delegated to
// libseq.Parse with relative globs resolved against the config file's
// directory; unrecognised parameter names are logged and skipped.
//
// After reading, every scalar is validated: a required parameter still at
// its negative sentinel, or a defaulted parameter set to a negative number,
// is an error. All violations are collected and reported together.
func Parse(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	c := New()
	byName := make(map[string]scalar)

	for _, s := range c.scalars() {
		byName[s.name] = s
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if err := c.parseLine(scanner.Text(), filepath.Dir(absPath), byName); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) parseLine(line, baseDir string, byName map[string]scalar) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return nil
	}

	fields := strings.Fields(line)
	param := fields[0]

	if param == libseq.Tag {
		ls, err := libseq.Parse(strings.TrimSpace(strings.TrimPrefix(line, libseq.Tag)), baseDir)
		if err != nil {
			return err
		}

		c.LibSeqs = append(c.LibSeqs, ls)

		return nil
	}

	s, known := byName[param]
	if !known {
		logger.Warn("ignoring unrecognised config parameter", "line", line)

		return nil
	}

	if len(fields) != 2 {
		return fmt.Errorf("%w: %q", ErrUnexpectedWhitespace, line)
	}

	return s.set(fields[1])
}

// validate checks every scalar and aggregates all violations rather than
// stopping at the first, so a hand-authored file gets fixed in one pass.
func (c *Config) validate() error {
	var errs []error

	for _, s := range c.scalars() {
		if s.value() >= 0 {
			continue
		}

		if s.required {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingRequiredParam, s.name))
		} else {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNegativeParam, s.name))
		}
	}

	return errors.Join(errs...)
}

// SetLocalProcs overrides local_num_procs. The value in the config file is
// never trusted: the sweep driver decides how many processes each assembly
// gets and always calls this.
func (c *Config) SetLocalProcs(n int) {
	c.LocalNumProcs = n
}

// Clone returns a deep copy of this Config.
func (c *Config) Clone() *Config {
	newC := *c

	newC.LibSeqs = make([]*libseq.LibSeq, len(c.LibSeqs))
	for i, ls := range c.LibSeqs {
		newLS := *ls
		newLS.Globs = append([]string(nil), ls.Globs...)
		newLS.Pairs = append([]libseq.Pair(nil), ls.Pairs...)
		newC.LibSeqs[i] = &newLS
	}

	return &newC
}

// Text renders the config in the original file format: lib_seq lines first,
// then the scalar parameters in schema order.
func (c *Config) Text() string {
	var sb strings.Builder

	for _, ls := range c.LibSeqs {
		sb.WriteString(libseq.Tag)
		sb.WriteString(" ")
		sb.WriteString(ls.Line())
		sb.WriteString("\n")
	}

	for _, s := range c.scalars() {
		sb.WriteString(s.name)
		sb.WriteString(" ")
		sb.WriteString(s.render())
		sb.WriteString("\n")
	}

	return sb.String()
}

// AllReads flattens every read file across every library, in library order.
// This is the wrapper layer's only coupling point to the config model.
func (c *Config) AllReads() []string {
	var reads []string

	for _, ls := range c.LibSeqs {
		reads = append(reads, ls.Reads()...)
	}

	return reads
}
