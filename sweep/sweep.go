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

// package sweep expands one assembly configuration into a family of named
// configurations varying a single parameter, for comparative assembly
// evaluation.

package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/conchoecia/gloTK/merconf"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrUnsupportedParameter = Error("parameter cannot be swept")
	ErrInvalidSweepValue    = Error("mer_size sweep values must be positive odd integers")
	ErrUnevenInterval       = Error("sweep range is not evenly divisible by the interval")
	ErrNoSweepValues        = Error("no sweep values given")
	ErrIllegalNameCharacter = Error("genus or species contains characters that are " +
		"not ASCII letters or digits")

	// AssemblerTag is the fixed assembler segment of generated names.
	AssemblerTag = "ME"

	// DefaultPrefix is used when NamingContext.Prefix is empty.
	DefaultPrefix = "as"

	configExtension = ".config"
	dateFormat      = "20060102"
	dirPerm         = 0755
	filePerm        = 0644
)

// Parameter is a config scalar the planner knows how to sweep.
type Parameter string

const (
	MerSize              Parameter = "mer_size"
	BubbleDepthThreshold Parameter = "bubble_depth_threshold"
)

// NamingContext carries everything name generation needs besides the swept
// value itself. Genus and Species are optional; when set they may only
// contain ASCII letters and digits, since they become filename segments.
type NamingContext struct {
	Prefix     string
	StartIndex int
	Genus      string
	Species    string

	// Date is the YYYYMMDD stamp to embed in names; zero means today.
	Date string
}

// validate collects every distinct illegal character across Genus then
// Species, in first-encountered order, and reports them all together.
func (n NamingContext) validate() error {
	var illegal []rune

	seen := make(map[rune]bool)

	for _, r := range n.Genus + n.Species {
		if legalNameRune(r) || seen[r] {
			continue
		}

		seen[r] = true
		illegal = append(illegal, r)
	}

	if len(illegal) > 0 {
		return fmt.Errorf("%w: %q", ErrIllegalNameCharacter, string(illegal))
	}

	return nil
}

func legalNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func (n NamingContext) date() string {
	if n.Date != "" {
		return n.Date
	}

	return time.Now().Format(dateFormat)
}

// Values expands a start/stop/interval triple into the inclusive list of
// sweep values. Stop must be strictly greater than start, and the span must
// divide evenly by the interval.
func Values(start, stop, interval int) ([]int, error) {
	if interval <= 0 || stop <= start {
		return nil, fmt.Errorf("%w: start %d, stop %d, interval %d",
			ErrUnevenInterval, start, stop, interval)
	}

	if rem := (stop - start) % interval; rem != 0 {
		return nil, fmt.Errorf("%w: start %d, stop %d, interval %d leaves remainder %d",
			ErrUnevenInterval, start, stop, interval, rem)
	}

	var values []int
	for v := start; v <= stop; v += interval {
		values = append(values, v)
	}

	return values, nil
}

// Planner generates the family of configs for one sweep run.
type Planner struct {
	Param   Parameter
	Values  []int
	Naming  NamingContext
	Triplet bool

	// LocalProcs is the per-assembly process count; it always overrides
	// local_num_procs from the base config, since parallelism is decided by
	// the driver, not the config file author.
	LocalProcs int
}

// Member is one generated configuration of a sweep.
type Member struct {
	Name   string
	Config *merconf.Config
	Path   string
}

// Plan validates the whole sweep, then clones the base config once per
// member with the swept parameter (and, in triplet mode, diploid_mode)
// overridden, writes each under outDir as <name>.config, and returns the
// ordered members. Either every config is written or none is: all validation
// happens before the first write, and Plan never changes the working
// directory, so it is safe to call concurrently with other work.
func (p *Planner) Plan(base *merconf.Config, outDir string) ([]Member, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, err
	}

	members := p.expand(base, absOut)

	if err := os.MkdirAll(absOut, dirPerm); err != nil {
		return nil, err
	}

	for _, m := range members {
		if err := os.WriteFile(m.Path, []byte(m.Config.Text()), filePerm); err != nil {
			return nil, err
		}
	}

	return members, nil
}

func (p *Planner) validate() error {
	switch p.Param {
	case MerSize, BubbleDepthThreshold:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedParameter, p.Param)
	}

	if len(p.Values) == 0 {
		return ErrNoSweepValues
	}

	if p.Param == MerSize {
		if err := checkMerSizes(p.Values); err != nil {
			return err
		}
	}

	return p.Naming.validate()
}

// checkMerSizes rejects even or non-positive k-mer sizes, naming every
// offending value rather than just the first.
func checkMerSizes(values []int) error {
	var bad []string

	for _, v := range values {
		if v <= 0 || v%2 == 0 {
			bad = append(bad, strconv.Itoa(v))
		}
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSweepValue, strings.Join(bad, ", "))
	}

	return nil
}

// expand builds the member list. In triplet mode each sweep value yields
// three consecutive members cycling diploid_mode through 0, 1 and 2; the
// index counter advances by one per emitted member either way.
func (p *Planner) expand(base *merconf.Config, absOut string) []Member {
	date := p.Naming.date()
	index := p.Naming.StartIndex

	var members []Member

	emit := func(value, diploidMode int) {
		cfg := base.Clone()
		cfg.SetLocalProcs(p.LocalProcs)

		switch p.Param {
		case MerSize:
			cfg.MerSize = value
		case BubbleDepthThreshold:
			cfg.BubbleDepthThreshold = value
		}

		if p.Triplet {
			cfg.DiploidMode = diploidMode
		}

		name := p.name(index, date, cfg.MerSize, diploidMode)
		members = append(members, Member{
			Name:   name,
			Config: cfg,
			Path:   filepath.Join(absOut, name+configExtension),
		})

		index++
	}

	for _, value := range p.Values {
		if p.Triplet {
			for diploidMode := 0; diploidMode <= 2; diploidMode++ {
				emit(value, diploidMode)
			}
		} else {
			emit(value, base.DiploidMode)
		}
	}

	return members
}

// name assembles the fixed-order segments
// prefix+index_date_ME_[genus_][species_]k<mer> with a 3-digit zero-padded
// index, plus a _d<ploidy> segment in triplet mode. Empty optional segments
// are omitted entirely. External tooling parses these names, so the order
// and padding must not change.
func (p *Planner) name(index int, date string, merSize, diploidMode int) string {
	prefix := p.Naming.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	segments := []string{
		fmt.Sprintf("%s%03d", prefix, index),
		date,
		AssemblerTag,
	}

	if p.Naming.Genus != "" {
		segments = append(segments, p.Naming.Genus)
	}

	if p.Naming.Species != "" {
		segments = append(segments, p.Naming.Species)
	}

	segments = append(segments, fmt.Sprintf("k%d", merSize))

	if p.Triplet {
		segments = append(segments, fmt.Sprintf("d%d", diploidMode))
	}

	return strings.Join(segments, "_")
}
