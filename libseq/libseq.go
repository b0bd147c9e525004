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

// package libseq models one "lib_seq" line of a Meraculous config file: a
// paired-end read library declared as two comma-joined glob patterns plus 11
// scalar fields.

package libseq

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrWrongCommaCount   = Error("lib_seq wildcard field must contain exactly one comma")
	ErrFieldCount        = Error("lib_seq line does not have 12 fields")
	ErrGlobCount         = Error("lib_seq wildcard field must contain exactly two glob patterns")
	ErrNoReadsFound      = Error("no read files matched glob")
	ErrPairCountMismatch = Error("forward and reverse globs matched different numbers of files")

	// Tag is the literal first token of a lib_seq line in a config file.
	Tag = "lib_seq"

	numFields = 12
)

// Pair is one forward/reverse read file pairing.
type Pair struct {
	Forward string `yaml:"forward"`
	Reverse string `yaml:"reverse"`
}

// LibSeq is one parsed lib_seq record. The 11 scalar fields are kept verbatim
// as trimmed text, since Meraculous itself interprets them; Globs and Pairs
// are derived by resolving the wildcard field against the filesystem.
type LibSeq struct {
	Wildcard         string `yaml:"wildcard"`
	Name             string `yaml:"name"`
	InsertAvg        string `yaml:"insertAvg"`
	InsertSdev       string `yaml:"insertSdev"`
	AvgReadLen       string `yaml:"avgReadLn"`
	HasInnieArtifact string `yaml:"hasInnieArtifact"`
	IsRevComped      string `yaml:"isRevComped"`
	UseForContiging  string `yaml:"useForContiging"`
	ScaffRound       string `yaml:"scaffRound"`
	UseForGapClosing string `yaml:"useForGapClosing"`
	FivePrimeWiggle  string `yaml:"5p_wiggleRoom"`
	ThreePrimeWiggle string `yaml:"3p_wiggleRoom"`

	Globs []string `yaml:"globs"`
	Pairs []Pair   `yaml:"pairs"`
}

// Parse parses the 12-field record of a lib_seq line (with the leading
// "lib_seq" tag already stripped by the caller). Relative glob patterns in
// the wildcard field are resolved against baseDir, which should be the
// directory containing the config file; the working directory is never
// consulted or changed.
func Parse(record, baseDir string) (*LibSeq, error) {
	if n := strings.Count(record, ","); n != 1 {
		return nil, fmt.Errorf("%w: found %d commas in %q", ErrWrongCommaCount, n, record)
	}

	fields := strings.Fields(record)
	if len(fields) > numFields {
		fields = repairCommaSplit(fields)
	}

	if len(fields) != numFields {
		return nil, fmt.Errorf("%w: got %d fields in %q", ErrFieldCount, len(fields), record)
	}

	globs, err := resolveGlobs(fields[0], baseDir)
	if err != nil {
		return nil, err
	}

	pairs, err := expandPairs(globs)
	if err != nil {
		return nil, err
	}

	return &LibSeq{
		Wildcard:         fields[0],
		Name:             fields[1],
		InsertAvg:        fields[2],
		InsertSdev:       fields[3],
		AvgReadLen:       fields[4],
		HasInnieArtifact: fields[5],
		IsRevComped:      fields[6],
		UseForContiging:  fields[7],
		ScaffRound:       fields[8],
		UseForGapClosing: fields[9],
		FivePrimeWiggle:  fields[10],
		ThreePrimeWiggle: fields[11],
		Globs:            globs,
		Pairs:            pairs,
	}, nil
}

// repairCommaSplit re-merges a wildcard field that the user split by putting
// whitespace next to the comma, eg. "fwd* , rev*" tokenising as three fields
// instead of one. The repair only triggers when exactly one token carries the
// comma at its edge; anything else is left for the field-count check to
// reject. This is a bounded recovery step, not a fuzzy parser.
func repairCommaSplit(fields []string) []string {
	idx := -1

	for i, f := range fields {
		if strings.Contains(f, ",") {
			if idx != -1 {
				return fields
			}

			idx = i
		}
	}

	if idx == -1 {
		return fields
	}

	for len(fields) > numFields {
		switch {
		case strings.HasPrefix(fields[idx], ",") && idx > 0:
			fields[idx-1] += fields[idx]
			fields = append(fields[:idx], fields[idx+1:]...)
			idx--
		case strings.HasSuffix(fields[idx], ",") && idx < len(fields)-1:
			fields[idx] += fields[idx+1]
			fields = append(fields[:idx+1], fields[idx+2:]...)
		default:
			return fields
		}
	}

	return fields
}

// resolveGlobs splits the wildcard field on its comma and makes both glob
// patterns absolute relative to baseDir.
func resolveGlobs(wildcard, baseDir string) ([]string, error) {
	parts := strings.Split(wildcard, ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrGlobCount, wildcard)
	}

	globs := make([]string, len(parts))

	for i, part := range parts {
		if filepath.IsAbs(part) {
			globs[i] = part
		} else {
			globs[i] = filepath.Join(baseDir, part)
		}
	}

	return globs, nil
}

// expandPairs expands the forward and reverse globs and zips the matches
// positionally after a lexicographic sort. Pairing is by sort order alone:
// we assume matching forward and reverse filenames sort in lockstep (as with
// _1.fastq.gz/_2.fastq.gz suffixes); no content-based check is done.
func expandPairs(globs []string) ([]Pair, error) {
	forward, err := filepath.Glob(globs[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrNoReadsFound, globs[0])
	}

	reverse, err := filepath.Glob(globs[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern %q", ErrNoReadsFound, globs[1])
	}

	if err := checkMatches(forward, reverse, globs); err != nil {
		return nil, err
	}

	sort.Strings(forward)
	sort.Strings(reverse)

	pairs := make([]Pair, len(forward))
	for i := range forward {
		pairs[i] = Pair{Forward: forward[i], Reverse: reverse[i]}
	}

	return pairs, nil
}

// checkMatches fails if either glob matched nothing, naming every failing
// glob (a wrong relative path is the most common user error, and both sides
// are usually wrong together), or if the match counts differ.
func checkMatches(forward, reverse, globs []string) error {
	var failed []string

	if len(forward) == 0 {
		failed = append(failed, "forward glob "+globs[0])
	}

	if len(reverse) == 0 {
		failed = append(failed, "reverse glob "+globs[1])
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrNoReadsFound, strings.Join(failed, "; "))
	}

	if len(forward) != len(reverse) {
		return fmt.Errorf("%w: %d forward vs %d reverse for %q",
			ErrPairCountMismatch, len(forward), len(reverse), strings.Join(globs, ","))
	}

	return nil
}

// Line reproduces the 12-field space-joined record this LibSeq was parsed
// from, with any internal whitespace in each field stripped. Parsing the
// result yields an equal LibSeq as long as the globs still resolve the same.
func (l *LibSeq) Line() string {
	fields := []string{
		l.Wildcard,
		l.Name,
		l.InsertAvg,
		l.InsertSdev,
		l.AvgReadLen,
		l.HasInnieArtifact,
		l.IsRevComped,
		l.UseForContiging,
		l.ScaffRound,
		l.UseForGapClosing,
		l.FivePrimeWiggle,
		l.ThreePrimeWiggle,
	}

	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, " ", "")
	}

	return strings.Join(fields, " ")
}

// Rebase returns a copy of this LibSeq whose globs and pairs point at the
// basenames of the original files under newDir. It is used when reads are
// moved or symlinked into a project-managed directory; the files themselves
// are not touched.
func (l *LibSeq) Rebase(newDir string) *LibSeq {
	newL := *l

	newL.Globs = make([]string, len(l.Globs))
	for i, g := range l.Globs {
		newL.Globs[i] = filepath.Join(newDir, filepath.Base(g))
	}

	newL.Pairs = make([]Pair, len(l.Pairs))
	for i, p := range l.Pairs {
		newL.Pairs[i] = Pair{
			Forward: filepath.Join(newDir, filepath.Base(p.Forward)),
			Reverse: filepath.Join(newDir, filepath.Base(p.Reverse)),
		}
	}

	return &newL
}

// Reads returns every read file of this library, forward then reverse per
// pair, in pair order.
func (l *LibSeq) Reads() []string {
	reads := make([]string, 0, len(l.Pairs)*2)

	for _, p := range l.Pairs {
		reads = append(reads, p.Forward, p.Reverse)
	}

	return reads
}
