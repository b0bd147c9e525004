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

// package reads lets you build command lines for the read-preprocessing
// tools gloTK wraps (SeqPrep2 adapter trimming/merging, seqtk subsampling),
// and compute summary statistics for fastq files.

package reads

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	DefaultQualCutoff = 13
	DefaultLenCutoff  = 30
	DefaultEditReject = 1
	DefaultOverlapMin = 30
	DefaultPrettyNum  = 50
	DefaultSeqtkSeed  = 100

	// Illumina genomic non-multiplexed adapters, as they appear at the end
	// of a read.
	DefaultForwardAdapter = "AGATCGGAAGAGCACACGTC"
	DefaultReverseAdapter = "AGATCGGAAGAGCGTCGTGT"
)

// Seqprep holds the parameters for one SeqPrep2 invocation on a read pair.
// All parameters are required, but NewSeqprep defaults the trimming and
// rejection settings to usually fixed values.
type Seqprep struct {
	ForwardPath    string
	ReversePath    string
	ForwardOut     string
	ReverseOut     string
	OutDir         string
	QualCutoff     int
	LenCutoff      int
	ForwardAdapter string
	ReverseAdapter string
	EditReject     int
	ForwardReject  string
	ReverseReject  string

	// Optional merging outputs; merging is only performed when MergedOut is
	// set.
	MergedOut  string
	PrettyOut  string
	PrettyNum  int
	OverlapMin int
}

// NewSeqprep creates a Seqprep for one input read pair, writing trimmed
// output files with the given basenames under outDir.
func NewSeqprep(forwardPath, reversePath, forwardOut, reverseOut, outDir string) Seqprep {
	return Seqprep{
		ForwardPath:    forwardPath,
		ReversePath:    reversePath,
		ForwardOut:     forwardOut,
		ReverseOut:     reverseOut,
		OutDir:         outDir,
		QualCutoff:     DefaultQualCutoff,
		LenCutoff:      DefaultLenCutoff,
		ForwardAdapter: DefaultForwardAdapter,
		ReverseAdapter: DefaultReverseAdapter,
		EditReject:     DefaultEditReject,
		ForwardReject:  DefaultForwardAdapter,
		ReverseReject:  DefaultReverseAdapter,
		PrettyNum:      DefaultPrettyNum,
		OverlapMin:     DefaultOverlapMin,
	}
}

// Command generates the SeqPrep2 command to execute.
func (s *Seqprep) Command() string {
	cmd := fmt.Sprintf("SeqPrep2 -f %s -r %s -1 %s -2 %s -q %d -L %d -A %s -B %s -d %d -C %s -D %s",
		s.ForwardPath, s.ReversePath,
		filepath.Join(s.OutDir, s.ForwardOut), filepath.Join(s.OutDir, s.ReverseOut),
		s.QualCutoff, s.LenCutoff, s.ForwardAdapter, s.ReverseAdapter,
		s.EditReject, s.ForwardReject, s.ReverseReject)

	if s.MergedOut != "" {
		cmd += fmt.Sprintf(" -s %s -E %s -x %d -o %d",
			filepath.Join(s.OutDir, s.MergedOut), filepath.Join(s.OutDir, s.PrettyOut),
			s.PrettyNum, s.OverlapMin)
	}

	return cmd
}

// Seqtk holds the parameters for one seqtk read-subsampling invocation.
type Seqtk struct {
	InputPath string
	OutDir    string
	ReadCount int
	Seed      int
}

// NewSeqtk creates a Seqtk that samples readCount reads from inputPath.
func NewSeqtk(inputPath, outDir string, readCount int) Seqtk {
	return Seqtk{
		InputPath: inputPath,
		OutDir:    outDir,
		ReadCount: readCount,
		Seed:      DefaultSeqtkSeed,
	}
}

// Command generates the seqtk command to execute. seqtk writes the sample to
// stdout, so the caller should redirect it to OutputPath().
func (s *Seqtk) Command() string {
	return fmt.Sprintf("seqtk sample -s %d %s %d", s.Seed, s.InputPath, s.ReadCount)
}

// OutputPath returns where the subsampled reads should be written, named
// after the input file and the sample size.
func (s *Seqtk) OutputPath() string {
	return filepath.Join(s.OutDir,
		fmt.Sprintf("%s_%dreads.fastq.gz", FastxBasename(s.InputPath), s.ReadCount))
}

// FastxBasename returns the basename of a fastq/fasta file with its
// compression and sequence-format extensions stripped.
func FastxBasename(path string) string {
	base := filepath.Base(path)

	for _, ext := range []string{".gz", ".fastq", ".fq", ".fasta", ".fa"} {
		base = strings.TrimSuffix(base, ext)
	}

	return base
}
