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

package reads

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSeqprep(t *testing.T) {
	Convey("You can generate a SeqPrep2 trimming command", t, func() {
		sp := NewSeqprep("/in/A_1.fastq.gz", "/in/A_2.fastq.gz",
			"A_1.trimmed.fastq.gz", "A_2.trimmed.fastq.gz", "/out")

		So(sp.Command(), ShouldEqual,
			"SeqPrep2 -f /in/A_1.fastq.gz -r /in/A_2.fastq.gz "+
				"-1 /out/A_1.trimmed.fastq.gz -2 /out/A_2.trimmed.fastq.gz "+
				"-q 13 -L 30 "+
				"-A AGATCGGAAGAGCACACGTC -B AGATCGGAAGAGCGTCGTGT "+
				"-d 1 -C AGATCGGAAGAGCACACGTC -D AGATCGGAAGAGCGTCGTGT")

		Convey("And setting MergedOut appends the merging options", func() {
			sp.MergedOut = "A.merged.fastq.gz"
			sp.PrettyOut = "A.pretty.txt"

			So(sp.Command(), ShouldEndWith,
				" -s /out/A.merged.fastq.gz -E /out/A.pretty.txt -x 50 -o 30")
		})
	})
}

func TestSeqtk(t *testing.T) {
	Convey("You can generate a seqtk subsampling command", t, func() {
		st := NewSeqtk("/in/A_1.fastq.gz", "/out", 2500)

		So(st.Command(), ShouldEqual, "seqtk sample -s 100 /in/A_1.fastq.gz 2500")
		So(st.OutputPath(), ShouldEqual, filepath.Join("/out", "A_1_2500reads.fastq.gz"))
	})
}

func TestFastxBasename(t *testing.T) {
	Convey("FastxBasename strips compression and sequence extensions", t, func() {
		So(FastxBasename("/in/A_1.fastq.gz"), ShouldEqual, "A_1")
		So(FastxBasename("A_1.fq"), ShouldEqual, "A_1")
		So(FastxBasename("genome.fasta"), ShouldEqual, "genome")
		So(FastxBasename("genome.fa.gz"), ShouldEqual, "genome")
		So(FastxBasename("notes.txt"), ShouldEqual, "notes.txt")
	})
}

func TestInfo(t *testing.T) {
	Convey("Given a fastq file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "A_1.fastq")

		fastq := "@read1\nACGT\n+\nIIII\n" +
			"@read2\nGGCCAT\n+\nIIIIII\n"
		So(os.WriteFile(path, []byte(fastq), 0644), ShouldBeNil)

		Convey("Info summarises reads, bases, GC and mean length", func() {
			info, err := Info(path)
			So(err, ShouldBeNil)
			So(info.Reads, ShouldEqual, 2)
			So(info.Bases, ShouldEqual, 10)
			So(info.GCBases, ShouldEqual, 6)
			So(info.PortionGC, ShouldEqual, 0.6)
			So(info.AvgReadLen, ShouldEqual, 5.0)
		})

		Convey("A truncated record is an error", func() {
			So(os.WriteFile(path, []byte("@read1\nACGT\n+\n"), 0644), ShouldBeNil)

			_, err := Info(path)
			So(errors.Is(err, ErrTruncatedFastq), ShouldBeTrue)
		})

		Convey("An empty file summarises to zeroes", func() {
			So(os.WriteFile(path, nil, 0644), ShouldBeNil)

			info, err := Info(path)
			So(err, ShouldBeNil)
			So(info.Reads, ShouldEqual, 0)
			So(info.PortionGC, ShouldEqual, 0.0)
		})

		Convey("A missing file is an error", func() {
			_, err := Info(filepath.Join(dir, "missing.fastq"))
			So(err, ShouldNotBeNil)
		})
	})
}
