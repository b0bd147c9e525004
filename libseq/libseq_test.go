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

package libseq

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const (
	testDirPerm  = 0755
	testFilePerm = 0644
)

func TestLibSeq(t *testing.T) {
	Convey("Given a directory of paired read files", t, func() {
		dir := t.TempDir()
		readsDir := filepath.Join(dir, "reads")
		So(os.MkdirAll(readsDir, testDirPerm), ShouldBeNil)

		for _, name := range []string{
			"SRR353630_2500_1.fastq.gz", "SRR353630_2500_2.fastq.gz",
			"SRR353630_2500_1_2.fastq.gz", "SRR353630_2500_2_2.fastq.gz",
		} {
			So(os.WriteFile(filepath.Join(readsDir, name), nil, testFilePerm), ShouldBeNil)
		}

		wildcard := "reads/SRR353630_2500_1*.fastq.gz,reads/SRR353630_2500_2*.fastq.gz"
		scalars := " SP2013 720 100 100 0 0 1 1 1 0 0"
		record := wildcard + scalars

		Convey("You can parse a lib_seq record", func() {
			ls, err := Parse(record, dir)
			So(err, ShouldBeNil)
			So(ls.Wildcard, ShouldEqual, wildcard)
			So(ls.Name, ShouldEqual, "SP2013")
			So(ls.InsertAvg, ShouldEqual, "720")
			So(ls.InsertSdev, ShouldEqual, "100")
			So(ls.AvgReadLen, ShouldEqual, "100")
			So(ls.HasInnieArtifact, ShouldEqual, "0")
			So(ls.IsRevComped, ShouldEqual, "0")
			So(ls.UseForContiging, ShouldEqual, "1")
			So(ls.ScaffRound, ShouldEqual, "1")
			So(ls.UseForGapClosing, ShouldEqual, "1")
			So(ls.FivePrimeWiggle, ShouldEqual, "0")
			So(ls.ThreePrimeWiggle, ShouldEqual, "0")

			So(ls.Globs, ShouldResemble, []string{
				filepath.Join(readsDir, "SRR353630_2500_1*.fastq.gz"),
				filepath.Join(readsDir, "SRR353630_2500_2*.fastq.gz"),
			})

			So(ls.Pairs, ShouldResemble, []Pair{
				{
					Forward: filepath.Join(readsDir, "SRR353630_2500_1.fastq.gz"),
					Reverse: filepath.Join(readsDir, "SRR353630_2500_2.fastq.gz"),
				},
				{
					Forward: filepath.Join(readsDir, "SRR353630_2500_1_2.fastq.gz"),
					Reverse: filepath.Join(readsDir, "SRR353630_2500_2_2.fastq.gz"),
				},
			})

			Convey("And it round-trips through Line()", func() {
				So(ls.Line(), ShouldEqual, record)

				reparsed, err := Parse(ls.Line(), dir)
				So(err, ShouldBeNil)
				So(reparsed, ShouldResemble, ls)
			})

			Convey("And Reads() flattens the pairs in order", func() {
				So(ls.Reads(), ShouldResemble, []string{
					filepath.Join(readsDir, "SRR353630_2500_1.fastq.gz"),
					filepath.Join(readsDir, "SRR353630_2500_2.fastq.gz"),
					filepath.Join(readsDir, "SRR353630_2500_1_2.fastq.gz"),
					filepath.Join(readsDir, "SRR353630_2500_2_2.fastq.gz"),
				})
			})

			Convey("And Rebase() points everything at a new directory", func() {
				newDir := filepath.Join(dir, "project", "reads0")
				rebased := ls.Rebase(newDir)

				So(rebased.Wildcard, ShouldEqual, ls.Wildcard)
				So(rebased.Globs, ShouldResemble, []string{
					filepath.Join(newDir, "SRR353630_2500_1*.fastq.gz"),
					filepath.Join(newDir, "SRR353630_2500_2*.fastq.gz"),
				})
				So(rebased.Pairs[0], ShouldResemble, Pair{
					Forward: filepath.Join(newDir, "SRR353630_2500_1.fastq.gz"),
					Reverse: filepath.Join(newDir, "SRR353630_2500_2.fastq.gz"),
				})

				So(ls.Globs[0], ShouldEqual, filepath.Join(readsDir, "SRR353630_2500_1*.fastq.gz"))
			})
		})

		Convey("Spaces next to the comma are repaired", func() {
			for _, spaced := range []string{
				"reads/SRR353630_2500_1*.fastq.gz ,reads/SRR353630_2500_2*.fastq.gz" + scalars,
				"reads/SRR353630_2500_1*.fastq.gz, reads/SRR353630_2500_2*.fastq.gz" + scalars,
				"reads/SRR353630_2500_1*.fastq.gz , reads/SRR353630_2500_2*.fastq.gz" + scalars,
			} {
				ls, err := Parse(spaced, dir)
				So(err, ShouldBeNil)
				So(ls.Wildcard, ShouldEqual, wildcard)
				So(len(ls.Pairs), ShouldEqual, 2)
			}
		})

		Convey("A wildcard without a comma fails", func() {
			_, err := Parse("reads/SRR353630_2500_1*.fastq.gz"+scalars, dir)
			So(errors.Is(err, ErrWrongCommaCount), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "0 commas")
		})

		Convey("A wildcard with two commas fails", func() {
			_, err := Parse("reads/a*,reads/b*,reads/c*"+scalars, dir)
			So(errors.Is(err, ErrWrongCommaCount), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "2 commas")
		})

		Convey("A record with too few fields fails naming the count", func() {
			_, err := Parse(wildcard+" SP2013 720 100 100 0 0 1 1 1 0", dir)
			So(errors.Is(err, ErrFieldCount), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "11 fields")
		})

		Convey("A wildcard with an empty glob side fails", func() {
			_, err := Parse("reads/SRR353630_2500_1*.fastq.gz,"+scalars, dir)
			So(errors.Is(err, ErrGlobCount), ShouldBeTrue)
		})

		Convey("Globs that match nothing fail, naming every failing glob", func() {
			_, err := Parse("reads/nope_1*.gz,reads/nope_2*.gz"+scalars, dir)
			So(errors.Is(err, ErrNoReadsFound), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "forward glob "+filepath.Join(readsDir, "nope_1*.gz"))
			So(err.Error(), ShouldContainSubstring, "reverse glob "+filepath.Join(readsDir, "nope_2*.gz"))

			_, err = Parse("reads/SRR353630_2500_1*.fastq.gz,reads/nope_2*.gz"+scalars, dir)
			So(errors.Is(err, ErrNoReadsFound), ShouldBeTrue)
			So(err.Error(), ShouldNotContainSubstring, "forward glob")
			So(err.Error(), ShouldContainSubstring, "reverse glob")
		})

		Convey("Unequal forward and reverse match counts fail", func() {
			extra := filepath.Join(readsDir, "SRR353630_2500_1_3.fastq.gz")
			So(os.WriteFile(extra, nil, testFilePerm), ShouldBeNil)

			_, err := Parse(record, dir)
			So(errors.Is(err, ErrPairCountMismatch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "3 forward vs 2 reverse")
		})

		Convey("Absolute globs are left alone", func() {
			absWildcard := filepath.Join(readsDir, "SRR353630_2500_1*.fastq.gz") + "," +
				filepath.Join(readsDir, "SRR353630_2500_2*.fastq.gz")

			ls, err := Parse(absWildcard+scalars, "/somewhere/else")
			So(err, ShouldBeNil)
			So(len(ls.Pairs), ShouldEqual, 2)
		})
	})
}
