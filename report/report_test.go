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

package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const testLog = `starting run
mer_size: 21
some noise
diploid_mode: 1
genome_size: 0.0235
min_depth_cutoff: 3
done
`

func makeRunDir(t *testing.T, name string) string {
	t.Helper()

	runDir := filepath.Join(t.TempDir(), name)

	for _, subdir := range []string{logSubdir, importSubdir} {
		if err := os.MkdirAll(filepath.Join(runDir, subdir), dirPerm); err != nil {
			t.Fatal(err)
		}
	}

	logPath := filepath.Join(runDir, logSubdir, logFilename)
	if err := os.WriteFile(logPath, []byte(testLog), filePerm); err != nil {
		t.Fatal(err)
	}

	return runDir
}

func TestAnalyzer(t *testing.T) {
	Convey("Given a completed run directory", t, func() {
		runDir := makeRunDir(t, "ab005_20160602_ME_k21")

		Convey("You can create an Analyzer for it", func() {
			a, err := New(runDir, nil)
			So(err, ShouldBeNil)
			So(a.Name(), ShouldEqual, "ab005_20160602_ME_k21")

			Convey("And recover the run parameters from its log", func() {
				params, err := a.Params()
				So(err, ShouldBeNil)
				So(params, ShouldResemble, RunParams{
					MerSize:        "21",
					DiploidMode:    "1",
					GenomeSize:     "0.0235",
					MinDepthCutoff: "3",
				})
			})

			Convey("And generate its Markdown report", func() {
				reportsDir := filepath.Join(t.TempDir(), "reports")

				path, err := a.Generate(reportsDir)
				So(err, ShouldBeNil)
				So(path, ShouldEqual, filepath.Join(reportsDir,
					"ab005_20160602_ME_k21", "ab005_20160602_ME_k21_report.md"))

				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring,
					"# Meraculous run report: ab005_20160602_ME_k21")
				So(string(data), ShouldContainSubstring, "| mer_size | 21 |")
				So(string(data), ShouldContainSubstring, "| genome_size | 0.0235 |")
			})
		})

		Convey("Censor strings are stripped from all output", func() {
			a, err := New(runDir, []string{"ab005_", "0.0235", ""})
			So(err, ShouldBeNil)
			So(a.Name(), ShouldEqual, "20160602_ME_k21")
			So(a.Censor("keep ab005_ secret"), ShouldEqual, "keep  secret")

			path, err := a.Generate(filepath.Join(t.TempDir(), "reports"))
			So(err, ShouldBeNil)

			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldNotContainSubstring, "ab005_")
			So(string(data), ShouldNotContainSubstring, "0.0235")
		})

		Convey("Parameters missing from the log are left empty", func() {
			So(os.WriteFile(filepath.Join(runDir, logSubdir, logFilename),
				[]byte("mer_size: 21\n"), filePerm), ShouldBeNil)

			a, err := New(runDir, nil)
			So(err, ShouldBeNil)

			params, err := a.Params()
			So(err, ShouldBeNil)
			So(params.MerSize, ShouldEqual, "21")
			So(params.GenomeSize, ShouldEqual, "")
		})
	})

	Convey("A directory without the run layout is rejected", t, func() {
		dir := t.TempDir()

		_, err := New(dir, nil)
		So(errors.Is(err, ErrNotMeraculousRun), ShouldBeTrue)

		So(os.MkdirAll(filepath.Join(dir, logSubdir), dirPerm), ShouldBeNil)

		_, err = New(dir, nil)
		So(errors.Is(err, ErrNotMeraculousRun), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, importSubdir)
	})
}
