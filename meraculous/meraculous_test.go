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

package meraculous

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMeraculous(t *testing.T) {
	Convey("You can generate an assembler command", t, func() {
		m := New()
		So(m.Exe, ShouldEqual, "run_meraculous.sh")
		So(m.CleanupLevel, ShouldEqual, 0)

		cmd := m.Command("/work/configs/ab005_20160602_ME_k21.config", "ab005_20160602_ME_k21")
		So(cmd, ShouldEqual, "bash run_meraculous.sh "+
			"-c /work/configs/ab005_20160602_ME_k21.config "+
			"-dir ab005_20160602_ME_k21 -cleanup_level 0")

		m.Exe = "/opt/meraculous/run_meraculous.sh"
		m.CleanupLevel = 2
		So(m.Command("a.config", "run1"), ShouldEqual,
			"bash /opt/meraculous/run_meraculous.sh -c a.config -dir run1 -cleanup_level 2")
	})

	Convey("Directory helpers follow the working-directory layout", t, func() {
		So(AssembliesDir("/work"), ShouldEqual, filepath.Join("/work", "assemblies"))
		So(RunDir("/work", "run1"), ShouldEqual, filepath.Join("/work", "assemblies", "run1"))
		So(ReportsDir("/work"), ShouldEqual, filepath.Join("/work", "reports"))
	})
}
