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

// package meraculous builds command lines for the Meraculous assembler and
// knows its run-directory conventions.

package meraculous

import (
	"fmt"
	"path/filepath"
)

const (
	DefaultExe          = "run_meraculous.sh"
	DefaultCleanupLevel = 0

	// run output conventions under a sweep's working directory
	AssembliesSubdir = "assemblies"
	ReportsSubdir    = "reports"
)

// Meraculous represents how to invoke the assembler for one generated
// config. All parameters are required, but New() defaults them to the usual
// fixed values.
type Meraculous struct {
	Exe          string
	CleanupLevel int
}

// New creates a Meraculous instance with default values.
func New() Meraculous {
	return Meraculous{
		Exe:          DefaultExe,
		CleanupLevel: DefaultCleanupLevel,
	}
}

// Command generates the assembler command to execute for the given config
// file path and run name. It should be run from the assemblies directory,
// since the assembler creates its run directory under the current directory.
func (m *Meraculous) Command(configPath, runName string) string {
	return fmt.Sprintf("bash %s -c %s -dir %s -cleanup_level %d",
		m.Exe, configPath, runName, m.CleanupLevel)
}

// AssembliesDir returns where the per-run assembly directories live under
// the given working directory.
func AssembliesDir(workDir string) string {
	return filepath.Join(workDir, AssembliesSubdir)
}

// RunDir returns the assembly directory for the named run.
func RunDir(workDir, runName string) string {
	return filepath.Join(AssembliesDir(workDir), runName)
}

// ReportsDir returns where run reports are deposited under the given working
// directory.
func ReportsDir(workDir string) string {
	return filepath.Join(workDir, ReportsSubdir)
}
