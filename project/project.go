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

// package project bootstraps a gloTK project directory: it validates and
// records the initial assembly config, and symlinks the declared read files
// into a project-managed reads directory.

package project

import (
	"io"
	"os"
	"path/filepath"

	"github.com/conchoecia/gloTK/merconf"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrAlreadyProject = Error("directory is already a gloTK project")

	InfoSubdir        = "gloTK_info"
	ReadsSubdir       = "gloTK_reads"
	readConfigsSubdir = "read_configs"
	initialReadsDir   = "reads0"
	initConfigName    = "project_init.config"
	inputConfigYAML   = "input_config.yaml"

	dirPerm  = 0755
	filePerm = 0644
)

// Project is an initialised gloTK project directory.
type Project struct {
	Dir    string
	Config *merconf.Config

	// Reads is the project's copy of the config, pointing at the symlinked
	// reads under gloTK_reads/reads0.
	Reads *merconf.Config
}

// IsProject reports whether dir already holds a gloTK project.
func IsProject(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, InfoSubdir))

	return err == nil && info.IsDir()
}

// Init initialises dir as a gloTK project from the given assembly config
// file: the config is parsed and validated, recorded under gloTK_info/ both
// verbatim and as YAML, and every read file it declares is symlinked into
// gloTK_reads/reads0/ with the relocated config persisted as
// gloTK_info/read_configs/reads0.yaml.
func Init(dir, configPath string) (*Project, error) {
	if IsProject(dir) {
		return nil, ErrAlreadyProject
	}

	cfg, err := merconf.Parse(configPath)
	if err != nil {
		return nil, err
	}

	infoDir := filepath.Join(dir, InfoSubdir)
	if err := os.MkdirAll(infoDir, dirPerm); err != nil {
		return nil, err
	}

	if err := copyFile(configPath, filepath.Join(infoDir, initConfigName)); err != nil {
		return nil, err
	}

	if err := cfg.WriteYAML(filepath.Join(infoDir, inputConfigYAML)); err != nil {
		return nil, err
	}

	readsCfg, err := linkReads(cfg, dir, infoDir)
	if err != nil {
		return nil, err
	}

	return &Project{Dir: dir, Config: cfg, Reads: readsCfg}, nil
}

func linkReads(cfg *merconf.Config, dir, infoDir string) (*merconf.Config, error) {
	readsDir := filepath.Join(dir, ReadsSubdir, initialReadsDir)

	readsCfg, err := cfg.RelocateReads(readsDir, merconf.RelocateSymlink)
	if err != nil {
		return nil, err
	}

	readConfigsDir := filepath.Join(infoDir, readConfigsSubdir)
	if err := os.MkdirAll(readConfigsDir, dirPerm); err != nil {
		return nil, err
	}

	return readsCfg, readsCfg.WriteYAML(filepath.Join(readConfigsDir, initialReadsDir+".yaml"))
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Close()
}
