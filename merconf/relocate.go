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

package merconf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const dirPerm = 0755

// RelocateMode says what RelocateReads should do with the read files
// themselves.
type RelocateMode int

const (
	// RelocateRewrite only rewrites paths in the returned Config.
	RelocateRewrite RelocateMode = iota
	// RelocateSymlink symlinks each read file to its new location.
	RelocateSymlink
	// RelocateMove moves each read file to its new location.
	RelocateMove
)

// RelocateReads returns a copy of this Config whose libraries point at the
// basenames of their read files under newDir, symlinking or moving the files
// there according to mode. A symlink destination that already exists is an
// error: it means two lib_seq lines resolved to the same filename, which the
// caller must fix in the config.
func (c *Config) RelocateReads(newDir string, mode RelocateMode) (*Config, error) {
	if err := os.MkdirAll(newDir, dirPerm); err != nil {
		return nil, err
	}

	newC := c.Clone()

	for i, ls := range c.LibSeqs {
		newC.LibSeqs[i] = ls.Rebase(newDir)

		for j, pair := range ls.Pairs {
			newPair := newC.LibSeqs[i].Pairs[j]

			if err := relocateFile(pair.Forward, newPair.Forward, mode); err != nil {
				return nil, err
			}

			if err := relocateFile(pair.Reverse, newPair.Reverse, mode); err != nil {
				return nil, err
			}
		}
	}

	return newC, nil
}

func relocateFile(src, dst string, mode RelocateMode) error {
	switch mode {
	case RelocateSymlink:
		if _, err := os.Lstat(dst); err == nil {
			return fmt.Errorf("%w: %s", ErrDuplicateReadLink, dst)
		}

		return os.Symlink(src, dst)
	case RelocateMove:
		return moveFile(src, dst)
	default:
		return nil
	}
}

// moveFile moves a file from src to dst. A rename is attempted first; if
// that fails (eg. across filesystems), a copy-and-remove is done instead.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	return copyAndRemove(src, dst)
}

// copyAndRemove copies src to dst and removes src if successful.
func copyAndRemove(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	if err = os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	if err = dstFile.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}
