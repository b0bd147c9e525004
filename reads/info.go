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
	"bufio"
	"fmt"

	"github.com/shenwei356/xopen"
)

const (
	ErrTruncatedFastq = Error("fastq file ended mid-record")

	fastqLinesPerRecord = 4
	scannerBufferSize   = 1024 * 1024
)

// FastqInfo summarises one fastq file.
type FastqInfo struct {
	Reads      int     `yaml:"numReads"`
	Bases      int     `yaml:"numBases"`
	GCBases    int     `yaml:"numGCBases"`
	PortionGC  float64 `yaml:"portionGC"`
	AvgReadLen float64 `yaml:"avgReadLen"`
}

// Info reads a fastq file (gzipped or plain, decided by extension) and
// returns its read count, base count, GC content and mean read length. S and
// s count as GC, matching the IUPAC strong bases.
func Info(path string) (*FastqInfo, error) {
	file, err := xopen.Ropen(path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	info := &FastqInfo{}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), scannerBufferSize)

	lineNum := 0

	for scanner.Scan() {
		if lineNum%fastqLinesPerRecord == 1 {
			seq := scanner.Bytes()
			info.Reads++
			info.Bases += len(seq)
			info.GCBases += countGC(seq)
		}

		lineNum++
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if lineNum%fastqLinesPerRecord != 0 {
		return nil, fmt.Errorf("%w: %s", ErrTruncatedFastq, path)
	}

	if info.Bases > 0 {
		info.PortionGC = float64(info.GCBases) / float64(info.Bases)
	}

	if info.Reads > 0 {
		info.AvgReadLen = float64(info.Bases) / float64(info.Reads)
	}

	return info, nil
}

func countGC(seq []byte) int {
	n := 0

	for _, b := range seq {
		switch b {
		case 'G', 'C', 'g', 'c', 'S', 's':
			n++
		}
	}

	return n
}
