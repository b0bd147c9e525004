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

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvVarExe          = "GLOTK_MERACULOUS_EXE"
	EnvVarMaxProcs     = "GLOTK_MAX_PROCS"
	EnvVarSimultaneous = "GLOTK_SIMULTANEOUS"

	DefaultSimultaneous = 1

	// cpus the driver keeps for itself when defaulting MaxProcs
	reservedProcs = 2
)

type Error string

func (e Error) Error() string { return string(e) }

const ErrBadEnvValue = Error("environment variable is not a positive integer")

type Config struct {
	MeraculousExe string
	MaxProcs      int
	Simultaneous  int
}

// FromEnv returns a new Config with properties populated from environment
// variables GLOTK_*, where * is amongst: MERACULOUS_EXE, MAX_PROCS, and
// SIMULTANEOUS. All are optional: the exe defaults to run_meraculous.sh on
// PATH, MaxProcs to the CPU count minus two, and Simultaneous to one.
//
// If these environment variables are defined in a file called .env (and not
// previously set in an environment variable), they will be automatically
// loaded.
//
// Optionally supply a directory to look for the .env file in.
func FromEnv(dir ...string) (*Config, error) {
	var parentDir string
	if len(dir) == 1 {
		parentDir = dir[0] + string(os.PathSeparator)
	}

	godotenv.Load(parentDir + ".env")

	maxProcs, err := intEnv(EnvVarMaxProcs, defaultMaxProcs())
	if err != nil {
		return nil, err
	}

	simultaneous, err := intEnv(EnvVarSimultaneous, DefaultSimultaneous)
	if err != nil {
		return nil, err
	}

	return &Config{
		MeraculousExe: os.Getenv(EnvVarExe),
		MaxProcs:      maxProcs,
		Simultaneous:  simultaneous,
	}, nil
}

func defaultMaxProcs() int {
	if n := runtime.NumCPU() - reservedProcs; n > 0 {
		return n
	}

	return 1
}

func intEnv(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%s", ErrBadEnvValue, key, val)
	}

	return n, nil
}
