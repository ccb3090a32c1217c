/*
   i960 - Configuration file parser

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package configparser reads the monitor's startup configuration file:
// one "key value" pair per line, '#' starts a comment, blank lines are
// ignored.
package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config is the resolved set of startup options, defaulted before the
// file is read so a missing key simply keeps the default.
type Config struct {
	MemSize       uint32 // bytes of flat memory to allocate
	ICONAddr      uint32 // interrupt-control register address
	CallTableBase uint32 // base address of the supervisor call table
	IntdisSetsBit bool   // true: intdis sets the ICON GIE bit (this core's convention)
	TraceEnable   bool   // "trace" key; parsed and stored, but nothing in this module reads it
}

// Default returns the configuration a host gets without a config file.
func Default() Config {
	return Config{
		MemSize:       1 * 1024 * 1024,
		ICONAddr:      0xFF008510,
		CallTableBase: 0,
		IntdisSetsBit: true,
	}
}

// ErrUnknownKey is wrapped into the returned error when a line names a
// key this parser doesn't recognize, so callers can choose to warn
// rather than abort.
var ErrUnknownKey = errors.New("unknown configuration key")

// Load reads a configuration file, applying recognized keys on top of
// Default(). A *PathError from the underlying os.Open surfaces
// unchanged so callers can test it with os.IsNotExist.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return cfg, fmt.Errorf("line %d: expected \"key value\", got %q", lineNo, line)
		}
		if err := apply(&cfg, fields[0], fields[1]); err != nil {
			return cfg, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func apply(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "memsize":
		n, err := parseSize(value)
		if err != nil {
			return err
		}
		cfg.MemSize = n
	case "iconaddr":
		n, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return err
		}
		cfg.ICONAddr = uint32(n)
	case "calltablebase":
		n, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return err
		}
		cfg.CallTableBase = uint32(n)
	case "intdissetsbit":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		cfg.IntdisSetsBit = b
	case "trace":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		cfg.TraceEnable = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// parseSize accepts a plain byte count or a K/M suffixed shorthand
// ("256K", "4M"), matching the teacher's MEMSIZE option shorthand.
func parseSize(s string) (uint32, error) {
	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "K") || strings.HasSuffix(s, "k"):
		mult = 1024
		s = s[:len(s)-1]
	case strings.HasSuffix(s, "M") || strings.HasSuffix(s, "m"):
		mult = 1024 * 1024
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n * mult), nil
}
