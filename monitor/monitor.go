/*
   i960 - Interactive monitor

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

// Package monitor is a liner-driven command console for single-stepping
// and inspecting a cpu.Core: step, run, dump registers/memory, and
// disassemble, in the vein of the teacher's console command reader.
package monitor

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/i960dev/i960emu/cpu"
	"github.com/i960dev/i960emu/disassemble"
	hexutil "github.com/i960dev/i960emu/util/hex"
)

var commands = []string{"step", "run", "regs", "dump", "disasm", "help", "quit", "exit"}

// SlogFaultReporter reports faults to the default slog logger; it
// satisfies cpu.FaultReporter.
type SlogFaultReporter struct{}

func (SlogFaultReporter) Report(f cpu.Fault) {
	slog.Warn("fault", "code", f.Error())
}

// Run starts the console's read-eval-print loop against c, reading
// instructions and data out of the same mem the core executes against.
// It returns when the user quits or aborts with Ctrl-D.
func Run(c *cpu.Core) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, partial) {
				out = append(out, cmd)
			}
		}
		return out
	})

	for {
		input, err := line.Prompt("i960> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("reading console input", "error", err)
			return
		}
		line.AppendHistory(input)

		quit, err := dispatch(c, input)
		if err != nil {
			fmt.Println("error:", err)
		}
		if quit {
			return
		}
	}
}

func dispatch(c *cpu.Core, input string) (quit bool, err error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		printHelp()
	case "regs":
		printRegs(c)
	case "step":
		n := 1
		if len(fields) > 1 {
			n, err = strconv.Atoi(fields[1])
			if err != nil {
				return false, err
			}
		}
		ran := c.Run(n)
		fmt.Printf("ran %d instruction(s), ip=%08x\n", ran, c.IP)
	case "run":
		n := 1 << 20
		if len(fields) > 1 {
			n, err = strconv.Atoi(fields[1])
			if err != nil {
				return false, err
			}
		}
		ran := c.Run(n)
		fmt.Printf("ran %d instruction(s), ip=%08x\n", ran, c.IP)
	case "dump":
		if len(fields) < 2 {
			return false, errors.New("usage: dump <addr> [count]")
		}
		return false, printDump(c, fields[1:])
	case "disasm":
		if len(fields) < 2 {
			return false, errors.New("usage: disasm <addr> [count]")
		}
		return false, printDisasm(c, fields[1:])
	default:
		return false, fmt.Errorf("unknown command %q", fields[0])
	}
	return false, nil
}

func printHelp() {
	fmt.Println("commands: step [n], run [n], regs, dump <addr> [count], disasm <addr> [count], quit")
}

func printRegs(c *cpu.Core) {
	var b strings.Builder
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, "r%-2d=", i)
		hexutil.FormatWord(&b, []uint32{c.R[i]})
	}
	fmt.Println(b.String())
	b.Reset()
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, "g%-2d=", i)
		hexutil.FormatWord(&b, []uint32{c.R[16+i]})
	}
	fmt.Println(b.String())
	fmt.Printf("ip=%08x ac=%08x pc=%08x tc=%08x\n", c.IP, c.AC, c.PC, c.TC)
}

func parseAddr(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	return uint32(n), err
}

func printDump(c *cpu.Core, args []string) error {
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	count := 16
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		count = n
	}
	var b strings.Builder
	for i := 0; i < count; i += 4 {
		words := make([]uint32, 0, 4)
		for j := 0; j < 4 && i+j < count; j++ {
			words = append(words, c.Mem.ReadWord(addr+uint32((i+j)*4)))
		}
		fmt.Printf("%08x: ", addr+uint32(i*4))
		b.Reset()
		hexutil.FormatWord(&b, words)
		fmt.Println(b.String())
	}
	return nil
}

func printDisasm(c *cpu.Core, args []string) error {
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	count := 8
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		count = n
	}
	for i := 0; i < count; i++ {
		text, size := disassemble.Disassemble(c.Mem, addr)
		fmt.Printf("%08x: %s\n", addr, text)
		addr += uint32(size)
	}
	return nil
}
