/*
   i960 - Core definitions: processor state, register aliases, fault codes

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

// Package cpu implements the i960 instruction decoder and the semantics of
// each instruction's effect on architectural state: general registers, the
// instruction pointer, arithmetic/process/trace controls, and memory.
package cpu

import (
	"fmt"

	"github.com/i960dev/i960emu/memory"
)

// Register file layout. r0..r15 are local registers, g0..g15 are global;
// both groups live in one 32-entry array per the unified register file.
const (
	regPFP = 0  // r0 - previous frame pointer
	regSP  = 1  // r1 - stack pointer
	regRIP = 2  // r2 - return instruction pointer
	regLP  = 16 + 14 // g14 - link
	regFP  = 16 + 15 // g15 - frame pointer
)

// Arithmetic-control register (AC) bit layout.
const (
	acCCMask     uint32 = 0x7    // condition code, bits 0..2
	acCarryBit   uint32 = 1      // bit 1 doubles as carry/interpolation bit
	acOverflow   uint32 = 0x0100 // bit 8 - sticky integer overflow flag
	acOverflowMk uint32 = 0x1000 // bit 12 - integer overflow mask
	acNoImprec   uint32 = 0x8000 // bit 15 - no imprecise faults
)

// Condition-code values. At most one of {less, equal, greater} is set.
const (
	ccUnordered uint32 = 0 // "false" / unordered
	ccGreater   uint32 = 1
	ccEqual     uint32 = 2
	ccLess      uint32 = 4
)

// Process-control register (PC) bit layout.
const (
	pcTraceEnable uint32 = 0x00000001
	pcExecMode    uint32 = 0x00000002 // 0 = user, 1 = supervisor
	pcTraceFault  uint32 = 0x00000400
	pcState       uint32 = 0x00002000
)

// defaultICONAddr is the interrupt-control register memory address used
// when Options.ICONAddr is left zero; intdis/inten manipulate bit 10
// (the global interrupt enable) of the word there.
const defaultICONAddr uint32 = 0xFF008510

// Fault is an i960 architectural fault: (type<<16)|subtype.
type Fault uint32

// Fault codes the core is required to report (spec.md section 4.3).
const (
	FaultInvalidOpcode   Fault = 0x00020001
	FaultIntegerOverflow Fault = 0x00030001
	FaultDivideByZero    Fault = 0x00030002
	FaultConstraintRange Fault = 0x00050001
	FaultTypeMismatch    Fault = 0x000a0001
)

func (f Fault) Error() string {
	return fmt.Sprintf("i960 fault type=%04x subtype=%04x", uint32(f)>>16, uint32(f)&0xffff)
}

// FaultReporter is the external collaborator that records or acts on a
// fault raised by the core. Faults do not unwind Go's call stack; the
// core calls Report and continues per the instruction's own ordering
// rules (division, for example, never writes its destination once a
// divide-by-zero has been reported).
type FaultReporter interface {
	Report(f Fault)
}

// CallsDispatcher validates (and may act on) a supervisor call vector
// before the REG-format calls instruction performs the architected
// procedure call into Options.CallTableBase; an error aborts the call as
// an invalid opcode. The core itself has no opinion on what a vector
// means, only on how to branch once a dispatcher accepts it.
type CallsDispatcher interface {
	Calls(vector uint32) error
}

// nopFaultReporter is installed by New when the caller doesn't supply one;
// it discards faults, which is only appropriate for disassembler-only use
// or for tests that inspect the fault field directly instead.
type nopFaultReporter struct{}

func (nopFaultReporter) Report(Fault) {}

// nopCallsDispatcher rejects every vector as an invalid opcode, matching
// "external collaborator" scope: the core ships no default OS personality.
type nopCallsDispatcher struct{}

func (nopCallsDispatcher) Calls(uint32) error { return FaultInvalidOpcode }

// Options carries boot-time configuration that shapes a handful of
// instructions' behavior without belonging in the fixed register/control
// register state: the interrupt-control register's memory address, the
// calls instruction's call-table base, and this core's intdis/inten
// polarity convention. A zero Options value resolves to this core's
// built-in defaults (see New).
type Options struct {
	ICONAddr      uint32 // 0 selects defaultICONAddr
	CallTableBase uint32 // base address of the calls vector table
	IntdisSetsBit bool   // true: intdis sets the ICON GIE bit (this core's convention)
}

// Core is the architectural state of one emulated i960 processor.
type Core struct {
	R  [32]uint32 // r0..r15, g0..g15
	IP uint32     // instruction pointer
	AC uint32     // arithmetic controls
	PC uint32     // process controls
	TC uint32     // trace controls

	LastFault Fault // most recently reported fault, for tests/introspection

	Mem   memory.Interface
	Fault FaultReporter
	Calls CallsDispatcher

	iconAddr      uint32
	callTableBase uint32
	intdisSetsBit bool

	regTable  [1024]func(*Core, *decoded) Fault
	ctrlTable [256]func(*Core, *decoded) Fault
	cobrTable [64]func(*Core, *decoded) Fault
	memTable  [256]func(*Core, *decoded) Fault
}

// decoded holds the operand values and addressing state produced while
// decoding one instruction, consumed by the instruction's handler.
type decoded struct {
	opcode uint32 // full 32-bit instruction word
	word2  uint32 // second word, for CTRL-less MEMB forms
	hasW2  bool

	// REG format
	srcA, srcB uint32 // resolved source operand values
	dstC       uint32 // register index of c (destination)
	regA       uint32 // register index of a (0..31) when not literal
	regB       uint32 // register index of b
	litA, litB bool   // true when a/b select the literal encoding

	// CTRL/COBR
	disp int32 // sign-extended, word-aligned branch displacement
	cc   uint32
	m1   bool // COBR: a is literal
	t    bool // COBR: test/branch sense (bbc vs bbs), or CTRL fault polarity

	// MEM
	mode  uint32
	efa   uint32
	scale uint32
}

// New creates a Core bound to the given memory. A nil FaultReporter or
// CallsDispatcher installs a no-op default. opts.ICONAddr of zero selects
// defaultICONAddr.
func New(mem memory.Interface, fault FaultReporter, calls CallsDispatcher, opts Options) *Core {
	c := &Core{Mem: mem}
	if fault == nil {
		fault = nopFaultReporter{}
	}
	if calls == nil {
		calls = nopCallsDispatcher{}
	}
	c.Fault = fault
	c.Calls = calls
	c.iconAddr = opts.ICONAddr
	if c.iconAddr == 0 {
		c.iconAddr = defaultICONAddr
	}
	c.callTableBase = opts.CallTableBase
	c.intdisSetsBit = opts.IntdisSetsBit
	c.buildRegTable()
	c.buildCtrlTable()
	c.buildCobrTable()
	c.buildMemTable()
	return c
}

// raise reports a fault, applying the integer-overflow masking policy of
// section 4.3: an overflow mask bit set in AC converts the overflow into
// a sticky flag rather than a reported fault.
func (c *Core) raise(f Fault) {
	if f == FaultIntegerOverflow && (c.AC&acOverflowMk) != 0 {
		c.AC |= acOverflow
		return
	}
	c.LastFault = f
	c.Fault.Report(f)
}

// supervisor reports whether the core is currently in supervisor mode.
func (c *Core) supervisor() bool {
	return (c.PC & pcExecMode) != 0
}
