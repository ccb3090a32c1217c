/*
   i960 - Fetch/execute loop

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

package cpu

// Step fetches, decodes and executes exactly one instruction at the
// current ip, returning any fault it raised (the zero Fault if none).
// ip is advanced past the instruction before the handler runs, except
// that CTRL/COBR branch targets are computed from the pre-advance
// address, per section 4.5's "added to the pre-advance ip".
func (c *Core) Step() Fault {
	pc := c.IP
	word1 := c.Mem.ReadWord(pc)
	c.IP = pc + 4

	switch classify(word1) {
	case fmtCtrl:
		d := decodeCtrl(word1)
		d.efa = uint32(int32(pc) + d.disp)
		return c.ctrlTable[word1>>24](c, d)

	case fmtCobr:
		d := decodeCobr(word1)
		d.efa = uint32(int32(pc) + d.disp)
		return c.cobrTable[(word1>>24)-0x20](c, d)

	case fmtReg:
		d := decodeReg(word1)
		op := regOpcode(word1)
		return c.regTable[op-regBase](c, d)

	case fmtMem:
		d := decodeMem(word1)
		var word2 uint32
		if memHasExtra(word1) {
			word2 = c.Mem.ReadWord(c.IP)
			d.word2, d.hasW2 = word2, true
			c.IP += 4
		}
		efa, fault := c.effectiveAddress(d, pc, word2)
		if fault != noFault {
			return fault
		}
		d.efa = efa
		return c.memTable[word1>>24](c, d)

	default:
		c.raise(FaultInvalidOpcode)
		return FaultInvalidOpcode
	}
}

// Run executes instructions until n have run or a fault is raised,
// whichever comes first, returning the number executed. It is a thin
// convenience for callers that don't need per-instruction control; it
// owns no scheduling or interrupt-delivery policy (section 5).
func (c *Core) Run(n int) int {
	for i := 0; i < n; i++ {
		before := c.LastFault
		if f := c.Step(); f != noFault || c.LastFault != before {
			return i + 1
		}
	}
	return n
}
