/*
   i960 - Branch, call and return engine

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

// windowSize is the number of local registers saved/restored by call/ret.
const windowSize = 16

// frameAlign is the register-save-area alignment call/ret require.
const frameAlign = 63

// b sets ip to efa. Named to match the architectural mnemonic.
func (c *Core) b(efa uint32) {
	c.IP = efa
}

// bal saves the current ip (already advanced past the branch-and-link
// instruction at fetch) into the link register, then branches.
func (c *Core) bal(efa uint32, link uint32) {
	c.R[link] = c.IP
	c.b(efa)
}

// call implements the i960 register-window frame discipline: a new,
// 64-byte-aligned frame is opened, the outgoing r0..r15 window (with r2
// already holding the return address) is saved at the old frame pointer,
// and execution transfers to efa.
func (c *Core) call(efa uint32) {
	newFP := (c.R[regSP] + frameAlign) &^ frameAlign
	c.R[regRIP] = c.IP

	oldFP := c.R[regFP]
	for i := uint32(0); i < windowSize; i++ {
		c.Mem.WriteWord(oldFP+i*4, c.R[i])
	}

	c.R[regPFP] = oldFP
	c.R[regFP] = newFP
	c.R[regSP] = newFP + windowSize*4
	c.b(efa)
}

// ret restores the register window saved by the matching call and
// resumes at the captured return address. System/fault/interrupt return
// variants keyed by the low 3 bits of PFP are not implemented in this core
// (spec.md section 9, Open Question (a)): ctrlRet raises an invalid-opcode
// fault when those bits are non-zero, and ret itself performs only the
// plain local return.
func (c *Core) ret() {
	newFP := c.R[regPFP] &^ frameAlign
	c.R[regFP] = newFP
	for i := uint32(0); i < windowSize; i++ {
		c.R[i] = c.Mem.ReadWord(newFP + i*4)
	}
	c.b(c.R[regRIP])
}
