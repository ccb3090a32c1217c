/*
   i960 - REG format dispatch table assembly

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

// regBase is the 12-bit REG opcode of the lowest populated table slot;
// every real REG opcode used by this core falls in [regBase, regBase+0x27F].
const regBase = 0x580

func regInvalid(c *Core, d *decoded) Fault {
	c.raise(FaultInvalidOpcode)
	return FaultInvalidOpcode
}

// set installs handler fn at 12-bit REG opcode op.
func (c *Core) set(op uint32, fn func(*Core, *decoded) Fault) {
	c.regTable[op-regBase] = fn
}

// buildRegTable populates every slot the core recognizes and defaults the
// rest to invalid-opcode, per the dispatch-without-deep-nesting design
// (section 9): a flat table keyed by the 12-bit opcode beats a cascade of
// bit tests.
func (c *Core) buildRegTable() {
	for i := range c.regTable {
		c.regTable[i] = regInvalid
	}
	c.buildLogicOps()
	c.buildAdderOps()
	c.buildExtCompareOps()
	c.buildShiftOps()
	c.buildCompareOps()
	c.buildMiscOps()
	c.buildInterruptOps()
	c.buildMoveOps()
	c.buildAtomicOps()
	c.buildBitfieldOps()
	c.buildSystemOps()
	c.buildMulDivOps()
	c.buildCondOps()
}
