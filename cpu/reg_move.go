/*
   i960 - REG format: register move and eshro sub-families

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

// buildMoveOps wires the 1/2/3/4-word register-group moves (0x5CC, 0x5DC,
// 0x5EC, 0x5FC) and eshro (0x5D8).
func (c *Core) buildMoveOps() {
	c.set(0x5CC, regMove(1))
	c.set(0x5DC, regMove(2))
	c.set(0x5EC, regMove(3))
	c.set(0x5FC, regMove(4))
	c.set(0x5D8, regEshro)
}

// regMove copies n consecutive registers starting at a's register number
// into the group starting at c's register number. Like every other REG
// handler, operand a is resolved through srcA so a literal-mode encoding
// (mov <literal>, rX) loads the literal instead of reading whatever
// register happens to share that number; a literal can only ever supply
// the first of a multi-register group, so the remaining registers are
// cleared to zero.
func regMove(n uint32) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		if d.litA {
			c.R[d.dstC] = c.srcA(d)
			for i := uint32(1); i < n; i++ {
				c.R[(d.dstC+i)&0x1F] = 0
			}
			return noFault
		}
		for i := uint32(0); i < n; i++ {
			src := (d.regA + i) & 0x1F
			dst := (d.dstC + i) & 0x1F
			c.R[dst] = c.R[src]
		}
		return noFault
	}
}

// regEshro performs a 64-bit right shift of the pair (r[regB|1] as the
// high word, b as the low word) by a&31, writing the low 32 result bits
// to c.
func regEshro(c *Core, d *decoded) Fault {
	n := c.srcA(d) & 31
	lo := c.srcB(d)
	hi := c.R[d.regB|1]
	v := (uint64(hi) << 32) | uint64(lo)
	c.R[d.dstC] = uint32(v >> n)
	return noFault
}
