/*
   i960 - REG format: conditional add/sub/select sub-family

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

// buildCondOps wires 0x780..0x7F4, skipping the FPU carve-out at
// 0x78B..0x79F (section 4.7). The condition is the opcode's low 3 bits,
// matching bcc/testcc; which of add/sub/select applies cycles every 8
// opcodes across the range.
func (c *Core) buildCondOps() {
	for op := uint32(0x780); op <= 0x7F4; op++ {
		if op >= 0x78B && op <= 0x79F {
			continue
		}
		cc := op & 0x7
		switch ((op - 0x780) / 8) % 3 {
		case 0:
			c.set(op, regCondAdd(cc))
		case 1:
			c.set(op, regCondSub(cc))
		default:
			c.set(op, regCondSel(cc))
		}
	}
}

func regCondAdd(cc uint32) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		if c.checkCond(cc) {
			r, _ := add(c.srcA(d), c.srcB(d))
			c.R[d.dstC] = r
		}
		return noFault
	}
}

func regCondSub(cc uint32) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		if c.checkCond(cc) {
			r, _ := sub(c.srcB(d), c.srcA(d))
			c.R[d.dstC] = r
		}
		return noFault
	}
}

// regCondSel writes b when the condition holds, else a.
func regCondSel(cc uint32) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		if c.checkCond(cc) {
			c.R[d.dstC] = c.srcB(d)
		} else {
			c.R[d.dstC] = c.srcA(d)
		}
		return noFault
	}
}
