/*
   i960 - REG format: atomic read-modify-write sub-family

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

// buildAtomicOps wires 0x610 atmod and 0x612 atadd: both acquire the
// memory lock, read-modify-write the word at a&^3, and return the prior
// value in c.
func (c *Core) buildAtomicOps() {
	c.set(0x610, regAtmod)
	c.set(0x612, regAtadd)
}

func regAtmod(c *Core, d *decoded) Fault {
	addr := c.srcA(d) &^ 3
	mask := c.srcB(d)
	c.Mem.Lock()
	old := c.Mem.ReadWord(addr)
	c.Mem.WriteWord(addr, modify(old, c.R[d.dstC], mask))
	c.Mem.Unlock()
	c.R[d.dstC] = old
	return noFault
}

func regAtadd(c *Core, d *decoded) Fault {
	addr := c.srcA(d) &^ 3
	amount := c.srcB(d)
	c.Mem.Lock()
	old := c.Mem.ReadWord(addr)
	r, _ := add(old, amount)
	c.Mem.WriteWord(addr, r)
	c.Mem.Unlock()
	c.R[d.dstC] = old
	return noFault
}
