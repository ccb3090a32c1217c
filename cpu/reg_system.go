/*
   i960 - REG format: system sub-family

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

// buildSystemOps wires 0x660..0x664: calls consults the externally
// supplied dispatcher for vector validity/side effects, then (when a
// call-table base is configured) performs the architected procedure call
// into the entry that vector names, exactly like callx to a computed
// address. mark/fmark/flushreg/syncf have no architectural effect in
// this core (section 9, open question (c)).
func (c *Core) buildSystemOps() {
	c.set(0x660, regCalls)
	c.set(0x661, regNop) // mark
	c.set(0x662, regNop) // fmark
	c.set(0x663, regNop) // flushreg
	c.set(0x664, regNop) // syncf
}

func regNop(c *Core, d *decoded) Fault { return noFault }

func regCalls(c *Core, d *decoded) Fault {
	vector := c.srcA(d)
	if err := c.Calls.Calls(vector); err != nil {
		c.raise(FaultInvalidOpcode)
		return FaultInvalidOpcode
	}
	if c.callTableBase != 0 {
		target := c.Mem.ReadWord(c.callTableBase + vector*4)
		c.call(target)
	}
	return noFault
}
