/*
   i960 - REG format: interrupt-control sub-family

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

// icGIE is the global-interrupt-enable bit within the interrupt-control
// register word (bit 10), per section 4.7.
const icGIE = 10

// buildInterruptOps wires 0x5B4 intdis and 0x5B5 inten. Both are
// supervisor-only; which of the pair sets the ICON GIE bit and which
// clears it is configurable (Options.IntdisSetsBit), preserved as an
// open convention per section 9's open question (b) rather than fixed
// to one polarity.
func (c *Core) buildInterruptOps() {
	c.set(0x5B4, regSetICON(true))  // intdis
	c.set(0x5B5, regSetICON(false)) // inten
}

func regSetICON(isIntdis bool) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		if !c.requireSupervisor() {
			return FaultTypeMismatch
		}
		setsBit := isIntdis == c.intdisSetsBit
		old := c.Mem.ReadWord(c.iconAddr)
		var newVal uint32
		if setsBit {
			newVal = bitMask(icGIE)
		}
		c.Mem.WriteWord(c.iconAddr, modify(old, newVal, bitMask(icGIE)))
		return noFault
	}
}
