/*
   i960 - CTRL format decode and execute

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

// buildCtrlTable wires the 20 opcode bytes (0x08..0x0B and 0x10..0x1F)
// that carry CTRL instructions: bit28 of the word (bit4 of the opcode byte) selects
// between the plain branch family (0x08..0x0B) and the conditional
// family (0x10..0x1F), and within the conditional family bit27 (bit3 of
// the byte) selects bcc vs fault.cc.
func (c *Core) buildCtrlTable() {
	for top := uint32(0); top < 256; top++ {
		c.ctrlTable[top] = ctrlInvalid
	}
	for top := uint32(0x08); top <= 0x0B; top++ {
		switch top & 0x3 {
		case 0:
			c.ctrlTable[top] = ctrlB
		case 1:
			c.ctrlTable[top] = ctrlCall
		case 2:
			c.ctrlTable[top] = ctrlRet
		case 3:
			c.ctrlTable[top] = ctrlBal
		}
	}
	for top := uint32(0x10); top <= 0x17; top++ {
		c.ctrlTable[top] = ctrlBcc
	}
	for top := uint32(0x18); top <= 0x1F; top++ {
		c.ctrlTable[top] = ctrlFaultcc
	}
}

func ctrlInvalid(c *Core, d *decoded) Fault {
	c.raise(FaultInvalidOpcode)
	return FaultInvalidOpcode
}

func ctrlB(c *Core, d *decoded) Fault {
	c.b(d.efa)
	return noFault
}

func ctrlCall(c *Core, d *decoded) Fault {
	c.call(d.efa)
	return noFault
}

func ctrlRet(c *Core, d *decoded) Fault {
	if c.R[regPFP]&7 != 0 {
		c.raise(FaultInvalidOpcode)
		return FaultInvalidOpcode
	}
	c.ret()
	return noFault
}

func ctrlBal(c *Core, d *decoded) Fault {
	c.bal(d.efa, regLP)
	return noFault
}

func ctrlBcc(c *Core, d *decoded) Fault {
	if c.checkCond(d.cc) {
		c.b(d.efa)
	}
	return noFault
}

func ctrlFaultcc(c *Core, d *decoded) Fault {
	if c.checkCond(d.cc) {
		c.raise(FaultConstraintRange)
		return FaultConstraintRange
	}
	return noFault
}
