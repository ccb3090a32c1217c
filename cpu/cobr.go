/*
   i960 - COBR format decode and execute

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

// buildCobrTable wires the 32 opcode bytes 0x20..0x3F. 0x20..0x27 is the
// testcc family; 0x30..0x37 is the unsigned compare-and-branch family,
// whose cc==0 and cc==7 slots are repurposed as bbc/bbs; 0x38..0x3F is
// the signed compare-and-branch family. 0x28..0x2F is unused.
func (c *Core) buildCobrTable() {
	for i := range c.cobrTable {
		c.cobrTable[i] = cobrInvalid
	}
	for top := uint32(0x20); top <= 0x27; top++ {
		c.cobrTable[top-0x20] = cobrTestcc
	}
	for top := uint32(0x30); top <= 0x37; top++ {
		cc := top & 0x7
		switch cc {
		case 0:
			c.cobrTable[top-0x20] = cobrBbc
		case 7:
			c.cobrTable[top-0x20] = cobrBbs
		default:
			c.cobrTable[top-0x20] = cobrCmpbccUnsigned
		}
	}
	for top := uint32(0x38); top <= 0x3F; top++ {
		c.cobrTable[top-0x20] = cobrCmpbccSigned
	}
}

func cobrInvalid(c *Core, d *decoded) Fault {
	c.raise(FaultInvalidOpcode)
	return FaultInvalidOpcode
}

// cobrTestcc writes the condition match (0 or 1) into the destination
// register; it never branches.
func cobrTestcc(c *Core, d *decoded) Fault {
	if c.checkCond(d.cc) {
		c.R[d.dstC] = 1
	} else {
		c.R[d.dstC] = 0
	}
	return noFault
}

func cobrBit(c *Core, d *decoded, wantSet bool) Fault {
	a := c.cobrA(d)
	b := c.R[d.regB]
	set := bitSelect(b, a) != 0
	if set == wantSet {
		c.setCC(ccEqual)
		c.b(d.efa)
	} else {
		c.setCC(ccUnordered)
	}
	return noFault
}

func cobrBbc(c *Core, d *decoded) Fault { return cobrBit(c, d, false) }
func cobrBbs(c *Core, d *decoded) Fault { return cobrBit(c, d, true) }

func cobrCmpbcc(c *Core, d *decoded, signed bool) Fault {
	a := c.cobrA(d)
	b := c.R[d.regB]
	c.cmp(a, b, signed)
	if c.checkCond(d.cc) {
		c.b(d.efa)
	}
	return noFault
}

func cobrCmpbccUnsigned(c *Core, d *decoded) Fault { return cobrCmpbcc(c, d, false) }
func cobrCmpbccSigned(c *Core, d *decoded) Fault   { return cobrCmpbcc(c, d, true) }
