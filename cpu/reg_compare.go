/*
   i960 - REG format: extended compare, compare family, misc sub-families

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

// buildExtCompareOps wires 0x594..0x597: byte/short compare, size and
// signedness selected by the low two bits of the opcode.
func (c *Core) buildExtCompareOps() {
	for op := uint32(0x594); op <= 0x597; op++ {
		nibble := op & 0xF
		signed := nibble&1 != 0
		short := (nibble>>1)&1 != 0
		c.set(op, func(c *Core, d *decoded) Fault {
			a, b := c.srcA(d), c.srcB(d)
			var mask uint32 = 0xFF
			if short {
				mask = 0xFFFF
			}
			a &= mask
			b &= mask
			if signed {
				if short {
					a, b = signExtend(a, 16), signExtend(b, 16)
				} else {
					a, b = signExtend(a, 8), signExtend(b, 8)
				}
			}
			c.cmp(a, b, signed)
			return noFault
		})
	}
}

// signExtend sign-extends the low `bits` bits of x to a full 32-bit word.
func signExtend(x, bits uint32) uint32 {
	shift := 32 - bits
	return uint32(int32(x<<shift) >> shift)
}

// buildCompareOps wires 0x5A0..0x5A7: cmpo/cmpi, concmpo/concmpi, and
// their post-increment/post-decrement variants.
func (c *Core) buildCompareOps() {
	for op := uint32(0x5A0); op <= 0x5A7; op++ {
		nibble := op & 0xF
		signed := nibble&1 != 0
		f1 := (nibble>>1)&1 != 0
		f2 := (nibble>>2)&1 != 0
		c.set(op, func(c *Core, d *decoded) Fault {
			a, b := c.srcA(d), c.srcB(d)
			if f1 && !f2 {
				c.concmp(a, b, signed)
			} else {
				c.cmp(a, b, signed)
			}
			if f2 {
				if f1 {
					c.R[d.dstC] = b - 1
				} else {
					c.R[d.dstC] = b + 1
				}
			}
			return noFault
		})
	}
}

// buildMiscOps wires scanbyte, bswap and chkbit (0x5AC..0x5AE).
func (c *Core) buildMiscOps() {
	c.set(0x5AC, func(c *Core, d *decoded) Fault {
		a, b := c.srcA(d), c.srcB(d)
		match := false
		for shift := uint(0); shift < 32; shift += 8 {
			if (a>>shift)&0xFF == (b>>shift)&0xFF {
				match = true
				break
			}
		}
		if match {
			c.setCC(ccEqual)
		} else {
			c.setCC(ccUnordered)
		}
		return noFault
	})
	c.set(0x5AD, func(c *Core, d *decoded) Fault {
		a := c.srcA(d)
		c.R[d.dstC] = bswap32(a)
		return noFault
	})
	c.set(0x5AE, func(c *Core, d *decoded) Fault {
		pos, b := c.srcA(d), c.srcB(d)
		if bitSelect(b, pos) != 0 {
			c.setCC(ccEqual)
		} else {
			c.setCC(ccUnordered)
		}
		return noFault
	})
}

func bswap32(x uint32) uint32 {
	return (x>>24)&0xFF | (x>>8)&0xFF00 | (x<<8)&0xFF0000 | (x << 24)
}
