/*
   i960 - REG format: shift sub-family

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

// buildShiftOps wires 0x598..0x59F. Go's shift operators already produce
// the section-4.7/9 required semantics for out-of-range counts: an
// unsigned shift of 32+ yields 0, and a signed (arithmetic) shift of 32+
// yields the sign-filled saturation result, so no manual clamping is
// needed for shro/shlo/shri.
func (c *Core) buildShiftOps() {
	c.set(0x598, regShro)
	c.set(0x599, regShrdi)
	c.set(0x59A, regShri)
	c.set(0x59B, regShri) // filler: behaves as its neighbor, not invalid
	c.set(0x59C, regShlo)
	c.set(0x59D, regRotate)
	c.set(0x59E, regShli)
	c.set(0x59F, regShli) // filler
}

func regShro(c *Core, d *decoded) Fault {
	n, b := c.srcA(d), c.srcB(d)
	c.R[d.dstC] = b >> n
	return noFault
}

func regShlo(c *Core, d *decoded) Fault {
	n, b := c.srcA(d), c.srcB(d)
	c.R[d.dstC] = b << n
	return noFault
}

func regShri(c *Core, d *decoded) Fault {
	n, b := c.srcA(d), c.srcB(d)
	c.R[d.dstC] = uint32(int32(b) >> n)
	return noFault
}

// regShrdi is shri rounded toward zero: the arithmetic shift already
// rounds toward -infinity, so when b is negative and a discarded low bit
// was set, the true quotient is one greater (closer to zero) than r. A
// count of 32 or more is treated as 31.
func regShrdi(c *Core, d *decoded) Fault {
	n, b := c.srcA(d), c.srcB(d)
	if n > 31 {
		n = 31
	}
	r := uint32(int32(b) >> n)
	if n > 0 && n < 32 && int32(b) < 0 && b&((uint32(1)<<n)-1) != 0 {
		r++
	}
	c.R[d.dstC] = r
	return noFault
}

func regRotate(c *Core, d *decoded) Fault {
	a, b := c.srcA(d), c.srcB(d)
	n := a & 31
	c.R[d.dstC] = (b << n) | (b >> ((32 - n) & 31))
	return noFault
}

// regShli is a logical left shift that faults on overflow: if shifting
// left and then back right arithmetically by the same count doesn't
// reproduce b, a shifted-out bit differed from the result's sign.
func regShli(c *Core, d *decoded) Fault {
	n, b := c.srcA(d), c.srcB(d)
	r := b << n
	c.R[d.dstC] = r
	if n > 0 && uint32(int32(r)>>n) != b {
		c.checkOverflow(true)
		if c.LastFault == FaultIntegerOverflow {
			return FaultIntegerOverflow
		}
	}
	return noFault
}
