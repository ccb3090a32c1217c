/*
   i960 - REG format: multiply/divide sub-family

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

// Throughout this family, per the source's src1/src2/dst convention (also
// used by subo/subi), a (src1) is the right-hand operand: divisor for
// divide/remainder, and b (src2) is the left-hand operand (dividend).

// buildMulDivOps wires the nine multiply/divide opcodes named in section
// 4.7, at their given 12-bit values.
func (c *Core) buildMulDivOps() {
	c.set(0x670, regEmul)
	c.set(0x671, regEdiv)
	c.set(0x701, regMulo)
	c.set(0x708, regRemo)
	c.set(0x70B, regDivo)
	c.set(0x741, regMuli)
	c.set(0x748, regRemi)
	c.set(0x749, regModi)
	c.set(0x74B, regDivi)
}

// regEmul computes the full 64-bit unsigned product of a and b, writing
// the low word to c and the high word to c+1.
func regEmul(c *Core, d *decoded) Fault {
	prod := uint64(c.srcA(d)) * uint64(c.srcB(d))
	c.R[d.dstC] = uint32(prod)
	c.R[(d.dstC+1)&0x1F] = uint32(prod >> 32)
	return noFault
}

// regEdiv divides the 64-bit dividend held in the register pair starting
// at regB by a, writing the remainder to c and the quotient to c+1.
func regEdiv(c *Core, d *decoded) Fault {
	divisor := c.srcA(d)
	if divisor == 0 {
		c.raise(FaultDivideByZero)
		return FaultDivideByZero
	}
	lo := c.R[d.regB]
	hi := c.R[d.regB|1]
	dividend := (uint64(hi) << 32) | uint64(lo)
	q := dividend / uint64(divisor)
	r := dividend % uint64(divisor)
	c.R[d.dstC] = uint32(r)
	c.R[(d.dstC+1)&0x1F] = uint32(q)
	return noFault
}

func regMulo(c *Core, d *decoded) Fault {
	c.R[d.dstC] = c.srcA(d) * c.srcB(d)
	return noFault
}

func regMuli(c *Core, d *decoded) Fault {
	a, b := int32(c.srcA(d)), int32(c.srcB(d))
	prod := int64(a) * int64(b)
	r := int32(prod)
	c.R[d.dstC] = uint32(r)
	c.checkOverflow(int64(r) != prod)
	if c.LastFault == FaultIntegerOverflow {
		return FaultIntegerOverflow
	}
	return noFault
}

func regRemo(c *Core, d *decoded) Fault {
	divisor := c.srcA(d)
	if divisor == 0 {
		c.raise(FaultDivideByZero)
		return FaultDivideByZero
	}
	c.R[d.dstC] = c.srcB(d) % divisor
	return noFault
}

func regDivo(c *Core, d *decoded) Fault {
	divisor := c.srcA(d)
	if divisor == 0 {
		c.raise(FaultDivideByZero)
		return FaultDivideByZero
	}
	c.R[d.dstC] = c.srcB(d) / divisor
	return noFault
}

func regRemi(c *Core, d *decoded) Fault {
	divisor := int32(c.srcA(d))
	if divisor == 0 {
		c.raise(FaultDivideByZero)
		return FaultDivideByZero
	}
	c.R[d.dstC] = uint32(int32(c.srcB(d)) % divisor)
	return noFault
}

// regModi adjusts the C-style remainder toward a Euclidean-style result:
// when the operands' signs differ and the remainder is non-zero, the
// divisor is folded back in.
func regModi(c *Core, d *decoded) Fault {
	divisor := int32(c.srcA(d))
	if divisor == 0 {
		c.raise(FaultDivideByZero)
		return FaultDivideByZero
	}
	dividend := int32(c.srcB(d))
	r := dividend % divisor
	if r != 0 && (r < 0) != (divisor < 0) {
		r += divisor
	}
	c.R[d.dstC] = uint32(r)
	return noFault
}

// regDivi raises integer overflow for INT32_MIN/-1 but, matching the
// overflow (not division-by-zero) policy, still writes the wrapped
// result to c.
func regDivi(c *Core, d *decoded) Fault {
	divisor := int32(c.srcA(d))
	if divisor == 0 {
		c.raise(FaultDivideByZero)
		return FaultDivideByZero
	}
	dividend := int32(c.srcB(d))
	c.R[d.dstC] = uint32(dividend / divisor)
	if dividend == -0x80000000 && divisor == -1 {
		c.checkOverflow(true)
		if c.LastFault == FaultIntegerOverflow {
			return FaultIntegerOverflow
		}
	}
	return noFault
}
