/*
   i960 - REG format: bitwise logic and integer adder sub-families

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

// buildLogicOps wires 0x580..0x58F. Three of the sixteen rows are
// positional single-bit operations on b at bit position a (setbit,
// clrbit, notbit), one is the AC-condition-driven alterbit, and the rest
// are ordinary two-operand boolean functions of the full words a and b.
func (c *Core) buildLogicOps() {
	c.set(0x580, regNotbit)
	c.set(0x581, regBoolean(func(a, b uint32) uint32 { return a & b }))       // and
	c.set(0x582, regBoolean(func(a, b uint32) uint32 { return a &^ b }))      // andnot: a and not b
	c.set(0x583, regSetbit)
	c.set(0x584, regBoolean(func(a, b uint32) uint32 { return ^a & b }))      // notand: not a and b
	c.set(0x585, regBoolean(func(a, b uint32) uint32 { return ^a & b }))      // reserved; filler, mirrors notand
	c.set(0x586, regBoolean(func(a, b uint32) uint32 { return a ^ b }))       // xor
	c.set(0x587, regBoolean(func(a, b uint32) uint32 { return a | b }))       // or
	c.set(0x588, regBoolean(func(a, b uint32) uint32 { return ^(a | b) }))    // nor
	c.set(0x589, regBoolean(func(a, b uint32) uint32 { return ^(a ^ b) }))    // xnor
	c.set(0x58A, regBoolean(func(a, b uint32) uint32 { return ^b }))          // not (of b)
	c.set(0x58B, regBoolean(func(a, b uint32) uint32 { return a | ^b }))      // ornot: a or not b
	c.set(0x58C, regClrbit)
	c.set(0x58D, regBoolean(func(a, b uint32) uint32 { return ^a | b }))      // notor: not a or b
	c.set(0x58E, regBoolean(func(a, b uint32) uint32 { return ^(a & b) }))    // nand
	c.set(0x58F, regAlterbit)
}

// regBoolean builds a handler computing fn(a, b) over the full 32-bit
// operands, for the ordinary (non-positional) logic rows.
func regBoolean(fn func(a, b uint32) uint32) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		c.R[d.dstC] = fn(c.srcA(d), c.srcB(d))
		return noFault
	}
}

// regSetbit sets bit a of b, writing the result to c.
func regSetbit(c *Core, d *decoded) Fault {
	c.R[d.dstC] = c.srcB(d) | bitMask(c.srcA(d))
	return noFault
}

// regClrbit clears bit a of b, writing the result to c.
func regClrbit(c *Core, d *decoded) Fault {
	c.R[d.dstC] = c.srcB(d) &^ bitMask(c.srcA(d))
	return noFault
}

// regNotbit inverts bit a of b, writing the result to c.
func regNotbit(c *Core, d *decoded) Fault {
	c.R[d.dstC] = c.srcB(d) ^ bitMask(c.srcA(d))
	return noFault
}

// regAlterbit sets or clears bit a of b according to AC's carry/
// interpolation bit (bit 1), writing the result to c.
func regAlterbit(c *Core, d *decoded) Fault {
	b := c.srcB(d)
	pos := c.srcA(d)
	if bitSelect(c.AC, acCarryBit) != 0 {
		c.R[d.dstC] = b | bitMask(pos)
	} else {
		c.R[d.dstC] = b &^ bitMask(pos)
	}
	return noFault
}

// buildAdderOps wires the plain (0x590..0x593) and carry-propagating
// (0x5B0 addc, 0x5B2 subc) integer adder family.
func (c *Core) buildAdderOps() {
	c.set(0x590, regAdder(false, false)) // addo - ordinal, no overflow check
	c.set(0x591, regAdder(false, true))  // addi - integer, overflow checked
	c.set(0x592, regAdder(true, false))  // subo
	c.set(0x593, regAdder(true, true))   // subi
	c.set(0x5B0, regAddc)
	c.set(0x5B2, regSubc)
}

// regAdder builds an add or subtract handler. sub selects b-a vs a+b, and
// checkOvf gates the signed-overflow fault ("ordinal" forms skip it).
func regAdder(sub, checkOvf bool) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		a, b := c.srcA(d), c.srcB(d)
		var r uint32
		var ovf bool
		if sub {
			r, _ = sub32(b, a)
			ovf = subOverflow(b, a, r)
		} else {
			r, _ = add(a, b)
			ovf = addOverflow(a, b, r)
		}
		c.R[d.dstC] = r
		if checkOvf {
			c.checkOverflow(ovf)
			if c.LastFault == FaultIntegerOverflow {
				return FaultIntegerOverflow
			}
		}
		return noFault
	}
}

// sub32 is a small alias so regAdder's b-a reads naturally as subtracting
// a from b (i960 subo/subi compute src2 - src1).
func sub32(x, y uint32) (uint32, bool) { return sub(x, y) }

// regAddc adds with AC's carry bit as the carry-in and writes a two-bit
// result (carry in bit 1, signed overflow in bit 0) into the condition
// code, per section 4.7.
func regAddc(c *Core, d *decoded) Fault {
	a, b := c.srcA(d), c.srcB(d)
	cin := bitSelect(c.AC, acCarryBit) != 0
	r, cout := adc(a, b, cin)
	c.R[d.dstC] = r
	cc := uint32(0)
	if cout {
		cc |= 2
	}
	if addOverflow(a, b, r) {
		cc |= 1
	}
	c.setCC(cc)
	return noFault
}

// regSubc subtracts with AC's carry bit as the borrow-in, mirroring
// regAddc's condition-code packing.
func regSubc(c *Core, d *decoded) Fault {
	a, b := c.srcA(d), c.srcB(d)
	bin := bitSelect(c.AC, acCarryBit) != 0
	r, bout := sbb(b, a, bin)
	c.R[d.dstC] = r
	cc := uint32(0)
	if bout {
		cc |= 2
	}
	if subOverflow(b, a, r) {
		cc |= 1
	}
	c.setCC(cc)
	return noFault
}
