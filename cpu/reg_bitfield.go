/*
   i960 - REG format: bit-field sub-family

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

import "math/bits"

// buildBitfieldOps wires 0x640..0x65D: leading-bit scan, masked-exchange
// control-register edits, and in-place mask/field edits of a register.
func (c *Core) buildBitfieldOps() {
	c.set(0x640, regScanbit)
	c.set(0x641, regSpanbit)
	c.set(0x645, regModCtl(func(c *Core) *uint32 { return &c.AC }, false))
	c.set(0x65C, regModCtl(func(c *Core) *uint32 { return &c.TC }, false))
	c.set(0x65D, regModCtl(func(c *Core) *uint32 { return &c.PC }, true))
	c.set(0x654, regModify)
	c.set(0x655, regExtract)
}

// regScanbit locates the leading one bit of a, section 8's "31-clz or
// all-ones if none", and sets CC to 2 if found, 0 otherwise.
func regScanbit(c *Core, d *decoded) Fault {
	a := c.srcA(d)
	if a == 0 {
		c.R[d.dstC] = 0xFFFFFFFF
		c.setCC(ccUnordered)
		return noFault
	}
	c.R[d.dstC] = uint32(31 - bits.LeadingZeros32(a))
	c.setCC(ccEqual)
	return noFault
}

// regSpanbit is scanbit over the complement of a: it locates the leading
// zero bit.
func regSpanbit(c *Core, d *decoded) Fault {
	a := ^c.srcA(d)
	if a == 0 {
		c.R[d.dstC] = 0xFFFFFFFF
		c.setCC(ccUnordered)
		return noFault
	}
	c.R[d.dstC] = uint32(31 - bits.LeadingZeros32(a))
	c.setCC(ccEqual)
	return noFault
}

// regModCtl builds a masked-exchange handler against a named control
// register: c receives the register's old value, and mask (a) / new bits
// (b) are deposited into it. When checkSup is true (modpc), a non-zero
// mask requires supervisor mode.
func regModCtl(reg func(*Core) *uint32, checkSup bool) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		mask := c.srcA(d)
		if checkSup && mask != 0 && !c.requireSupervisor() {
			return FaultTypeMismatch
		}
		r := reg(c)
		old := *r
		*r = modify(old, c.srcB(d), mask)
		c.R[d.dstC] = old
		return noFault
	}
}

// regModify deposits b's bits into c wherever mask a is set, leaving c's
// other bits untouched.
func regModify(c *Core, d *decoded) Fault {
	c.R[d.dstC] = modify(c.R[d.dstC], c.srcB(d), c.srcA(d))
	return noFault
}

// regExtract replaces c with the bit field (pos=a, len=b) taken from c's
// own current value.
func regExtract(c *Core, d *decoded) Fault {
	c.R[d.dstC] = extract(c.R[d.dstC], c.srcA(d), c.srcB(d))
	return noFault
}
