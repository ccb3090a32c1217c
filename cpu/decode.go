/*
   i960 - Instruction decode

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

// noFault is the zero value of Fault, used as "nothing was raised" by
// handlers that return their own Fault for test introspection.
const noFault Fault = 0

// format classifies the major instruction encoding by its top opcode byte.
type format int

const (
	fmtCtrl format = iota
	fmtCobr
	fmtReg
	fmtMem
	fmtReserved
)

func classify(word uint32) format {
	top := word >> 24
	switch {
	case top < 0x20:
		return fmtCtrl
	case top < 0x40:
		return fmtCobr
	case top < 0x58:
		return fmtReserved
	case top <= 0x7F:
		return fmtReg
	default:
		return fmtMem
	}
}

// regOpcode returns the 12-bit REG opcode (top opcode byte concatenated
// with the 4-bit opcode2 extension field).
func regOpcode(word uint32) uint32 {
	return ((word >> 24) << 4) | ((word >> 10) & 0xF)
}

// decodeReg fills in the operand fields of a REG-format instruction. Per
// section 4.7, src1/src2 are register numbers or 5-bit literals selected
// by mode bits m1/m2; dst is always a register number.
func decodeReg(word uint32) *decoded {
	d := &decoded{opcode: word}
	d.dstC = (word >> 19) & 0x1F
	d.litA = (word>>18)&1 != 0
	d.litB = (word>>17)&1 != 0
	d.regB = (word >> 5) & 0x1F
	d.regA = word & 0x1F
	return d
}

// srcA resolves operand a: the literal value itself, or the named register.
func (c *Core) srcA(d *decoded) uint32 {
	if d.litA {
		return d.regA
	}
	return c.R[d.regA]
}

// srcB resolves operand b: the literal value itself, or the named register.
func (c *Core) srcB(d *decoded) uint32 {
	if d.litB {
		return d.regB
	}
	return c.R[d.regB]
}

// decodeCtrl fills the operand fields of a CTRL-format instruction: a
// 24-bit signed, word-aligned displacement spanning bits 2..23, plus the
// 3-bit condition/selector field living in the low 3 bits of the opcode
// byte (bits 24..26).
func decodeCtrl(word uint32) *decoded {
	raw := word & 0x00FFFFFC
	if raw&0x00800000 != 0 {
		raw |= 0xFF000000
	}
	return &decoded{
		opcode: word,
		disp:   int32(raw),
		cc:     (word >> 24) & 0x7,
	}
}

// decodeCobr fills the operand fields of a COBR-format instruction: a is a
// register or 5-bit literal per M1, b is always a register, and the
// displacement is a 13-bit signed, word-aligned value. cc is the low 3
// bits of the opcode byte, matching the CTRL encoding.
func decodeCobr(word uint32) *decoded {
	raw := int32(word & 0x00001FFC)
	if raw&0x00001000 != 0 {
		raw |= ^int32(0x00001FFF)
	}
	d := &decoded{
		opcode: word,
		disp:   raw,
		m1:     (word>>13)&1 != 0,
		cc:     (word >> 24) & 0x7,
	}
	d.regA = (word >> 19) & 0x1F
	d.regB = (word >> 14) & 0x1F
	d.dstC = d.regB
	return d
}

// cobrA resolves COBR operand a: the literal value itself, or the named
// register, per the M1 mode bit.
func (c *Core) cobrA(d *decoded) uint32 {
	if d.m1 {
		return d.regA
	}
	return c.R[d.regA]
}
