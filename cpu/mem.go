/*
   i960 - MEM format decode and execute

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

// decodeMem fills in the operand and addressing fields of a MEM-format
// instruction. dstC holds the data register (loaded into or stored from);
// regB is the base register, regA the scaled index register.
func decodeMem(word1 uint32) *decoded {
	d := &decoded{opcode: word1}
	d.dstC = (word1 >> 19) & 0x1F
	d.regB = (word1 >> 14) & 0x1F
	d.regA = word1 & 0x1F
	d.scale = 1 << ((word1 >> 7) & 7)
	d.mode = (word1 >> 10) & 0xF
	return d
}

// memHasExtra reports whether the addressing mode of word1 consumes a
// second instruction word (a 32-bit displacement).
func memHasExtra(word1 uint32) bool {
	if (word1>>12)&1 == 0 {
		return false // MEMA: 12-bit offset lives in word1 itself
	}
	switch (word1 >> 10) & 0xF {
	case 0x5, 0xC, 0xD, 0xE, 0xF:
		return true
	default:
		return false
	}
}

// effectiveAddress computes EFA for every addressing form section 4.8
// names: MEMA 12-bit offset (with or without a base register), and the
// MEMB forms (register-indirect, IP-relative, absolute, index-scaled,
// base+displacement, base+index-scaled+displacement). Mode 6 is reserved:
// it raises an invalid-opcode fault here and returns that fault.
func (c *Core) effectiveAddress(d *decoded, pc, word2 uint32) (uint32, Fault) {
	if (d.opcode>>12)&1 == 0 {
		disp := d.opcode & 0xFFF
		if (d.opcode>>13)&1 != 0 {
			return c.R[d.regB] + disp, noFault
		}
		return disp, noFault
	}
	switch d.mode {
	case 0x4:
		return c.R[d.regB], noFault
	case 0x5:
		return pc + 8 + word2, noFault
	case 0x7:
		return c.R[d.regA] * d.scale, noFault
	case 0xC:
		return word2, noFault
	case 0xD:
		return c.R[d.regA]*d.scale + word2, noFault
	case 0xE:
		return c.R[d.regB] + word2, noFault
	case 0xF:
		return c.R[d.regB] + c.R[d.regA]*d.scale + word2, noFault
	default:
		c.raise(FaultInvalidOpcode)
		return 0, FaultInvalidOpcode
	}
}

func memInvalid(c *Core, d *decoded) Fault {
	c.raise(FaultInvalidOpcode)
	return FaultInvalidOpcode
}

// buildMemTable wires the MEM-format opcodes named in section 4.8: the
// non-memory functions bx/balx/callx/lda, the load family (byte/short/
// word/double/triple/quad, with signed byte/short variants), and the
// mirrored store family.
func (c *Core) buildMemTable() {
	for i := range c.memTable {
		c.memTable[i] = memInvalid
	}
	c.memTable[0x84] = memBx
	c.memTable[0x85] = memBalx
	c.memTable[0x86] = memCallx
	c.memTable[0x8C] = memLda

	c.memTable[0x80] = memLoad(1, false)
	c.memTable[0x88] = memLoad(2, false)
	c.memTable[0x90] = memLoad(4, false)
	c.memTable[0x98] = memLoad(8, false)
	c.memTable[0xA0] = memLoad(12, false)
	c.memTable[0xB0] = memLoad(16, false)
	c.memTable[0xC0] = memLoad(1, true)
	c.memTable[0xC8] = memLoad(2, true)

	c.memTable[0x82] = memStore(1, false)
	c.memTable[0x8A] = memStore(2, false)
	c.memTable[0x92] = memStore(4, false)
	c.memTable[0x9A] = memStore(8, false)
	c.memTable[0xA2] = memStore(12, false)
	c.memTable[0xB2] = memStore(16, false)
	c.memTable[0xC2] = memStore(1, true)
	c.memTable[0xCA] = memStore(2, true)
}

func memBx(c *Core, d *decoded) Fault {
	c.b(d.efa)
	return noFault
}

func memBalx(c *Core, d *decoded) Fault {
	c.R[d.dstC] = c.IP
	c.b(d.efa)
	return noFault
}

func memCallx(c *Core, d *decoded) Fault {
	c.call(d.efa)
	return noFault
}

func memLda(c *Core, d *decoded) Fault {
	c.R[d.dstC] = d.efa
	return noFault
}

// memLoad builds a load handler for widthBytes in {1,2,4,8,12,16} (byte,
// short, word, double, triple, quad), optionally sign-extending byte/
// short loads.
func memLoad(widthBytes uint32, signExt bool) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		switch widthBytes {
		case 1:
			v := uint32(c.Mem.ReadByte(d.efa))
			if signExt {
				v = signExtend(v, 8)
			}
			c.R[d.dstC] = v
		case 2:
			v := uint32(c.Mem.ReadShort(d.efa))
			if signExt {
				v = signExtend(v, 16)
			}
			c.R[d.dstC] = v
		default:
			n := widthBytes / 4
			for i := uint32(0); i < n; i++ {
				c.R[(d.dstC+i)&0x1F] = c.Mem.ReadWord(d.efa + i*4)
			}
		}
		return noFault
	}
}

// memStore builds a store handler mirroring memLoad. Signed byte/short
// stores raise integer overflow when the register's value does not fit
// the narrower width; the truncated value is still written.
func memStore(widthBytes uint32, signed bool) func(*Core, *decoded) Fault {
	return func(c *Core, d *decoded) Fault {
		switch widthBytes {
		case 1:
			v := c.R[d.dstC]
			c.Mem.WriteByte(d.efa, uint8(v))
			if signed && signExtend(v&0xFF, 8) != v {
				c.checkOverflow(true)
				if c.LastFault == FaultIntegerOverflow {
					return FaultIntegerOverflow
				}
			}
		case 2:
			v := c.R[d.dstC]
			c.Mem.WriteShort(d.efa, uint16(v))
			if signed && signExtend(v&0xFFFF, 16) != v {
				c.checkOverflow(true)
				if c.LastFault == FaultIntegerOverflow {
					return FaultIntegerOverflow
				}
			}
		default:
			n := widthBytes / 4
			for i := uint32(0); i < n; i++ {
				c.Mem.WriteWord(d.efa+i*4, c.R[(d.dstC+i)&0x1F])
			}
		}
		return noFault
	}
}
