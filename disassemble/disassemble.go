/*
   i960 - Disassembler

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

// Package disassemble renders i960 instructions as text, mirroring the
// cpu package's decode tables without depending on it: the two packages
// share a specification, not Go types.
package disassemble

import (
	"fmt"
	"strings"
)

// WordReader is the minimal capability the disassembler needs from a
// memory image: little-endian 32-bit word reads.
type WordReader interface {
	ReadWord(addr uint32) uint32
}

// flags bits describing which operands a mnemonic's textual rendering
// uses, per section 4.9. Not every REG mnemonic uses all three of a, b,
// and c: calls uses only a, mark/fmark/flushreg/syncf/intdis/inten use
// none, and the compare/test family (cmpo, chkbit, scanbyte, ...) uses
// a and b but never writes a destination.
const (
	usesA uint32 = 1 << iota
	usesB
	usesC
)

var regNames = [32]string{
	"pfp", "sp", "rip", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	"g0", "g1", "g2", "g3", "g4", "g5", "g6", "g7",
	"g8", "g9", "g10", "g11", "g12", "g13", "lp", "fp",
}

// fpRegName names an FPU-namespace register/literal operand; fp16 and
// fp22 are the literal encodings for 0.0 and 1.0.
func fpRegName(n uint32, isLit bool) string {
	if !isLit {
		return fmt.Sprintf("fp%d", n)
	}
	switch n {
	case 16:
		return "0.0"
	case 22:
		return "1.0"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func operand(n uint32, lit bool, fpu bool) string {
	if fpu {
		return fpRegName(n, lit)
	}
	if lit {
		return fmt.Sprintf("%d", n)
	}
	return regNames[n&0x1F]
}

// ctrlNames maps the 20 CTRL opcode bytes (0x08..0x0B, 0x10..0x1F) to
// their mnemonics, keyed by the full top byte.
var ctrlNames = map[uint32]string{
	0x8: "b", 0x9: "call", 0xA: "ret", 0xB: "bal",
	0x10: "bno", 0x11: "bg", 0x12: "be", 0x13: "bge",
	0x14: "bl", 0x15: "bne", 0x16: "ble", 0x17: "bo",
	0x18: "faultno", 0x19: "faultg", 0x1A: "faulte", 0x1B: "faultge",
	0x1C: "faultl", 0x1D: "faultne", 0x1E: "faultle", 0x1F: "faulto",
}

var cobrNames = map[uint32]string{
	0x20: "testno", 0x21: "testg", 0x22: "teste", 0x23: "testge",
	0x24: "testl", 0x25: "testne", 0x26: "testle", 0x27: "testo",
	0x30: "bbc", 0x31: "cmpobg", 0x32: "cmpobe", 0x33: "cmpobge",
	0x34: "cmpobl", 0x35: "cmpobne", 0x36: "cmpoble", 0x37: "bbs",
	0x38: "cmpibno", 0x39: "cmpibg", 0x3A: "cmpibe", 0x3B: "cmpibge",
	0x3C: "cmpibl", 0x3D: "cmpibne", 0x3E: "cmpible", 0x3F: "cmpibo",
}

// regOpInfo names a REG-format mnemonic and the operand slots its
// textual rendering actually uses.
type regOpInfo struct {
	name  string
	flags uint32
}

var abc = usesA | usesB | usesC
var ab = usesA | usesB
var ac = usesA | usesC

var regInfoByOp = map[uint32]regOpInfo{
	0x580: {"notbit", abc}, 0x581: {"and", abc}, 0x582: {"andnot", abc}, 0x583: {"setbit", abc},
	0x584: {"notand", abc}, 0x586: {"xor", abc}, 0x587: {"or", abc}, 0x588: {"nor", abc},
	0x589: {"xnor", abc}, 0x58A: {"not", abc}, 0x58B: {"ornot", abc}, 0x58C: {"clrbit", abc},
	0x58D: {"notor", abc}, 0x58E: {"nand", abc}, 0x58F: {"alterbit", abc},
	0x590: {"addo", abc}, 0x591: {"addi", abc}, 0x592: {"subo", abc}, 0x593: {"subi", abc},
	0x594: {"cmpob", ab}, 0x595: {"cmpib", ab}, 0x596: {"cmpos", ab}, 0x597: {"cmpis", ab},
	0x598: {"shro", abc}, 0x599: {"shrdi", abc}, 0x59A: {"shri", abc}, 0x59C: {"shlo", abc},
	0x59D: {"rotate", abc}, 0x59E: {"shli", abc},
	0x5A0: {"cmpo", ab}, 0x5A1: {"cmpi", ab}, 0x5A2: {"concmpo", ab}, 0x5A3: {"concmpi", ab},
	0x5AC: {"scanbyte", ab}, 0x5AD: {"bswap", ac}, 0x5AE: {"chkbit", ab},
	0x5B0: {"addc", abc}, 0x5B2: {"subc", abc},
	0x5B4: {"intdis", 0}, 0x5B5: {"inten", 0},
	0x5CC: {"mov", ac}, 0x5D8: {"eshro", abc}, 0x5DC: {"movl", ac}, 0x5EC: {"movt", ac}, 0x5FC: {"movq", ac},
	0x610: {"atmod", abc}, 0x612: {"atadd", abc},
	0x640: {"scanbit", ac}, 0x641: {"spanbit", ac}, 0x645: {"modac", abc},
	0x654: {"modify", abc}, 0x655: {"extract", abc}, 0x65C: {"modtc", abc}, 0x65D: {"modpc", abc},
	0x660: {"calls", usesA}, 0x661: {"mark", 0}, 0x662: {"fmark", 0}, 0x663: {"flushreg", 0}, 0x664: {"syncf", 0},
	0x670: {"emul", abc}, 0x671: {"ediv", abc},
	0x701: {"mulo", abc}, 0x708: {"remo", abc}, 0x70B: {"divo", abc},
	0x741: {"muli", abc}, 0x748: {"remi", abc}, 0x749: {"modi", abc}, 0x74B: {"divi", abc},
}

var memNamesByTop = map[uint32]string{
	0x80: "ldob", 0x82: "stob", 0x84: "bx", 0x85: "balx", 0x86: "callx",
	0x88: "ldos", 0x8A: "stos", 0x8C: "lda",
	0x90: "ld", 0x92: "st", 0x98: "ldl", 0x9A: "stl",
	0xA0: "ldt", 0xA2: "stt", 0xB0: "ldq", 0xB2: "stq",
	0xC0: "ldib", 0xC2: "stib", 0xC8: "ldis", 0xCA: "stis",
}

func classify(word uint32) int {
	top := word >> 24
	switch {
	case top < 0x20:
		return 0 // ctrl
	case top < 0x40:
		return 1 // cobr
	case top < 0x58:
		return 2 // reserved
	case top <= 0x7F:
		return 3 // reg
	default:
		return 4 // mem
	}
}

// Disassemble renders the instruction at addr, returning its text and the
// number of bytes consumed (4, or 8 for MEMB forms carrying a
// displacement word). Unknown or malformed opcodes render as a raw
// ".word" directive rather than erroring.
func Disassemble(mem WordReader, addr uint32) (string, int) {
	word := mem.ReadWord(addr)
	switch classify(word) {
	case 0:
		name, ok := ctrlNames[word>>24]
		if !ok {
			return wordLit(word), 4
		}
		disp := ctrlDisp(word)
		return fmt.Sprintf("%-8s %d", name, disp), 4

	case 1:
		name, ok := cobrNames[word>>24]
		if !ok {
			return wordLit(word), 4
		}
		a := (word >> 19) & 0x1F
		b := (word >> 14) & 0x1F
		lit := (word>>13)&1 != 0
		disp := cobrDisp(word)
		return fmt.Sprintf("%-8s %s,%s,%d", name, operand(a, lit, false), regNames[b], disp), 4

	case 3:
		op := ((word >> 24) << 4) | ((word >> 10) & 0xF)
		info, ok := regInfoByOp[op]
		if !ok {
			return wordLit(word), 4
		}
		c := (word >> 19) & 0x1F
		litA := (word>>18)&1 != 0
		litB := (word>>17)&1 != 0
		a := word & 0x1F
		b := (word >> 5) & 0x1F
		var operands []string
		if info.flags&usesA != 0 {
			operands = append(operands, operand(a, litA, false))
		}
		if info.flags&usesB != 0 {
			operands = append(operands, operand(b, litB, false))
		}
		if info.flags&usesC != 0 {
			operands = append(operands, regNames[c&0x1F])
		}
		if len(operands) == 0 {
			return info.name, 4
		}
		return fmt.Sprintf("%-8s %s", info.name, strings.Join(operands, ",")), 4

	case 4:
		name, ok := memNamesByTop[word>>24]
		if !ok {
			return wordLit(word), 4
		}
		d := (word >> 19) & 0x1F
		hasExtra := (word>>12)&1 != 0 && memExtraMode((word>>10)&0xF)
		if hasExtra {
			word2 := mem.ReadWord(addr + 4)
			return fmt.Sprintf("%-8s %s, 0x%x", name, regNames[d], word2), 8
		}
		return fmt.Sprintf("%-8s %s", name, regNames[d]), 4

	default:
		return wordLit(word), 4
	}
}

func memExtraMode(mode uint32) bool {
	switch mode {
	case 0x5, 0xC, 0xD, 0xE, 0xF:
		return true
	default:
		return false
	}
}

func wordLit(word uint32) string {
	return fmt.Sprintf(".word 0x%08x", word)
}

func ctrlDisp(word uint32) int32 {
	raw := word & 0x00FFFFFC
	if raw&0x00800000 != 0 {
		raw |= 0xFF000000
	}
	return int32(raw)
}

func cobrDisp(word uint32) int32 {
	raw := int32(word & 0x00001FFC)
	if raw&0x00001000 != 0 {
		raw |= ^int32(0x00001FFF)
	}
	return raw
}
