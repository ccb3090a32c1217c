package disassemble

import (
	"strings"
	"testing"
)

type fakeMem map[uint32]uint32

func (m fakeMem) ReadWord(addr uint32) uint32 { return m[addr] }

func encReg(op, dstC, regA, regB uint32, litA, litB bool) uint32 {
	word := (op >> 4 << 24) | ((op & 0xF) << 10) | (dstC << 19) | (regB << 5) | regA
	if litA {
		word |= 1 << 18
	}
	if litB {
		word |= 1 << 17
	}
	return word
}

func encCtrl(topByte uint32, disp int32) uint32 {
	return (topByte << 24) | (uint32(disp) & 0x00FFFFFC)
}

func encCobr(topByte uint32, regA, regB uint32, disp int32) uint32 {
	return (topByte << 24) | (regA << 19) | (regB << 14) | (uint32(disp) & 0x00001FFC)
}

func TestDisassembleCtrlBranch(t *testing.T) {
	mem := fakeMem{0: encCtrl(0x09, 0x40)} // call +0x40
	text, size := Disassemble(mem, 0)
	if size != 4 {
		t.Fatalf("size = %d, want 4", size)
	}
	if !strings.HasPrefix(text, "call") || !strings.Contains(text, "64") {
		t.Fatalf("text = %q, want call with disp 64", text)
	}
}

func TestDisassembleCobrCompare(t *testing.T) {
	mem := fakeMem{0: encCobr(0x3C, 3, 4, 0x20)} // cmpibl r3,r4,+0x20
	text, _ := Disassemble(mem, 0)
	if !strings.HasPrefix(text, "cmpibl") {
		t.Fatalf("text = %q, want cmpibl prefix", text)
	}
	if !strings.Contains(text, "r3") || !strings.Contains(text, "r4") {
		t.Fatalf("text = %q, want operands r3,r4", text)
	}
}

func TestDisassembleRegAnd(t *testing.T) {
	mem := fakeMem{0: encReg(0x581, 6, 4, 5, false, false)} // and r4,r5,r6
	text, size := Disassemble(mem, 0)
	if size != 4 {
		t.Fatalf("size = %d, want 4", size)
	}
	if !strings.HasPrefix(text, "and") {
		t.Fatalf("text = %q, want and prefix", text)
	}
	if !strings.Contains(text, "r4") || !strings.Contains(text, "r5") || !strings.Contains(text, "r6") {
		t.Fatalf("text = %q, want operands r4,r5,r6", text)
	}
}

func TestDisassembleRegLiteralOperand(t *testing.T) {
	mem := fakeMem{0: encReg(0x591, 6, 7, 5, true, false)} // addi 7,r5,r6
	text, _ := Disassemble(mem, 0)
	if !strings.Contains(text, "7,") {
		t.Fatalf("text = %q, want literal operand 7", text)
	}
}

func TestDisassembleMemSimple(t *testing.T) {
	// ldob mode 0 (no displacement word): top=0x80, mode bits (word>>10)&0xF = 0
	word := uint32(0x80<<24) | (6 << 19)
	mem := fakeMem{0: word}
	text, size := Disassemble(mem, 0)
	if size != 4 {
		t.Fatalf("size = %d, want 4", size)
	}
	if !strings.HasPrefix(text, "ldob") {
		t.Fatalf("text = %q, want ldob prefix", text)
	}
}

func TestDisassembleMemWithDisplacement(t *testing.T) {
	// mode 0x5 (IP-relative) requires the extra displacement word and sets
	// the extra-word-present bit (bit 12).
	word := uint32(0x80<<24) | (6 << 19) | (1 << 12) | (0x5 << 10)
	mem := fakeMem{0: word, 4: 0x1000}
	text, size := Disassemble(mem, 0)
	if size != 8 {
		t.Fatalf("size = %d, want 8 (consumes displacement word)", size)
	}
	if !strings.Contains(text, "0x1000") {
		t.Fatalf("text = %q, want displacement 0x1000", text)
	}
}

func TestDisassembleRegOneOperand(t *testing.T) {
	mem := fakeMem{0: encReg(0x660, 15, 9, 20, false, false)} // calls r9 (b, c unused)
	text, _ := Disassemble(mem, 0)
	if !strings.HasPrefix(text, "calls") {
		t.Fatalf("text = %q, want calls prefix", text)
	}
	if !strings.Contains(text, "r9") {
		t.Fatalf("text = %q, want operand r9", text)
	}
	if strings.Contains(text, ",") {
		t.Fatalf("text = %q, calls takes a single operand, want no comma", text)
	}
}

func TestDisassembleRegZeroOperand(t *testing.T) {
	mem := fakeMem{0: encReg(0x661, 15, 9, 20, false, false)} // mark: no operands at all
	text, _ := Disassemble(mem, 0)
	if text != "mark" {
		t.Fatalf("text = %q, want bare mnemonic mark", text)
	}
}

func TestDisassembleRegTwoOperandNoDestination(t *testing.T) {
	mem := fakeMem{0: encReg(0x5A0, 20, 3, 4, false, false)} // cmpo r3,r4 (c is not a real destination)
	text, _ := Disassemble(mem, 0)
	if !strings.HasPrefix(text, "cmpo") {
		t.Fatalf("text = %q, want cmpo prefix", text)
	}
	if !strings.Contains(text, "r3") || !strings.Contains(text, "r4") {
		t.Fatalf("text = %q, want operands r3,r4", text)
	}
	if strings.Contains(text, "g4") {
		t.Fatalf("text = %q, cmpo has no destination operand, got a fabricated g4", text)
	}
}

func TestDisassembleUnknownOpcodeFallsBackToWordLiteral(t *testing.T) {
	mem := fakeMem{0: 0x58001400} // REG opcode 0x585, a filler row not named in the disassembler's table
	text, size := Disassemble(mem, 0)
	if size != 4 {
		t.Fatalf("size = %d, want 4", size)
	}
	if !strings.HasPrefix(text, ".word") {
		t.Fatalf("text = %q, want .word fallback", text)
	}
}

func TestDisassembleReservedTopByteFallsBack(t *testing.T) {
	mem := fakeMem{0: 0x50000000} // top byte 0x50 lies in the reserved 0x40..0x57 gap between COBR and REG
	text, _ := Disassemble(mem, 0)
	if !strings.HasPrefix(text, ".word") {
		t.Fatalf("text = %q, want .word fallback for reserved range", text)
	}
}

func TestCtrlDispSignExtension(t *testing.T) {
	neg := encCtrl(0x08, -0x100)
	disp := ctrlDisp(neg)
	if disp != -0x100 {
		t.Fatalf("ctrlDisp = %d, want -256", disp)
	}
}

func TestCobrDispSignExtension(t *testing.T) {
	neg := encCobr(0x30, 1, 2, -0x20)
	disp := cobrDisp(neg)
	if disp != -0x20 {
		t.Fatalf("cobrDisp = %d, want -32", disp)
	}
}
