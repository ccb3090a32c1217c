package cpu

import (
	"testing"

	"github.com/i960dev/i960emu/memory"
)

// recordingFaults collects every fault reported during a test.
type recordingFaults struct {
	faults []Fault
}

func (r *recordingFaults) Report(f Fault) {
	r.faults = append(r.faults, f)
}

func newTestCore(t *testing.T) (*Core, *recordingFaults) {
	t.Helper()
	mem := memory.New(64 * 1024)
	fr := &recordingFaults{}
	c := New(mem, fr, nil, Options{IntdisSetsBit: true})
	return c, fr
}

// encReg builds a REG-format instruction word for the 12-bit opcode op,
// mirroring regOpcode/decodeReg's bit layout.
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

// encCtrl builds a CTRL-format instruction word: topByte carries the
// opcode (its low 3 bits double as the condition field), disp is the
// signed word-aligned displacement.
func encCtrl(topByte uint32, disp int32) uint32 {
	return (topByte << 24) | (uint32(disp) & 0x00FFFFFC)
}

// encCobr builds a COBR-format instruction word.
func encCobr(topByte uint32, regA, regB uint32, m1 bool, disp int32) uint32 {
	word := (topByte << 24) | (regA << 19) | (regB << 14) | (uint32(disp) & 0x00001FFC)
	if m1 {
		word |= 1 << 13
	}
	return word
}

func TestAddiOverflowFaultsByDefault(t *testing.T) {
	c, fr := newTestCore(t)
	c.R[4] = 0x7FFFFFFF
	c.R[5] = 1
	c.Mem.WriteWord(0, encReg(0x591, 6, 4, 5, false, false))
	f := c.Step()
	if f != FaultIntegerOverflow {
		t.Fatalf("Step() = %v, want FaultIntegerOverflow", f)
	}
	if len(fr.faults) != 1 || fr.faults[0] != FaultIntegerOverflow {
		t.Fatalf("fault reporter got %v", fr.faults)
	}
	if c.R[6] != 0x80000000 {
		t.Fatalf("r6 = %#x, want 0x80000000", c.R[6])
	}
}

func TestAddiOverflowMaskedSetsStickyFlag(t *testing.T) {
	c, fr := newTestCore(t)
	c.AC |= acOverflowMk
	c.R[4] = 0x7FFFFFFF
	c.R[5] = 1
	c.Mem.WriteWord(0, encReg(0x591, 6, 4, 5, false, false))
	f := c.Step()
	if f != noFault {
		t.Fatalf("Step() = %v, want no fault (masked)", f)
	}
	if len(fr.faults) != 0 {
		t.Fatalf("fault reporter should not have been called, got %v", fr.faults)
	}
	if c.AC&acOverflow == 0 {
		t.Fatal("AC overflow sticky bit not set")
	}
	if c.R[6] != 0x80000000 {
		t.Fatalf("r6 = %#x, want 0x80000000", c.R[6])
	}
}

func TestCmpiblTaken(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[3] = 5
	c.R[4] = 7
	c.Mem.WriteWord(0, encCobr(0x3C, 3, 4, false, 0x40))
	preIP := c.IP
	c.Step()
	if c.cc() != ccLess {
		t.Fatalf("cc = %d, want %d", c.cc(), ccLess)
	}
	if c.IP != preIP+0x40 {
		t.Fatalf("ip = %#x, want %#x", c.IP, preIP+0x40)
	}
}

func TestAtmod(t *testing.T) {
	c, _ := newTestCore(t)
	c.Mem.WriteWord(0x2000, 0xAAAAAAAA)
	c.R[3] = 0x2000
	c.R[4] = 0x0F0F0F0F
	c.R[5] = 0x12345678
	c.Mem.WriteWord(0, encReg(0x610, 5, 3, 4, false, false))
	c.Step()
	if got := c.Mem.ReadWord(0x2000); got != 0xA2A4A6A8 {
		t.Fatalf("memory[0x2000] = %#x, want 0xA2A4A6A8", got)
	}
	if c.R[5] != 0xAAAAAAAA {
		t.Fatalf("r5 = %#x, want old value 0xAAAAAAAA", c.R[5])
	}
}

func TestCallRetRoundTrip(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[regSP] = 0x1040
	c.R[regFP] = 0x1000
	for i := 3; i <= 15; i++ {
		c.R[i] = uint32(0x9000 + i)
	}
	c.Mem.WriteWord(0, encCtrl(0x09, 0x100)) // call +0x100
	c.Step()

	if c.R[regFP] != 0x1040 {
		t.Fatalf("after call FP = %#x, want 0x1040", c.R[regFP])
	}
	if c.R[regSP] != 0x1080 {
		t.Fatalf("after call SP = %#x, want 0x1080", c.R[regSP])
	}
	// call captured the pre-branch pc+4 into rip (and saved it into the
	// register window) before transferring control to the call target;
	// ret must restore ip to that address, not to the call target itself.
	retAddr := uint32(4)

	// Mutate the registers as the callee would, then return.
	savedR3 := c.R[3]
	c.R[3] = 0xDEADBEEF

	c.Mem.WriteWord(c.IP, encCtrl(0x0A, 0)) // ret
	c.Step()

	if c.IP != retAddr {
		t.Fatalf("after ret ip = %#x, want %#x", c.IP, retAddr)
	}
	if c.R[regFP] != 0x1000 {
		t.Fatalf("after ret FP = %#x, want 0x1000", c.R[regFP])
	}
	if c.R[regSP] != 0x1040 {
		t.Fatalf("after ret SP = %#x, want 0x1040", c.R[regSP])
	}
	if c.R[3] != savedR3 {
		t.Fatalf("after ret r3 = %#x, want restored %#x", c.R[3], savedR3)
	}
}

func TestShliOverflow(t *testing.T) {
	c, fr := newTestCore(t)
	c.R[4] = 0x40000000
	c.R[5] = 1
	c.Mem.WriteWord(0, encReg(0x59E, 6, 5, 4, false, false))
	f := c.Step()
	if f != FaultIntegerOverflow {
		t.Fatalf("Step() = %v, want FaultIntegerOverflow", f)
	}
	if len(fr.faults) != 1 {
		t.Fatalf("fault reporter got %v", fr.faults)
	}
	if c.R[6] != 0x80000000 {
		t.Fatalf("r6 = %#x, want 0x80000000", c.R[6])
	}
}

func TestBbsTaken(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[3] = 5
	c.R[4] = 0x00000020
	c.Mem.WriteWord(0, encCobr(0x37, 3, 4, false, -0x10))
	preIP := c.IP
	c.Step()
	if c.cc() != ccEqual {
		t.Fatalf("cc = %d, want %d", c.cc(), ccEqual)
	}
	if c.IP != preIP-0x10 {
		t.Fatalf("ip = %#x, want %#x", c.IP, preIP-0x10)
	}
}

func TestConditionCodeAlwaysValid(t *testing.T) {
	c, _ := newTestCore(t)
	valid := map[uint32]bool{ccUnordered: true, ccGreater: true, ccEqual: true, ccLess: true}
	pairs := []struct{ a, b uint32 }{
		{0, 0}, {1, 0}, {0, 1}, {0x7FFFFFFF, 0x80000000}, {0x80000000, 0x80000000},
	}
	for _, signed := range []bool{false, true} {
		for _, p := range pairs {
			c.cmp(p.a, p.b, signed)
			if !valid[c.cc()] {
				t.Fatalf("cmp(%#x,%#x,signed=%v): cc() = %d is not in {0,1,2,4}", p.a, p.b, signed, c.cc())
			}
		}
	}
}

func TestBswapRoundTrip(t *testing.T) {
	for _, x := range []uint32{0, 1, 0x12345678, 0xFFFFFFFF, 0x80000001} {
		if got := bswap32(bswap32(x)); got != x {
			t.Fatalf("bswap(bswap(%#x)) = %#x", x, got)
		}
	}
}

func TestSetbitClrbitNotbitIdentities(t *testing.T) {
	c, _ := newTestCore(t)
	x := uint32(0x0000FF00)
	pos := uint32(5)

	c.R[1], c.R[2] = pos, x
	c.Mem.WriteWord(0, encReg(0x58C, 3, 1, 2, false, false)) // clrbit(pos, x) -> r3
	c.Step()
	cleared := c.R[3]

	c.R[1], c.R[2] = pos, cleared
	c.Mem.WriteWord(4, encReg(0x583, 3, 1, 2, false, false)) // setbit(pos, cleared) -> r3
	c.Step()
	if got, want := c.R[3], x|bitMask(pos); got != want {
		t.Fatalf("setbit(clrbit(x,pos),pos) = %#x, want %#x", got, want)
	}

	c.R[1], c.R[2] = pos, x
	c.Mem.WriteWord(8, encReg(0x580, 3, 1, 2, false, false)) // notbit(pos, x) -> r3
	c.Step()
	once := c.R[3]
	c.R[1], c.R[2] = pos, once
	c.Mem.WriteWord(12, encReg(0x580, 3, 1, 2, false, false)) // notbit again
	c.Step()
	if c.R[3] != x {
		t.Fatalf("notbit(notbit(x,p),p) = %#x, want %#x", c.R[3], x)
	}
}

func TestChkbit(t *testing.T) {
	c, _ := newTestCore(t)
	pos := uint32(3)
	b := bitMask(pos)
	c.R[1], c.R[2] = pos, b
	c.Mem.WriteWord(0, encReg(0x5AE, 3, 1, 2, false, false))
	c.Step()
	if c.cc() != ccEqual {
		t.Fatalf("chkbit on set bit: cc = %d, want %d", c.cc(), ccEqual)
	}

	c.R[1], c.R[2] = pos, 0
	c.Mem.WriteWord(4, encReg(0x5AE, 3, 1, 2, false, false))
	c.Step()
	if c.cc() != ccUnordered {
		t.Fatalf("chkbit on clear bit: cc = %d, want %d", c.cc(), ccUnordered)
	}
}

func TestDiviRemiIdentity(t *testing.T) {
	c, _ := newTestCore(t)
	cases := []struct{ a, b int32 }{
		{7, 2}, {-7, 2}, {7, -2}, {-7, -2}, {1, 1}, {0, 5},
	}
	for _, tc := range cases {
		c.R[1] = uint32(tc.b) // divisor (src1/a)
		c.R[2] = uint32(tc.a) // dividend (src2/b)
		c.Mem.WriteWord(0, encReg(0x74B, 3, 1, 2, false, false)) // divi -> r3
		c.IP = 0
		c.Step()
		quot := int32(c.R[3])

		c.R[1] = uint32(tc.b)
		c.R[2] = uint32(tc.a)
		c.Mem.WriteWord(0, encReg(0x748, 4, 1, 2, false, false)) // remi -> r4
		c.IP = 0
		c.Step()
		rem := int32(c.R[4])

		if got := quot*tc.b + rem; got != tc.a {
			t.Fatalf("a=%d b=%d: (a/b)*b+(a%%b) = %d, want %d", tc.a, tc.b, got, tc.a)
		}
	}
}

func TestCmpoExactlyOneBitSet(t *testing.T) {
	c, _ := newTestCore(t)
	cases := []struct{ a, b uint32 }{{1, 2}, {2, 1}, {5, 5}}
	for _, tc := range cases {
		c.R[1], c.R[2] = tc.a, tc.b
		c.Mem.WriteWord(0, encReg(0x5A0, 3, 1, 2, false, false))
		c.IP = 0
		c.Step()
		cc := c.cc()
		bits := 0
		for _, bit := range []uint32{ccLess, ccEqual, ccGreater} {
			if cc&bit != 0 {
				bits++
			}
		}
		if bits != 1 {
			t.Fatalf("cmpo(%d,%d): cc=%d has %d bits set, want exactly 1", tc.a, tc.b, cc, bits)
		}
	}
}

func TestConcmpRangeCheckIdiom(t *testing.T) {
	c, _ := newTestCore(t)
	lo, x, hi := uint32(1), uint32(5), uint32(10)

	// In-range: cmp(x, lo) finds x >= lo (not less), so concmp(x, hi)
	// refines the code to whether x <= hi.
	c.cmp(x, lo, false)
	c.concmp(x, hi, false)
	if c.cc() != ccEqual {
		t.Fatalf("concmp in-range: cc = %d, want %d", c.cc(), ccEqual)
	}

	// Above the range: cmp(x, lo) still finds x >= lo, but x > hi, so
	// concmp reports greater.
	above := uint32(20)
	c.cmp(above, lo, false)
	c.concmp(above, hi, false)
	if c.cc() != ccGreater {
		t.Fatalf("concmp above range: cc = %d, want %d", c.cc(), ccGreater)
	}

	// Below the range: cmp(x, lo) finds x < lo and sets ccLess; concmp
	// must leave that code alone rather than consult hi at all.
	below := uint32(0)
	c.cmp(below, lo, false)
	c.concmp(below, hi, false)
	if c.cc() != ccLess {
		t.Fatalf("concmp below range should preserve ccLess, cc = %d", c.cc())
	}
}

func TestInvalidOpcodeFaults(t *testing.T) {
	c, fr := newTestCore(t)
	c.Mem.WriteWord(0, 0x60000000) // REG opcode 0x600 is unassigned
	f := c.Step()
	if f != FaultInvalidOpcode {
		t.Fatalf("Step() = %v, want FaultInvalidOpcode", f)
	}
	if len(fr.faults) != 1 {
		t.Fatalf("fault reporter got %v", fr.faults)
	}
}

func TestDivideByZeroLeavesDestinationUnmodified(t *testing.T) {
	c, fr := newTestCore(t)
	c.R[3] = 0xAAAAAAAA
	c.R[1], c.R[2] = 0, 7 // divisor 0, dividend 7
	c.Mem.WriteWord(0, encReg(0x70B, 3, 1, 2, false, false)) // divo
	f := c.Step()
	if f != FaultDivideByZero {
		t.Fatalf("Step() = %v, want FaultDivideByZero", f)
	}
	if len(fr.faults) != 1 || fr.faults[0] != FaultDivideByZero {
		t.Fatalf("fault reporter got %v", fr.faults)
	}
	if c.R[3] != 0xAAAAAAAA {
		t.Fatalf("r3 = %#x, destination should be left unmodified", c.R[3])
	}
}

func TestIntdisSetsConfiguredICONBit(t *testing.T) {
	mem := memory.New(64 * 1024)
	fr := &recordingFaults{}
	c := New(mem, fr, nil, Options{ICONAddr: 0x3000, IntdisSetsBit: true})
	c.PC |= pcExecMode // supervisor mode required
	c.Mem.WriteWord(0, encReg(0x5B4, 0, 0, 0, false, false)) // intdis
	c.Step()
	if got := c.Mem.ReadWord(0x3000); got&bitMask(icGIE) == 0 {
		t.Fatalf("ICON word = %#x, want GIE bit set at the configured address", got)
	}
}

func TestIntdisSetsBitFalseInvertsPolarity(t *testing.T) {
	mem := memory.New(64 * 1024)
	fr := &recordingFaults{}
	c := New(mem, fr, nil, Options{ICONAddr: 0x3000, IntdisSetsBit: false})
	c.PC |= pcExecMode
	c.Mem.WriteWord(0x3000, bitMask(icGIE)) // start with GIE set
	c.Mem.WriteWord(0, encReg(0x5B4, 0, 0, 0, false, false)) // intdis
	c.Step()
	if got := c.Mem.ReadWord(0x3000); got&bitMask(icGIE) != 0 {
		t.Fatalf("ICON word = %#x, want GIE bit cleared when IntdisSetsBit is false", got)
	}
}

func TestShrdiRoundsTowardZero(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[5] = 0xFFFFFFF9 // -7
	c.Mem.WriteWord(0, encReg(0x599, 6, 1, 5, true, false)) // shrdi 1,r5,r6
	c.Step()
	if c.R[6] != 0xFFFFFFFD { // -3, not the round-toward-minus-infinity -4
		t.Fatalf("r6 = %#x, want 0xfffffffd (-3)", c.R[6])
	}
}

func TestShrdiExactShiftDoesNotRound(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[5] = 0xFFFFFFF8 // -8, divides evenly by 2
	c.Mem.WriteWord(0, encReg(0x599, 6, 1, 5, true, false)) // shrdi 1,r5,r6
	c.Step()
	if c.R[6] != 0xFFFFFFFC { // -4, exact, no rounding adjustment
		t.Fatalf("r6 = %#x, want 0xfffffffc (-4)", c.R[6])
	}
}

func TestMovRegisterMode(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[5] = 0x1234
	c.Mem.WriteWord(0, encReg(0x5CC, 10, 5, 0, false, false)) // mov r5,r10
	c.Step()
	if c.R[10] != 0x1234 {
		t.Fatalf("r10 = %#x, want 0x1234", c.R[10])
	}
}

func TestMovLiteralModeHonorsLitA(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[5] = 0xDEADBEEF // must not be read: a names a literal here, not a register
	c.Mem.WriteWord(0, encReg(0x5CC, 10, 5, 0, true, false)) // mov 5,r10
	c.Step()
	if c.R[10] != 5 {
		t.Fatalf("r10 = %#x, want literal 5, not r5's contents", c.R[10])
	}
}

func TestMovlRegisterGroup(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[4], c.R[5] = 0xAAAA, 0xBBBB
	c.Mem.WriteWord(0, encReg(0x5DC, 8, 4, 0, false, false)) // movl r4,r8
	c.Step()
	if c.R[8] != 0xAAAA || c.R[9] != 0xBBBB {
		t.Fatalf("r8,r9 = %#x,%#x, want 0xaaaa,0xbbbb", c.R[8], c.R[9])
	}
}

func TestMovlLiteralModeClearsRestOfGroup(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[9] = 0xFFFFFFFF
	c.Mem.WriteWord(0, encReg(0x5DC, 8, 7, 0, true, false)) // movl 7,r8
	c.Step()
	if c.R[8] != 7 {
		t.Fatalf("r8 = %#x, want literal 7", c.R[8])
	}
	if c.R[9] != 0 {
		t.Fatalf("r9 = %#x, want 0 (cleared, a literal has no second word)", c.R[9])
	}
}

func TestMovqRegisterGroup(t *testing.T) {
	c, _ := newTestCore(t)
	c.R[4], c.R[5], c.R[6], c.R[7] = 1, 2, 3, 4
	c.Mem.WriteWord(0, encReg(0x5FC, 12, 4, 0, false, false)) // movq r4,r12
	c.Step()
	if c.R[12] != 1 || c.R[13] != 2 || c.R[14] != 3 || c.R[15] != 4 {
		t.Fatalf("r12..r15 = %d,%d,%d,%d, want 1,2,3,4", c.R[12], c.R[13], c.R[14], c.R[15])
	}
}
