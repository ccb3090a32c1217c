package memory

import "testing"

func TestWordRoundTrip(t *testing.T) {
	m := New(4096)
	m.WriteWord(0x100, 0x12345678)
	if v := m.ReadWord(0x100); v != 0x12345678 {
		t.Fatalf("got %08x", v)
	}
}

func TestByteEndianness(t *testing.T) {
	m := New(4096)
	m.WriteWord(0x200, 0xAABBCCDD)
	if b := m.ReadByte(0x200); b != 0xDD {
		t.Fatalf("low byte got %02x", b)
	}
	if b := m.ReadByte(0x203); b != 0xAA {
		t.Fatalf("high byte got %02x", b)
	}
}

func TestShortRoundTrip(t *testing.T) {
	m := New(4096)
	m.WriteShort(0x10, 0xBEEF)
	if v := m.ReadShort(0x10); v != 0xBEEF {
		t.Fatalf("got %04x", v)
	}
}

func TestOutOfRangeReadsZero(t *testing.T) {
	m := New(16)
	if v := m.ReadWord(0x1000); v != 0 {
		t.Fatalf("expected 0, got %08x", v)
	}
}

func TestOutOfRangeWriteIgnored(t *testing.T) {
	m := New(16)
	m.WriteWord(0x1000, 0xffffffff) // must not panic
}

func TestSetSize(t *testing.T) {
	m := New(16)
	m.SetSize(1024)
	if m.Size() != 1024 {
		t.Fatalf("expected 1024, got %d", m.Size())
	}
}

func TestLockUnlock(t *testing.T) {
	m := New(16)
	m.Lock()
	m.Unlock()
}
