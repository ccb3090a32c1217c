package configparser

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MemSize == 0 {
		t.Fatal("default MemSize must be non-zero")
	}
	if !cfg.IntdisSetsBit {
		t.Fatal("default IntdisSetsBit should match this core's intdis convention")
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	src := `
# comment line
memsize 256K
iconaddr 0x1000
calltablebase 0x2000
intdissetsbit false
trace true
`
	cfg, err := parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MemSize != 256*1024 {
		t.Errorf("MemSize = %d, want %d", cfg.MemSize, 256*1024)
	}
	if cfg.ICONAddr != 0x1000 {
		t.Errorf("ICONAddr = %#x, want 0x1000", cfg.ICONAddr)
	}
	if cfg.CallTableBase != 0x2000 {
		t.Errorf("CallTableBase = %#x, want 0x2000", cfg.CallTableBase)
	}
	if cfg.IntdisSetsBit {
		t.Error("IntdisSetsBit should have been overridden to false")
	}
	if !cfg.TraceEnable {
		t.Error("TraceEnable should have been overridden to true")
	}
}

func TestParseUnknownKey(t *testing.T) {
	_, err := parse(strings.NewReader("bogus 1"))
	if err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestParseBlankAndCommentLinesIgnored(t *testing.T) {
	cfg, err := parse(strings.NewReader("\n  # just a comment\n\nmemsize 4M\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MemSize != 4*1024*1024 {
		t.Errorf("MemSize = %d, want %d", cfg.MemSize, 4*1024*1024)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/such/path.cfg"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
