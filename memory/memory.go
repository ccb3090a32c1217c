/*
   i960 - Flat memory, byte/short/word access

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

// Package memory implements the flat 32-bit byte-addressed store the core
// consumes through the Interface capability: byte, short and word read and
// write, plus the advisory lock pair used to fence atomic read-modify-write.
package memory

import "sync"

const (
	// DefaultSize is the size New allocates when asked for zero bytes.
	DefaultSize = 1 * 1024 * 1024

	// MaxSize bounds how large a flat image this package will allocate.
	MaxSize = 64 * 1024 * 1024
)

// Interface is the capability the core requires of a memory subsystem.
// Byte and short accesses are little-endian, matching the i960.
type Interface interface {
	ReadByte(addr uint32) uint8
	WriteByte(addr uint32, value uint8)
	ReadShort(addr uint32) uint16
	WriteShort(addr uint32, value uint16)
	ReadWord(addr uint32) uint32
	WriteWord(addr uint32, value uint32)
	Lock()
	Unlock()
}

// Memory is the default flat implementation of Interface.
type Memory struct {
	mem []byte
	mu  sync.Mutex
}

// New allocates a flat memory of the given size in bytes.
func New(size uint32) *Memory {
	if size == 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return &Memory{mem: make([]byte, size)}
}

// Size returns the number of bytes in the image.
func (m *Memory) Size() uint32 {
	return uint32(len(m.mem))
}

// SetSize reallocates the image to hold size bytes of storage. Existing
// content is discarded, matching the teacher's MEMSIZE config option
// semantics of sizing memory before a program is loaded.
func (m *Memory) SetSize(size uint32) {
	if size > MaxSize {
		size = MaxSize
	}
	m.mem = make([]byte, size)
}

func (m *Memory) inRange(addr uint32) bool {
	return addr < uint32(len(m.mem))
}

// ReadByte returns 0 for an out-of-range address; the core has no MMU
// fault path in this spec, so out-of-range reads behave as unmapped zero.
func (m *Memory) ReadByte(addr uint32) uint8 {
	if !m.inRange(addr) {
		return 0
	}
	return m.mem[addr]
}

func (m *Memory) WriteByte(addr uint32, value uint8) {
	if !m.inRange(addr) {
		return
	}
	m.mem[addr] = value
}

func (m *Memory) ReadShort(addr uint32) uint16 {
	if !m.inRange(addr + 1) {
		return 0
	}
	return uint16(m.mem[addr]) | uint16(m.mem[addr+1])<<8
}

func (m *Memory) WriteShort(addr uint32, value uint16) {
	if !m.inRange(addr + 1) {
		return
	}
	m.mem[addr] = uint8(value)
	m.mem[addr+1] = uint8(value >> 8)
}

func (m *Memory) ReadWord(addr uint32) uint32 {
	if !m.inRange(addr + 3) {
		return 0
	}
	return uint32(m.mem[addr]) | uint32(m.mem[addr+1])<<8 |
		uint32(m.mem[addr+2])<<16 | uint32(m.mem[addr+3])<<24
}

func (m *Memory) WriteWord(addr uint32, value uint32) {
	if !m.inRange(addr + 3) {
		return
	}
	m.mem[addr] = uint8(value)
	m.mem[addr+1] = uint8(value >> 8)
	m.mem[addr+2] = uint8(value >> 16)
	m.mem[addr+3] = uint8(value >> 24)
}

// Lock fences an atomic read-modify-write against other emulated masters
// sharing this memory image. A single-processor host pays an uncontended
// mutex acquisition; the guarantee only matters once more than one core
// targets the same Memory.
func (m *Memory) Lock() {
	m.mu.Lock()
}

func (m *Memory) Unlock() {
	m.mu.Unlock()
}
