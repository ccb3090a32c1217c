/*
   i960 - Bit and arithmetic primitives

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

// bitSelect returns the single bit of x at pos mod 32, as 0 or 1.
func bitSelect(x uint32, pos uint32) uint32 {
	return (x >> (pos & 31)) & 1
}

// bitMask returns a word with only bit (pos mod 32) set.
func bitMask(pos uint32) uint32 {
	return 1 << (pos & 31)
}

// extract returns the low count bits of x shifted right by pos mod 32.
// When count >= 32 the full shifted value is returned.
func extract(x, pos, count uint32) uint32 {
	v := x >> (pos & 31)
	if count >= 32 {
		return v
	}
	return v & ((uint32(1) << count) - 1)
}

// modify deposits the bits of mask from new into old, leaving the rest
// of old untouched.
func modify(old, newVal, mask uint32) uint32 {
	return (old &^ mask) | (newVal & mask)
}

// add returns x+y and the unsigned carry out.
func add(x, y uint32) (uint32, bool) {
	r := x + y
	return r, r < x
}

// adc is add with an incoming carry.
func adc(x, y uint32, cin bool) (uint32, bool) {
	r, c1 := add(x, y)
	if cin {
		var c2 bool
		r, c2 = add(r, 1)
		return r, c1 || c2
	}
	return r, c1
}

// sub returns x-y and the unsigned borrow out.
func sub(x, y uint32) (uint32, bool) {
	return x - y, y > x
}

// sbb is sub with an incoming borrow.
func sbb(x, y uint32, bin bool) (uint32, bool) {
	r, b1 := sub(x, y)
	if bin {
		var b2 bool
		r, b2 = sub(r, 1)
		return r, b1 || b2
	}
	return r, b1
}

// addOverflow reports whether x+y=r overflowed as a signed 32-bit add.
func addOverflow(x, y, r uint32) bool {
	return int32(^(x^y)&(x^r)) < 0
}

// subOverflow reports whether x-y=r overflowed as a signed 32-bit subtract.
func subOverflow(x, y, r uint32) bool {
	return int32((x^y)&(x^r)) < 0
}
