/*
   i960 - Condition code and compare engine

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

// setCC replaces the condition-code field of AC, preserving every other
// control bit.
func (c *Core) setCC(cc uint32) {
	c.AC = modify(c.AC, cc, acCCMask)
}

func (c *Core) cc() uint32 {
	return c.AC & acCCMask
}

// cmp sets the condition code from an ordinary signed or unsigned compare.
func (c *Core) cmp(a, b uint32, signed bool) {
	var less, greater bool
	if signed {
		less = int32(a) < int32(b)
		greater = int32(a) > int32(b)
	} else {
		less = a < b
		greater = a > b
	}
	switch {
	case less:
		c.setCC(ccLess)
	case greater:
		c.setCC(ccGreater)
	default:
		c.setCC(ccEqual)
	}
}

// concmp implements the "consecutive compare" range-check idiom: it only
// refines the code when the prior compare reported "not less".
func (c *Core) concmp(a, b uint32, signed bool) {
	if (c.cc() & ccLess) != 0 {
		return
	}
	var le bool
	if signed {
		le = int32(a) <= int32(b)
	} else {
		le = a <= b
	}
	if le {
		c.setCC(ccEqual)
	} else {
		c.setCC(ccGreater)
	}
}

// checkCond evaluates a COBR/CTRL condition field (the low 3 bits of the
// opcode byte) against the current condition code. cc==0 tests the "no"
// group (true iff AC condition == 0); non-zero cc tests for bit overlap.
func (c *Core) checkCond(cc uint32) bool {
	if cc == 0 {
		return c.cc() == 0
	}
	return (cc & c.cc()) != 0
}
