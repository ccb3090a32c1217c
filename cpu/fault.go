/*
   i960 - Fault engine

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

// checkOverflow raises an integer-overflow fault (or sets the sticky flag,
// per the AC mask policy) when ovf is true. The instruction's destination
// write still happens; only division withholds its write on a fault.
func (c *Core) checkOverflow(ovf bool) {
	if ovf {
		c.raise(FaultIntegerOverflow)
	}
}

// requireSupervisor reports whether the running mode allows a
// supervisor-only operation to proceed. On failure it raises a
// type-mismatch fault and the caller must not mutate any state.
func (c *Core) requireSupervisor() bool {
	if c.supervisor() {
		return true
	}
	c.raise(FaultTypeMismatch)
	return false
}
