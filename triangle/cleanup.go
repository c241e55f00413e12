// SPDX-License-Identifier: MIT

package triangle

import "github.com/katalvlaran/lossdev/ndarray"

// cleanup re-masks t against its own structural mask and turns every 0 into
// NaN, so cells outside the triangle shape read as absent after + and -.
func cleanup(t *Triangle) (*Triangle, error) {
	mask := ndarray.NaNToZero(t.NaNTriangle())
	v, err := ndarray.Apply2(t.values, mask, ndarray.MulFunc)
	if err != nil {
		return nil, err
	}

	return t.withValues(ndarray.ZeroToNaN(v)), nil
}
