package spade

import "golang.org/x/exp/constraints"

func clamp[F constraints.Float](x, min, max F) F {
	if x < min {
		return min
	} else if x > max {
		return max
	}
	return x
}
