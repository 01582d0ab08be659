package blurhash

// ReducedScale maps one image axis and its requested component count to a
// cheaper working size and component count. Large axes are sampled at a
// fraction of their size with fewer components:
//
//	size        working size   components
//	≤ 300       size           c
//	≤ 400       size/2         c/2
//	≤ 800       size/3         c/2
//	≤ 1000      size/3         c/3
//	≤ 3000      size/5         c/4
//	> 3000      size/10        1
//
// Neither result drops below 1 and the size never grows.
func ReducedScale(size, components int) (int, int) {
	switch {
	case size <= 300:
		return size, components
	case size <= 400:
		return max1(size / 2), max1(components / 2)
	case size <= 800:
		return max1(size / 3), max1(components / 2)
	case size <= 1000:
		return max1(size / 3), max1(components / 3)
	case size <= 3000:
		return max1(size / 5), max1(components / 4)
	default:
		return max1(size / 10), 1
	}
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
