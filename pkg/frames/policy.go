package frames

// OverflowPolicy fits the extents of pinned children into a container when
// no unpinned child is left to absorb the difference: either the pinned
// children alone exceed the container, or every child is pinned.
//
// Fit receives the pinned extents in spatial order and the container extent
// and returns new extents, one per input, that sum exactly to total.
type OverflowPolicy interface {
	Fit(extents []int, total int) []int
}

// OverflowPolicyFunc adapts a function to OverflowPolicy.
type OverflowPolicyFunc func(extents []int, total int) []int

// Fit calls f.
func (f OverflowPolicyFunc) Fit(extents []int, total int) []int { return f(extents, total) }

var (
	// Proportional scales every pinned extent by the same factor. Rounding
	// leftovers go one pixel each to the first children in spatial order.
	Proportional OverflowPolicy = OverflowPolicyFunc(fitProportional)

	// Priority keeps the extents of the first children in spatial order and
	// takes space from the last ones. When growing, the last child absorbs
	// the surplus.
	Priority OverflowPolicy = OverflowPolicyFunc(fitPriority)
)

func fitProportional(extents []int, total int) []int {
	out := make([]int, len(extents))
	if len(extents) == 0 {
		return out
	}
	total = max(total, 0)
	var sum int64
	for _, e := range extents {
		sum += int64(max(e, 0))
	}
	if sum == 0 {
		return divide(total, len(extents))
	}
	used := 0
	for i, e := range extents {
		out[i] = int(int64(max(e, 0)) * int64(total) / sum)
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % len(out) {
		out[i]++
		used++
	}
	return out
}

func fitPriority(extents []int, total int) []int {
	out := make([]int, len(extents))
	if len(extents) == 0 {
		return out
	}
	left := max(total, 0)
	for i, e := range extents {
		out[i] = min(max(e, 0), left)
		left -= out[i]
	}
	out[len(out)-1] += left
	return out
}

// divide splits total into n integer parts differing by at most one; the
// first total%n parts get the extra pixel.
func divide(total, n int) []int {
	out := make([]int, n)
	if n == 0 {
		return out
	}
	total = max(total, 0)
	base, rem := total/n, total%n
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
