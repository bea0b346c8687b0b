// Package eval evaluates expression trees column-wise over tabular
// numeric input. The fast path dispatches on the shape of the tree near
// its root so that common small patterns run as fused loops without
// intermediate buffers.
package eval

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// Eval evaluates tree against x, an F-row matrix whose rows are the
// features and whose columns are the samples. It returns a vector with
// one element per column and a completeness flag: false means a
// non-finite value (NaN or ±Inf) was encountered and the output must
// not be relied upon.
//
// x must have at least as many rows as the largest feature index in
// the tree. The result vector is freshly allocated on every call.
func Eval[T constraints.Float](tree *expr.Node[T], x [][]T, set *ops.Set[T]) ([]T, bool) {
	if !expr.ContainsVar(tree) {
		out := make([]T, ncols(x))
		v, ok := EvalScalar(tree, set)
		if !ok {
			return out, false
		}
		fill(out, v)
		return out, true
	}
	out, ok := evalTree(tree, x, set)
	if !ok {
		return out, false
	}
	return out, allFinite(out)
}

func evalTree[T constraints.Float](t *expr.Node[T], x [][]T, set *ops.Set[T]) ([]T, bool) {
	switch t.Degree {
	case 0:
		return evalLeaf(t, x), true
	case 1:
		return evalUnary(t, x, set)
	default:
		return evalBinary(t, x, set)
	}
}

// evalLeaf materializes a leaf: a broadcast constant or a copy of the
// feature row. The copy matters — parents apply operators in place
// over the returned buffer.
func evalLeaf[T constraints.Float](t *expr.Node[T], x [][]T) []T {
	if t.Constant {
		out := make([]T, ncols(x))
		fill(out, t.Val)
		return out
	}
	row := x[t.Feature-1]
	out := make([]T, len(row))
	copy(out, row)
	return out
}

func evalUnary[T constraints.Float](t *expr.Node[T], x [][]T, set *ops.Set[T]) ([]T, bool) {
	g := set.Unary(t.Op).Fn
	child := t.Left

	// Fused g(f(leaf)).
	if child.Degree == 1 && child.Left.Degree == 0 {
		return unaryUnaryLeaf(g, set.Unary(child.Op).Fn, child.Left, x)
	}
	// Fused g(h(leaf, leaf)).
	if child.Degree == 2 && child.Left.Degree == 0 && child.Right.Degree == 0 {
		return unaryBinaryLeaves(g, set.Binary(child.Op).Fn, child.Left, child.Right, x)
	}

	buf, ok := evalTree(child, x, set)
	if !ok {
		return buf, false
	}
	for j := range buf {
		buf[j] = clampInf(g(buf[j]))
	}
	return buf, true
}

func unaryUnaryLeaf[T constraints.Float](g, f func(T) T, leaf *expr.Node[T], x [][]T) ([]T, bool) {
	out := make([]T, ncols(x))
	if leaf.Constant {
		v := f(leaf.Val)
		if !finite(v) {
			return out, false
		}
		w := g(v)
		if !finite(w) {
			return out, false
		}
		fill(out, w)
		return out, true
	}
	row := x[leaf.Feature-1]
	for j := range out {
		out[j] = clampInf(g(f(row[j])))
	}
	return out, true
}

func unaryBinaryLeaves[T constraints.Float](g func(T) T, h func(T, T) T, a, b *expr.Node[T], x [][]T) ([]T, bool) {
	out := make([]T, ncols(x))
	switch {
	case a.Constant && b.Constant:
		v := h(a.Val, b.Val)
		if !finite(v) {
			return out, false
		}
		w := g(v)
		if !finite(w) {
			return out, false
		}
		fill(out, w)
	case a.Constant:
		av := a.Val
		if !finite(av) {
			return out, false
		}
		row := x[b.Feature-1]
		for j := range out {
			out[j] = clampInf(g(h(av, row[j])))
		}
	case b.Constant:
		bv := b.Val
		if !finite(bv) {
			return out, false
		}
		row := x[a.Feature-1]
		for j := range out {
			out[j] = clampInf(g(h(row[j], bv)))
		}
	default:
		ra := x[a.Feature-1]
		rb := x[b.Feature-1]
		for j := range out {
			out[j] = clampInf(g(h(ra[j], rb[j])))
		}
	}
	return out, true
}

func evalBinary[T constraints.Float](t *expr.Node[T], x [][]T, set *ops.Set[T]) ([]T, bool) {
	h := set.Binary(t.Op).Fn
	l, r := t.Left, t.Right

	switch {
	case l.Degree == 0 && r.Degree == 0:
		return binaryLeaves(h, l, r, x)

	case l.Degree == 0:
		buf, ok := evalTree(r, x, set)
		if !ok {
			return buf, false
		}
		if l.Constant {
			lv := l.Val
			if !finite(lv) {
				return buf, false
			}
			for j := range buf {
				buf[j] = clampInf(h(lv, buf[j]))
			}
		} else {
			row := x[l.Feature-1]
			for j := range buf {
				buf[j] = clampInf(h(row[j], buf[j]))
			}
		}
		return buf, true

	case r.Degree == 0:
		buf, ok := evalTree(l, x, set)
		if !ok {
			return buf, false
		}
		if r.Constant {
			rv := r.Val
			if !finite(rv) {
				return buf, false
			}
			for j := range buf {
				buf[j] = clampInf(h(buf[j], rv))
			}
		} else {
			row := x[r.Feature-1]
			for j := range buf {
				buf[j] = clampInf(h(buf[j], row[j]))
			}
		}
		return buf, true

	default:
		lbuf, ok := evalTree(l, x, set)
		if !ok {
			return lbuf, false
		}
		rbuf, ok := evalTree(r, x, set)
		if !ok {
			return rbuf, false
		}
		for j := range lbuf {
			lbuf[j] = clampInf(h(lbuf[j], rbuf[j]))
		}
		return lbuf, true
	}
}

func binaryLeaves[T constraints.Float](h func(T, T) T, a, b *expr.Node[T], x [][]T) ([]T, bool) {
	out := make([]T, ncols(x))
	switch {
	case a.Constant && b.Constant:
		v := h(a.Val, b.Val)
		if !finite(v) {
			return out, false
		}
		fill(out, v)
	case a.Constant:
		av := a.Val
		if !finite(av) {
			return out, false
		}
		row := x[b.Feature-1]
		for j := range out {
			out[j] = clampInf(h(av, row[j]))
		}
	case b.Constant:
		bv := b.Val
		if !finite(bv) {
			return out, false
		}
		row := x[a.Feature-1]
		for j := range out {
			out[j] = clampInf(h(row[j], bv))
		}
	default:
		ra := x[a.Feature-1]
		rb := x[b.Feature-1]
		for j := range out {
			out[j] = clampInf(h(ra[j], rb[j]))
		}
	}
	return out, true
}

func ncols[T any](x [][]T) int {
	if len(x) == 0 {
		return 0
	}
	return len(x[0])
}

func fill[T any](out []T, v T) {
	for j := range out {
		out[j] = v
	}
}

func finite[T constraints.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// clampInf normalizes a non-finite element to +Inf. The inner loops do
// not carry a completeness flag; the output scan at the end of Eval
// reports the failure instead.
func clampInf[T constraints.Float](v T) T {
	if !finite(v) {
		return T(math.Inf(1))
	}
	return v
}

func allFinite[T constraints.Float](out []T) bool {
	for _, v := range out {
		if !finite(v) {
			return false
		}
	}
	return true
}
