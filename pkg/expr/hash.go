package expr

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"math"
)

// Leaf tags keep a constant of value 3 and a reference to feature 3
// from hashing alike.
const (
	tagConst  = 0x1
	tagVar    = 0x2
	tagUnary  = 0x3
	tagBinary = 0x4
)

// Equal reports structural equality: same degree, same constant or
// feature or value where applicable, same operator index, and equal
// children in left-before-right order.
func Equal[T comparable](a, b *Node[T]) bool {
	if a.Degree != b.Degree {
		return false
	}
	switch a.Degree {
	case 0:
		if a.Constant != b.Constant {
			return false
		}
		if a.Constant {
			return a.Val == b.Val
		}
		return a.Feature == b.Feature
	case 1:
		return a.Op == b.Op && Equal(a.Left, b.Left)
	default:
		return a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	}
}

// Hash returns a structural hash of the tree. Equal trees hash
// identically.
func Hash[T any](n *Node[T]) uint64 {
	h := fnv.New64a()
	hashNode(n, h)
	return h.Sum64()
}

func hashNode[T any](n *Node[T], w io.Writer) {
	var buf [9]byte
	switch n.Degree {
	case 0:
		if n.Constant {
			buf[0] = tagConst
			w.Write(buf[:1])
			hashVal(n.Val, w)
			return
		}
		buf[0] = tagVar
		binary.LittleEndian.PutUint64(buf[1:], uint64(n.Feature))
		w.Write(buf[:])
	case 1:
		buf[0] = tagUnary
		binary.LittleEndian.PutUint64(buf[1:], uint64(n.Op))
		w.Write(buf[:])
		hashNode(n.Left, w)
	default:
		buf[0] = tagBinary
		binary.LittleEndian.PutUint64(buf[1:], uint64(n.Op))
		w.Write(buf[:])
		hashNode(n.Left, w)
		hashNode(n.Right, w)
	}
}

// hashVal hashes a constant value. Floats hash by bit pattern with
// negative zero normalized, so values that compare equal hash equal.
func hashVal(v any, w io.Writer) {
	switch x := v.(type) {
	case float64:
		if x == 0 {
			x = 0
		}
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
		w.Write(b[:])
	case float32:
		if x == 0 {
			x = 0
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(x))
		w.Write(b[:])
	default:
		fmt.Fprintf(w, "%v", v)
	}
}
