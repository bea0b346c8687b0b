// Package render pretty-prints expression trees against a registry.
package render

import (
	"fmt"
	"strconv"

	"github.com/EverettGrethel/dynexpr/pkg/expr"
	"github.com/EverettGrethel/dynexpr/pkg/ops"
)

// The safe_* operators render under their mathematical names.
var opRewrites = map[string]string{
	"safe_log":   "log",
	"safe_log2":  "log2",
	"safe_log10": "log10",
	"safe_log1p": "log1p",
	"safe_acosh": "acosh",
	"safe_sqrt":  "sqrt",
	"safe_pow":   "^",
}

var infixOps = map[string]bool{
	"+": true,
	"-": true,
	"*": true,
	"/": true,
	"^": true,
}

// Render returns the tree in standard infix form for the arithmetic
// operators and prefix name(args) form otherwise. Variables render as
// "xK", or as varNames[K-1] when a name table is supplied.
func Render[T any](n *expr.Node[T], set *ops.Set[T], varNames []string) string {
	switch n.Degree {
	case 0:
		if n.Constant {
			return formatValue(n.Val)
		}
		if n.Feature >= 1 && n.Feature <= len(varNames) {
			return varNames[n.Feature-1]
		}
		return fmt.Sprintf("x%d", n.Feature)
	case 1:
		name := opName(set.Unary(n.Op).Name)
		return name + "(" + Render(n.Left, set, varNames) + ")"
	default:
		name := opName(set.Binary(n.Op).Name)
		left := Render(n.Left, set, varNames)
		right := Render(n.Right, set, varNames)
		if infixOps[name] {
			return "(" + left + " " + name + " " + right + ")"
		}
		return name + "(" + left + ", " + right + ")"
	}
}

func opName(name string) string {
	if rw, ok := opRewrites[name]; ok {
		return rw
	}
	return name
}

// formatValue renders a constant in its natural textual form. Non-real
// element types are parenthesized to keep the output unambiguous.
func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	default:
		return "(" + fmt.Sprint(x) + ")"
	}
}
