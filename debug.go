package segtrie

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"sort"
	"strings"
)

// funcName returns a friendly name for a handler value. Functions are
// named after their symbol, anonymous ones are reported as such.
func funcName(h any) string {
	switch v := h.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", v)
	case fmt.Stringer:
		return v.String()
	}

	v := reflect.ValueOf(h)
	if v.Kind() != reflect.Func {
		return fmt.Sprintf("%T", h)
	}

	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "unknown"
	}

	fullName := fn.Name()

	// trim package path to keep only the name.
	if idx := strings.LastIndex(fullName, "."); idx != -1 {
		fullName = fullName[idx+1:]
	}

	if strings.HasPrefix(fullName, "func") {
		return "anonymous"
	}

	return fullName
}

// Print writes an indented dump of the tree to w. Static children are
// listed in lexical order before the parameter child.
func (t *Tree) Print(w io.Writer) {
	fmt.Fprintf(w, "%s%s\n", t.pathSeparator, describeSlots(t.root))
	t.printChildren(w, t.root, 1)
}

func (t *Tree) String() string {
	var b strings.Builder
	t.Print(&b)
	return b.String()
}

func (t *Tree) printChildren(w io.Writer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)

	keys := make([]string, 0, len(n.static))
	for k := range n.static {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		child := n.static[k]
		fmt.Fprintf(w, "%s%s%s\n", indent, k, describeSlots(child))
		t.printChildren(w, child, depth+1)
	}

	if n.dynamic != nil {
		fmt.Fprintf(w, "%s%s%s%s\n", indent, t.paramPrefix, n.dynamic.param, describeSlots(n.dynamic.node))
		t.printChildren(w, n.dynamic.node, depth+1)
	}
}

func describeSlots(n *Node) string {
	var b strings.Builder
	if n.handler != nil {
		b.WriteString(" => ")
		b.WriteString(funcName(n.handler))
	}
	if n.wildcardHandler != nil {
		b.WriteString(" [*] => ")
		b.WriteString(funcName(n.wildcardHandler))
	}
	return b.String()
}
