package segtrie

// Node is one segment position in the tree. Handlers are opaque
// values; nil means the slot is empty.
type Node struct {
	handler         any
	wildcardHandler any

	static  map[string]*Node
	dynamic *dynamicChild
}

// dynamicChild is the single capturing child of a node.
type dynamicChild struct {
	node  *Node
	param string
}

func newNode(handler any) *Node {
	return &Node{handler: handler}
}

// Handler returns the handler bound to an exact match at this node.
func (n *Node) Handler() any {
	return n.handler
}

// SetHandler binds h to an exact match at this node. A nil h clears it.
func (n *Node) SetHandler(h any) {
	n.handler = h
}

// WildcardHandler returns the handler that matches this node and
// everything below it.
func (n *Node) WildcardHandler() any {
	return n.wildcardHandler
}

// SetWildcardHandler binds h to this node and the remainder of any
// path that reaches it. Lookups stop descending once they reach a
// node with a wildcard handler.
func (n *Node) SetWildcardHandler(h any) {
	n.wildcardHandler = h
}

func (n *Node) DeleteWildcardHandler() {
	n.wildcardHandler = nil
}

// AddStaticChild creates a child for the literal segment, replacing
// any child already stored under it.
func (n *Node) AddStaticChild(segment string, handler any) *Node {
	if n.static == nil {
		n.static = make(map[string]*Node)
	}
	child := newNode(handler)
	n.static[segment] = child
	return child
}

func (n *Node) StaticChild(segment string) (*Node, bool) {
	child, ok := n.static[segment]
	return child, ok
}

func (n *Node) HasStaticChild(segment string) bool {
	_, ok := n.static[segment]
	return ok
}

// DeleteStaticChild detaches the child stored under segment and
// returns it.
func (n *Node) DeleteStaticChild(segment string) (*Node, bool) {
	child, ok := n.static[segment]
	if ok {
		delete(n.static, segment)
	}
	return child, ok
}

// SetDynamicChild replaces the capturing child. The previous child and
// its entire subtree are dropped.
func (n *Node) SetDynamicChild(param string, handler any) *Node {
	child := newNode(handler)
	n.dynamic = &dynamicChild{node: child, param: param}
	return child
}

// DynamicChild returns the capturing child and the parameter name it
// binds.
func (n *Node) DynamicChild() (*Node, string, bool) {
	if n.dynamic == nil {
		return nil, "", false
	}
	return n.dynamic.node, n.dynamic.param, true
}

func (n *Node) HasDynamicChild() bool {
	return n.dynamic != nil
}

func (n *Node) DeleteDynamicChild() {
	n.dynamic = nil
}

// child resolves a concrete segment. Static children win; the dynamic
// child is only tried when no literal matches and never binds an empty
// segment. param is empty and captured is false for static matches.
func (n *Node) child(segment string) (next *Node, param string, captured bool, ok bool) {
	if c, found := n.static[segment]; found {
		return c, "", false, true
	}
	if n.dynamic != nil && segment != "" {
		return n.dynamic.node, n.dynamic.param, true, true
	}
	return nil, "", false, false
}

