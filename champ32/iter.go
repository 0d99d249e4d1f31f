package champ32

import (
	"github.com/lleo/go-champ-functional/key"
)

// Iteration yields every live entry exactly once: for each node, first the
// records in its entries array in packed order, then each child in its
// children array in packed order, depth first. Collision leaves yield
// their records in list order. Beyond "every entry exactly once" the order
// is unspecified and callers must not rely on it across versions.

type iterFrame struct {
	node *innerNode
	ent  int
	chld int
}

// Iter is a lazy iterator over a Map. It holds at most one frame per Trie
// level; a Map mutation never disturbs a live Iter, since the Trie it
// walks is immutable.
type Iter struct {
	stack []iterFrame
	coll  []key.KeyVal
	ci    int
}

// Iter returns a new iterator positioned before the first entry.
func (m Map) Iter() *Iter {
	var it = new(Iter)
	it.stack = make([]iterFrame, 0, MaxDepth+1)
	it.stack = append(it.stack, iterFrame{node: m.rootNode()})
	return it
}

// Next returns the next key/val record, and false once the Map is
// exhausted.
func (it *Iter) Next() (key.KeyVal, bool) {
	if it.coll != nil {
		var kv = it.coll[it.ci]
		it.ci++
		if it.ci == len(it.coll) {
			it.coll = nil
			it.ci = 0
		}
		return kv, true
	}

	for len(it.stack) > 0 {
		var top = &it.stack[len(it.stack)-1]

		if top.ent < len(top.node.entries.content) {
			var kv = top.node.entries.content[top.ent]
			top.ent++
			return kv, true
		}

		if top.chld < len(top.node.children.content) {
			var child = top.node.children.content[top.chld]
			top.chld++

			switch cn := child.(type) {
			case *innerNode:
				it.stack = append(it.stack, iterFrame{node: cn})
			case *collisionLeaf:
				// a collision leaf holds at least two records
				it.coll = cn.kvs
				it.ci = 1
				return cn.kvs[0], true
			}
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
	}

	return key.KeyVal{}, false
}

// Range calls f for every key/val entry in the Map, stopping early if f
// returns false.
func (m Map) Range(f func(k key.Key, v interface{}) bool) {
	m.rootNode().visit(f)
}

// All returns the Map's entries in a form directly usable by a for range
// statement.
func (m Map) All() func(yield func(k key.Key, v interface{}) bool) {
	return func(yield func(k key.Key, v interface{}) bool) {
		m.rootNode().visit(yield)
	}
}

func (n *innerNode) visit(f func(k key.Key, v interface{}) bool) bool {
	for _, kv := range n.entries.content {
		if !f(kv.Key, kv.Val) {
			return false
		}
	}

	for _, child := range n.children.content {
		switch cn := child.(type) {
		case *innerNode:
			if !cn.visit(f) {
				return false
			}
		case *collisionLeaf:
			for _, kv := range cn.kvs {
				if !f(kv.Key, kv.Val) {
					return false
				}
			}
		}
	}

	return true
}
