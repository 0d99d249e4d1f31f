package champ32

import (
	"log"

	"github.com/lleo/go-champ-functional/key"
)

// NewFromSeq builds a Map holding every record of the given sequence. When
// the same key occurs more than once the last record wins. The result is
// exactly what folding Put over the sequence from New() would return; the
// difference is allocation.
//
// Every node the build allocates is unreachable from any published Map
// until NewFromSeq returns, so the build may grow the nodes' content
// slices in place instead of path copying on every record. The returned
// Map is fully immutable.
func NewFromSeq(kvs []key.KeyVal) Map {
	var root = new(innerNode)
	var nentries uint

	for _, kv := range kvs {
		if root.putMut(kv.Key.Hash32(), 0, kv) {
			nentries++
		}
	}

	if nentries == 0 {
		return Map{root: emptyInnerNode}
	}

	return Map{root: root, nentries: nentries}
}

// putMut is the transient counterpart of put. The receiver and everything
// below it were allocated by the running NewFromSeq call, so the single
// path keyed by the hash is updated in place and nothing is copied.
func (n *innerNode) putMut(h32 uint32, shift uint, kv key.KeyVal) bool {
	var idx = index(h32, shift)
	var nodeBit = uint32(1) << idx

	if n.children.bitmap&nodeBit != 0 {
		var i = n.children.packedIndex(idx)

		switch child := n.children.content[i].(type) {
		case *innerNode:
			return child.putMut(h32, shift+Nbits, kv)
		case *collisionLeaf:
			return child.putMut(kv)
		default:
			log.Panicf("SHOULD NOT BE REACHED: putMut: unknown child type %T", child)
			return false
		}
	}

	if ekv, found := n.entries.get(idx); found {
		if ekv.Key.Equals(kv.Key) {
			n.entries.setMut(idx, kv)
			return false
		}

		var sub = mergeEntries(ekv, kv, h32, shift+Nbits)
		n.entries = n.entries.unset(idx)
		n.children.setMut(idx, sub)
		return true
	}

	n.entries.setMut(idx, kv)
	return true
}
