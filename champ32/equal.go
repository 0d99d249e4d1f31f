package champ32

import (
	"log"
)

// Equal reports whether the two Maps hold the same keys bound to the same
// values, comparing values with Go's ==. Values stored in either Map must
// be comparable types; use Equiv to supply your own predicate otherwise.
func (m Map) Equal(other Map) bool {
	return m.Equiv(other, func(a, b interface{}) bool { return a == b })
}

// Equiv reports whether the two Maps hold the same keys, with values
// pairwise related by veq.
//
// Because a deletion always contracts a node left holding a single lone
// entry, two Maps holding the same key set have identical shape no matter
// what insert/remove history produced them. Equiv exploits that: it walks
// the two Tries in lock-step, pair by pair, and only inside collision
// leaves, whose internal order is not canonical, does it fall back to a
// symmetric set comparison.
func (m Map) Equiv(other Map, veq func(a, b interface{}) bool) bool {
	if m.nentries != other.nentries {
		return false
	}
	return equivNode(m.rootNode(), other.rootNode(), veq)
}

func equivNode(a, b nodeI, veq func(a, b interface{}) bool) bool {
	switch an := a.(type) {
	case *innerNode:
		var bn, ok = b.(*innerNode)
		if !ok {
			return false
		}

		if an.children.bitmap != bn.children.bitmap ||
			an.entries.bitmap != bn.entries.bitmap {
			return false
		}

		for i, akv := range an.entries.content {
			var bkv = bn.entries.content[i]
			if !akv.Key.Equals(bkv.Key) || !veq(akv.Val, bkv.Val) {
				return false
			}
		}

		for i, ac := range an.children.content {
			if !equivNode(ac, bn.children.content[i], veq) {
				return false
			}
		}

		return true

	case *collisionLeaf:
		var bl, ok = b.(*collisionLeaf)
		if !ok {
			return false
		}

		if len(an.kvs) != len(bl.kvs) {
			return false
		}

		// keys within a leaf are distinct, so matching every record of a
		// into b by key is a full symmetric difference check.
		for _, akv := range an.kvs {
			var bv, found = bl.get(akv.Key)
			if !found || !veq(akv.Val, bv) {
				return false
			}
		}

		return true
	}

	log.Panicf("SHOULD NOT BE REACHED: equivNode: unknown node type %T", a)
	return false
}
