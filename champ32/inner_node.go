package champ32

import (
	"fmt"
	"log"
	"strings"

	"github.com/lleo/go-champ-functional/key"
)

// innerNode is the interior node of the Trie. It spans two independent
// sparse arrays over the same 32 slot index space:
//
//   - children holds sub-nodes (innerNode or collisionLeaf) for slots
//     where two or more keys diverge deeper down.
//   - entries holds single key/val records directly, for slots where
//     exactly one key has landed so far.
//
// For any slot at most one of the two arrays is populated. Keeping lone
// keys in entries at whatever depth they first diverge, rather than
// growing a chain of single-slot tables down to their full hash, is what
// keeps the Trie shallow and allocation light.
type innerNode struct {
	children sparseArray[nodeI]
	entries  sparseArray[key.KeyVal]
}

// emptyInnerNode is the root of every empty Map. It is shared; nothing
// ever mutates it.
var emptyInnerNode = new(innerNode)

// index extracts the 5 bit slot index for the level whose shard starts at
// bit position shift.
func index(h32 uint32, shift uint) uint {
	return uint((h32 >> shift) & IndexMask)
}

// find walks the Trie for k, stripping Nbits of hash per level. It returns
// the stored value and whether k was found.
func (n *innerNode) find(h32 uint32, k key.Key) (interface{}, bool) {
	var curNode = n
	var shift uint

	for {
		var idx = index(h32, shift)
		var nodeBit = uint32(1) << idx

		if curNode.children.bitmap&nodeBit != 0 {
			var child nodeI
			if curNode.children.bitmap == fullBitmap {
				// every slot populated; packed order is logical order
				child = curNode.children.content[idx]
			} else {
				child = curNode.children.content[curNode.children.packedIndex(idx)]
			}

			switch cn := child.(type) {
			case *innerNode:
				curNode = cn
				shift += Nbits
				continue
			case *collisionLeaf:
				return cn.get(k)
			default:
				log.Panicf("SHOULD NOT BE REACHED: find: unknown child type %T", child)
			}
		}

		if ekv, found := curNode.entries.get(idx); found {
			if ekv.Key.Equals(k) {
				return ekv.Val, true
			}
			return nil, false
		}

		return nil, false
	}
}

// put stores kv below this node, rebuilding the single path from this node
// down. It returns the rebuilt node and whether kv's key was added(true)
// or an existing record's value replaced(false). Sub-trees off the path
// are aliased, never copied.
func (n *innerNode) put(h32 uint32, shift uint, kv key.KeyVal) (*innerNode, bool) {
	var idx = index(h32, shift)
	var nodeBit = uint32(1) << idx

	if n.children.bitmap&nodeBit != 0 {
		var i = n.children.packedIndex(idx)

		var nn = new(innerNode)
		nn.entries = n.entries

		switch child := n.children.content[i].(type) {
		case *innerNode:
			var newChild, added = child.put(h32, shift+Nbits, kv)
			nn.children = n.children.replaceAt(i, newChild)
			return nn, added
		case *collisionLeaf:
			var newLeaf, added = child.put(kv)
			nn.children = n.children.replaceAt(i, newLeaf)
			return nn, added
		default:
			log.Panicf("SHOULD NOT BE REACHED: put: unknown child type %T", child)
			return nil, false
		}
	}

	if ekv, found := n.entries.get(idx); found {
		if ekv.Key.Equals(kv.Key) {
			var nn = new(innerNode)
			nn.children = n.children
			nn.entries = n.entries.set(idx, kv)
			return nn, false
		}

		// two distinct keys landed on the same slot; push both one or
		// more levels down and rebind the slot from entries to children.
		var sub = mergeEntries(ekv, kv, h32, shift+Nbits)
		var nn = new(innerNode)
		nn.children = n.children.set(idx, sub)
		nn.entries = n.entries.unset(idx)
		return nn, true
	}

	var nn = new(innerNode)
	nn.children = n.children
	nn.entries = n.entries.set(idx, kv)
	return nn, true
}

// mergeEntries resolves the collision between an existing record ekv and a
// new record nkv whose hashes agree on every shard above shift. It returns
// the sub-node to bind at the slot the two collided on:
//
//   - no hash bits left to discriminate by (shift >= MaxShift): a
//     collisionLeaf of the two,
//   - their shards at shift differ: one fresh innerNode holding both as
//     entries,
//   - shards still equal: recurse one level down and wrap the result in a
//     single-child innerNode.
//
// The shift >= MaxShift case is what keeps collision leaves legal only at
// the deepest level: a leaf hangs below a chain that has consumed all 32
// hash bits, so every key that can reach it shares its full hash.
func mergeEntries(ekv key.KeyVal, nkv key.KeyVal, nh32 uint32, shift uint) nodeI {
	var eh32 = ekv.Key.Hash32()

	if shift >= MaxShift {
		return newCollisionLeaf([]key.KeyVal{ekv, nkv})
	}

	var eIdx = index(eh32, shift)
	var nIdx = index(nh32, shift)

	if eIdx != nIdx {
		var nn = new(innerNode)
		nn.entries = pairSparseArray(eIdx, ekv, nIdx, nkv)
		return nn
	}

	var sub = mergeEntries(ekv, nkv, nh32, shift+Nbits)
	var nn = new(innerNode)
	nn.children = singletonSparseArray(eIdx, sub)
	return nn
}

// del removes k below this node. first is true only for the root call;
// the root is exempt from contraction. The returned subNodeChange tells
// the caller how to rebuild its slot, and the key.KeyVal return carries
// the promoted record on the preserveSingleValue path.
func (n *innerNode) del(h32 uint32, shift uint, k key.Key, first bool) (subNodeChange, nodeI, key.KeyVal, bool) {
	var idx = index(h32, shift)
	var nodeBit = uint32(1) << idx

	if n.children.bitmap&nodeBit != 0 {
		var i = n.children.packedIndex(idx)

		var change subNodeChange
		var repl nodeI
		var pkv key.KeyVal
		var removed bool

		switch child := n.children.content[i].(type) {
		case *innerNode:
			change, repl, pkv, removed = child.del(h32, shift+Nbits, k, false)
		case *collisionLeaf:
			change, repl, pkv, removed = child.del(k)
		default:
			log.Panicf("SHOULD NOT BE REACHED: del: unknown child type %T", child)
		}

		if change == noChange {
			if removed {
				log.Panicf("SHOULD NOT BE REACHED: del: noChange with removed=true")
			}
			return noChange, nil, key.KeyVal{}, false
		}

		var newChildren = n.children
		var newEntries = n.entries

		switch change {
		case newChildNode:
			newChildren = n.children.replaceAt(i, repl)
		case removeChildNode:
			newChildren = n.children.unset(idx)
		case preserveSingleValue:
			newChildren = n.children.unset(idx)
			newEntries = n.entries.set(idx, pkv)
		}

		return contract(newChildren, newEntries, first, removed)
	}

	if ekv, found := n.entries.get(idx); found {
		if !ekv.Key.Equals(k) {
			return noChange, nil, key.KeyVal{}, false
		}
		return contract(n.children, n.entries.unset(idx), first, true)
	}

	return noChange, nil, key.KeyVal{}, false
}

// contract evaluates the minimality invariant for a just rebuilt node: no
// node below the root may survive holding a single entry and no children.
// Such a node dissolves into a preserveSingleValue so the parent binds the
// record directly; a node left with nothing at all dissolves into a
// removeChildNode.
func contract(children sparseArray[nodeI], entries sparseArray[key.KeyVal], first bool, removed bool) (subNodeChange, nodeI, key.KeyVal, bool) {
	if children.nentries() == 0 {
		if entries.nentries() == 0 {
			return removeChildNode, nil, key.KeyVal{}, removed
		}
		if !first && entries.nentries() == 1 {
			return preserveSingleValue, nil, entries.content[0], removed
		}
	}

	var nn = new(innerNode)
	nn.children = children
	nn.entries = entries
	return newChildNode, nn, key.KeyVal{}, removed
}

// String() is required for nodeI
func (n *innerNode) String() string {
	return fmt.Sprintf("innerNode{children: %d, entries: %d}",
		n.children.nentries(), n.entries.nentries())
}

// LongString() is required for nodeI
func (n *innerNode) LongString(indent string, depth uint) string {
	var strs []string

	strs = append(strs, indent+fmt.Sprintf(
		"innerNode{depth=%d, childMap=%s, entryMap=%s,",
		depth, bitmapString(n.children.bitmap), bitmapString(n.entries.bitmap)))

	for i, kv := range n.entries.content {
		strs = append(strs, indent+halfIndent+
			fmt.Sprintf("entries[%d]: %s", i, kv))
	}

	for i, child := range n.children.content {
		strs = append(strs, indent+halfIndent+
			fmt.Sprintf("children[%d]:", i))
		strs = append(strs, child.LongString(indent+fullIndent, depth+1))
	}

	strs = append(strs, indent+"}")

	return strings.Join(strs, "\n")
}
