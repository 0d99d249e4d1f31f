/*
Package champ32 implements a functional Hash Array Mapped Trie with a
Compressed Hash Array Mapped Prefix tree (CHAMP) node layout. The term
functional is used to imply immutable and persistent: every mutating
operation returns a new Map value, and the old Map keeps yielding exactly
what it did before. The two Maps share every sub-tree off the rebuilt
path.

The key to the datastructure is the key, which is any type implementing
the key.Key interface from "github.com/lleo/go-champ-functional/key". The
32 bits of hash a key supplies are split into seven values (six of 5 bits
and a final one of 2 bits) that constitute the hash path of the key in the
Trie, consumed from the least significant end. As few levels as possible are used: a key is stored as a
direct entry of the first node where its hash path diverges from every
other key's, and interior nodes only grow below a slot when two distinct
keys land on it.

If two or more keys collide across all 32 hash bits, they share a special
collision leaf at the seventh level of the Trie, where key.Equals does the
discriminating.

A published Map is never modified, so it may be read from any number of
goroutines with no synchronization.
*/
package champ32

import (
	"fmt"
	"log"

	"github.com/lleo/go-champ-functional/key"
)

// Nbits constant is the number of bits(5) a 32 bit hash value is split
// into to provide the slot indexes of the Trie.
const Nbits uint = 5

// TableCapacity constant is the number of slots in each node of the Trie;
// its value is 1<<Nbits (ie 2^5 == 32).
const TableCapacity uint = 1 << Nbits

// IndexMask constant masks one slot index out of a shifted hash.
const IndexMask uint32 = uint32(TableCapacity) - 1

// MaxShift constant is the number of hash bits(32); a level whose shard
// would start at or beyond MaxShift has no hash bits left to discriminate
// by, which is where collision leaves live.
const MaxShift uint = 32

// MaxDepth constant is the maximum depth(6) of the Trie, from
// [0..MaxDepth] for a total of MaxDepth+1(7) levels.
const MaxDepth uint = (MaxShift+Nbits-1)/Nbits - 1

// Map is the persistent key/val mapping. The zero value of Map is a valid
// empty Map. Map is a value type; assignment copies the (root, count)
// pair, not the Trie.
type Map struct {
	root     *innerNode
	nentries uint
}

// New returns an empty Map.
func New() Map {
	return Map{root: emptyInnerNode}
}

// rootNode tolerates the zero Map, whose root pointer is nil.
func (m Map) rootNode() *innerNode {
	if m.root == nil {
		return emptyInnerNode
	}
	return m.root
}

// IsEmpty returns whether the Map holds no entries. O(1); no traversal.
func (m Map) IsEmpty() bool {
	return m.nentries == 0
}

// Nentries returns the number of key/val entries in the Map. O(1); no
// traversal.
func (m Map) Nentries() uint {
	return m.nentries
}

// Get retrieves the value for a given key from the Map. The bool
// represents whether the key was found.
func (m Map) Get(k key.Key) (interface{}, bool) {
	return m.rootNode().find(k.Hash32(), k)
}

// Has returns whether the key is in the Map.
func (m Map) Has(k key.Key) bool {
	var _, found = m.Get(k)
	return found
}

// Put inserts a key/val pair into the Map, returning a new persistent Map
// and a bool indicating if the key/val pair was added(true) or merely
// updated(false).
func (m Map) Put(k key.Key, v interface{}) (Map, bool) {
	var kv = key.KeyVal{Key: k, Val: v}

	var newRoot, added = m.rootNode().put(k.Hash32(), 0, kv)

	var nm = m
	nm.root = newRoot
	if added {
		nm.nentries++
	}

	return nm, added
}

// Del removes the entry for a given key. It returns a new persistent Map,
// the value that was stored under the key, and a bool indicating if the
// key was found (and therefore deleted). If the key was not in the Map
// the receiver itself is returned.
func (m Map) Del(k key.Key) (Map, interface{}, bool) {
	var val, found = m.Get(k)
	if !found {
		return m, nil, false
	}

	var change, repl, _, removed = m.rootNode().del(k.Hash32(), 0, k, true)

	var nm = m
	nm.nentries--

	switch change {
	case newChildNode:
		var newRoot, ok = repl.(*innerNode)
		if !ok {
			log.Panicf("SHOULD NOT BE REACHED: Del: root replaced by non-inner node %T", repl)
		}
		nm.root = newRoot
	case removeChildNode:
		nm.root = emptyInnerNode
	default:
		// the key was found above, so noChange cannot happen here, and
		// the root is exempt from contraction.
		log.Panicf("SHOULD NOT BE REACHED: Del: root level %s", change)
	}

	if !removed {
		log.Panicf("SHOULD NOT BE REACHED: Del: %s with removed=false", change)
	}

	return nm, val, true
}

// Keys returns every key in the Map, in iteration order.
func (m Map) Keys() []key.Key {
	var keys = make([]key.Key, 0, m.nentries)
	m.Range(func(k key.Key, v interface{}) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func (m Map) String() string {
	return fmt.Sprintf("Map{nentries: %d, root: %s}", m.nentries, m.rootNode())
}

const halfIndent = "  "
const fullIndent = "    "

// LongString returns a multi-line rendering of the entire Trie. Only good
// for debug messages.
func (m Map) LongString(indent string) string {
	var str = indent + fmt.Sprintf("Map{nentries: %d, root:\n", m.nentries)
	str += m.rootNode().LongString(indent+fullIndent, 0)
	str += "\n" + indent + "}"
	return str
}
