/*
Package key defines the Key interface the champ32 Trie is built over, and
the KeyVal struct it stores.

A Key supplies its own 32 bit hash value and an equality predicate. The
Trie consumes nothing else: the hash drives placement (five bits per level)
and Equals() discriminates keys whose hashes collide. The contract callers
must uphold is the usual one: Equals(a, b) implies a.Hash32() == b.Hash32(),
and Hash32() is stable for the lifetime of the key.

The Base struct is provided to cache the computed hash; concrete key types
(see the stringkey and int64key packages) embed Base and call Initialize()
once at construction.
*/
package key

import (
	"fmt"
)

// Key is the interface the champ32 Trie requires of every key stored in it.
type Key interface {
	Equals(Key) bool
	Hash32() uint32
	String() string
}

// KeyVal is the record the Trie stores; just a Key and its value.
type KeyVal struct {
	Key Key
	Val interface{}
}

func (kv KeyVal) String() string {
	return fmt.Sprintf("KeyVal{%s, %v}", kv.Key, kv.Val)
}

// Base is meant to be the base struct of all structs that satisfy Key
// interface. It caches the 32 bit hash value, so the hash is computed once
// per key rather than once per Trie operation.
type Base struct {
	hash32 uint32
}

// Hash32 returns the cached 32 bit hash of the key.
func (base Base) Hash32() uint32 {
	return base.hash32
}

// Initialize sets the cached hash value. Concrete key constructors must
// call this exactly once, before the key is ever handed to a Trie.
func (base *Base) Initialize(h32 uint32) {
	base.hash32 = h32
}

func (base Base) String() string {
	return fmt.Sprintf("Base{hash32:%s}", Hash32String(base.hash32))
}

// Hash32String returns a string representation of the given 32 bit hash as
// seven slash separated shard values, deepest level first: the 2 bit top
// shard, then six 5 bit shards. Only good for debug messages.
func Hash32String(h32 uint32) string {
	return fmt.Sprintf("%d/%d/%d/%d/%d/%d/%d",
		(h32>>30)&0x3,
		(h32>>25)&0x1f,
		(h32>>20)&0x1f,
		(h32>>15)&0x1f,
		(h32>>10)&0x1f,
		(h32>>5)&0x1f,
		h32&0x1f)
}
