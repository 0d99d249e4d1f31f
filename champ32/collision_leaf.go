package champ32

import (
	"fmt"
	"log"
	"strings"

	"github.com/lleo/go-champ-functional/key"
)

// collisionLeaf holds the key/val records of two or more keys whose hash
// values collide across all 32 bits. It only ever occurs at the deepest
// level of the Trie, where there are no hash bits left to discriminate by,
// and it always holds at least two records.
type collisionLeaf struct {
	kvs []key.KeyVal
}

func newCollisionLeaf(kvs []key.KeyVal) *collisionLeaf {
	if len(kvs) < 2 {
		log.Panicf("newCollisionLeaf: called with %d kvs; must be >= 2", len(kvs))
	}

	var leaf = new(collisionLeaf)
	leaf.kvs = kvs

	return leaf
}

func (l *collisionLeaf) hash32() uint32 {
	return l.kvs[0].Key.Hash32()
}

// get linear scans the records comparing keys with Equals.
func (l *collisionLeaf) get(k key.Key) (interface{}, bool) {
	for i := 0; i < len(l.kvs); i++ {
		if l.kvs[i].Key.Equals(k) {
			return l.kvs[i].Val, true
		}
	}
	return nil, false
}

// put returns a new collisionLeaf with kv stored in it, and whether kv's
// key was added(true) or an existing record's value replaced(false).
func (l *collisionLeaf) put(kv key.KeyVal) (*collisionLeaf, bool) {
	for i := 0; i < len(l.kvs); i++ {
		if l.kvs[i].Key.Equals(kv.Key) {
			var nkvs = make([]key.KeyVal, len(l.kvs))
			copy(nkvs, l.kvs)
			nkvs[i] = key.KeyVal{Key: l.kvs[i].Key, Val: kv.Val}
			return newCollisionLeaf(nkvs), false
		}
	}

	var nkvs = make([]key.KeyVal, len(l.kvs)+1)
	nkvs[0] = kv
	copy(nkvs[1:], l.kvs)
	return newCollisionLeaf(nkvs), true
}

// putMut stores kv in place. Only legal during bulk build; see bulk.go.
func (l *collisionLeaf) putMut(kv key.KeyVal) bool {
	for i := 0; i < len(l.kvs); i++ {
		if l.kvs[i].Key.Equals(kv.Key) {
			l.kvs[i] = key.KeyVal{Key: l.kvs[i].Key, Val: kv.Val}
			return false
		}
	}
	l.kvs = append(l.kvs, key.KeyVal{})
	copy(l.kvs[1:], l.kvs)
	l.kvs[0] = kv
	return true
}

// del removes k from the leaf. It returns the change the parent must apply
// to its slot and whether a record was removed:
//
//   - k not found: noChange.
//   - two records and k matched: preserveSingleValue with the survivor;
//     the parent turns its child pointer into a direct entry.
//   - three or more records: newChildNode with the filtered leaf.
func (l *collisionLeaf) del(k key.Key) (subNodeChange, nodeI, key.KeyVal, bool) {
	var at = -1
	for i := 0; i < len(l.kvs); i++ {
		if l.kvs[i].Key.Equals(k) {
			at = i
			break
		}
	}

	if at < 0 {
		return noChange, nil, key.KeyVal{}, false
	}

	if len(l.kvs) == 2 {
		return preserveSingleValue, nil, l.kvs[1-at], true
	}

	var nkvs = make([]key.KeyVal, 0, len(l.kvs)-1)
	nkvs = append(nkvs, l.kvs[:at]...)
	nkvs = append(nkvs, l.kvs[at+1:]...)

	return newChildNode, newCollisionLeaf(nkvs), key.KeyVal{}, true
}

// String() is required for nodeI
func (l *collisionLeaf) String() string {
	var kvstrs = make([]string, len(l.kvs))
	for i := 0; i < len(l.kvs); i++ {
		kvstrs[i] = l.kvs[i].String()
	}

	return fmt.Sprintf("collisionLeaf{hash32:%s, kvs:[%s]}",
		key.Hash32String(l.hash32()), strings.Join(kvstrs, ","))
}

// LongString() is required for nodeI
func (l *collisionLeaf) LongString(indent string, depth uint) string {
	return indent + l.String()
}
