/*
Package int64key implements the key.Key interface for 64 bit integers. The
32 bit hash folds the value's two halves together with XOR, so keys whose
halves mirror each other (0 and -1 being the classic pair) collide across
all 32 hash bits and exercise the Trie's collision leaves.
*/
package int64key

import (
	"fmt"

	"github.com/lleo/go-champ-functional/key"
)

// Int64Key is an int64 that can be stored in a champ32.Map.
type Int64Key struct {
	key.Base
	i int64
}

// New allocates and initializes an Int64Key.
func New(i int64) *Int64Key {
	var ik = new(Int64Key)
	ik.i = i
	ik.Initialize(uint32(uint64(i)) ^ uint32(uint64(i)>>32))
	return ik
}

// Equals returns true iff the other key is an *Int64Key wrapping the same
// integer.
func (ik *Int64Key) Equals(other key.Key) bool {
	var oik, ok = other.(*Int64Key)
	if !ok {
		return false
	}
	return ik.i == oik.i
}

// Int returns the integer this key was created from.
func (ik *Int64Key) Int() int64 {
	return ik.i
}

func (ik *Int64Key) String() string {
	return fmt.Sprintf("Int64Key{%d}", ik.i)
}
