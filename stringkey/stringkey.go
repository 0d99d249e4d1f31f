/*
Package stringkey implements the key.Key interface for strings. The 32 bit
hash is the low 32 bits of the xxHash64 digest of the string's bytes.
*/
package stringkey

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/lleo/go-champ-functional/key"
)

// StringKey is a string that can be stored in a champ32.Map.
type StringKey struct {
	key.Base
	str string
}

// New allocates and initializes a StringKey; the hash is computed here,
// once, and cached in the embedded key.Base.
func New(str string) *StringKey {
	var sk = new(StringKey)
	sk.str = str
	sk.Initialize(uint32(xxhash.Sum64String(str)))
	return sk
}

// Equals returns true iff the other key is a *StringKey wrapping an
// identical string.
func (sk *StringKey) Equals(other key.Key) bool {
	var osk, ok = other.(*StringKey)
	if !ok {
		return false
	}
	return sk.str == osk.str
}

// Str returns the string this key was created from.
func (sk *StringKey) Str() string {
	return sk.str
}

func (sk *StringKey) String() string {
	return fmt.Sprintf("StringKey{%q}", sk.str)
}
