package champ32

import (
	"math/bits"
	"math/rand"
	"testing"
)

func checkSparseArray(t *testing.T, sa sparseArray[int]) {
	t.Helper()

	if bits.OnesCount32(sa.bitmap) != len(sa.content) {
		t.Fatalf("bitmap,%s has %d bits set; content holds %d",
			bitmapString(sa.bitmap), bits.OnesCount32(sa.bitmap), len(sa.content))
	}
}

func TestSparseArrayEmpty(t *testing.T) {
	var sa sparseArray[int]

	checkSparseArray(t, sa)

	if sa.nentries() != 0 {
		t.Fatalf("sa.nentries(),%d != 0", sa.nentries())
	}

	for idx := uint(0); idx < TableCapacity; idx++ {
		if _, found := sa.get(idx); found {
			t.Fatalf("found slot %d in the empty sparseArray", idx)
		}
	}
}

func TestSparseArraySetGetUnset(t *testing.T) {
	var r = rand.New(rand.NewSource(3))

	var sa sparseArray[int]
	var oracle = make(map[uint]int, TableCapacity)

	for op := 0; op < 2048; op++ {
		var idx = uint(r.Intn(int(TableCapacity)))

		if r.Intn(3) == 0 {
			var before = sa
			sa = sa.unset(idx)
			delete(oracle, idx)
			if _, had := before.get(idx); !had && sa.bitmap != before.bitmap {
				t.Fatalf("unset of absent slot %d changed the bitmap on op %d", idx, op)
			}
		} else {
			sa = sa.set(idx, op)
			oracle[idx] = op
		}

		checkSparseArray(t, sa)

		if sa.nentries() != uint(len(oracle)) {
			t.Fatalf("sa.nentries(),%d != len(oracle),%d on op %d", sa.nentries(), len(oracle), op)
		}

		for i := uint(0); i < TableCapacity; i++ {
			var v, found = sa.get(i)
			var ov, ofound = oracle[i]
			if found != ofound {
				t.Fatalf("get(%d) found=%t; oracle %t on op %d", i, found, ofound, op)
			}
			if found && v != ov {
				t.Fatalf("get(%d) = %d; oracle %d on op %d", i, v, ov, op)
			}
		}
	}
}

func TestSparseArrayPackedOrder(t *testing.T) {
	var sa sparseArray[int]

	// insert in descending slot order; content must come out ascending
	for idx := int(TableCapacity) - 1; idx >= 0; idx-- {
		sa = sa.set(uint(idx), idx)
	}

	if sa.bitmap != fullBitmap {
		t.Fatalf("bitmap,%s != fullBitmap", bitmapString(sa.bitmap))
	}

	for i, v := range sa.content {
		if v != i {
			t.Fatalf("content[%d] = %d; want %d", i, v, i)
		}
	}
}

func TestSparseArraySetDoesNotAliasReceiver(t *testing.T) {
	var sa sparseArray[int]
	sa = sa.set(3, 30)
	sa = sa.set(7, 70)

	var nsa = sa.set(3, 31)
	if v, _ := sa.get(3); v != 30 {
		t.Fatalf("replace through a copy mutated the receiver: get(3) = %d", v)
	}
	if v, _ := nsa.get(3); v != 31 {
		t.Fatalf("nsa.get(3) = %d; want 31", v)
	}

	var usa = sa.unset(7)
	if _, found := sa.get(7); !found {
		t.Fatal("unset through a copy mutated the receiver")
	}
	if _, found := usa.get(7); found {
		t.Fatal("usa still holds slot 7")
	}
}

func TestSparseArraySingleton(t *testing.T) {
	var sa = singletonSparseArray(13, 130)

	checkSparseArray(t, sa)

	if sa.nentries() != 1 {
		t.Fatalf("sa.nentries(),%d != 1", sa.nentries())
	}
	if v, found := sa.get(13); !found || v != 130 {
		t.Fatalf("sa.get(13) = %d, %t; want 130, true", v, found)
	}
}

func TestSparseArrayPairOrdersBySlot(t *testing.T) {
	var lo = pairSparseArray(4, 40, 20, 200)
	var hi = pairSparseArray(20, 200, 4, 40)

	for _, sa := range []sparseArray[int]{lo, hi} {
		checkSparseArray(t, sa)

		if sa.content[0] != 40 || sa.content[1] != 200 {
			t.Fatalf("content = %v; smaller slot must come first", sa.content)
		}
		if v, _ := sa.get(4); v != 40 {
			t.Fatalf("sa.get(4) = %d; want 40", v)
		}
		if v, _ := sa.get(20); v != 200 {
			t.Fatalf("sa.get(20) = %d; want 200", v)
		}
	}
}

func TestSparseArrayReplaceAt(t *testing.T) {
	var sa sparseArray[int]
	sa = sa.set(2, 20)
	sa = sa.set(9, 90)
	sa = sa.set(17, 170)

	var i = sa.packedIndex(9)
	var nsa = sa.replaceAt(i, 91)

	if v, _ := nsa.get(9); v != 91 {
		t.Fatalf("nsa.get(9) = %d; want 91", v)
	}
	if v, _ := sa.get(9); v != 90 {
		t.Fatalf("replaceAt mutated the receiver: sa.get(9) = %d", v)
	}
	if nsa.bitmap != sa.bitmap {
		t.Fatal("replaceAt changed the bitmap")
	}
}

func TestSparseArraySetMut(t *testing.T) {
	var sa sparseArray[int]
	var oracle = make(map[uint]int, TableCapacity)

	var r = rand.New(rand.NewSource(11))
	for op := 0; op < 256; op++ {
		var idx = uint(r.Intn(int(TableCapacity)))
		sa.setMut(idx, op)
		oracle[idx] = op

		checkSparseArray(t, sa)
		for i, ov := range oracle {
			if v, found := sa.get(i); !found || v != ov {
				t.Fatalf("get(%d) = %d, %t; oracle %d on op %d", i, v, found, ov, op)
			}
		}
	}
}

func TestSparseArraySetMutDensifies(t *testing.T) {
	var sa sparseArray[int]

	for idx := uint(0); idx < TableCapacity; idx++ {
		sa.setMut(idx, int(idx)*3)
	}

	if sa.bitmap != fullBitmap {
		t.Fatalf("bitmap,%s != fullBitmap after populating every slot", bitmapString(sa.bitmap))
	}
	if len(sa.content) != int(TableCapacity) {
		t.Fatalf("len(content),%d != %d", len(sa.content), TableCapacity)
	}
	for idx := uint(0); idx < TableCapacity; idx++ {
		// packed order is logical order in a full array
		if sa.content[idx] != int(idx)*3 {
			t.Fatalf("content[%d] = %d; want %d", idx, sa.content[idx], idx*3)
		}
	}
}

func TestSparseArrayOfFullArrayTransient(t *testing.T) {
	var content = make([]int, TableCapacity)
	for i := range content {
		content[i] = i * 7
	}

	var sa = ofFullArrayTransient(content)

	checkSparseArray(t, sa)

	if &sa.content[0] != &content[0] {
		t.Fatal("ofFullArrayTransient copied the content slice")
	}
	for idx := uint(0); idx < TableCapacity; idx++ {
		if v, found := sa.get(idx); !found || v != int(idx)*7 {
			t.Fatalf("sa.get(%d) = %d, %t; want %d, true", idx, v, found, idx*7)
		}
	}
}
