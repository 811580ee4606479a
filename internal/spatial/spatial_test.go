package spatial

import "testing"

func TestSlotIndexMatchesCubeOffsets(t *testing.T) {
	for i, off := range CubeOffsets {
		if got := SlotIndex(off.X, off.Y, off.Z); got != i {
			t.Fatalf("offset %v: got slot %d, want %d", off, got, i)
		}
	}
	if got := SlotIndex(0, 0, 0); got != 13 {
		t.Fatalf("center slot: got %d, want 13", got)
	}
}

func TestSplitAxis(t *testing.T) {
	cases := []struct {
		in        int
		slot, loc int
	}{
		{-1, 0, ChunkSize - 1},
		{0, 1, 0},
		{ChunkSize - 1, 1, ChunkSize - 1},
		{ChunkSize, 2, 0},
	}
	for _, c := range cases {
		slot, loc := SplitAxis(c.in)
		if slot != c.slot || loc != c.loc {
			t.Fatalf("SplitAxis(%d): got (%d,%d), want (%d,%d)", c.in, slot, loc, c.slot, c.loc)
		}
	}
}

func TestCoordForWorldNegative(t *testing.T) {
	if got := CoordForWorld(-1, 0, ChunkSize); (got != ChunkCoord{X: -1, Y: 0, Z: 1}) {
		t.Fatalf("CoordForWorld(-1,0,%d): got %v", ChunkSize, got)
	}
}

func TestIndex3RoundTrip(t *testing.T) {
	seen := make(map[int]struct{}, ChunkVolume)
	for z := 0; z < ChunkSize; z++ {
		for y := 0; y < ChunkSize; y++ {
			for x := 0; x < ChunkSize; x++ {
				i := Index3(x, y, z)
				if i < 0 || i >= ChunkVolume {
					t.Fatalf("Index3(%d,%d,%d) out of range: %d", x, y, z, i)
				}
				if _, dup := seen[i]; dup {
					t.Fatalf("Index3(%d,%d,%d) collides at %d", x, y, z, i)
				}
				seen[i] = struct{}{}
			}
		}
	}
}
