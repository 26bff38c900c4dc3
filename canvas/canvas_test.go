package canvas

import "testing"

func TestSegmentRune(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{10, 0, '─'},
		{-10, 0, '─'},
		{0, 5, '│'},
		{5, 5, '╲'},
		{-5, -5, '╲'},
		{5, -5, '╱'},
		{-5, 5, '╱'},
	}
	for _, tt := range tests {
		if got := SegmentRune(tt.dx, tt.dy); got != tt.want {
			t.Errorf("SegmentRune(%d, %d) = %c, want %c", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestDrawSegmentHorizontal(t *testing.T) {
	c := New(10, 3)
	c.DrawSegment(1, 1, 8, 1, "#ff0000")

	for x := 1; x <= 8; x++ {
		cell := c.At(x, 1)
		if cell.Rune != '─' {
			t.Errorf("cell (%d, 1) = %q, want ─", x, cell.Rune)
		}
		if cell.Color != "#ff0000" {
			t.Errorf("cell (%d, 1) color = %q", x, cell.Color)
		}
	}
	if c.At(0, 1).Rune != 0 {
		t.Error("cell before segment start should be empty")
	}
}

func TestDrawSegmentDiagonalCellCount(t *testing.T) {
	c := New(10, 10)
	c.DrawSegment(0, 0, 5, 5, "#000000")

	count := 0
	c.Each(func(x, y int, cell Cell) {
		count++
		if x != y {
			t.Errorf("diagonal visited off-diagonal cell (%d, %d)", x, y)
		}
		if cell.Rune != '╲' {
			t.Errorf("cell (%d, %d) = %q, want ╲", x, y, cell.Rune)
		}
	})
	if count != 6 {
		t.Errorf("diagonal drew %d cells, want 6", count)
	}
}

func TestOutOfBoundsWritesDropped(t *testing.T) {
	c := New(3, 3)
	c.Set(-1, 0, 'x', "")
	c.Set(0, 5, 'x', "")
	c.DrawSegment(-5, 1, 7, 1, "")

	for x := 0; x < 3; x++ {
		if c.At(x, 1).Rune != '─' {
			t.Errorf("in-bounds part of clipped segment missing at x=%d", x)
		}
	}
	if c.At(-1, 0).Rune != 0 || c.At(0, 5).Rune != 0 {
		t.Error("out-of-bounds reads should be zero cells")
	}
}

func TestDrawText(t *testing.T) {
	c := New(10, 1)
	c.DrawText(2, 0, "abc", "")
	if c.At(2, 0).Rune != 'a' || c.At(3, 0).Rune != 'b' || c.At(4, 0).Rune != 'c' {
		t.Error("text not written at expected cells")
	}
}
