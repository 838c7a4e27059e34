package ui

import (
	"testing"

	"github.com/recera/panzoom/pkg/viewport"
)

func TestContentAt(t *testing.T) {
	content := [][]rune{[]rune("ab"), []rune("cd")}
	s := newTermSurface()
	// Canvas center is (5, 3).
	s.rect = viewport.Rect{Left: 0, Top: 1, Width: 10, Height: 4}

	check := func(col, row int, want rune, wantOK bool) {
		t.Helper()
		got, ok := s.contentAt(content, 2, col, row)
		if ok != wantOK || (ok && got != want) {
			t.Errorf("contentAt(%d, %d) = %q, %v; want %q, %v", col, row, got, ok, want, wantOK)
		}
	}

	check(4, 2, 'a', true)
	check(5, 2, 'b', true)
	check(4, 3, 'c', true)
	check(5, 3, 'd', true)
	check(3, 2, 0, false)
	check(4, 4, 0, false)

	s.transform = viewport.Transform{TranslateX: 2, TranslateY: -1, Scale: 1}
	check(6, 1, 'a', true)
	check(7, 2, 'd', true)

	s.transform = viewport.Transform{Scale: 2}
	// Each content cell now covers two columns and two rows.
	check(3, 1, 'a', true)
	check(4, 2, 'a', true)
	check(6, 4, 'd', true)
	check(2, 1, 0, false)

	s.transform = viewport.Transform{Scale: 0}
	check(4, 2, 0, false)
}

func TestSplitContent(t *testing.T) {
	lines := SplitContent("a\tb\r\nc\n\n  \n")
	if len(lines) != 2 || lines[0] != "a    b" || lines[1] != "c" {
		t.Errorf("SplitContent = %q", lines)
	}
	if len(SampleContent()) == 0 {
		t.Error("sample content is empty")
	}
}
