package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize("", "", MaxActors)
	if p.Limite != 5 || p.Pagina != 1 {
		t.Fatalf("expected defaults 5/1, got %d/%d", p.Limite, p.Pagina)
	}
	p = Normalize("abc", "xyz", MaxActors)
	if p.Limite != 5 || p.Pagina != 1 {
		t.Fatalf("expected defaults for non-numeric input, got %d/%d", p.Limite, p.Pagina)
	}
}

func TestNormalizeClamping(t *testing.T) {
	cases := []struct {
		limite, pagina string
		max            int
		wantLimite     int
		wantPagina     int
	}{
		{"0", "0", 10, 1, 1},
		{"-3", "-7", 10, 1, 1},
		{"50", "2", 10, 10, 2},
		{"50", "2", 20, 20, 2},
		{"7", "999", 10, 7, 999}, // no upper clamp on pagina
		{"10", "1", 10, 10, 1},
	}
	for _, tc := range cases {
		p := Normalize(tc.limite, tc.pagina, tc.max)
		if p.Limite != tc.wantLimite || p.Pagina != tc.wantPagina {
			t.Errorf("Normalize(%q,%q,%d) = %d/%d, want %d/%d",
				tc.limite, tc.pagina, tc.max, p.Limite, p.Pagina, tc.wantLimite, tc.wantPagina)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Limite: 5, Pagina: 1}).Offset(); got != 0 {
		t.Fatalf("page 1 offset = %d, want 0", got)
	}
	if got := (Params{Limite: 5, Pagina: 3}).Offset(); got != 10 {
		t.Fatalf("page 3 offset = %d, want 10", got)
	}
}

func TestWindowIsContiguousAndOrderPreserving(t *testing.T) {
	items := []int{10, 20, 30, 40, 50, 60, 70}
	for pagina := 1; pagina <= 5; pagina++ {
		p := Params{Limite: 3, Pagina: pagina}
		win := Window(items, p)
		if len(win) > p.Limite {
			t.Fatalf("page %d: window length %d exceeds limite %d", pagina, len(win), p.Limite)
		}
		start := p.Offset()
		for i, v := range win {
			if v != items[start+i] {
				t.Fatalf("page %d: window[%d] = %d, not a contiguous slice of the source", pagina, i, v)
			}
		}
	}
}

func TestWindowPastTheEndIsEmpty(t *testing.T) {
	items := []string{"a", "b", "c"}
	win := Window(items, Params{Limite: 5, Pagina: 4})
	if win == nil || len(win) != 0 {
		t.Fatalf("expected empty non-nil window, got %#v", win)
	}
}

func TestWindowPartialLastPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	win := Window(items, Params{Limite: 2, Pagina: 3})
	if len(win) != 1 || win[0] != 5 {
		t.Fatalf("expected last page [5], got %v", win)
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	a := Normalize("8", "2", MaxFilms)
	b := Normalize("8", "2", MaxFilms)
	if a != b {
		t.Fatalf("identical input produced different params: %+v vs %+v", a, b)
	}
}
