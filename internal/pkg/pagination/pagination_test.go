package pagination

import "testing"

func TestNewParams(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
		wantOffset          int
	}{
		{1, 20, 1, 20, 0},
		{3, 10, 3, 10, 20},
		{0, 0, 1, DefaultLimit, 0},
		{-2, 500, 1, MaxLimit, 0},
	}
	for _, tt := range tests {
		p := NewParams(tt.page, tt.limit)
		if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Fatalf("NewParams(%d, %d): expected %d/%d/%d, got %+v",
				tt.page, tt.limit, tt.wantPage, tt.wantLimit, tt.wantOffset, p)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	if got := Slice(items, NewParams(2, 2)); len(got) != 2 || got[0] != 3 {
		t.Fatalf("expected [3 4], got %v", got)
	}
	if got := Slice(items, NewParams(3, 2)); len(got) != 1 || got[0] != 5 {
		t.Fatalf("expected [5], got %v", got)
	}
	if got := Slice(items, NewParams(9, 2)); got == nil || len(got) != 0 {
		t.Fatalf("expected empty page, got %v", got)
	}
}

func TestGetMeta(t *testing.T) {
	m := GetMeta(NewParams(2, 2), 5)
	if m.TotalPages != 3 || !m.HasNext || !m.HasPrev {
		t.Fatalf("unexpected meta: %+v", m)
	}
	m = GetMeta(NewParams(1, 20), 0)
	if m.TotalPages != 0 || m.HasNext || m.HasPrev {
		t.Fatalf("unexpected meta for empty set: %+v", m)
	}
}
