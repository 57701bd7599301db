package pagination

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults pass through", 1, 20, 1, 20, 0},
		{"zero page falls back", 0, 20, 1, 20, 0},
		{"negative page falls back", -3, 20, 1, 20, 0},
		{"zero limit falls back", 2, 0, 2, 20, 20},
		{"limit capped at max", 1, 500, 1, 100, 0},
		{"offset follows page", 3, 10, 3, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.page, tt.limit)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit || got.Offset != tt.wantOffset {
				t.Errorf("Clamp(%d, %d) = %+v, want page=%d limit=%d offset=%d",
					tt.page, tt.limit, got, tt.wantPage, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
