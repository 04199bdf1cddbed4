package catalog

import (
	"context"
	"testing"
)

func TestLookup(t *testing.T) {
	idx := newTestIndex(t)
	sugg := NewSuggester(idx)
	ctx := context.Background()

	tests := []struct {
		name       string
		query      string
		sugg       *Suggester
		fuzzy      bool
		wantHits   bool
		suggestion string
	}{
		{"exact match", "docker", sugg, false, true, ""},
		{"fuzzy fallback", "sqll", sugg, false, true, ""},
		{"forced fuzzy", "terraforn", sugg, true, true, ""},
		{"suggestion when fuzzy misses", "dackar", sugg, false, false, "docker"},
		{"no suggester", "dackar", nil, false, false, ""},
		{"nothing close", "xyzzy", sugg, false, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, suggestion, err := Lookup(ctx, idx, tt.sugg, tt.query, "", 10, tt.fuzzy)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if (len(hits) > 0) != tt.wantHits {
				t.Errorf("hits = %v, want hits %v", hits, tt.wantHits)
			}
			if suggestion != tt.suggestion {
				t.Errorf("suggestion = %q, want %q", suggestion, tt.suggestion)
			}
		})
	}
}
