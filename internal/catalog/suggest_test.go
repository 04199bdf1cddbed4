package catalog

import (
	"errors"
	"testing"
)

type mockDictionary struct {
	terms map[string]int
	err   error
	calls int
}

func (m *mockDictionary) Terms() (map[string]int, error) {
	m.calls++
	return m.terms, m.err
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"sql", "", 3},
		{"", "aws", 3},
		{"python", "python", 0},
		{"pyhton", "python", 1},
		{"dokcer", "docker", 1},
		{"kubernets", "kubernetes", 1},
		{"java", "jaav", 1},
		{"go", "rust", 4},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggester_Check(t *testing.T) {
	dict := &mockDictionary{terms: map[string]int{
		"python": 5, "docker": 3, "engineer": 4, "pytorch": 1,
	}}
	s := NewSuggester(dict)

	got, err := s.Check("Pyhton engineer dokcer")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !got.HasCorrections() {
		t.Fatal("expected corrections")
	}
	if got.CorrectedQuery != "python engineer docker" {
		t.Errorf("CorrectedQuery = %q", got.CorrectedQuery)
	}
	if len(got.Misspelled) != 2 || got.Misspelled[0] != "pyhton" || got.Misspelled[1] != "dokcer" {
		t.Errorf("Misspelled = %v", got.Misspelled)
	}

	got, err = s.Check("python")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.HasCorrections() || got.CorrectedQuery != "python" {
		t.Errorf("known term changed: %+v", got)
	}
	if dict.calls != 1 {
		t.Errorf("dictionary read %d times, want 1 (cached)", dict.calls)
	}
}

func TestSuggester_Options(t *testing.T) {
	dict := &mockDictionary{terms: map[string]int{"docker": 1, "dockers": 9, "locker": 2}}

	s := NewSuggester(dict, WithMinFrequency(2), WithMaxDistance(1), WithMaxSuggestions(1))
	got := s.Suggest("docker")
	if len(got) != 1 || got[0].Term != "dockers" {
		t.Errorf("Suggest = %+v, want only dockers", got)
	}
}

func TestSuggester_DictionaryError(t *testing.T) {
	s := NewSuggester(&mockDictionary{err: errors.New("closed")})
	if _, err := s.Check("anything"); err == nil {
		t.Error("expected error")
	}
	if got := s.Suggest("anything"); got != nil {
		t.Errorf("Suggest = %+v, want nil", got)
	}
}

func TestBleveIndex_Terms(t *testing.T) {
	idx := newTestIndex(t)
	terms, err := idx.Terms()
	if err != nil {
		t.Fatalf("Terms: %v", err)
	}
	if terms["docker"] != 2 {
		t.Errorf("docker frequency = %d, want 2", terms["docker"])
	}
	if _, ok := terms["nimbus"]; ok {
		t.Error("company terms should not feed suggestions")
	}

	got, err := NewSuggester(idx).Check("dokcer")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if got.CorrectedQuery != "docker" {
		t.Errorf("CorrectedQuery = %q", got.CorrectedQuery)
	}
}
