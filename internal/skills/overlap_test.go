package skills

import (
	"reflect"
	"testing"
)

func TestOverlap(t *testing.T) {
	res := Overlap([]string{"Python", "SQL", "Excel"}, []string{"python", "Docker", "AWS"})
	if !reflect.DeepEqual(res.Matching, []string{"python"}) {
		t.Errorf("Matching = %v", res.Matching)
	}
	if !reflect.DeepEqual(res.MissingFromA, []string{"aws", "docker"}) {
		t.Errorf("MissingFromA = %v", res.MissingFromA)
	}
	if !reflect.DeepEqual(res.MissingFromB, []string{"excel", "sql"}) {
		t.Errorf("MissingFromB = %v", res.MissingFromB)
	}
	if res.TotalUnique != 5 || res.MatchCount != 1 {
		t.Errorf("counts: match=%d unique=%d", res.MatchCount, res.TotalUnique)
	}
	if res.Percentage != 20 {
		t.Errorf("Percentage = %v, want 20", res.Percentage)
	}

	empty := Overlap(nil, nil)
	if empty.Percentage != 0 || len(empty.Matching) != 0 {
		t.Errorf("empty overlap: %+v", empty)
	}
}

func TestFrequency_countsOncePerList(t *testing.T) {
	freq := Frequency([][]string{
		{"python", "Python", "sql"},
		{"python"},
		{},
	})
	if freq["python"] != 2 {
		t.Errorf("python = %d, want 2", freq["python"])
	}
	if freq["sql"] != 1 {
		t.Errorf("sql = %d, want 1", freq["sql"])
	}
}

func TestTop(t *testing.T) {
	top := Top(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	want := []Count{{"c", 5}, {"a", 2}, {"b", 2}}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("Top = %v, want %v", top, want)
	}
	if all := Top(map[string]int{"x": 1}, 0); len(all) != 1 {
		t.Errorf("n=0 should return all, got %v", all)
	}
}

func TestRound(t *testing.T) {
	if got := Round(6.6666, 2); got != 6.67 {
		t.Errorf("Round = %v", got)
	}
	if got := Round(10, 2); got != 10 {
		t.Errorf("Round = %v", got)
	}
}
