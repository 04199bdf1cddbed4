package skills

import (
	"math"
	"sort"
)

// OverlapResult compares two skill sets A and B.
type OverlapResult struct {
	Matching     []string
	MissingFromA []string // in B but not in A
	MissingFromB []string // in A but not in B
	MatchCount   int
	TotalUnique  int
	// Percentage is |A∩B| / |A∪B| * 100, rounded to 2 decimals.
	Percentage float64
}

// Overlap compares a and b after normalization. All lists are sorted.
func Overlap(a, b []string) OverlapResult {
	setA, setB := Set(a), Set(b)
	res := OverlapResult{
		Matching:     []string{},
		MissingFromA: []string{},
		MissingFromB: []string{},
	}
	for s := range setA {
		if _, ok := setB[s]; ok {
			res.Matching = append(res.Matching, s)
		} else {
			res.MissingFromB = append(res.MissingFromB, s)
		}
	}
	for s := range setB {
		if _, ok := setA[s]; !ok {
			res.MissingFromA = append(res.MissingFromA, s)
		}
	}
	sort.Strings(res.Matching)
	sort.Strings(res.MissingFromA)
	sort.Strings(res.MissingFromB)
	res.MatchCount = len(res.Matching)
	res.TotalUnique = len(setA) + len(setB) - res.MatchCount
	if res.TotalUnique > 0 {
		res.Percentage = Round(float64(res.MatchCount)/float64(res.TotalUnique)*100, 2)
	}
	return res
}

// Frequency counts in how many lists each skill occurs. A skill repeated
// within one list is counted once for that list.
func Frequency(lists [][]string) map[string]int {
	freq := make(map[string]int)
	for _, list := range lists {
		for s := range Set(list) {
			freq[s]++
		}
	}
	return freq
}

// Count is a skill with its frequency.
type Count struct {
	Skill string
	Count int
}

// Top returns the n most frequent skills, ties broken by skill name.
// n <= 0 returns all.
func Top(freq map[string]int, n int) []Count {
	out := make([]Count, 0, len(freq))
	for s, c := range freq {
		out = append(out, Count{Skill: s, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
