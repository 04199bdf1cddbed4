package cluster

import (
	"sort"

	"github.com/hyperjump/careermatch/internal/career"
)

// Label names each cluster with the majority career of its members. Ties go
// to the category with more members in the whole population, then to the
// lexically smaller name. Clusters without members are labeled Other.
func Label(labels []int, careers []career.Category, k int) []career.Category {
	population := make(map[career.Category]int)
	votes := make([]map[career.Category]int, k)
	for c := range votes {
		votes[c] = make(map[career.Category]int)
	}
	for i, l := range labels {
		cat := careers[i]
		if cat == "" {
			cat = career.Other
		}
		population[cat]++
		votes[l][cat]++
	}

	out := make([]career.Category, k)
	for c, v := range votes {
		if len(v) == 0 {
			out[c] = career.Other
			continue
		}
		cands := make([]career.Category, 0, len(v))
		for cat := range v {
			cands = append(cands, cat)
		}
		sort.Slice(cands, func(i, j int) bool {
			a, b := cands[i], cands[j]
			if v[a] != v[b] {
				return v[a] > v[b]
			}
			if population[a] != population[b] {
				return population[a] > population[b]
			}
			return a < b
		})
		out[c] = cands[0]
	}
	return out
}
