// Package skills canonicalizes free-text skill tokens so that skill sets from
// different sources compare case- and spelling-insensitively.
package skills

import "strings"

// DefaultSeparator is the delimiter used by skill columns in the source datasets.
const DefaultSeparator = ";"

// synonyms maps alternative spellings onto canonical skill names.
// No canonical value may appear as a key, which keeps Normalize idempotent.
var synonyms = map[string]string{
	"nodejs":              "node.js",
	"node js":             "node.js",
	"reactjs":             "react",
	"react js":            "react",
	"tensor flow":         "tensorflow",
	"py torch":            "pytorch",
	"sklearn":             "scikit-learn",
	"cicd":                "ci/cd",
	"tcpip":               "tcp/ip",
	"rest api":            "rest apis",
	"restful api":         "rest apis",
	"amazon web services": "aws",
	"google cloud":        "gcp",
	"microsoft azure":     "azure",
}

// Normalize lower-cases raw, collapses internal whitespace and maps known
// synonyms to their canonical spelling. It returns "" for blank input.
func Normalize(raw string) string {
	s := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if s == "" {
		return ""
	}
	if canonical, ok := synonyms[s]; ok {
		return canonical
	}
	return s
}

// ParseList splits text on sep, normalizes every token, drops empties and
// removes duplicates while keeping first-seen order. An empty sep uses DefaultSeparator.
func ParseList(text, sep string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	return MergeSets(strings.Split(text, sep))
}

// MergeSets merges several skill lists into one normalized, deduplicated list
// in first-seen order.
func MergeSets(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, raw := range list {
			s := Normalize(raw)
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Set returns the normalized skills of list as a set.
func Set(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, raw := range list {
		if s := Normalize(raw); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
