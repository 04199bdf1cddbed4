package catalog

import (
	"sort"
	"strings"
	"sync"
)

// Suggestion is a spelling candidate for a single query term.
type Suggestion struct {
	Term      string  `json:"term"`
	Distance  int     `json:"distance"`
	Frequency int     `json:"frequency"`
	Score     float64 `json:"score"`
}

// Correction is the result of checking a query against the catalog terms.
type Correction struct {
	Query          string       `json:"query"`
	CorrectedQuery string       `json:"corrected_query"`
	Suggestions    []Suggestion `json:"suggestions"`
	Misspelled     []string     `json:"misspelled"`
}

// HasCorrections reports whether any term was replaced.
func (c *Correction) HasCorrections() bool {
	return len(c.Misspelled) > 0
}

// Suggester proposes catalog terms close to unknown query terms.
type Suggester struct {
	dictionary     TermDictionary
	maxDistance    int
	minFreq        int
	maxSuggestions int

	mu    sync.RWMutex
	terms map[string]int
	valid bool
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SuggesterOption {
	return func(s *Suggester) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMinFrequency ignores terms that appear in fewer documents.
func WithMinFrequency(f int) SuggesterOption {
	return func(s *Suggester) {
		if f >= 0 {
			s.minFreq = f
		}
	}
}

// WithMaxSuggestions caps the suggestions returned per term.
func WithMaxSuggestions(n int) SuggesterOption {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSuggester creates a Suggester reading terms from dict.
func NewSuggester(dict TermDictionary, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		dictionary:     dict,
		maxDistance:    2,
		minFreq:        1,
		maxSuggestions: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh reloads the term cache. Call it after the catalog is rebuilt.
func (s *Suggester) Refresh() error {
	terms, err := s.dictionary.Terms()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.terms = terms
	s.valid = true
	s.mu.Unlock()
	return nil
}

func (s *Suggester) cached() (map[string]int, error) {
	s.mu.RLock()
	terms, valid := s.terms, s.valid
	s.mu.RUnlock()
	if valid {
		return terms, nil
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terms, nil
}

// Check replaces every unknown query term with its best suggestion.
func (s *Suggester) Check(query string) (*Correction, error) {
	terms, err := s.cached()
	if err != nil {
		return nil, err
	}

	result := &Correction{
		Query:       query,
		Suggestions: []Suggestion{},
		Misspelled:  []string{},
	}
	corrected := make([]string, 0)
	for _, term := range tokenizeQuery(query) {
		if _, ok := terms[term]; ok {
			corrected = append(corrected, term)
			continue
		}
		suggestions := s.suggest(terms, term)
		if len(suggestions) == 0 {
			corrected = append(corrected, term)
			continue
		}
		result.Misspelled = append(result.Misspelled, term)
		result.Suggestions = append(result.Suggestions, suggestions...)
		corrected = append(corrected, suggestions[0].Term)
	}
	result.CorrectedQuery = strings.Join(corrected, " ")
	return result, nil
}

// Suggest returns candidates for a single term, best first.
func (s *Suggester) Suggest(term string) []Suggestion {
	terms, err := s.cached()
	if err != nil {
		return nil
	}
	return s.suggest(terms, strings.ToLower(term))
}

func (s *Suggester) suggest(terms map[string]int, term string) []Suggestion {
	out := make([]Suggestion, 0)
	for candidate, freq := range terms {
		if candidate == term || freq < s.minFreq {
			continue
		}
		lenDiff := len(candidate) - len(term)
		if lenDiff < 0 {
			lenDiff = -lenDiff
		}
		if lenDiff > s.maxDistance {
			continue
		}
		d := editDistance(term, candidate)
		if d > s.maxDistance {
			continue
		}
		out = append(out, Suggestion{
			Term:      candidate,
			Distance:  d,
			Frequency: freq,
			Score:     float64(freq) / float64(d+1),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > s.maxSuggestions {
		out = out[:s.maxSuggestions]
	}
	return out
}

// editDistance is the optimal string alignment distance: insertions,
// deletions, substitutions and adjacent transpositions each cost one.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+cost)
			}
		}
	}
	return d[len(ra)][len(rb)]
}
