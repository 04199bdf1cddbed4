package catalog

import "context"

// Lookup searches idx and widens the search when nothing matches: first a
// fuzzy pass with fuzziness 1, then a spelling suggestion from sugg. fuzzy
// forces the fuzzy pass up front. sugg may be nil. The suggestion is empty
// whenever hits are returned.
func Lookup(ctx context.Context, idx Index, sugg *Suggester, query string, kind Kind, limit int, fuzzy bool) ([]Hit, string, error) {
	opts := &SearchOptions{FuzzyEnabled: fuzzy}
	if fuzzy {
		opts.Fuzziness = 1
	}
	hits, err := idx.Search(ctx, query, kind, limit, opts)
	if err != nil {
		return nil, "", err
	}
	if len(hits) == 0 && !fuzzy {
		hits, err = idx.Search(ctx, query, kind, limit, &SearchOptions{FuzzyEnabled: true, Fuzziness: 1})
		if err != nil {
			return nil, "", err
		}
	}
	if len(hits) > 0 || sugg == nil {
		return hits, "", nil
	}
	c, err := sugg.Check(query)
	if err != nil || !c.HasCorrections() {
		return hits, "", nil
	}
	return hits, c.CorrectedQuery, nil
}
