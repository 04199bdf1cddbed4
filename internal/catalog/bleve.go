package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/careermatch/internal/models"
)

const (
	// DefaultLimit is used when Search is called with a non-positive limit.
	DefaultLimit = 10
	// DefaultTitleBoost favours title matches over skill or company matches.
	DefaultTitleBoost = 2.0

	batchSize = 500
)

// textFields are the analyzed fields searched by default.
var textFields = []string{"title", "company", "location", "provider", "level", "skills"}

// entry is the indexed form of a job or course.
type entry struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	Provider string `json:"provider,omitempty"`
	Level    string `json:"level,omitempty"`
	Skills   string `json:"skills,omitempty"`
}

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path.
// If you change the index mapping in code, remove the index directory.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer keeps skill names like "kubernetes" unstemmed.
	textFieldMapping.Analyzer = standard.Name
	for _, field := range textFields {
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}
	kindFieldMapping := bleve.NewKeywordFieldMapping()
	kindFieldMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("kind", kindFieldMapping)
	im.AddDocumentMapping("entry", docMapping)
	im.DefaultType = "entry"
	im.DefaultMapping = docMapping

	if _, err := os.Stat(path); err == nil {
		// A server process may hold the index; fail instead of blocking forever.
		index, openErr := bleve.OpenUsing(path, map[string]interface{}{"bolt_timeout": "5s"})
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// IndexJobs adds or replaces job postings.
func (b *BleveIndex) IndexJobs(ctx context.Context, jobs []models.Job) error {
	batch := b.index.NewBatch()
	for i := range jobs {
		if err := addJob(batch, &jobs[i]); err != nil {
			return err
		}
		if err := b.flush(ctx, batch, false); err != nil {
			return err
		}
	}
	return b.flush(ctx, batch, true)
}

// IndexCourses adds or replaces courses.
func (b *BleveIndex) IndexCourses(ctx context.Context, courses []models.Course) error {
	batch := b.index.NewBatch()
	for i := range courses {
		if err := addCourse(batch, &courses[i]); err != nil {
			return err
		}
		if err := b.flush(ctx, batch, false); err != nil {
			return err
		}
	}
	return b.flush(ctx, batch, true)
}

// Rebuild replaces the whole catalog in a single batch so readers never see
// a half-built index.
func (b *BleveIndex) Rebuild(ctx context.Context, jobs []models.Job, courses []models.Course) error {
	ids, err := b.allIDs(ctx)
	if err != nil {
		return err
	}

	batch := b.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	for i := range jobs {
		if err := addJob(batch, &jobs[i]); err != nil {
			return err
		}
	}
	for i := range courses {
		if err := addCourse(batch, &courses[i]); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to rebuild catalog: %w", err)
	}
	return nil
}

func (b *BleveIndex) allIDs(ctx context.Context) ([]string, error) {
	count, err := b.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog entries: %w", err)
	}
	if count == 0 {
		return nil, nil
	}
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog entries: %w", err)
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (b *BleveIndex) flush(ctx context.Context, batch *bleve.Batch, force bool) error {
	if batch.Size() == 0 || (!force && batch.Size() < batchSize) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to index catalog batch: %w", err)
	}
	batch.Reset()
	return nil
}

func addJob(batch *bleve.Batch, job *models.Job) error {
	doc := entry{
		Kind:     string(KindJob),
		Title:    job.Title,
		Company:  job.Company,
		Location: job.Location,
		Level:    job.Level,
		Skills:   strings.Join(job.RequiredSkills, " "),
	}
	if err := batch.Index(docID(KindJob, job.ID), doc); err != nil {
		return fmt.Errorf("failed to index job %s: %w", job.ID, err)
	}
	return nil
}

func addCourse(batch *bleve.Batch, course *models.Course) error {
	doc := entry{
		Kind:     string(KindCourse),
		Title:    course.Title,
		Provider: course.Provider,
		Level:    course.Level,
		Skills:   strings.Join(course.SkillsGained, " "),
	}
	if err := batch.Index(docID(KindCourse, course.ID), doc); err != nil {
		return fmt.Errorf("failed to index course %s: %w", course.ID, err)
	}
	return nil
}

// Search runs a match query over every text field, restricted to kind when
// kind is non-empty. Ties are broken by document id.
func (b *BleveIndex) Search(ctx context.Context, query string, kind Kind, limit int, opts *SearchOptions) ([]Hit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	titleBoost := DefaultTitleBoost
	fuzzy := false
	fuzziness := 0
	if opts != nil {
		if opts.TitleBoost > 0 {
			titleBoost = opts.TitleBoost
		}
		fuzzy = opts.FuzzyEnabled
		fuzziness = opts.Fuzziness
	}
	if fuzzy && (fuzziness < 1 || fuzziness > 2) {
		fuzziness = 2
	}

	q := textQuery(query, fuzzy, fuzziness, "")
	if titleBoost > 1 {
		title := bleve.NewDisjunctionQuery(textQuery(query, fuzzy, fuzziness, "title"))
		title.SetBoost(titleBoost)
		q = bleve.NewDisjunctionQuery(q, title)
	}
	if kind != "" {
		kq := bleve.NewTermQuery(string(kind))
		kq.SetField("kind")
		q = bleve.NewConjunctionQuery(q, kq)
	}

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"kind", "title"}
	req.SortBy([]string{"-_score", "_id"})
	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		k, id := splitDocID(h.ID)
		hit := Hit{ID: id, Kind: k, Score: h.Score}
		if title, ok := h.Fields["title"].(string); ok {
			hit.Title = title
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// textQuery builds a match query, or a disjunction of fuzzy term queries
// when fuzzy is set. An empty field searches all fields.
func textQuery(query string, fuzzy bool, fuzziness int, field string) blevequery.Query {
	terms := tokenizeQuery(query)
	if !fuzzy || len(terms) == 0 {
		mq := bleve.NewMatchQuery(query)
		if field != "" {
			mq.SetField(field)
		}
		return mq
	}

	queries := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(fuzziness)
		if field != "" {
			fq.SetField(field)
		}
		queries = append(queries, fq)
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewDisjunctionQuery(queries...)
}

func tokenizeQuery(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

func docID(kind Kind, id string) string {
	return string(kind) + ":" + id
}

func splitDocID(id string) (Kind, string) {
	kind, rest, ok := strings.Cut(id, ":")
	if !ok {
		return "", id
	}
	return Kind(kind), rest
}

// Terms returns the indexed terms of the title and skills fields with their
// document frequencies.
func (b *BleveIndex) Terms() (map[string]int, error) {
	terms := make(map[string]int)
	for _, field := range []string{"title", "skills"} {
		dict, err := b.index.FieldDict(field)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s terms: %w", field, err)
		}
		for {
			de, err := dict.Next()
			if err != nil || de == nil {
				break
			}
			if int(de.Count) > terms[de.Term] {
				terms[de.Term] = int(de.Count)
			}
		}
		_ = dict.Close()
	}
	return terms, nil
}

// DocCount returns the total number of catalog entries.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
