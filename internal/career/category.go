// Package career maps job titles and classifier labels onto a fixed set of
// career categories.
package career

import "strings"

// Category is a career bucket. The zero value is not valid; use Other.
type Category string

const (
	Data            Category = "Data"
	MachineLearning Category = "Machine Learning"
	Cloud           Category = "Cloud"
	Cybersecurity   Category = "Cybersecurity"
	Software        Category = "Software"
	Network         Category = "Network"
	DevOps          Category = "DevOps"
	Other           Category = "Other"
)

// categories is the fixed one-hot order used for feature encoding.
var categories = []Category{Data, MachineLearning, Cloud, Cybersecurity, Software, Network, DevOps, Other}

// Categories returns all categories in their fixed encoding order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// String returns the category's display name.
func (c Category) String() string {
	if c == "" {
		return string(Other)
	}
	return string(c)
}

// Index returns the category's position in Categories, or the index of Other.
func (c Category) Index() int {
	for i, cat := range categories {
		if cat == c {
			return i
		}
	}
	return len(categories) - 1
}

// rule assigns Category when any keyword occurs in the lower-cased title.
// Keywords match as plain substrings, so "ml" also matches "MLOps".
type rule struct {
	category Category
	keywords []string
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{Data, []string{"data analyst", "data engineer", "data scientist", "etl", "big data", "bi developer", "business intelligence", "tableau", "power bi", "sql developer"}},
	{MachineLearning, []string{"machine learning", "ml", "deep learning", "ai", "artificial intelligence", "computer vision", "nlp", "data science"}},
	{Cloud, []string{"cloud", "aws", "azure", "gcp", "kubernetes", "docker", "serverless"}},
	{Cybersecurity, []string{"security", "cyber", "penetration", "infosec", "soc analyst", "ethical hacker"}},
	{Network, []string{"network", "routing", "switching", "cisco", "ccna", "ccnp"}},
	{DevOps, []string{"devops", "sre", "site reliability", "ci/cd", "jenkins", "terraform", "ansible"}},
	{Software, []string{"developer", "software", "backend", "frontend", "full stack", "engineer", "web", "react", "angular", "node", "java", "python", ".net"}},
}

// Classify maps a job title onto a category. Titles matching no rule are Other.
func Classify(title string) Category {
	t := strings.ToLower(title)
	if strings.TrimSpace(t) == "" {
		return Other
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.category
			}
		}
	}
	return Other
}

// Parse maps a classifier label onto a category, case-insensitively.
// Unknown or empty labels map to Other.
func Parse(label string) Category {
	l := strings.TrimSpace(label)
	for _, c := range categories {
		if strings.EqualFold(l, string(c)) {
			return c
		}
	}
	return Other
}
