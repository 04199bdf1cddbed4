package career

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		title string
		want  Category
	}{
		{"Senior Data Analyst", Data},
		{"Machine Learning Engineer", MachineLearning},
		{"Cloud Support Associate", Cloud},
		{"SOC Analyst - Tier 1", Cybersecurity},
		{"Network Administrator", Network},
		{"DevOps Engineer", DevOps},
		{"Backend Developer", Software},
		{"Accountant", Other},
		{"", Other},
		// Data rules precede the generic "engineer" software keyword.
		{"Data Engineer", Data},
		// Keywords are substrings, short ones included.
		{"MLOps Engineer", MachineLearning},
		{"AIOps Specialist", MachineLearning},
		{"Maintenance Engineer", MachineLearning},
		{"AI Research Intern", MachineLearning},
		{"Junior .NET Developer", Software},
		{"Site Reliability Engineer", DevOps},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Classify(tt.title); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if got := Parse("machine learning"); got != MachineLearning {
		t.Errorf("Parse = %q", got)
	}
	if got := Parse(" CLOUD "); got != Cloud {
		t.Errorf("Parse = %q", got)
	}
	if got := Parse("Astronaut"); got != Other {
		t.Errorf("Parse unknown = %q", got)
	}
	if got := Parse(""); got != Other {
		t.Errorf("Parse empty = %q", got)
	}
}

func TestCategories_order(t *testing.T) {
	cats := Categories()
	if len(cats) != 8 || cats[0] != Data || cats[len(cats)-1] != Other {
		t.Fatalf("Categories() = %v", cats)
	}
	for i, c := range cats {
		if c.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", c, c.Index(), i)
		}
	}
	cats[0] = Other
	if Categories()[0] != Data {
		t.Error("Categories must return a copy")
	}
	if Category("bogus").Index() != Other.Index() {
		t.Error("unknown category should index as Other")
	}
}
