package sampling

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"decisionsampler/internal/models"
)

const (
	testNamespace = "Apache"
	testModel     = "648ee4526b3fde4b1b33e099-648f1f6f6b3fde4b1b3429cf"
)

func issues(ids ...string) []models.Issue {
	out := make([]models.Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Issue{Collection: "Apache", ID: id, Key: "CASSANDRA-" + id})
	}
	return out
}

func archLabel(id string) models.IssueLabel {
	return models.IssueLabel{
		ID: LabelID(testNamespace, id),
		Predictions: map[string]*models.ModelPrediction{
			testModel: {
				Existence: &models.SubPrediction{Prediction: true, Confidence: 0.91},
				Executive: &models.SubPrediction{Prediction: false},
				Property:  &models.SubPrediction{Prediction: false},
			},
		},
	}
}

func nonArchLabel(id string) models.IssueLabel {
	return models.IssueLabel{
		ID: LabelID(testNamespace, id),
		Predictions: map[string]*models.ModelPrediction{
			testModel: {
				Existence: &models.SubPrediction{Prediction: false},
				Executive: &models.SubPrediction{Prediction: false},
				Property:  &models.SubPrediction{Prediction: false},
			},
		},
	}
}

func labelMap(labels ...models.IssueLabel) LabelMap {
	m := LabelMap{}
	for _, l := range labels {
		m[l.ID] = l
	}
	return m
}

func selectedIDs(res Result) []string {
	var ids []string
	for _, s := range res.Selected {
		ids = append(ids, s.Issue.ID)
	}
	return ids
}

// poisonLabels fails the test if a lookup reaches the poisoned id.
type poisonLabels struct {
	t      *testing.T
	inner  LabelMap
	poison string
	seen   []string
}

func (p *poisonLabels) Lookup(id string) (models.IssueLabel, bool) {
	p.seen = append(p.seen, id)
	if id == p.poison {
		p.t.Fatalf("Lookup(%q) called after both quotas were satisfied", id)
	}
	return p.inner.Lookup(id)
}

func TestPartition_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		candidates  []models.Issue
		labels      LabelMap
		quota       Quota
		wantIDs     []string
		wantArch    int
		wantNonArch int
	}{
		{
			name:        "mixed with one unlabeled",
			candidates:  issues("1", "2", "3"),
			labels:      labelMap(archLabel("1"), nonArchLabel("2")),
			quota:       Quota{Architectural: 1, NonArchitectural: 1},
			wantIDs:     []string{"1", "2"},
			wantArch:    1,
			wantNonArch: 1,
		},
		{
			name:        "architectural cap zero",
			candidates:  issues("1", "2"),
			labels:      labelMap(archLabel("1"), archLabel("2")),
			quota:       Quota{Architectural: 0, NonArchitectural: 5},
			wantIDs:     nil,
			wantArch:    0,
			wantNonArch: 0,
		},
		{
			name:        "empty candidates",
			candidates:  nil,
			labels:      labelMap(archLabel("1")),
			quota:       Quota{Architectural: 3, NonArchitectural: 3},
			wantIDs:     nil,
			wantArch:    0,
			wantNonArch: 0,
		},
		{
			name:       "label without configured model",
			candidates: issues("1"),
			labels: labelMap(models.IssueLabel{
				ID: LabelID(testNamespace, "1"),
				Predictions: map[string]*models.ModelPrediction{
					"other-model": {Existence: &models.SubPrediction{Prediction: true}},
				},
			}),
			quota:       Quota{Architectural: 1, NonArchitectural: 1},
			wantIDs:     nil,
			wantArch:    0,
			wantNonArch: 0,
		},
		{
			name:       "null block for configured model",
			candidates: issues("1", "2"),
			labels: labelMap(
				models.IssueLabel{
					ID:          LabelID(testNamespace, "1"),
					Predictions: map[string]*models.ModelPrediction{testModel: nil},
				},
				nonArchLabel("2"),
			),
			quota:       Quota{Architectural: 1, NonArchitectural: 1},
			wantIDs:     []string{"2"},
			wantArch:    0,
			wantNonArch: 1,
		},
		{
			name:        "category caps respected",
			candidates:  issues("1", "2", "3", "4", "5", "6"),
			labels:      labelMap(archLabel("1"), archLabel("2"), archLabel("3"), nonArchLabel("4"), nonArchLabel("5"), nonArchLabel("6")),
			quota:       Quota{Architectural: 2, NonArchitectural: 1},
			wantIDs:     []string{"1", "2", "4"},
			wantArch:    2,
			wantNonArch: 1,
		},
		{
			name:        "quota unreachable",
			candidates:  issues("1", "2"),
			labels:      labelMap(archLabel("1"), nonArchLabel("2")),
			quota:       Quota{Architectural: 10, NonArchitectural: 10},
			wantIDs:     []string{"1", "2"},
			wantArch:    1,
			wantNonArch: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Partition(tt.candidates, tt.labels, testNamespace, testModel, tt.quota)

			if diff := cmp.Diff(tt.wantIDs, selectedIDs(res)); diff != "" {
				t.Errorf("Partition() selected mismatch (-want +got):\n%s", diff)
			}
			if res.Architectural != tt.wantArch {
				t.Errorf("Partition() Architectural = %d, want %d", res.Architectural, tt.wantArch)
			}
			if res.NonArchitectural != tt.wantNonArch {
				t.Errorf("Partition() NonArchitectural = %d, want %d", res.NonArchitectural, tt.wantNonArch)
			}
		})
	}
}

func TestPartition_Diagnostics(t *testing.T) {
	candidates := issues("1", "2", "3", "4")
	labels := labelMap(archLabel("1"), archLabel("2"), nonArchLabel("4"))

	res := Partition(candidates, labels, testNamespace, testModel, Quota{Architectural: 1, NonArchitectural: 2})

	if res.Evaluated != 4 {
		t.Errorf("Evaluated = %d, want 4", res.Evaluated)
	}
	if res.Unlabeled != 1 {
		t.Errorf("Unlabeled = %d, want 1", res.Unlabeled)
	}
	if res.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", res.Dropped)
	}
}

func TestPartition_SelectionCategories(t *testing.T) {
	candidates := issues("1", "2")
	labels := labelMap(nonArchLabel("1"), archLabel("2"))

	res := Partition(candidates, labels, testNamespace, testModel, Quota{Architectural: 1, NonArchitectural: 1})

	want := []models.Category{models.CategoryNonArchitectural, models.CategoryArchitectural}
	var got []models.Category
	for _, s := range res.Selected {
		got = append(got, s.Category)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_StopsOnceBothQuotasMet(t *testing.T) {
	candidates := issues("1", "2", "poison", "4")
	labels := &poisonLabels{
		t:      t,
		inner:  labelMap(archLabel("1"), nonArchLabel("2"), archLabel("4")),
		poison: LabelID(testNamespace, "poison"),
	}

	res := Partition(candidates, labels, testNamespace, testModel, Quota{Architectural: 1, NonArchitectural: 1})

	if res.Evaluated != 2 {
		t.Errorf("Evaluated = %d, want 2", res.Evaluated)
	}
	if len(labels.seen) != 2 {
		t.Errorf("lookups = %v, want exactly 2", labels.seen)
	}
}

func TestPartition_ZeroCapsEvaluateNothing(t *testing.T) {
	labels := &poisonLabels{t: t, inner: LabelMap{}, poison: LabelID(testNamespace, "1")}

	res := Partition(issues("1"), labels, testNamespace, testModel, Quota{})

	if res.Evaluated != 0 || len(res.Selected) != 0 {
		t.Errorf("Partition() with zero caps = %+v, want nothing evaluated", res)
	}
}

func TestPartition_NeverExceedsCaps(t *testing.T) {
	var ids []string
	labels := LabelMap{}
	for i := 0; i < 200; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		ids = append(ids, id)
		switch i % 3 {
		case 0:
			labels[LabelID(testNamespace, id)] = archLabel(id)
		case 1:
			labels[LabelID(testNamespace, id)] = nonArchLabel(id)
		}
	}
	candidates := issues(ids...)

	for arch := 0; arch <= 80; arch += 20 {
		for nonArch := 0; nonArch <= 80; nonArch += 20 {
			quota := Quota{Architectural: arch, NonArchitectural: nonArch}
			res := Partition(candidates, labels, testNamespace, testModel, quota)

			if res.Architectural > arch || res.NonArchitectural > nonArch {
				t.Fatalf("quota %+v exceeded: arch=%d nonArch=%d", quota, res.Architectural, res.NonArchitectural)
			}
			if len(res.Selected) != res.Architectural+res.NonArchitectural {
				t.Fatalf("quota %+v: %d selected, counts sum to %d", quota, len(res.Selected), res.Architectural+res.NonArchitectural)
			}
			for _, s := range res.Selected {
				if _, ok := labels.Lookup(LabelID(testNamespace, s.Issue.ID)); !ok {
					t.Fatalf("quota %+v: unlabeled issue %s selected", quota, s.Issue.ID)
				}
			}
		}
	}
}

func TestQuota_Satisfied(t *testing.T) {
	tests := []struct {
		name    string
		quota   Quota
		arch    int
		nonArch int
		want    bool
	}{
		{"both below", Quota{2, 2}, 1, 1, false},
		{"arch full only", Quota{2, 2}, 2, 1, false},
		{"non-arch full only", Quota{2, 2}, 1, 2, false},
		{"both full", Quota{2, 2}, 2, 2, true},
		{"zero caps", Quota{0, 0}, 0, 0, true},
		{"zero arch cap", Quota{0, 5}, 0, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quota.Satisfied(tt.arch, tt.nonArch); got != tt.want {
				t.Errorf("Satisfied(%d, %d) = %v, want %v", tt.arch, tt.nonArch, got, tt.want)
			}
		})
	}
}
