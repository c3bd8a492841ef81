package hiring

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/matching"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/textvec"
)

func leaf(v float64) *float64 { return &v }

func ptr(v float64) *float64 { return &v }

func str(s string) *string { return &s }

// testArtifact encodes to six features:
// f0 resume "python", f1 resume "java", f2 job "python",
// f3 Education=Bachelor, f4 Education=Master, f5 scaled skill match ratio.
// Its single tree splits on the skill match ratio.
func testArtifact() Artifact {
	return Artifact{
		Version: "test",
		Columns: append([]string(nil), Columns...),
		ResumeVectorizer: textvec.Vectorizer{
			Vocabulary: map[string]int{"python": 0, "java": 1},
			IDF:        []float64{1, 1},
		},
		JobVectorizer: textvec.Vectorizer{
			Vocabulary: map[string]int{"python": 0},
			IDF:        []float64{1},
		},
		Categorical: []CategoricalColumn{
			{Column: ColEducation, Categories: []string{"Bachelor", "Master"}},
		},
		Numerical: []NumericalColumn{
			{Column: ColSkillMatchRatio, Mean: 0, Scale: 1},
		},
		Booster: Booster{
			BaseScore: 0.5,
			Trees: []*TreeNode{{
				NodeID: 0, Split: "f5", SplitCondition: 0.5, Yes: 1, No: 2, Missing: 1,
				Children: []*TreeNode{
					{NodeID: 1, Leaf: leaf(-2)},
					{NodeID: 2, Leaf: leaf(2)},
				},
			}},
		},
	}
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func TestCleanText(t *testing.T) {
	assert.Equal(t, "senior python developer years experience",
		CleanText("The Senior Python-Developer, with 5+ years of experience!"))
	assert.Equal(t, "", CleanText("  123 !!! "))
}

func TestBuildFeatures(t *testing.T) {
	req := models.HiringPredictionRequest{
		ResumeText:        str("Python and Django"),
		JobDescription:    str("Looking for Python"),
		Education:         str("Master"),
		ExperienceYears:   ptr(4),
		SalaryExpectation: ptr(5000),
		OfferedSalary:     ptr(5500),
		Skills:            []string{"python"},
		RequiredSkills:    []string{"python"},
	}

	record := BuildFeatures(req, matching.DefaultOntology())

	assert.Equal(t, "python django", record.ResumeText)
	assert.Equal(t, "looking python", record.JobDescription)
	assert.Equal(t, 500.0, record.SalaryDifference)
	assert.InDelta(t, 1.0, record.SkillMatchRatio, 1e-9)
	assert.Equal(t, 4.0, record.ExperienceYears)
}

func TestNewModel_Encode(t *testing.T) {
	model, err := NewModel(testArtifact())
	require.NoError(t, err)
	assert.Equal(t, 6, model.Dim())
	assert.Equal(t, 0.5, model.Threshold())

	x := model.Encode(FeatureRecord{
		ResumeText:      "python python",
		JobDescription:  "java",
		Education:       "Master",
		SkillMatchRatio: 0.25,
	})
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0.25}, x)

	unknown := model.Encode(FeatureRecord{Education: "PhD"})
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, unknown)
}

func TestNewModel_RejectsBadArtifacts(t *testing.T) {
	a := testArtifact()
	a.Columns = a.Columns[1:]
	_, err := NewModel(a)
	assert.ErrorContains(t, err, "do not match")

	a = testArtifact()
	a.Booster.Trees[0].Split = "f6"
	_, err = NewModel(a)
	assert.ErrorContains(t, err, "outside 6 features")

	a = testArtifact()
	a.Booster.BaseScore = 1
	_, err = NewModel(a)
	assert.Error(t, err)

	a = testArtifact()
	a.Booster.Trees[0].No = 7
	_, err = NewModel(a)
	assert.ErrorContains(t, err, "unknown child")

	a = testArtifact()
	a.Categorical[0].Column = ColExperienceYears
	_, err = NewModel(a)
	assert.ErrorContains(t, err, "not a text field")
}

func TestModel_PredictProba(t *testing.T) {
	model, err := NewModel(testArtifact())
	require.NoError(t, err)

	p, err := model.PredictProba(FeatureRecord{SkillMatchRatio: 0.9})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(2), p, 1e-12)

	p, err = model.PredictProba(FeatureRecord{SkillMatchRatio: 0.1})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(-2), p, 1e-12)
}

func TestCompiledTree_MissingBranch(t *testing.T) {
	model, err := NewModel(testArtifact())
	require.NoError(t, err)

	x := []float64{0, 0, 0, 0, 0, math.NaN()}
	assert.Equal(t, -2.0, model.trees[0].margin(x))
}

func TestLoadModelAndLocate(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir, "")
	assert.ErrorIs(t, err, ErrNoModel)

	data, err := json.Marshal(testArtifact())
	require.NoError(t, err)
	older := filepath.Join(dir, "hiring_model_20240101.json")
	newer := filepath.Join(dir, "hiring_model_20250101.json")
	require.NoError(t, os.WriteFile(older, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(newer, data, 0o644))

	path, err := Locate(dir, filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, newer, path)

	path, err = Locate(dir, older)
	require.NoError(t, err)
	assert.Equal(t, older, path)

	model, err := LoadModel(newer)
	require.NoError(t, err)
	assert.Equal(t, "test", model.Version())

	_, err = LoadModel(older)
	assert.Error(t, err)
}

func TestPredictor_Unavailable(t *testing.T) {
	p := NewPredictor(nil, nil, zap.NewNop())
	assert.False(t, p.Available())

	_, err := p.Predict(context.Background(), models.HiringPredictionRequest{})
	assert.ErrorIs(t, err, matching.ErrModelUnavailable)
}

func TestPredictor_Predict(t *testing.T) {
	model, err := NewModel(testArtifact())
	require.NoError(t, err)
	p := NewPredictor(model, matching.DefaultOntology(), zap.NewNop())

	req := models.HiringPredictionRequest{
		ResumeText:        str("python engineer"),
		JobDescription:    str("python role"),
		ExperienceYears:   ptr(3),
		SalaryExpectation: ptr(100),
		OfferedSalary:     ptr(100),
		Skills:            []string{"python"},
		RequiredSkills:    []string{"python"},
	}

	got, err := p.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, got.Hired)
	assert.Equal(t, "Candidate is likely to be hired", got.Message)

	req.Skills = []string{"communication"}
	got, err = p.Predict(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, got.Hired)
	assert.InDelta(t, sigmoid(-2), got.Probability, 1e-12)
	assert.Equal(t, "Candidate is not likely to be hired", got.Message)
}

type brokenClassifier struct{}

func (brokenClassifier) PredictProba(FeatureRecord) (float64, error) {
	return 0, errors.New("boom")
}

func (brokenClassifier) Threshold() float64 { return 0.5 }

func TestPredictor_ClassifierError(t *testing.T) {
	p := NewPredictor(brokenClassifier{}, nil, nil)

	_, err := p.Predict(context.Background(), models.HiringPredictionRequest{})

	var compErr *matching.ComputationError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "hiring prediction", compErr.Step)
}
