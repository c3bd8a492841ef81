package hiring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"alfredoptarigan/resume-matcher/internal/textvec"
)

// ErrNoModel is returned by Locate when no model artifact exists.
var ErrNoModel = errors.New("no hiring model artifact found")

type CategoricalColumn struct {
	Column     string   `json:"column"`
	Categories []string `json:"categories"`
}

type NumericalColumn struct {
	Column string  `json:"column"`
	Mean   float64 `json:"mean"`
	Scale  float64 `json:"scale"`
}

// Artifact is the JSON export of the offline training pipeline.
type Artifact struct {
	Version          string              `json:"version"`
	Columns          []string            `json:"columns"`
	ResumeVectorizer textvec.Vectorizer  `json:"resume_vectorizer"`
	JobVectorizer    textvec.Vectorizer  `json:"job_vectorizer"`
	Categorical      []CategoricalColumn `json:"categorical"`
	Numerical        []NumericalColumn   `json:"numerical"`
	Booster          Booster             `json:"booster"`
	Threshold        float64             `json:"threshold"`
}

// Model is a loaded, validated artifact. It is immutable after loading and
// safe for concurrent use.
type Model struct {
	artifact Artifact
	trees    []compiledTree
	dim      int
	catIndex []map[string]int
}

// Locate returns path if it exists, otherwise the lexicographically latest
// hiring_model_*.json in dir.
func Locate(dir, path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "hiring_model_*.json"))
	if err != nil {
		return "", fmt.Errorf("failed to search model dir: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrNoModel
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// LoadModel reads and validates a model artifact from disk.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	return NewModel(artifact)
}

// NewModel validates artifact against the feature record contract.
func NewModel(artifact Artifact) (*Model, error) {
	if strings.Join(artifact.Columns, "|") != strings.Join(Columns, "|") {
		return nil, fmt.Errorf("model columns %q do not match feature record %q", artifact.Columns, Columns)
	}
	if err := artifact.ResumeVectorizer.Validate(); err != nil {
		return nil, fmt.Errorf("resume vectorizer: %w", err)
	}
	if err := artifact.JobVectorizer.Validate(); err != nil {
		return nil, fmt.Errorf("job vectorizer: %w", err)
	}

	catIndex := make([]map[string]int, len(artifact.Categorical))
	dim := artifact.ResumeVectorizer.Dim() + artifact.JobVectorizer.Dim()
	for i, col := range artifact.Categorical {
		if _, ok := (FeatureRecord{}).Text(col.Column); !ok {
			return nil, fmt.Errorf("categorical column %q is not a text field", col.Column)
		}
		idx := make(map[string]int, len(col.Categories))
		for j, c := range col.Categories {
			idx[c] = j
		}
		catIndex[i] = idx
		dim += len(col.Categories)
	}
	for _, col := range artifact.Numerical {
		if _, ok := (FeatureRecord{}).Number(col.Column); !ok {
			return nil, fmt.Errorf("numerical column %q is not a numeric field", col.Column)
		}
		dim++
	}

	trees, err := artifact.Booster.compile(dim)
	if err != nil {
		return nil, fmt.Errorf("booster: %w", err)
	}

	if artifact.Threshold == 0 {
		artifact.Threshold = 0.5
	}

	return &Model{
		artifact: artifact,
		trees:    trees,
		dim:      dim,
		catIndex: catIndex,
	}, nil
}

// Dim is the width of the encoded feature vector.
func (m *Model) Dim() int {
	return m.dim
}

func (m *Model) Threshold() float64 {
	return m.artifact.Threshold
}

func (m *Model) Version() string {
	return m.artifact.Version
}

// Encode turns a record into the model's feature vector: resume text tf-idf,
// job text tf-idf, one-hot categoricals (unknown categories are all zero),
// then standard-scaled numerics.
func (m *Model) Encode(r FeatureRecord) []float64 {
	x := make([]float64, 0, m.dim)
	x = append(x, m.artifact.ResumeVectorizer.Transform(r.ResumeText)...)
	x = append(x, m.artifact.JobVectorizer.Transform(r.JobDescription)...)

	for i, col := range m.artifact.Categorical {
		value, _ := r.Text(col.Column)
		onehot := make([]float64, len(col.Categories))
		if j, ok := m.catIndex[i][value]; ok {
			onehot[j] = 1
		}
		x = append(x, onehot...)
	}

	for _, col := range m.artifact.Numerical {
		value, _ := r.Number(col.Column)
		scale := col.Scale
		if scale == 0 {
			scale = 1
		}
		x = append(x, (value-col.Mean)/scale)
	}

	return x
}

// PredictProba returns the probability of the positive (hired) class.
func (m *Model) PredictProba(r FeatureRecord) (float64, error) {
	x := m.Encode(r)
	if len(x) != m.dim {
		return 0, fmt.Errorf("encoded %d features, model expects %d", len(x), m.dim)
	}
	return predictProba(m.trees, m.artifact.Booster.BaseScore, x), nil
}
