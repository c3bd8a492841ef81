package textvec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Go, Python3 & a C++ dev_ops!")

	assert.Equal(t, []string{"go", "python3", "dev_ops"}, tokens)
}

func TestTerms_DropsStopWordsAndBuildsBigrams(t *testing.T) {
	terms := Terms("the data pipeline for analytics", 1, 2, true)

	assert.Equal(t, []string{"data", "pipeline", "analytics", "data pipeline", "pipeline analytics"}, terms)
}

func TestSimilarity_SelfSimilarityIsMaximal(t *testing.T) {
	text := "Senior backend engineer building Go microservices on Kubernetes"

	assert.InDelta(t, 100.0, Similarity(text, text), 1e-9)
}

func TestSimilarity_NoSharedVocabulary(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("kubernetes terraform", "watercolor painting"))
}

func TestSimilarity_EmptyOrStopWordOnly(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "golang developer"))
	assert.Equal(t, 0.0, Similarity("golang developer", ""))
	assert.Equal(t, 0.0, Similarity("the and of", "the and of"))
}

func TestSimilarity_PartialOverlapIsBetweenBounds(t *testing.T) {
	score := Similarity("python django postgres", "python flask redis")

	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 100.0)
}

func TestFitTransform_IDFWeighting(t *testing.T) {
	vecs := FitTransform([]string{"golang golang rust", "golang"})
	require.Len(t, vecs, 2)

	// Smoothed idf: golang appears in both documents, rust in one.
	idfGolang := 1.0
	idfRust := math.Log(3.0/2.0) + 1
	length := math.Sqrt(math.Pow(2*idfGolang, 2) + math.Pow(idfRust, 2))

	assert.InDelta(t, 2*idfGolang/length, vecs[0]["golang"], 1e-9)
	assert.InDelta(t, idfRust/length, vecs[0]["rust"], 1e-9)
	assert.InDelta(t, 1.0, vecs[1]["golang"], 1e-9)
}

func TestFitTransform_StopwordOnlyDocumentIsEmpty(t *testing.T) {
	vecs := FitTransform([]string{"go go rust", "go"})
	require.Len(t, vecs, 2)

	assert.Empty(t, vecs[1])
	assert.InDelta(t, 1.0, vecs[0]["rust"], 1e-9)
}

func TestCosineDense(t *testing.T) {
	assert.InDelta(t, 1.0, CosineDense([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, CosineDense([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, CosineDense([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineDense([]float32{0, 0}, []float32{1, 2}))
}

func TestVectorizer_Transform(t *testing.T) {
	v := &Vectorizer{
		Vocabulary: map[string]int{"python": 0, "sql": 1, "python sql": 2},
		IDF:        []float64{1, 2, 1},
		NGramRange: [2]int{1, 2},
	}
	require.NoError(t, v.Validate())

	out := v.Transform("Python SQL java")
	require.Len(t, out, 3)

	var sum float64
	for _, x := range out {
		sum += x * x
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, out[1], out[0])
}

func TestVectorizer_ValidateRejectsMismatch(t *testing.T) {
	v := &Vectorizer{Vocabulary: map[string]int{"go": 3}, IDF: []float64{1}}

	assert.Error(t, v.Validate())
}
