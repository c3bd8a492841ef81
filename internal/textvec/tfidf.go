package textvec

import (
	"math"
)

// Vector is a sparse term-weight vector.
type Vector map[string]float64

// FitTransform builds a TF-IDF space over docs (raw counts, smoothed idf
// ln((1+n)/(1+df))+1, l2 normalization) and returns one vector per doc.
// Stopwords are removed before counting.
func FitTransform(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]int)
		for _, term := range Terms(doc, 1, 1, true) {
			tf[term]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	n := float64(len(docs))
	vectors := make([]Vector, len(docs))
	for i, tf := range counts {
		v := make(Vector, len(tf))
		for term, c := range tf {
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			v[term] = float64(c) * idf
		}
		vectors[i] = normalize(v)
	}

	return vectors
}

// Cosine returns the cosine similarity of two sparse vectors, or 0 when
// either is empty.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}

	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

// CosineDense returns the cosine similarity of two dense vectors. Vectors of
// different length or zero magnitude yield 0.
func CosineDense(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Similarity is the two-document TF-IDF cosine similarity scaled to [0,100].
func Similarity(a, b string) float64 {
	vecs := FitTransform([]string{a, b})
	return Cosine(vecs[0], vecs[1]) * 100
}

func norm(v Vector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

func normalize(v Vector) Vector {
	n := norm(v)
	if n == 0 {
		return v
	}
	for term, w := range v {
		v[term] = w / n
	}
	return v
}
