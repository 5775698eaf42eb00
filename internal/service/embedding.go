package service

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions matches the catalog's vector(64) column.
const EmbeddingDimensions = 64

// EmbeddingServiceInterface turns text into a catalog search vector.
type EmbeddingServiceInterface interface {
	GenerateEmbedding(text string) (pgvector.Vector, error)
}

// HashEmbedder is a deterministic bag-of-words embedding. Each lowercased
// token is hashed into one of EmbeddingDimensions buckets and the result
// is L2-normalised.
type HashEmbedder struct{}

// NewHashEmbedder returns a HashEmbedder.
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

// GenerateEmbedding returns the vector for text. Text without tokens maps
// to the zero vector.
func (HashEmbedder) GenerateEmbedding(text string) (pgvector.Vector, error) {
	vec := make([]float32, EmbeddingDimensions)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%EmbeddingDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return pgvector.NewVector(vec), nil
}

// recipeDocument is the text embedded for a catalog recipe.
func recipeDocument(title, cuisine string, ingredients, tags []string) string {
	parts := append([]string{title, cuisine}, ingredients...)
	parts = append(parts, tags...)
	return strings.Join(parts, " ")
}
