package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/ports"
)

// Match pairs a product with its similarity score, higher is better.
type Match struct {
	Product domain.Product `json:"product"`
	Score   float64        `json:"score"`
}

// Index is a flat in-memory similarity index over product descriptions.
// With an Embedder it scores by cosine similarity of embedding vectors;
// without one it degrades to token-overlap scoring, so search stays
// available when the collaborator is not configured or fails at startup.
// Read-only after Build; safe for concurrent queries.
type Index struct {
	embedder ports.Embedder
	products []domain.Product
	vectors  [][]float32
}

// Build creates the index, embedding every product description up front.
// A nil embedder or a failed batch embedding yields a lexical-only index.
func Build(ctx context.Context, products []domain.Product, embedder ports.Embedder) (*Index, error) {
	ix := &Index{embedder: embedder, products: products}
	if embedder == nil {
		return ix, nil
	}

	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = p.Description()
	}
	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed catalog: %w", err)
	}
	if len(vectors) != len(products) {
		return nil, fmt.Errorf("embed catalog: got %d vectors for %d products", len(vectors), len(products))
	}
	ix.vectors = vectors
	return ix, nil
}

// Query returns the top k products most similar to text, best first.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]Match, error) {
	if k <= 0 {
		k = 3
	}

	var matches []Match
	if ix.vectors != nil {
		query, err := ix.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("%w: embed query: %v", domain.ErrCollaborator, err)
		}
		matches = ix.scoreVectors(query)
	} else {
		matches = ix.scoreLexical(text)
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (ix *Index) scoreVectors(query []float32) []Match {
	matches := make([]Match, 0, len(ix.products))
	for i, p := range ix.products {
		matches = append(matches, Match{Product: p, Score: cosine(query, ix.vectors[i])})
	}
	return matches
}

func (ix *Index) scoreLexical(text string) []Match {
	terms := strings.Fields(strings.ToLower(text))
	matches := make([]Match, 0, len(ix.products))
	for _, p := range ix.products {
		desc := strings.ToLower(p.Description())
		var hits int
		for _, term := range terms {
			if strings.Contains(desc, term) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		matches = append(matches, Match{Product: p, Score: float64(hits) / float64(len(terms))})
	}
	return matches
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
