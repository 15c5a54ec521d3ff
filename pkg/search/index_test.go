package search_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/search"
)

func indexProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Dell XPS 13", Category: "Laptop", Brand: "Dell", Price: 1299.99, Specifications: "16GB RAM", Features: "ultrabook"},
		{ID: 2, Name: "Sony WH-1000XM5", Category: "Headphones", Brand: "Sony", Price: 399.99, Specifications: "30h battery", Features: "noise cancelling"},
		{ID: 3, Name: "Apple iPad Air", Category: "Tablet", Brand: "Apple", Price: 749.00, Specifications: "11-inch", Features: "pencil support"},
	}
}

// fakeEmbedder maps known words onto fixed axes.
type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	v := make([]float32, 3)
	lower := strings.ToLower(text)
	for i, word := range []string{"laptop", "headphones", "tablet"} {
		if strings.Contains(lower, word) {
			v[i] = 1
		}
	}
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func TestIndex_Lexical(t *testing.T) {
	ix, err := search.Build(context.Background(), indexProducts(), nil)
	require.NoError(t, err)

	matches, err := ix.Query(context.Background(), "noise cancelling headphones", 3)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Sony WH-1000XM5", matches[0].Product.Name)
}

func TestIndex_LexicalNoHits(t *testing.T) {
	ix, err := search.Build(context.Background(), indexProducts(), nil)
	require.NoError(t, err)

	matches, err := ix.Query(context.Background(), "submarine", 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndex_DefaultK(t *testing.T) {
	ix, err := search.Build(context.Background(), indexProducts(), nil)
	require.NoError(t, err)

	// Every description contains a brand or category word from the query.
	matches, err := ix.Query(context.Background(), "laptop headphones tablet", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 3)
}

func TestIndex_Vector(t *testing.T) {
	ix, err := search.Build(context.Background(), indexProducts(), &fakeEmbedder{})
	require.NoError(t, err)

	matches, err := ix.Query(context.Background(), "a good tablet for drawing", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Apple iPad Air", matches[0].Product.Name)
	assert.Greater(t, matches[0].Score, 0.9)
}

func TestIndex_BuildEmbedFailure(t *testing.T) {
	_, err := search.Build(context.Background(), indexProducts(), &fakeEmbedder{err: errors.New("down")})
	assert.Error(t, err)
}

func TestIndex_QueryEmbedFailure(t *testing.T) {
	emb := &fakeEmbedder{}
	ix, err := search.Build(context.Background(), indexProducts(), emb)
	require.NoError(t, err)

	emb.err = errors.New("down")
	_, err = ix.Query(context.Background(), "tablet", 3)
	assert.ErrorIs(t, err, domain.ErrCollaborator)
}

func TestNextQuestion(t *testing.T) {
	tests := []struct {
		name      string
		questions []string
		answers   []string
		want      string
	}{
		{"Opening", nil, nil, "What is your budget range?"},
		{"Low Budget", []string{"What is your budget range?"}, []string{"pretty low"}, "Do you prefer a refurbished or new product?"},
		{"High Budget", []string{"What is your budget range?"}, []string{"high end"}, "Are you looking for gaming or business use?"},
		{"Vague Budget", []string{"What is your budget range?"}, []string{"not sure"}, "Can you specify your preferred price range?"},
		{"Past Budget", []string{"Are you looking for gaming or business use?"}, []string{"gaming"}, "Would you like more details on any of these products?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, search.NextQuestion(tt.questions, tt.answers))
		})
	}
}
