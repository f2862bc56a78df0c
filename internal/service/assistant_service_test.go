package service

import (
	"encoding/json"
	"errors"
	"testing"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator stands in for the Gemini backend.
type fakeGenerator struct {
	text    string
	jsonOut string
	err     error
}

func (f *fakeGenerator) GenerateText(prompt string) (string, error) {
	return f.text, f.err
}

func (f *fakeGenerator) GenerateJSON(prompt string, out interface{}) error {
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.jsonOut), out)
}

func newAssistantFixture(t *testing.T, gen Generator) AssistantService {
	t.Helper()
	db := testutil.NewDB(t)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	require.NoError(t, db.Create(&model.Product{Name: "Pain", Price: 150, Stock: 3, MinStock: 5}).Error)
	return NewAssistantService(productRepo, saleRepo, gen)
}

func TestAssistant_Ask(t *testing.T) {
	t.Run("returns backend answer", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{text: "Il reste 3 baguettes."})
		assert.Equal(t, "Il reste 3 baguettes.", svc.Ask("combien de pain ?"))
	})

	t.Run("degrades to fallback on backend failure", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{err: errors.New("timeout")})
		assert.Equal(t, fallbackAnswer, svc.Ask("combien de pain ?"))
	})

	t.Run("degrades to fallback on empty answer", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{text: ""})
		assert.Equal(t, fallbackAnswer, svc.Ask("combien de pain ?"))
	})
}

func TestAssistant_RestockSuggestions(t *testing.T) {
	t.Run("returns validated suggestions", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{jsonOut: `{
			"suggestions": [
				{"productName": "Pain", "reason": "stock sous le seuil", "recommendedQuantity": 20}
			]
		}`})

		suggestions := svc.RestockSuggestions()
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Pain", suggestions[0].ProductName)
		assert.Equal(t, 20, suggestions[0].RecommendedQuantity)
	})

	t.Run("drops entries missing required fields", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{jsonOut: `{
			"suggestions": [
				{"productName": "Pain", "reason": "stock sous le seuil", "recommendedQuantity": 20},
				{"productName": "", "reason": "sans nom", "recommendedQuantity": 5},
				{"productName": "Riz", "reason": "quantité nulle", "recommendedQuantity": 0}
			]
		}`})

		suggestions := svc.RestockSuggestions()
		require.Len(t, suggestions, 1)
		assert.Equal(t, "Pain", suggestions[0].ProductName)
	})

	t.Run("empty list on backend failure", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{err: errors.New("quota exceeded")})
		assert.Empty(t, svc.RestockSuggestions())
	})

	t.Run("empty list on malformed JSON", func(t *testing.T) {
		svc := newAssistantFixture(t, &fakeGenerator{jsonOut: `not json`})
		assert.Empty(t, svc.RestockSuggestions())
	})
}
