package service

import (
	"encoding/json"
	"fmt"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/validator"
)

// fallbackAnswer is shown whenever the advisory service is unreachable.
const fallbackAnswer = "Désolé, je ne peux pas traiter votre demande pour le moment."

// Generator is the advisory text backend (Gemini in production).
type Generator interface {
	GenerateText(prompt string) (string, error)
	GenerateJSON(prompt string, out interface{}) error
}

// AssistantService is strictly advisory: it reads catalog and sales state
// and never returns an error to its callers. Any backend failure degrades
// to a fallback answer or an empty suggestion list so the register keeps
// working without it.
type AssistantService interface {
	Ask(query string) string
	RestockSuggestions() []model.RestockSuggestion
}

type assistantService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	generator   Generator
}

func NewAssistantService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, gen Generator) AssistantService {
	return &assistantService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		generator:   gen,
	}
}

func (s *assistantService) Ask(query string) string {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return fallbackAnswer
	}

	inventory, err := json.Marshal(products)
	if err != nil {
		return fallbackAnswer
	}

	prompt := fmt.Sprintf(`Voici l'inventaire actuel de l'alimentation: %s.
L'utilisateur demande: %q.
Réponds de manière concise et professionnelle en français.`, inventory, query)

	answer, err := s.generator.GenerateText(prompt)
	if err != nil || answer == "" {
		return fallbackAnswer
	}
	return answer
}

// RestockSuggestions asks the backend for structured restocking advice and
// keeps only entries matching the required schema.
func (s *assistantService) RestockSuggestions() []model.RestockSuggestion {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return []model.RestockSuggestion{}
	}
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return []model.RestockSuggestion{}
	}

	inventory, err := json.Marshal(products)
	if err != nil {
		return []model.RestockSuggestion{}
	}
	history, err := json.Marshal(sales)
	if err != nil {
		return []model.RestockSuggestion{}
	}

	prompt := fmt.Sprintf(`Analyse l'inventaire et les ventes pour suggérer des réapprovisionnements.
Inventaire: %s.
Ventes: %s.
Réponds uniquement en JSON de la forme {"suggestions": [{"productName": string, "reason": string, "recommendedQuantity": number}]}.`,
		inventory, history)

	var advice model.RestockAdvice
	if err := s.generator.GenerateJSON(prompt, &advice); err != nil {
		return []model.RestockSuggestion{}
	}

	// Reject malformed entries instead of trusting the external shape.
	valid := make([]model.RestockSuggestion, 0, len(advice.Suggestions))
	for _, sg := range advice.Suggestions {
		if errs := validator.ValidateStruct(&sg); len(errs) > 0 {
			continue
		}
		valid = append(valid, sg)
	}
	return valid
}
