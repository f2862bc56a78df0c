package service

import (
	"errors"
	"fmt"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	AddProduct(draft *model.ProductDraft) (*model.Product, error)
	UpdateProduct(id uuid.UUID, patch *model.ProductPatch) (*model.Product, error)
	RemoveProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(query string) ([]model.Product, error)
	ListLowStock() ([]model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		wsHub:       hub,
	}
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on '%s'", model.ErrInvalidInput, first.FailedField, first.Tag)
}

func (s *catalogService) AddProduct(draft *model.ProductDraft) (*model.Product, error) {
	if errs := validator.ValidateStruct(draft); len(errs) > 0 {
		return nil, validationError(errs)
	}

	product := &model.Product{
		Name:      draft.Name,
		Category:  draft.Category,
		Price:     draft.Price,
		CostPrice: draft.CostPrice,
		Stock:     draft.Stock,
		MinStock:  draft.MinStock,
		Unit:      draft.Unit,
		Barcode:   draft.Barcode,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.wsHub.Publish("product_created", product)
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, patch *model.ProductPatch) (*model.Product, error) {
	if errs := validator.ValidateStruct(patch); len(errs) > 0 {
		return nil, validationError(errs)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}

	patch.Apply(product)
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.wsHub.Publish("product_updated", product)
	return product, nil
}

// RemoveProduct deletes a catalog entry. Historical sales keep the product
// id; nothing cascades into the ledger.
func (s *catalogService) RemoveProduct(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrProductNotFound
		}
		return err
	}

	s.wsHub.Publish("product_deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns the whole catalog, or the subsequence matching the
// search term over name and category.
func (s *catalogService) ListProducts(query string) ([]model.Product, error) {
	if query == "" {
		return s.productRepo.FindAll()
	}
	return s.productRepo.Search(query)
}

func (s *catalogService) ListLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}
