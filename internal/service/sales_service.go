package service

import (
	"errors"
	"time"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalesService interface {
	GetAllSales() ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
	GetDailyRevenue() (int64, error)
}

type salesService struct {
	saleRepo repository.SaleRepository
}

func NewSalesService(sRepo repository.SaleRepository) SalesService {
	return &salesService{saleRepo: sRepo}
}

func (s *salesService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *salesService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

// GetDailyRevenue sums today's committed sales.
func (s *salesService) GetDailyRevenue() (int64, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.saleRepo.RevenueBetween(dayStart, dayStart.AddDate(0, 0, 1))
}
