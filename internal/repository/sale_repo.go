package repository

import (
	"time"

	"go-retail-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository is append-only: sales are written once at checkout and
// never updated or deleted.
type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	RevenueBetween(start, end time.Time) (int64, error)
	GetSalesMovement(start, end time.Time) ([]SalesMovementData, error)
	GetDashboardStats(dayStart time.Time) (*DashboardStats, error)
}

// SalesMovementData is one chart bucket: revenue and sale count per day.
type SalesMovementData struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Count   int    `json:"count"`
}

// DashboardStats for the overview cards.
type DashboardStats struct {
	TotalStockValue int64 `json:"total_stock_value"` // SUM(stock * price)
	DailyRevenue    int64 `json:"daily_revenue"`
	LowStockCount   int64 `json:"low_stock_count"`
	EstimatedMargin int64 `json:"estimated_margin"` // SUM(stock * (price - cost_price))
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create appends the sale within tx so the ledger entry commits together
// with the stock decrements.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

// FindAll returns the history most-recent-first for display.
func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) RevenueBetween(start, end time.Time) (int64, error) {
	var revenue int64
	err := r.db.Model(&model.Sale{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// GetSalesMovement aggregates committed sales per day for the chart.
func (r *saleRepo) GetSalesMovement(start, end time.Time) ([]SalesMovementData, error) {
	var results []SalesMovementData

	rows, err := r.db.Model(&model.Sale{}).
		Select("DATE(created_at) as date, COALESCE(SUM(total), 0) as revenue, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesMovementData
		if err := rows.Scan(&data.Date, &data.Revenue, &data.Count); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *saleRepo) GetDashboardStats(dayStart time.Time) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * price), 0)").
		Scan(&stats.TotalStockValue).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock * (price - cost_price)), 0)").
		Scan(&stats.EstimatedMargin).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("stock <= min_stock").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	var err error
	stats.DailyRevenue, err = r.RevenueBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
