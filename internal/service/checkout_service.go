package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/ws"

	"gorm.io/gorm"
)

type CheckoutService interface {
	Checkout(sessionID, paymentMethod string) (*model.Sale, error)
}

type checkoutService struct {
	carts       CartService
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCheckoutService(carts CartService, pRepo repository.ProductRepository, sRepo repository.SaleRepository, db *gorm.DB, hub *ws.Hub) CheckoutService {
	return &checkoutService{
		carts:       carts,
		productRepo: pRepo,
		saleRepo:    sRepo,
		db:          db,
		wsHub:       hub,
	}
}

// Checkout commits the session's cart as one sale. Ledger append and stock
// decrements happen inside a single database transaction: either the whole
// sale lands or nothing does. The cart is cleared only after the commit.
func (s *checkoutService) Checkout(sessionID, paymentMethod string) (*model.Sale, error) {
	if paymentMethod != model.PaymentCash && paymentMethod != model.PaymentMobile {
		return nil, model.ErrCheckoutNotReady
	}

	lines := s.carts.Lines(sessionID)
	if len(lines) == 0 {
		return nil, model.ErrCheckoutNotReady
	}

	var sale *model.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := make([]model.SaleItem, 0, len(lines))
		products := make([]*model.Product, 0, len(lines))
		var total int64

		// Revalidate every line against current stock before touching
		// anything: stock may have moved since the line was added.
		for _, line := range lines {
			product, err := s.productRepo.FindForUpdate(tx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.ErrProductNotFound
				}
				return err
			}

			if line.Quantity > product.Stock {
				return &model.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}

			// Freeze the unit price now; later catalog edits must not
			// reach the ledger.
			items = append(items, model.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				PriceAtSale: product.Price,
			})
			total += int64(line.Quantity) * product.Price
			products = append(products, product)
		}

		sale = &model.Sale{
			Items:         items,
			Total:         total,
			PaymentMethod: paymentMethod,
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		for i, line := range lines {
			newStock := products[i].Stock - line.Quantity
			if newStock < 0 {
				newStock = 0 // unreachable after validation, guards a race
			}
			if err := s.productRepo.UpdateStock(tx, line.ProductID, newStock); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.carts.Clear(sessionID)

	s.wsHub.Publish("sale_committed", map[string]interface{}{
		"sale_id":        sale.ID,
		"total":          sale.Total,
		"payment_method": sale.PaymentMethod,
		"item_count":     len(sale.Items),
	})

	return sale, nil
}
