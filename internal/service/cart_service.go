package service

import (
	"errors"
	"fmt"
	"sync"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartLineView is a cart line joined with live product data for display.
type CartLineView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   int64     `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Subtotal    int64     `json:"subtotal"`
}

// CartView is the register's view of a session cart. The total is a live
// quote from current prices, not yet frozen.
type CartView struct {
	Lines []CartLineView `json:"lines"`
	Total int64          `json:"total"`
}

type CartService interface {
	AddLine(sessionID string, productID uuid.UUID, quantity int) error
	RemoveLine(sessionID string, productID uuid.UUID)
	Clear(sessionID string)
	Lines(sessionID string) []model.CartLine
	View(sessionID string) (*CartView, error)
}

// cartService keeps one in-memory cart per session. Carts are never
// persisted; each is owned by its session.
type cartService struct {
	productRepo repository.ProductRepository
	carts       map[string]*model.Cart
	mutex       sync.Mutex
}

func NewCartService(pRepo repository.ProductRepository) CartService {
	return &cartService{
		productRepo: pRepo,
		carts:       make(map[string]*model.Cart),
	}
}

func (s *cartService) cart(sessionID string) *model.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &model.Cart{}
		s.carts[sessionID] = c
	}
	return c
}

// AddLine coalesces repeated products into one line and rejects quantities
// that would exceed the product's current stock. On rejection the cart is
// left unchanged.
func (s *cartService) AddLine(sessionID string, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", model.ErrInvalidInput)
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrProductNotFound
		}
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	cart := s.cart(sessionID)
	pending := quantity
	if line := cart.Line(productID); line != nil {
		pending += line.Quantity
	}

	if product.Stock <= 0 || pending > product.Stock {
		return &model.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   pending,
			Available:   product.Stock,
		}
	}

	if line := cart.Line(productID); line != nil {
		line.Quantity = pending
	} else {
		cart.Lines = append(cart.Lines, model.CartLine{ProductID: productID, Quantity: quantity})
	}
	return nil
}

func (s *cartService) RemoveLine(sessionID string, productID uuid.UUID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cart(sessionID).RemoveLine(productID)
}

func (s *cartService) Clear(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cart(sessionID).Clear()
}

// Lines returns a copy of the session's pending lines.
func (s *cartService) Lines(sessionID string) []model.CartLine {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	src := s.cart(sessionID).Lines
	lines := make([]model.CartLine, len(src))
	copy(lines, src)
	return lines
}

// View quotes the cart against live catalog prices. Lines whose product has
// been removed since they were added are shown with a zero price; checkout
// will reject them properly.
func (s *cartService) View(sessionID string) (*CartView, error) {
	view := &CartView{Lines: []CartLineView{}}

	for _, line := range s.Lines(sessionID) {
		lv := CartLineView{ProductID: line.ProductID, Quantity: line.Quantity}
		if product, err := s.productRepo.FindByID(line.ProductID); err == nil {
			lv.ProductName = product.Name
			lv.UnitPrice = product.Price
			lv.Subtotal = int64(line.Quantity) * product.Price
		}
		view.Total += lv.Subtotal
		view.Lines = append(view.Lines, lv)
	}

	return view, nil
}
