package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sajifood/saji-cashier-station/internal/commerce"
	"github.com/sajifood/saji-cashier-station/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// MenuAPI is the slice of the commerce client the menu service needs.
type MenuAPI interface {
	ListProducts(ctx context.Context) ([]commerce.ProductResponse, error)
	ListToppings(ctx context.Context) ([]commerce.ToppingResponse, error)
}

// MenuService loads and caches the sellable menu for the terminal
type MenuService interface {
	// Load fetches products and toppings from the backend, filters inactive
	// entries and flattens variants into sellable tiles. The result replaces
	// the cached menu.
	Load(ctx context.Context) (models.Menu, error)
	// Variant looks up a cached sellable variant by id.
	Variant(id string) (models.ProductVariant, bool)
	// Topping looks up a cached active topping by id.
	Topping(id string) (models.Topping, bool)
}

// menuService is the MenuService implementation backed by the commerce client.
// The cached menu is immutable between loads.
type menuService struct {
	backend MenuAPI

	mu       sync.RWMutex
	menu     models.Menu
	variants map[string]models.ProductVariant
	toppings map[string]models.Topping
}

// NewMenuService creates a new instance of MenuService
func NewMenuService(backend MenuAPI) MenuService {
	return &menuService{backend: backend}
}

func (s *menuService) Load(ctx context.Context) (models.Menu, error) {
	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		return models.Menu{}, err
	}
	toppings, err := s.backend.ListToppings(ctx)
	if err != nil {
		return models.Menu{}, err
	}

	menu := models.Menu{}
	variantIndex := make(map[string]models.ProductVariant)
	toppingIndex := make(map[string]models.Topping)

	for _, product := range products {
		if !product.Active {
			continue
		}
		for _, v := range product.Variants {
			variant := models.ProductVariant{
				ID:          v.VariantID,
				Name:        v.VariantName,
				Price:       v.Price,
				ProductName: product.Name,
				Description: deref(product.Description),
				ImageURL:    deref(product.ImageURL),
			}
			menu.Variants = append(menu.Variants, variant)
			variantIndex[variant.ID] = variant
		}
	}

	for _, t := range toppings {
		if !t.Active {
			continue
		}
		topping := models.Topping{
			ID:       t.ToppingID,
			Name:     t.Name,
			Price:    t.Price,
			ImageURL: deref(t.ImageURL),
		}
		menu.Toppings = append(menu.Toppings, topping)
		toppingIndex[topping.ID] = topping
	}

	log.WithFields(logrus.Fields{
		"variants": len(menu.Variants),
		"toppings": len(menu.Toppings),
	}).Info("Menu loaded from backend")

	s.mu.Lock()
	s.menu = menu
	s.variants = variantIndex
	s.toppings = toppingIndex
	s.mu.Unlock()

	return menu, nil
}

func (s *menuService) Variant(id string) (models.ProductVariant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.variants[id]
	return v, ok
}

func (s *menuService) Topping(id string) (models.Topping, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.toppings[id]
	return t, ok
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
