package catalog

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/derob357/sisters-promise/internal/sanitize"
	"github.com/derob357/sisters-promise/internal/square"
)

// maxProducts bounds the listing response regardless of upstream size.
const maxProducts = 100

// minIDLength is the shortest id accepted before an upstream lookup is
// attempted.
const minIDLength = 5

// Product is the client-facing product shape.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Variations  []PriceVariation `json:"variations"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	CategoryID  string           `json:"categoryId,omitempty"`
}

// PriceVariation is a purchasable variant with its price in minor units.
type PriceVariation struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Provider is the upstream catalog dependency.
type Provider interface {
	ListItems(ctx context.Context) ([]square.CatalogObject, error)
	GetItem(ctx context.Context, id string) (*square.CatalogObject, error)
}

// Service implements catalog read operations.
type Service struct {
	provider Provider
}

// NewService creates a catalog service backed by the given provider.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// List returns up to maxProducts products from the upstream catalog.
// Non-ITEM objects in the listing are skipped.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	objects, err := s.provider.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	products := make([]Product, 0, len(objects))
	for _, obj := range objects {
		if obj.Type != "ITEM" || obj.ItemData == nil {
			continue
		}
		products = append(products, mapProduct(obj))
		if len(products) == maxProducts {
			break
		}
	}
	return products, nil
}

// Get returns a single product. The id is sanitized and validated before
// any upstream call; an upstream object that is not an ITEM is reported
// as ErrNotFound, not as a failure.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	id = sanitize.CleanMax(id, sanitize.MaxProductID)
	if utf8.RuneCountInString(id) < minIDLength {
		return nil, ErrInvalidID
	}

	obj, err := s.provider.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, square.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching product %s: %w", id, err)
	}
	if obj.Type != "ITEM" || obj.ItemData == nil {
		return nil, ErrNotFound
	}

	p := mapProduct(*obj)
	return &p, nil
}

func mapProduct(obj square.CatalogObject) Product {
	p := Product{
		ID:          obj.ID,
		Name:        obj.ItemData.Name,
		Description: obj.ItemData.Description,
		Variations:  []PriceVariation{},
		CategoryID:  obj.ItemData.CategoryID,
	}
	if len(obj.ItemData.EcomImageURIs) > 0 {
		p.ImageURL = obj.ItemData.EcomImageURIs[0]
	}
	for _, v := range obj.ItemData.Variations {
		if v.ItemVariationData == nil || v.ItemVariationData.PriceMoney == nil {
			continue
		}
		p.Variations = append(p.Variations, PriceVariation{
			ID:       v.ID,
			Name:     v.ItemVariationData.Name,
			Amount:   v.ItemVariationData.PriceMoney.Amount,
			Currency: v.ItemVariationData.PriceMoney.Currency,
		})
	}
	return p
}
