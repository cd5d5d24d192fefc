package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/internal/events"
	"github.com/naveensh16/sweet-shop-management/internal/repository"
	"github.com/naveensh16/sweet-shop-management/pkg/mq"
)

const (
	maxPrice       = 10000.0
	maxQuantity    = 1_000_000
	maxPurchaseQty = 1000
)

type SweetSvc struct {
	repo *repository.SweetRepo
	pub  *mq.Publisher // nil when messaging is not configured
}

func NewSweetSvc(r *repository.SweetRepo, pub *mq.Publisher) *SweetSvc {
	return &SweetSvc{repo: r, pub: pub}
}

type CreateSweetInput struct {
	Name        string
	Category    string
	Price       float64
	Quantity    int
	Description string
	ImageURL    string
}

func (s *SweetSvc) Create(ctx context.Context, in CreateSweetInput) (*domain.Sweet, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateCategory(in.Category); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if in.Quantity < 0 || in.Quantity > maxQuantity {
		return nil, domain.Invalidf("quantity must be 0-%d", maxQuantity)
	}
	if len(in.Description) > 1000 {
		return nil, domain.Invalidf("description must be at most 1000 characters")
	}
	if len(in.ImageURL) > 500 {
		return nil, domain.Invalidf("image_url must be at most 500 characters")
	}
	sw := &domain.Sweet{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

func (s *SweetSvc) List(ctx context.Context, skip, limit int, inStockOnly bool) ([]domain.Sweet, error) {
	if skip < 0 {
		return nil, domain.Invalidf("skip must be non-negative")
	}
	if limit < 1 || limit > 1000 {
		return nil, domain.Invalidf("limit must be 1-1000")
	}
	return s.repo.List(ctx, skip, limit, inStockOnly)
}

type SearchParams struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	// InStockOnly defaults to true at the HTTP layer, unlike List.
	InStockOnly bool
}

func (s *SweetSvc) Search(ctx context.Context, p SearchParams) ([]domain.Sweet, error) {
	if p.MinPrice != nil && *p.MinPrice < 0 {
		return nil, domain.Invalidf("min_price must be non-negative")
	}
	if p.MaxPrice != nil && *p.MaxPrice < 0 {
		return nil, domain.Invalidf("max_price must be non-negative")
	}
	return s.repo.Search(ctx, repository.SearchFilter{
		Name:        p.Name,
		Category:    p.Category,
		MinPrice:    p.MinPrice,
		MaxPrice:    p.MaxPrice,
		InStockOnly: p.InStockOnly,
	})
}

func (s *SweetSvc) Get(ctx context.Context, id uint) (*domain.Sweet, error) {
	return s.repo.ActiveByID(ctx, id)
}

type UpdateSweetInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Quantity    *int
	Description *string
	ImageURL    *string
	IsActive    *bool
}

// Update applies only the supplied fields. It deliberately works on inactive
// records too, so an admin can revive one via is_active.
func (s *SweetSvc) Update(ctx context.Context, id uint, in UpdateSweetInput) (*domain.Sweet, error) {
	fields := map[string]any{}
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
		fields["name"] = *in.Name
	}
	if in.Category != nil {
		if err := validateCategory(*in.Category); err != nil {
			return nil, err
		}
		fields["category"] = *in.Category
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		fields["price"] = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 || *in.Quantity > maxQuantity {
			return nil, domain.Invalidf("quantity must be 0-%d", maxQuantity)
		}
		fields["quantity"] = *in.Quantity
	}
	if in.Description != nil {
		if len(*in.Description) > 1000 {
			return nil, domain.Invalidf("description must be at most 1000 characters")
		}
		fields["description"] = *in.Description
	}
	if in.ImageURL != nil {
		if len(*in.ImageURL) > 500 {
			return nil, domain.Invalidf("image_url must be at most 500 characters")
		}
		fields["image_url"] = *in.ImageURL
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

func (s *SweetSvc) Delete(ctx context.Context, id uint) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *SweetSvc) Purchase(ctx context.Context, actor domain.Identity, id uint, qty int) (*domain.Sweet, error) {
	if qty < 1 || qty > maxPurchaseQty {
		return nil, domain.Invalidf("purchase quantity must be 1-%d", maxPurchaseQty)
	}
	sw, err := s.repo.PurchaseStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	if s.pub != nil {
		_ = s.pub.PublishJSON(ctx, events.RKSweetPurchased, events.SweetPurchased{
			EventID:   uuid.NewString(),
			SweetID:   sw.ID,
			Name:      sw.Name,
			Quantity:  qty,
			Remaining: sw.Quantity,
			BuyerID:   actor.UserID,
		})
		if sw.Quantity == 0 {
			_ = s.pub.PublishJSON(ctx, events.RKSweetOutOfStock, events.SweetOutOfStock{
				EventID: uuid.NewString(),
				SweetID: sw.ID,
				Name:    sw.Name,
			})
		}
	}
	return sw, nil
}

func (s *SweetSvc) Restock(ctx context.Context, actor domain.Identity, id uint, qty int) (*domain.Sweet, error) {
	if qty < 1 || qty > maxQuantity {
		return nil, domain.Invalidf("restock quantity must be 1-%d", maxQuantity)
	}
	sw, err := s.repo.RestockStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}
	if s.pub != nil {
		_ = s.pub.PublishJSON(ctx, events.RKSweetRestocked, events.SweetRestocked{
			EventID:  uuid.NewString(),
			SweetID:  sw.ID,
			Name:     sw.Name,
			Quantity: qty,
			Total:    sw.Quantity,
			AdminID:  actor.UserID,
		})
	}
	return sw, nil
}

func validateName(name string) error {
	if len(name) < 1 || len(name) > 200 {
		return domain.Invalidf("name must be 1-200 characters")
	}
	return nil
}

func validateCategory(category string) error {
	if len(category) < 1 || len(category) > 100 {
		return domain.Invalidf("category must be 1-100 characters")
	}
	return nil
}

func validatePrice(price float64) error {
	if price <= 0 || price > maxPrice {
		return domain.Invalidf("price must be greater than 0 and at most %.0f", maxPrice)
	}
	return nil
}
