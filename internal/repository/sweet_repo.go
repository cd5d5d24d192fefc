package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
)

type SweetRepo struct{ db *gorm.DB }

func NewSweetRepo(db *gorm.DB) *SweetRepo {
	return &SweetRepo{db: db}
}

func (r *SweetRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Sweet{})
}

func (r *SweetRepo) Create(ctx context.Context, s *domain.Sweet) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// ByID returns the record regardless of active state (the admin update path).
func (r *SweetRepo) ByID(ctx context.Context, id uint) (*domain.Sweet, error) {
	var s domain.Sweet
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ActiveByID is the read path: soft-deleted records are invisible here.
func (r *SweetRepo) ActiveByID(ctx context.Context, id uint) (*domain.Sweet, error) {
	var s domain.Sweet
	if err := r.db.WithContext(ctx).First(&s, "id = ? AND is_active = ?", id, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SweetRepo) List(ctx context.Context, skip, limit int, inStockOnly bool) ([]domain.Sweet, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Sweet{}).Where("is_active = ?", true)
	if inStockOnly {
		qb = qb.Where("quantity > 0")
	}
	var out []domain.Sweet
	if err := qb.Order("id ASC").Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type SearchFilter struct {
	Name        string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
}

// Search matches name/category as case-insensitive substrings. lower(...) LIKE
// keeps the query portable between Postgres and the SQLite test store.
func (r *SweetRepo) Search(ctx context.Context, f SearchFilter) ([]domain.Sweet, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Sweet{}).Where("is_active = ?", true)
	if f.Name != "" {
		qb = qb.Where("lower(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Category != "" {
		qb = qb.Where("lower(category) LIKE ?", "%"+strings.ToLower(f.Category)+"%")
	}
	if f.MinPrice != nil {
		qb = qb.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		qb = qb.Where("price <= ?", *f.MaxPrice)
	}
	if f.InStockOnly {
		qb = qb.Where("quantity > 0")
	}
	var out []domain.Sweet
	if err := qb.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFields applies a partial update inside a transaction. The record does
// not have to be active: setting is_active true here is one of the two
// reactivation paths.
func (r *SweetRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&domain.Sweet{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&s, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SoftDelete marks the record inactive. Already-inactive records are a no-op,
// not an error.
func (r *SweetRepo) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&domain.Sweet{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PurchaseStock decrements quantity with a conditional single-statement
// UPDATE, so two racing purchases serialize at the store and the quantity can
// never go negative. When the guard fails, the row is re-read to tell a
// missing/inactive sweet from an empty shelf from plain short stock.
func (r *SweetRepo) PurchaseStock(ctx context.Context, id uint, qty int) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Sweet{}).
			Where("id = ? AND is_active = ? AND quantity >= ?", id, true, qty).
			Update("quantity", gorm.Expr("quantity - ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var cur domain.Sweet
			if err := tx.First(&cur, "id = ? AND is_active = ?", id, true).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrNotFound
				}
				return err
			}
			if cur.Quantity == 0 {
				return domain.ErrOutOfStock
			}
			return &domain.InsufficientStockError{Available: cur.Quantity, Requested: qty}
		}
		return tx.First(&s, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RestockStock increments quantity and unconditionally reactivates the record,
// whatever its prior state.
func (r *SweetRepo) RestockStock(ctx context.Context, id uint, qty int) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Sweet{}).Where("id = ?", id).Updates(map[string]any{
			"quantity":  gorm.Expr("quantity + ?", qty),
			"is_active": true,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.First(&s, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}
