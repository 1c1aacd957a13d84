package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	transactionDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context, userID int64, categoryType txtype.Type) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryType != "" {
		q = q.Where("type = ?", string(categoryType))
	}
	err := q.Order("name ASC").Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id, userID int64) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *categoryDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *CategoryRepository) Update(ctx context.Context, cat *categoryDatamodel.Category) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&categoryDatamodel.Category{}).
		Where("id = ? AND user_id = ?", cat.ID, cat.UserID).
		Updates(map[string]interface{}{
			"name":  cat.Name,
			"type":  cat.Type,
			"color": cat.Color,
			"icon":  cat.Icon,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete detaches the category from the owner's transactions and removes it in
// one database transaction, so the result does not depend on FK support.
func (r *CategoryRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&transactionDatamodel.Transaction{}).
			Where("category_id = ? AND user_id = ?", id, userID).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&categoryDatamodel.Category{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func (r *CategoryRepository) InUse(ctx context.Context, id, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&transactionDatamodel.Transaction{}).
		Where("category_id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}
