package postgres

import (
	"context"

	transactionDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-tracker/internal/transaction"
	"gorm.io/gorm"
)

const joinedColumns = "t.*, c.name AS category_name, c.color AS category_color, c.icon AS category_icon"

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.RepositoryAPI {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) joined(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions AS t").
		Select(joinedColumns).
		Joins("LEFT JOIN categories c ON c.id = t.category_id AND c.user_id = t.user_id").
		Where("t.user_id = ?", userID)
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter) ([]*transactionDatamodel.TransactionWithCategory, error) {
	q := r.joined(ctx, userID)
	if filter.StartDate != nil {
		q = q.Where("t.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("t.date <= ?", *filter.EndDate)
	}
	if filter.Type != "" {
		q = q.Where("t.type = ?", string(filter.Type))
	}
	if filter.CategoryID != nil {
		q = q.Where("t.category_id = ?", *filter.CategoryID)
	}

	var rows []*transactionDatamodel.TransactionWithCategory
	err := q.Order("t.date DESC").Order("t.created_at DESC").Order("t.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id, userID int64) (*transactionDatamodel.TransactionWithCategory, error) {
	var rows []*transactionDatamodel.TransactionWithCategory
	err := r.joined(ctx, userID).Where("t.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *transactionDatamodel.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *TransactionRepository) Update(ctx context.Context, tx *transactionDatamodel.Transaction) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&transactionDatamodel.Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Updates(map[string]interface{}{
			"amount":      tx.Amount,
			"description": tx.Description,
			"type":        tx.Type,
			"date":        tx.Date,
			"category_id": tx.CategoryID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&transactionDatamodel.Transaction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
