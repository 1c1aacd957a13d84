package transaction

import (
	"context"
	stderrors "errors"
	"log/slog"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/category"
	transactionDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/transaction"
)

// RepositoryAPI scopes every call to the owning user. Lookups return (nil, nil)
// when no row matches both id and user.
type RepositoryAPI interface {
	List(ctx context.Context, userID int64, filter Filter) ([]*transactionDatamodel.TransactionWithCategory, error)
	GetByID(ctx context.Context, id, userID int64) (*transactionDatamodel.TransactionWithCategory, error)
	Create(ctx context.Context, tx *transactionDatamodel.Transaction) error
	Update(ctx context.Context, tx *transactionDatamodel.Transaction) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
}

// CategoryLookup resolves a category owned by the user.
type CategoryLookup interface {
	GetCategory(ctx context.Context, id, userID int64) (*category.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryLookup
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

func (s *Service) ListTransactions(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error) {
	rows, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		return nil, err
	}

	transactions := make([]*Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, FromDataModel(row))
	}
	return transactions, nil
}

func (s *Service) GetTransaction(ctx context.Context, id, userID int64) (*Transaction, error) {
	row, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", id, "user_id", userID)
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrTransactionNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateTransaction(ctx context.Context, userID int64, dto CreateTransactionDTO) (*Transaction, error) {
	date, err := dto.Validate()
	if err != nil {
		s.logger.Warn("transaction validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	tx := NewTransaction(userID, dto, date)
	if err := s.checkCategory(ctx, tx); err != nil {
		return nil, err
	}

	row := ToDataModel(tx)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("transaction created",
		"transaction_id", row.ID,
		"user_id", userID,
		"type", row.Type,
		"amount", row.Amount.String())

	return s.GetTransaction(ctx, row.ID, userID)
}

func (s *Service) UpdateTransaction(ctx context.Context, id, userID int64, dto UpdateTransactionDTO) (*Transaction, error) {
	date, err := dto.Validate()
	if err != nil {
		s.logger.Warn("transaction validation failed", "error", err, "transaction_id", id, "user_id", userID)
		return nil, err
	}

	current, err := s.GetTransaction(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	current.ApplyUpdate(dto, date)
	// an untouched type/category pair was valid when it was stored
	if dto.Type != "" || dto.CategoryID.Set {
		if err := s.checkCategory(ctx, current); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, ToDataModel(current))
	if err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id, "user_id", userID)
		return nil, err
	}
	if !updated {
		return nil, errors.ErrTransactionNotFound
	}

	return s.GetTransaction(ctx, id, userID)
}

func (s *Service) DeleteTransaction(ctx context.Context, id, userID int64) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id, "user_id", userID)
		return err
	}
	if !deleted {
		return errors.ErrTransactionNotFound
	}

	s.logger.Info("transaction deleted", "transaction_id", id, "user_id", userID)
	return nil
}

// checkCategory requires a referenced category to be owned by the user and to
// share the transaction's type.
func (s *Service) checkCategory(ctx context.Context, tx *Transaction) error {
	if tx.CategoryID == nil {
		return nil
	}

	cat, err := s.categories.GetCategory(ctx, *tx.CategoryID, tx.UserID)
	if err != nil {
		if stderrors.Is(err, errors.ErrCategoryNotFound) {
			return errors.NewValidationFieldError("category_id", "Categoria inválida", errors.ErrCodeInvalidCategory)
		}
		return err
	}

	if cat.Type != tx.Type {
		return errors.NewValidationFieldError("category_id",
			"Tipo da categoria não corresponde ao tipo da transação", errors.ErrCodeInvalidCategory)
	}
	return nil
}
