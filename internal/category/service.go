package category

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/finance-tracker/internal"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
)

// RepositoryAPI scopes every call to the owning user. Lookups return (nil, nil)
// when no row matches both id and user.
type RepositoryAPI interface {
	List(ctx context.Context, userID int64, categoryType txtype.Type) ([]*categoryDatamodel.Category, error)
	GetByID(ctx context.Context, id, userID int64) (*categoryDatamodel.Category, error)
	Create(ctx context.Context, category *categoryDatamodel.Category) error
	Update(ctx context.Context, category *categoryDatamodel.Category) (bool, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
	// InUse reports whether any of the user's transactions reference the category.
	InUse(ctx context.Context, id, userID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ListCategories(ctx context.Context, userID int64, categoryType string) ([]*Category, error) {
	t := txtype.Type(categoryType)
	if categoryType != "" && !t.Valid() {
		return nil, errors.NewValidationError(`Tipo deve ser "income" ou "expense"`, errors.ErrCodeInvalidType)
	}

	rows, err := s.repo.List(ctx, userID, t)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, err
	}

	categories := make([]*Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, FromDataModel(row))
	}
	return categories, nil
}

func (s *Service) GetCategory(ctx context.Context, id, userID int64) (*Category, error) {
	row, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id, "user_id", userID)
		return nil, err
	}
	if row == nil {
		return nil, errors.ErrCategoryNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) CreateCategory(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("category validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	row := ToDataModel(NewCategory(userID, dto))
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("category created", "category_id", row.ID, "user_id", userID, "type", row.Type)
	return FromDataModel(row), nil
}

func (s *Service) UpdateCategory(ctx context.Context, id, userID int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("category validation failed", "error", err, "category_id", id, "user_id", userID)
		return nil, err
	}

	current, err := s.GetCategory(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Type != "" && txtype.Type(dto.Type) != current.Type {
		inUse, err := s.repo.InUse(ctx, id, userID)
		if err != nil {
			s.logger.Error("failed to check category usage", "error", err, "category_id", id, "user_id", userID)
			return nil, err
		}
		if inUse {
			s.logger.Warn("category type change rejected: category has transactions", "category_id", id, "user_id", userID)
			return nil, errors.NewValidationFieldError("type",
				"Não é possível alterar o tipo de uma categoria com transações", errors.ErrCodeInvalidType)
		}
	}

	current.ApplyUpdate(dto)
	row := ToDataModel(current)
	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id, "user_id", userID)
		return nil, err
	}
	if !updated {
		return nil, errors.ErrCategoryNotFound
	}

	return FromDataModel(row), nil
}

// DeleteCategory removes the category and detaches it from every transaction
// that referenced it.
func (s *Service) DeleteCategory(ctx context.Context, id, userID int64) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id, "user_id", userID)
		return err
	}
	if !deleted {
		return errors.ErrCategoryNotFound
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}
