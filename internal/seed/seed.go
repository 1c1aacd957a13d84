// Package seed installs the default administrator and their starter categories.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"gorm.io/gorm"
)

type DefaultCategory struct {
	Name  string
	Type  txtype.Type
	Color string
	Icon  string
}

var DefaultCategories = []DefaultCategory{
	{Name: "Salário", Type: txtype.Income, Color: "#10b981", Icon: "dollar-sign"},
	{Name: "Freelance", Type: txtype.Income, Color: "#3b82f6", Icon: "briefcase"},
	{Name: "Investimentos", Type: txtype.Income, Color: "#8b5cf6", Icon: "trending-up"},
	{Name: "Alimentação", Type: txtype.Expense, Color: "#ef4444", Icon: "utensils"},
	{Name: "Transporte", Type: txtype.Expense, Color: "#f59e0b", Icon: "car"},
	{Name: "Moradia", Type: txtype.Expense, Color: "#6366f1", Icon: "home"},
	{Name: "Lazer", Type: txtype.Expense, Color: "#ec4899", Icon: "smile"},
	{Name: "Saúde", Type: txtype.Expense, Color: "#14b8a6", Icon: "heart"},
}

type Result struct {
	UserID            int64
	UserCreated       bool
	CategoriesCreated int
}

type Seeder struct {
	db         *gorm.DB
	bcryptCost int
	logger     *slog.Logger
}

func NewSeeder(db *gorm.DB, bcryptCost int, logger *slog.Logger) *Seeder {
	return &Seeder{db: db, bcryptCost: bcryptCost, logger: logger}
}

// Run is idempotent. An existing admin is left untouched, including their
// categories, so a user who deleted a default category does not get it back.
func (s *Seeder) Run(ctx context.Context, cfg internal.SeedConfig) (*Result, error) {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return nil, errors.New("seed: admin email and password are required")
	}

	res := &Result{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing userDatamodel.User
		err := tx.Where("LOWER(email) = ?", strings.ToLower(email)).First(&existing).Error
		if err == nil {
			res.UserID = existing.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup admin: %w", err)
		}

		hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin := &userDatamodel.User{Email: email, Name: cfg.AdminName, PasswordHash: hash}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("insert admin: %w", err)
		}
		res.UserID = admin.ID
		res.UserCreated = true

		categories := make([]*categoryDatamodel.Category, 0, len(DefaultCategories))
		for _, c := range DefaultCategories {
			icon := c.Icon
			categories = append(categories, &categoryDatamodel.Category{
				UserID: admin.ID,
				Name:   c.Name,
				Type:   string(c.Type),
				Color:  c.Color,
				Icon:   &icon,
			})
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("insert default categories: %w", err)
		}
		res.CategoriesCreated = len(categories)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.UserCreated {
		s.logger.Info("seeded admin user", "email", email, "user_id", res.UserID, "categories", res.CategoriesCreated)
	} else {
		s.logger.Info("admin user already exists, skipping seed", "email", email, "user_id", res.UserID)
	}
	return res, nil
}
