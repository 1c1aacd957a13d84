package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	users map[string]*userDatamodel.User
	err   error
	calls int
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.users[email], nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockUserRepository
		tokens  *auth.JWTTokenGenerator
		service *auth.Service
	)

	BeforeEach(func() {
		hash, err := auth.HashPassword("admin123", bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &mockUserRepository{users: map[string]*userDatamodel.User{
			"admin@finance.com": {ID: 1, Email: "admin@finance.com", Name: "Administrador", PasswordHash: hash},
		}}
		tokens = auth.NewJWTTokenGenerator("secret", time.Hour)
		service = auth.NewService(repo, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Authenticate", func() {
		It("returns a token and the user summary", func() {
			resp, err := service.Authenticate(context.Background(), auth.LoginDTO{Email: "admin@finance.com", Password: "admin123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.User).To(Equal(auth.UserSummary{ID: 1, Email: "admin@finance.com", Name: "Administrador"}))

			p, err := service.VerifyToken(resp.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(internal.Principal{ID: 1, Email: "admin@finance.com"}))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(context.Background(), auth.LoginDTO{Email: "admin@finance.com", Password: "nope"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("rejects an unknown email with the same error", func() {
			_, err := service.Authenticate(context.Background(), auth.LoginDTO{Email: "ghost@finance.com", Password: "admin123"})
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		DescribeTable("missing fields never reach the store",
			func(dto auth.LoginDTO) {
				_, err := service.Authenticate(context.Background(), dto)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(appErr.Code).To(Equal(internal.ErrCodeMissingFields))
				Expect(repo.calls).To(BeZero())
			},
			Entry("no email", auth.LoginDTO{Password: "admin123"}),
			Entry("no password", auth.LoginDTO{Email: "admin@finance.com"}),
			Entry("blank email", auth.LoginDTO{Email: "   ", Password: "x"}),
		)

		It("propagates store failures", func() {
			repo.err = errors.New("connection refused")
			_, err := service.Authenticate(context.Background(), auth.LoginDTO{Email: "admin@finance.com", Password: "admin123"})
			Expect(err).To(MatchError("connection refused"))
		})
	})

	Describe("HashPassword", func() {
		It("falls back to the default cost when out of range", func() {
			hash, err := auth.HashPassword("pw", 99)
			Expect(err).NotTo(HaveOccurred())
			cost, err := bcrypt.Cost([]byte(hash))
			Expect(err).NotTo(HaveOccurred())
			Expect(cost).To(Equal(bcrypt.DefaultCost))
		})
	})
})
