package auth_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	authPostgres "github.com/frahmantamala/finance-tracker/internal/auth/postgres"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Auth Handler Integration", func() {
	var (
		tokens  *auth.JWTTokenGenerator
		router  http.Handler
		reached bool
	)

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&userDatamodel.User{})).To(Succeed())

		hash, err := auth.HashPassword("admin123", bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.User{Email: "admin@finance.com", Name: "Administrador", PasswordHash: hash}).Error).To(Succeed())

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		tokens = auth.NewJWTTokenGenerator("secret", time.Hour)
		svc := auth.NewService(authPostgres.NewRepository(db), tokens, lg)
		handler := auth.NewHandler(transport.NewBaseHandler(lg), svc)

		reached = false
		r := chi.NewRouter()
		r.Post("/api/auth/login", handler.Login)
		r.With(handler.AuthMiddleware).Get("/protected", func(w http.ResponseWriter, r *http.Request) {
			reached = true
			p, _ := internal.PrincipalFromContext(r.Context())
			_ = json.NewEncoder(w).Encode(p)
		})
		router = r
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	get := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("POST /api/auth/login", func() {
		It("returns the token and user", func() {
			w := login(`{"email":"admin@finance.com","password":"admin123"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Token string `json:"token"`
				User  struct {
					ID    int64  `json:"id"`
					Email string `json:"email"`
					Name  string `json:"name"`
				} `json:"user"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Token).NotTo(BeEmpty())
			Expect(resp.User.Email).To(Equal("admin@finance.com"))
			Expect(resp.User.Name).To(Equal("Administrador"))
			Expect(w.Body.String()).NotTo(ContainSubstring("password"))
		})

		It("matches the email case-insensitively", func() {
			w := login(`{"email":"Admin@Finance.com","password":"admin123"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 401 for bad credentials", func() {
			w := login(`{"email":"admin@finance.com","password":"wrong"}`)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("Credenciais inválidas"))
		})

		It("returns 400 when fields are missing", func() {
			w := login(`{"email":"admin@finance.com"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("Email e senha são obrigatórios"))
		})

		It("returns 400 for a malformed body", func() {
			w := login(`{not json`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("AuthMiddleware", func() {
		It("passes the principal through", func() {
			token, err := tokens.Issue(internal.Principal{ID: 1, Email: "admin@finance.com"})
			Expect(err).NotTo(HaveOccurred())

			w := get("Bearer " + token)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(reached).To(BeTrue())
			Expect(w.Body.String()).To(ContainSubstring(`"email":"admin@finance.com"`))
		})

		DescribeTable("rejects without reaching the handler",
			func(header string) {
				w := get(header)
				Expect(w.Code).To(Equal(http.StatusUnauthorized))
				Expect(reached).To(BeFalse())
			},
			Entry("no header", ""),
			Entry("wrong scheme", "Basic abc"),
			Entry("empty bearer", "Bearer "),
			Entry("invalid token", "Bearer not-a-token"),
		)

		It("rejects an expired token with 401", func() {
			expired := auth.NewJWTTokenGenerator("secret", time.Hour)
			expired.SetClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
			token, err := expired.Issue(internal.Principal{ID: 1, Email: "admin@finance.com"})
			Expect(err).NotTo(HaveOccurred())

			w := get("Bearer " + token)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Body.String()).To(ContainSubstring("TOKEN_EXPIRED"))
			Expect(reached).To(BeFalse())
		})
	})
})
