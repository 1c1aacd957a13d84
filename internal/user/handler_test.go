package user_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/finance-tracker/internal"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/internal/user"
	userPostgres "github.com/frahmantamala/finance-tracker/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("User Handler Integration", func() {
	var (
		repo    *userPostgres.UserRepository
		handler *user.Handler
	)

	me := func(p *internal.Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if p != nil {
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(), *p))
		}
		w := httptest.NewRecorder()
		handler.GetCurrentUser(w, req)
		return w
	}

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{})).To(Succeed())

		repo = userPostgres.NewUserRepository(db)
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler = user.NewHandler(transport.NewBaseHandler(lg), user.NewService(repo))
	})

	It("returns the current user without the password hash", func() {
		u := &userDatamodel.User{Email: "admin@finance.com", Name: "Administrador", PasswordHash: "$2a$hash"}
		Expect(repo.Create(context.Background(), u)).To(Succeed())

		w := me(&internal.Principal{ID: u.ID, Email: u.Email})
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body["user"]).To(HaveKeyWithValue("email", "admin@finance.com"))
		Expect(body["user"]).To(HaveKeyWithValue("name", "Administrador"))
		Expect(body["user"]).To(HaveKeyWithValue("id", BeNumerically("==", u.ID)))
		Expect(body["user"]).To(HaveLen(3))
	})

	It("returns 404 when the user no longer exists", func() {
		w := me(&internal.Principal{ID: 999, Email: "ghost@finance.com"})
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("Usuário não encontrado"))
	})

	It("returns 401 without a principal", func() {
		w := me(nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
