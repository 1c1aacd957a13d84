package category_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/category"
	categoryPostgres "github.com/frahmantamala/finance-tracker/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/category"
	transactionDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func asUser(userID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := internal.ContextWithPrincipal(r.Context(), internal.Principal{ID: userID, Email: "user@finance.com"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRouter(handler *category.Handler, userID int64) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(userID))
	r.Get("/categories", handler.ListCategories)
	r.Post("/categories", handler.CreateCategory)
	r.Get("/categories/{id}", handler.GetCategory)
	r.Put("/categories/{id}", handler.UpdateCategory)
	r.Delete("/categories/{id}", handler.DeleteCategory)
	return r
}

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *category.Handler
		router  http.Handler
		slogger *slog.Logger
	)

	do := func(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(&categoryDatamodel.Category{}, &transactionDatamodel.Transaction{})
		Expect(err).NotTo(HaveOccurred())

		repo := categoryPostgres.NewCategoryRepository(db)
		service := category.NewService(repo, slogger)
		handler = category.NewHandler(transport.NewBaseHandler(slogger), service)
		router = newRouter(handler, 1)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("should create and list categories ordered by name", func() {
		for _, name := range []string{"Transporte", "Alimentação", "Moradia"} {
			w := do(router, http.MethodPost, "/categories", map[string]string{
				"name": name, "type": "expense", "color": "#ef4444",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
		}

		w := do(router, http.MethodGet, "/categories?type=expense", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var cats []category.Category
		Expect(json.NewDecoder(w.Body).Decode(&cats)).To(Succeed())
		Expect(cats).To(HaveLen(3))
		Expect(cats[0].Name).To(Equal("Alimentação"))
		Expect(cats[1].Name).To(Equal("Moradia"))
		Expect(cats[2].Name).To(Equal("Transporte"))
	})

	It("should return 400 with the required fields message", func() {
		w := do(router, http.MethodPost, "/categories", map[string]string{"name": "Lazer"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["error"]).To(Equal("Campos obrigatórios: name, type, color"))
		Expect(body["code"]).To(Equal("MISSING_FIELDS"))
	})

	It("should return 400 for a malformed id", func() {
		w := do(router, http.MethodGet, "/categories/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for another user's category", func() {
		w := do(router, http.MethodPost, "/categories", map[string]string{
			"name": "Salário", "type": "income", "color": "#10b981",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created category.Category
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		intruder := newRouter(handler, 2)
		path := "/categories/" + jsonID(created.ID)
		Expect(do(intruder, http.MethodGet, path, nil).Code).To(Equal(http.StatusNotFound))
		Expect(do(intruder, http.MethodPut, path, map[string]string{"name": "x"}).Code).To(Equal(http.StatusNotFound))
		Expect(do(intruder, http.MethodDelete, path, nil).Code).To(Equal(http.StatusNotFound))

		Expect(do(router, http.MethodGet, path, nil).Code).To(Equal(http.StatusOK))
	})

	It("should null the category on referencing transactions when deleted", func() {
		cat := &categoryDatamodel.Category{UserID: 1, Name: "Lazer", Type: "expense", Color: "#ec4899"}
		Expect(db.Create(cat).Error).To(Succeed())
		tx := &transactionDatamodel.Transaction{UserID: 1, CategoryID: &cat.ID, Type: "expense", Amount: mustDecimal("30.00"), Date: mustDate("2024-03-10")}
		Expect(db.Create(tx).Error).To(Succeed())

		w := do(router, http.MethodDelete, "/categories/"+jsonID(cat.ID), nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var body transport.MessageResponse
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body.Message).To(Equal("Categoria deletada com sucesso"))

		var reloaded transactionDatamodel.Transaction
		Expect(db.First(&reloaded, tx.ID).Error).To(Succeed())
		Expect(reloaded.CategoryID).To(BeNil())
	})
})
