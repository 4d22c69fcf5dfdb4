package asset_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	"github.com/frahmantamala/asset-management/internal/core/storage"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/internal/user"
	userPostgres "github.com/frahmantamala/asset-management/internal/user/postgres"
)

var _ = Describe("Asset Handler Integration", func() {
	var (
		db        *gorm.DB
		assetRepo *assetPostgres.AssetRepository
		handler   *asset.Handler
		router    *chi.Mux
		slogger   *slog.Logger

		adminID     string
		regularID   string
		otherUserID string
	)

	// withPrincipal stamps the request principal the way the auth middleware
	// would after token verification.
	withPrincipal := func(p internal.Principal) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithPrincipal(r.Context(), p)))
			})
		}
	}

	buildRouter := func(p internal.Principal) *chi.Mux {
		r := chi.NewRouter()
		r.Use(withPrincipal(p))
		r.Post("/add-asset", handler.AddAsset)
		r.Post("/assign-asset", handler.AssignAsset)
		r.Post("/unassign-asset", handler.UnassignAsset)
		r.Get("/assigned-assets/all", handler.AllAssignments)
		r.Get("/assigned-assets/{uid}", handler.AssignedAssets)
		r.Get("/assets", handler.ListAssets)
		r.Delete("/asset/{id}", handler.DeleteAsset)
		return r
	}

	seedUser := func(id, email string) {
		now := time.Now().UTC()
		err := db.Create(&user.User{
			ID:           id,
			Name:         "Test User",
			Email:        email,
			PasswordHash: "x",
			Role:         internal.RoleUser,
			Department:   "CLOUD PLATFORM",
			CreatedAt:    now,
			UpdatedAt:    now,
		}).Error
		Expect(err).NotTo(HaveOccurred())
	}

	seedAsset := func() string {
		serial := uuid.NewString()
		now := time.Now().UTC()
		err := db.Create(&asset.Asset{
			SerialNumber: serial,
			Name:         "MacBook Pro",
			Description:  "16 inch",
			Status:       asset.StatusAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		}).Error
		Expect(err).NotTo(HaveOccurred())
		return serial
	}

	do := func(r *chi.Mux, method, target string, body interface{}) (*httptest.ResponseRecorder, transport.Envelope) {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		return w, env
	}

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		// a single connection keeps the in-memory database alive and shared
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(&user.User{}, &asset.Asset{}, &asset.Assignment{})
		Expect(err).NotTo(HaveOccurred())

		sdb := sqlx.NewDb(sqlDB, "sqlite3")

		assetRepo = assetPostgres.NewAssetRepository(db, sdb)
		userRepo := userPostgres.NewUserRepository(db)
		userService := user.NewService(userRepo, slogger)
		assetService := asset.NewService(assetRepo, userService, nil, slogger)
		handler = asset.NewHandler(assetService)

		adminID = uuid.NewString()
		regularID = uuid.NewString()
		otherUserID = uuid.NewString()
		seedUser(regularID, "john@watchguard.com")
		seedUser(otherUserID, "jane@watchguard.com")

		router = buildRouter(internal.Principal{UserID: adminID, Role: internal.RoleAdmin})
	})

	Describe("POST /add-asset", func() {
		It("should create the asset and wrap it in the success envelope", func() {
			w, env := do(router, http.MethodPost, "/add-asset", map[string]string{
				"name":        "MacBook Pro",
				"description": "16 inch",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			data := env.Data.(map[string]interface{})
			Expect(data["status"]).To(Equal(asset.StatusAvailable))
			Expect(data["serial_number"]).NotTo(BeEmpty())
		})

		It("should reject a missing description with the envelope error shape", func() {
			w, env := do(router, http.MethodPost, "/add-asset", map[string]string{
				"name": "MacBook Pro",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(env.StatusCode).To(Equal(internal.CodeMissingField))
			Expect(env.Data).To(BeNil())
		})
	})

	Describe("POST /assign-asset", func() {
		It("should assign an available asset", func() {
			assetID := seedAsset()

			w, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id":  regularID,
				"asset_id": assetID,
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			var stored asset.Asset
			Expect(db.First(&stored, "serial_number = ?", assetID).Error).To(Succeed())
			Expect(stored.Status).To(Equal(asset.StatusAssigned))
		})

		It("should answer a retry by the holder with the already-assigned code", func() {
			assetID := seedAsset()
			body := map[string]string{"user_id": regularID, "asset_id": assetID}
			_, env := do(router, http.MethodPost, "/assign-asset", body)
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			w, env := do(router, http.MethodPost, "/assign-asset", body)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(env.StatusCode).To(Equal(internal.CodeAssetAlreadyAssigned))
			Expect(env.Message).To(ContainSubstring("assigned to the user"))
		})

		It("should answer a conflicting assignment with the other-user message", func() {
			assetID := seedAsset()
			_, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": otherUserID, "asset_id": assetID,
			})
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			w, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": regularID, "asset_id": assetID,
			})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(env.StatusCode).To(Equal(internal.CodeAssetAlreadyAssigned))
			Expect(env.Message).To(ContainSubstring("other user"))
		})

		It("should reject an unknown asset", func() {
			w, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": regularID, "asset_id": uuid.NewString(),
			})

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(env.StatusCode).To(Equal(internal.CodeAssetNotFound))
		})

		It("should reject an unknown user", func() {
			assetID := seedAsset()

			w, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": uuid.NewString(), "asset_id": assetID,
			})

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(env.StatusCode).To(Equal(internal.CodeUserNotFound))
		})

		It("should reject a malformed asset id before touching the store", func() {
			w, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": regularID, "asset_id": "not-a-uuid",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(env.StatusCode).To(Equal(internal.CodeInvalidFormat))
		})
	})

	Describe("POST /unassign-asset", func() {
		var assetID string

		BeforeEach(func() {
			assetID = seedAsset()
			_, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": regularID, "asset_id": assetID,
			})
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))
		})

		It("should let the holder release their own assignment", func() {
			selfRouter := buildRouter(internal.Principal{UserID: regularID, Role: internal.RoleUser})

			w, env := do(selfRouter, http.MethodPost, "/unassign-asset", map[string]string{
				"user_id": regularID, "asset_id": assetID,
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			var stored asset.Asset
			Expect(db.First(&stored, "serial_number = ?", assetID).Error).To(Succeed())
			Expect(stored.Status).To(Equal(asset.StatusAvailable))
		})

		It("should deny a regular user releasing someone else's assignment", func() {
			otherRouter := buildRouter(internal.Principal{UserID: otherUserID, Role: internal.RoleUser})

			w, env := do(otherRouter, http.MethodPost, "/unassign-asset", map[string]string{
				"user_id": regularID, "asset_id": assetID,
			})

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(env.StatusCode).To(Equal(internal.CodePermissionDenied))
		})

		It("should let an admin release any assignment", func() {
			w, env := do(router, http.MethodPost, "/unassign-asset", map[string]string{
				"user_id": regularID, "asset_id": assetID,
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))
		})

		It("should answer with not-assigned once the assignment is gone", func() {
			body := map[string]string{"user_id": regularID, "asset_id": assetID}
			_, env := do(router, http.MethodPost, "/unassign-asset", body)
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			w, env := do(router, http.MethodPost, "/unassign-asset", body)

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(env.StatusCode).To(Equal(internal.CodeAssetNotAssigned))
		})
	})

	Describe("GET /assigned-assets/{uid}", func() {
		var assetID string

		BeforeEach(func() {
			assetID = seedAsset()
			_, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
				"user_id": regularID, "asset_id": assetID,
			})
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))
		})

		It("should return the user's assets to the user themselves", func() {
			selfRouter := buildRouter(internal.Principal{UserID: regularID, Role: internal.RoleUser})

			w, env := do(selfRouter, http.MethodGet, fmt.Sprintf("/assigned-assets/%s", regularID), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			data := env.Data.(map[string]interface{})
			Expect(data["assets"]).To(HaveLen(1))
		})

		It("should deny a regular user reading someone else's assets", func() {
			otherRouter := buildRouter(internal.Principal{UserID: otherUserID, Role: internal.RoleUser})

			w, env := do(otherRouter, http.MethodGet, fmt.Sprintf("/assigned-assets/%s", regularID), nil)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(env.StatusCode).To(Equal(internal.CodePermissionDenied))
		})

		It("should return an empty list for a user holding nothing", func() {
			w, env := do(router, http.MethodGet, fmt.Sprintf("/assigned-assets/%s", otherUserID), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			data := env.Data.(map[string]interface{})
			Expect(data["assets"]).To(HaveLen(0))
		})

		It("should answer user-not-found for a deleted user", func() {
			w, env := do(router, http.MethodGet, fmt.Sprintf("/assigned-assets/%s", uuid.NewString()), nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(env.StatusCode).To(Equal(internal.CodeUserNotFound))
		})
	})

	Describe("GET /assigned-assets/all", func() {
		It("should group assignments per user", func() {
			first := seedAsset()
			second := seedAsset()
			third := seedAsset()
			for userID, assetID := range map[string]string{regularID: first, otherUserID: second} {
				_, env := do(router, http.MethodPost, "/assign-asset", map[string]string{
					"user_id": userID, "asset_id": assetID,
				})
				Expect(env.StatusCode).To(Equal(internal.CodeSuccess))
			}
			_ = third // stays unassigned and must not appear

			w, env := do(router, http.MethodGet, "/assigned-assets/all", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			groups := env.Data.([]interface{})
			Expect(groups).To(HaveLen(2))
		})
	})

	Describe("assignment store constraint", func() {
		It("should tag a second live assignment for the same asset as a duplicate", func() {
			assetID := seedAsset()
			now := time.Now().UTC()

			err := assetRepo.Assign(context.Background(), &asset.Assignment{
				ID: uuid.NewString(), UserID: regularID, AssetID: assetID, AssignedAt: now,
			})
			Expect(err).NotTo(HaveOccurred())

			err = assetRepo.Assign(context.Background(), &asset.Assignment{
				ID: uuid.NewString(), UserID: otherUserID, AssetID: assetID, AssignedAt: now,
			})
			Expect(err).To(MatchError(storage.ErrDuplicateKey))
		})
	})

	Describe("DELETE /asset/{id}", func() {
		It("should delete the asset", func() {
			assetID := seedAsset()

			w, env := do(router, http.MethodDelete, fmt.Sprintf("/asset/%s", assetID), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))

			var count int64
			Expect(db.Model(&asset.Asset{}).Where("serial_number = ?", assetID).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("should answer not-found for an unknown asset", func() {
			w, env := do(router, http.MethodDelete, fmt.Sprintf("/asset/%s", uuid.NewString()), nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(env.StatusCode).To(Equal(internal.CodeAssetNotFound))
		})
	})
})
