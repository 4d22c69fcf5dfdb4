package issue_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/issue"
	"github.com/frahmantamala/asset-management/internal/transport"
)

var _ = Describe("Issue Handler", func() {
	var (
		handler *issue.Handler
		repo    *MockRepository
		assets  *MockAssetChecker

		reporterID  string
		otherUserID string
		assetID     string
	)

	buildRouter := func(p internal.Principal) *chi.Mux {
		r := chi.NewRouter()
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(internal.ContextWithPrincipal(req.Context(), p)))
			})
		})
		r.Post("/report-issue", handler.ReportIssue)
		r.Get("/issues/{uid}", handler.UserIssues)
		r.Get("/issues", handler.Issues)
		return r
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
		reporterID = uuid.NewString()
		otherUserID = uuid.NewString()
		assetID = uuid.NewString()

		repo = NewMockRepository()
		assets = NewMockAssetChecker()
		assets.assets[assetID] = true
		assets.holdings[assetID] = reporterID
		users := NewMockUserGetter(reporterID, otherUserID)

		service := issue.NewService(repo, assets, users, nil, slog.Default())
		handler = issue.NewHandler(service)
	})

	Describe("POST /report-issue", func() {
		It("should take the reporter from the authenticated principal", func() {
			router := buildRouter(internal.Principal{UserID: reporterID, Role: internal.RoleUser})

			w, env := do(router, http.MethodPost, "/report-issue", map[string]string{
				"asset_id":    assetID,
				"description": "Screen cracked",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			data := env.Data.(map[string]interface{})
			Expect(data["user_id"]).To(Equal(reporterID))
		})

		It("should ignore a user_id smuggled into the body", func() {
			router := buildRouter(internal.Principal{UserID: reporterID, Role: internal.RoleUser})

			w, env := do(router, http.MethodPost, "/report-issue", map[string]string{
				"user_id":     otherUserID,
				"asset_id":    assetID,
				"description": "Screen cracked",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			data := env.Data.(map[string]interface{})
			Expect(data["user_id"]).To(Equal(reporterID))
		})

		It("should reject a caller not holding the asset", func() {
			router := buildRouter(internal.Principal{UserID: otherUserID, Role: internal.RoleUser})

			w, env := do(router, http.MethodPost, "/report-issue", map[string]string{
				"asset_id":    assetID,
				"description": "Screen cracked",
			})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(env.StatusCode).To(Equal(internal.CodeAssetNotAssigned))
		})
	})

	Describe("GET /issues/{uid}", func() {
		BeforeEach(func() {
			router := buildRouter(internal.Principal{UserID: reporterID, Role: internal.RoleUser})
			_, env := do(router, http.MethodPost, "/report-issue", map[string]string{
				"asset_id":    assetID,
				"description": "Screen cracked",
			})
			Expect(env.StatusCode).To(Equal(internal.CodeSuccess))
		})

		It("should let the user read their own issues", func() {
			router := buildRouter(internal.Principal{UserID: reporterID, Role: internal.RoleUser})

			w, env := do(router, http.MethodGet, "/issues/"+reporterID, nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.Data).To(HaveLen(1))
		})

		It("should deny a regular user reading someone else's issues", func() {
			router := buildRouter(internal.Principal{UserID: otherUserID, Role: internal.RoleUser})

			w, env := do(router, http.MethodGet, "/issues/"+reporterID, nil)

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(env.StatusCode).To(Equal(internal.CodePermissionDenied))
		})

		It("should let an admin read anyone's issues", func() {
			router := buildRouter(internal.Principal{UserID: uuid.NewString(), Role: internal.RoleAdmin})

			w, env := do(router, http.MethodGet, "/issues/"+reporterID, nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(env.Data).To(HaveLen(1))
		})
	})
})
