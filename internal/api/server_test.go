package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SundayYogurt/scholarship_service/config"
	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/helper"
	"github.com/SundayYogurt/scholarship_service/internal/interfaces"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
)

type stubProvider struct{ amount int64 }

func (s *stubProvider) CreatePaymentIntent(_ context.Context, amount int64, _ string) (interfaces.PaymentIntent, error) {
	s.amount = amount
	return interfaces.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret_x"}, nil
}

type testServer struct {
	t        *testing.T
	app      *fiber.App
	store    *repository.Store
	auth     helper.Auth
	provider *stubProvider
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		Environment:     "test",
		AccessSecret:    "api-secret",
		PaymentCurrency: "usd",
		AllowedOrigins:  "*",
	}

	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(context.Background(), db))
	store := repository.NewGormStore(db)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	provider := &stubProvider{}
	app := NewApp(Deps{
		Config:   cfg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:    store,
		Payments: provider,
	})
	return &testServer{
		t:        t,
		app:      app,
		store:    store,
		auth:     helper.SetupAuth(cfg.AccessSecret),
		provider: provider,
	}
}

func (s *testServer) user(email string, role domain.Role) string {
	s.t.Helper()
	res, err := s.store.Users.Create(context.Background(), &domain.User{Email: email, Role: role})
	require.NoError(s.t, err)
	return *res.InsertedID
}

func (s *testServer) token(email string) string {
	s.t.Helper()
	tok, err := s.auth.IssueToken(email, "")
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body any) (int, []byte) {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func TestRootAndReady(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, 200, code)
	assert.Contains(t, string(body), "running")

	code, _ = s.do(http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, 200, code)
}

func TestIssueToken(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(http.MethodPost, "/jwt", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, 200, code)
	tok := decode[map[string]string](t, body)["token"]

	claims, err := s.auth.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)

	code, body = s.do(http.MethodPost, "/jwt", "", map[string]string{"email": "nope"})
	assert.Equal(t, 400, code)
	assert.Contains(t, decode[map[string]string](t, body)["message"], "email")

	code, _ = s.do(http.MethodPost, "/jwt", "", nil)
	assert.Equal(t, 400, code)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)
	s.user("admin@example.com", domain.RoleAdmin)
	admin := s.token("admin@example.com")

	code, body := s.do(http.MethodPost, "/users", "", map[string]string{"email": "alice@example.com", "name": "Alice"})
	require.Equal(t, 200, code)
	ins := decode[domain.InsertResult](t, body)
	require.NotNil(t, ins.InsertedID)
	aliceID := *ins.InsertedID

	code, body = s.do(http.MethodPost, "/users", "", map[string]string{"email": "Alice@example.com"})
	require.Equal(t, 200, code)
	exists := decode[map[string]any](t, body)
	assert.Equal(t, "User already exists", exists["message"])
	assert.Nil(t, exists["insertedId"])

	alice := s.token("alice@example.com")
	code, _ = s.do(http.MethodGet, "/users", alice, nil)
	assert.Equal(t, 403, code)
	code, _ = s.do(http.MethodGet, "/users", "", nil)
	assert.Equal(t, 401, code)

	code, body = s.do(http.MethodGet, "/users", admin, nil)
	require.Equal(t, 200, code)
	assert.Len(t, decode[[]domain.User](t, body), 2)

	code, body = s.do(http.MethodGet, "/users/admin/alice@example.com", alice, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, false, decode[map[string]bool](t, body)["admin"])

	code, _ = s.do(http.MethodGet, "/users/admin/admin@example.com", alice, nil)
	assert.Equal(t, 403, code)

	code, body = s.do(http.MethodPatch, "/users/moderator/"+aliceID, admin, nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.UpdateResult](t, body).ModifiedCount)

	code, body = s.do(http.MethodGet, "/users/moderator/alice@example.com", alice, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, true, decode[map[string]bool](t, body)["moderator"])

	code, body = s.do(http.MethodGet, "/users/role/alice@example.com", alice, nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "moderator", decode[map[string]string](t, body)["role"])

	// moderators cannot grant admin
	code, _ = s.do(http.MethodPatch, "/users/admin/"+aliceID, alice, nil)
	assert.Equal(t, 403, code)

	code, _ = s.do(http.MethodDelete, "/users/not-an-id", admin, nil)
	assert.Equal(t, 400, code)

	code, body = s.do(http.MethodDelete, "/users/"+aliceID, admin, nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.DeleteResult](t, body).DeletedCount)
}

func newScholarship(name string) map[string]any {
	return map[string]any{
		"universityName":      name,
		"scholarshipCategory": "Full fund",
		"subjectCategory":     "Engineering",
		"degreeCategory":      "Masters",
		"applicationFees":     25,
		"applicationDeadline": "2026-12-31",
		"serviceCharge":       5,
	}
}

func TestScholarships(t *testing.T) {
	s := newTestServer(t)
	s.user("admin@example.com", domain.RoleAdmin)
	s.user("mod@example.com", domain.RoleModerator)
	admin := s.token("admin@example.com")
	mod := s.token("mod@example.com")

	code, _ := s.do(http.MethodPost, "/addScholarship", mod, newScholarship("MIT"))
	assert.Equal(t, 403, code)

	code, _ = s.do(http.MethodPost, "/addScholarship", admin, map[string]any{"universityName": "MIT"})
	assert.Equal(t, 400, code)

	var ids []string
	for _, name := range []string{"MIT", "University of Oxford", "ETH Zurich"} {
		code, body := s.do(http.MethodPost, "/addScholarship", admin, newScholarship(name))
		require.Equal(t, 200, code)
		ids = append(ids, *decode[domain.InsertResult](t, body).InsertedID)
	}

	code, body := s.do(http.MethodGet, "/topScholarship?search=OXFORD", "", nil)
	require.Equal(t, 200, code)
	list := decode[[]domain.Scholarship](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "University of Oxford", list[0].UniversityName)

	code, body = s.do(http.MethodGet, "/topScholarship?page=0&size=2", "", nil)
	require.Equal(t, 200, code)
	assert.Len(t, decode[[]domain.Scholarship](t, body), 2)

	code, _ = s.do(http.MethodGet, "/topScholarship?page=abc", "", nil)
	assert.Equal(t, 400, code)
	code, _ = s.do(http.MethodGet, "/topScholarship?page=9223372036854775807", "", nil)
	assert.Equal(t, 400, code)

	code, body = s.do(http.MethodGet, "/topScholarshipCount", "", nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 3, decode[map[string]int64](t, body)["count"])

	code, body = s.do(http.MethodGet, "/topScholarship/"+ids[0], "", nil)
	require.Equal(t, 200, code)
	detail := decode[map[string]any](t, body)
	assert.Equal(t, "MIT", detail["universityName"])
	assert.NotContains(t, detail, "serviceCharge")

	code, body = s.do(http.MethodGet, "/topScholarship/"+uuid.NewString(), "", nil)
	assert.Equal(t, 200, code)
	assert.Equal(t, "null", string(body))

	code, _ = s.do(http.MethodGet, "/topScholarship/xyz", "", nil)
	assert.Equal(t, 400, code)

	code, body = s.do(http.MethodPatch, "/topScholarship/"+ids[0], mod, map[string]any{"applicationFees": 30, "_id": "hijack"})
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.UpdateResult](t, body).MatchedCount)

	code, _ = s.do(http.MethodPatch, "/topScholarship/"+ids[0], mod, map[string]any{"serviceCharge": 1})
	assert.Equal(t, 400, code)

	code, _ = s.do(http.MethodDelete, "/topScholarship/"+ids[1], mod, nil)
	assert.Equal(t, 403, code)
	code, body = s.do(http.MethodDelete, "/topScholarship/"+ids[1], admin, nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.DeleteResult](t, body).DeletedCount)

	code, body = s.do(http.MethodGet, "/addScholarship", "", nil)
	require.Equal(t, 200, code)
	all := decode[[]domain.Scholarship](t, body)
	assert.Len(t, all, 2)
}

func TestSubmissionsAndPayments(t *testing.T) {
	s := newTestServer(t)
	s.user("admin@example.com", domain.RoleAdmin)
	alice := s.token("alice@example.com")
	bob := s.token("bob@example.com")
	admin := s.token("admin@example.com")

	submit := func(tok string) string {
		code, body := s.do(http.MethodPost, "/submits", tok, map[string]any{
			"scholarshipId": uuid.NewString(),
			"email":         "someone@else.com",
		})
		require.Equal(t, 200, code, string(body))
		return *decode[domain.InsertResult](t, body).InsertedID
	}
	a := submit(alice)
	b := submit(alice)
	other := submit(bob)

	code, body := s.do(http.MethodGet, "/submits?email=alice@example.com", alice, nil)
	require.Equal(t, 200, code)
	mine := decode[[]domain.Submission](t, body)
	require.Len(t, mine, 2)
	assert.Equal(t, "alice@example.com", mine[0].Email)

	code, _ = s.do(http.MethodGet, "/submits?email=bob@example.com", alice, nil)
	assert.Equal(t, 403, code)

	code, body = s.do(http.MethodGet, "/submits", admin, nil)
	require.Equal(t, 200, code)
	assert.Len(t, decode[[]domain.Submission](t, body), 3)

	code, _ = s.do(http.MethodGet, "/submits/"+other, alice, nil)
	assert.Equal(t, 403, code)

	code, body = s.do(http.MethodPost, "/create-payment-intent", alice, map[string]any{"price": 19.99})
	require.Equal(t, 200, code)
	assert.Equal(t, "pi_1_secret_x", decode[map[string]string](t, body)["clientSecret"])
	assert.EqualValues(t, 1999, s.provider.amount)

	code, _ = s.do(http.MethodPost, "/create-payment-intent", alice, map[string]any{"price": 0})
	assert.Equal(t, 400, code)

	code, _ = s.do(http.MethodPost, "/payments", alice, map[string]any{
		"transactionId": "pi_1", "price": 19.99, "submitIds": []string{a, other},
	})
	assert.Equal(t, 403, code)

	code, _ = s.do(http.MethodPost, "/payments", alice, map[string]any{
		"email": "bob@example.com", "transactionId": "pi_1", "price": 19.99, "submitIds": []string{other},
	})
	assert.Equal(t, 403, code)

	code, _ = s.do(http.MethodPost, "/payments", alice, map[string]any{
		"transactionId": "pi_1", "price": 19.99, "submitIds": []string{},
	})
	assert.Equal(t, 400, code)

	code, body = s.do(http.MethodPost, "/payments", alice, map[string]any{
		"transactionId": "pi_1", "price": 19.99, "submitIds": []string{a, b},
	})
	require.Equal(t, 200, code)
	out := decode[domain.PaymentOutcome](t, body)
	assert.True(t, out.PaymentResult.Acknowledged)
	assert.EqualValues(t, 2, out.DeleteResult.DeletedCount)

	code, body = s.do(http.MethodGet, "/submits?email=alice@example.com", alice, nil)
	require.Equal(t, 200, code)
	assert.Empty(t, decode[[]domain.Submission](t, body))

	code, body = s.do(http.MethodGet, "/payments?email=alice@example.com", alice, nil)
	require.Equal(t, 200, code)
	payments := decode[[]domain.Payment](t, body)
	require.Len(t, payments, 1)
	assert.Equal(t, "succeeded", payments[0].Status)

	code, _ = s.do(http.MethodGet, "/payments?email=alice@example.com", bob, nil)
	assert.Equal(t, 403, code)

	code, body = s.do(http.MethodPatch, "/submits/"+other+"/status", admin, map[string]string{"status": "processing"})
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.UpdateResult](t, body).ModifiedCount)

	code, _ = s.do(http.MethodPatch, "/submits/"+other+"/status", bob, map[string]string{"status": "completed"})
	assert.Equal(t, 403, code)

	code, body = s.do(http.MethodDelete, "/submits/"+other, alice, nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 0, decode[domain.DeleteResult](t, body).DeletedCount)

	code, body = s.do(http.MethodDelete, "/submits", bob, map[string]any{"ids": []string{other, uuid.NewString()}})
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.DeleteResult](t, body).DeletedCount)
}

func TestReviews(t *testing.T) {
	s := newTestServer(t)
	alice := s.token("alice@example.com")
	bob := s.token("bob@example.com")
	scholarshipID := uuid.NewString()

	code, body := s.do(http.MethodPost, "/addReview", alice, map[string]any{
		"scholarshipId":   scholarshipID,
		"scholarshipName": "Full Ride",
		"universityName":  "MIT",
		"ratingPoint":     4,
		"reviewComment":   "good",
	})
	require.Equal(t, 200, code, string(body))
	id := *decode[domain.InsertResult](t, body).InsertedID

	code, _ = s.do(http.MethodPost, "/addReview", "", map[string]any{"scholarshipId": scholarshipID, "ratingPoint": 4})
	assert.Equal(t, 401, code)

	code, body = s.do(http.MethodGet, "/addReview?scholarshipId="+scholarshipID, "", nil)
	require.Equal(t, 200, code)
	assert.Len(t, decode[[]domain.Review](t, body), 1)

	code, _ = s.do(http.MethodPatch, "/addReview/"+id, bob, map[string]any{"ratingPoint": 1})
	assert.Equal(t, 403, code)

	code, body = s.do(http.MethodPatch, "/addReview/"+id, alice, map[string]any{"ratingPoint": 5})
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.UpdateResult](t, body).MatchedCount)

	code, body = s.do(http.MethodGet, "/addReview/"+id, "", nil)
	require.Equal(t, 200, code)
	assert.Equal(t, 5.0, decode[domain.Review](t, body).RatingPoint)

	code, body = s.do(http.MethodDelete, "/addReview/"+id, bob, nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 0, decode[domain.DeleteResult](t, body).DeletedCount)

	code, body = s.do(http.MethodDelete, "/addReview/"+id, alice, nil)
	require.Equal(t, 200, code)
	assert.EqualValues(t, 1, decode[domain.DeleteResult](t, body).DeletedCount)

	code, body = s.do(http.MethodGet, "/addReview/"+id, "", nil)
	assert.Equal(t, 200, code)
	assert.Equal(t, "null", string(body))
}

func TestUploadWithoutProvider(t *testing.T) {
	s := newTestServer(t)
	code, _ := s.do(http.MethodPost, "/uploads/image", s.token("alice@example.com"), nil)
	assert.Equal(t, 503, code)
}
