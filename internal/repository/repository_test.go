package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	store := NewGormStore(db)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func seedScholarships(t *testing.T, s *Store, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("University %02d", i)
		if i == 3 {
			name = "University of Oxford"
		}
		res, err := s.Scholarships.Create(context.Background(), &domain.Scholarship{
			UniversityName:  name,
			ApplicationFees: 10,
		})
		require.NoError(t, err)
		ids = append(ids, *res.InsertedID)
	}
	return ids
}

func TestStore_Ping(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, "sqlite", s.Kind)
}

func TestScholarships_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedScholarships(t, s, 25)

	first, err := s.Scholarships.List(ctx, domain.ListQuery{Page: 0, Size: 10})
	require.NoError(t, err)
	assert.Len(t, first, 10)

	last, err := s.Scholarships.List(ctx, domain.ListQuery{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, last, 5)

	seen := map[string]bool{}
	for p := 0; p < 3; p++ {
		page, err := s.Scholarships.List(ctx, domain.ListQuery{Page: p, Size: 10})
		require.NoError(t, err)
		for _, sc := range page {
			assert.False(t, seen[sc.ID], "duplicate across pages")
			seen[sc.ID] = true
		}
	}
	assert.Len(t, seen, 25)

	n, err := s.Scholarships.EstimatedCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 25, n)
}

func TestScholarships_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedScholarships(t, s, 12)

	got, err := s.Scholarships.List(ctx, domain.ListQuery{Size: 10, Search: "oxford"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "University of Oxford", got[0].UniversityName)

	// wildcards are matched literally
	got, err = s.Scholarships.List(ctx, domain.ListQuery{Size: 10, Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScholarships_SearchFoldsUnicode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res, err := s.Scholarships.Create(ctx, &domain.Scholarship{UniversityName: "ÉCOLE Polytechnique"})
	require.NoError(t, err)
	other, err := s.Scholarships.Create(ctx, &domain.Scholarship{UniversityName: "Universität Wien"})
	require.NoError(t, err)

	got, err := s.Scholarships.List(ctx, domain.ListQuery{Size: 10, Search: "école"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *res.InsertedID, got[0].ID)

	// a renamed entry is found under its new name
	_, err = s.Scholarships.Update(ctx, *other.InsertedID, domain.Fields{"universityName": "UNIVERSITÄT Graz"})
	require.NoError(t, err)
	got, err = s.Scholarships.List(ctx, domain.ListQuery{Size: 10, Search: "universität graz"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, *other.InsertedID, got[0].ID)
}

func TestScholarships_UpdateIgnoresID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := seedScholarships(t, s, 1)[0]

	res, err := s.Scholarships.Update(ctx, id, domain.Fields{
		"_id":             uuid.NewString(),
		"applicationFees": 42.5,
		"bogus":           "x",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)

	got, err := s.Scholarships.FindByID(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 42.5, got.ApplicationFees)

	res, err = s.Scholarships.Update(ctx, uuid.NewString(), domain.Fields{"applicationFees": 1.0})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.MatchedCount)
}

func TestScholarships_FindByIDProjection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res, err := s.Scholarships.Create(ctx, &domain.Scholarship{
		UniversityName:  "MIT",
		ScholarshipName: "Full Ride",
		ServiceCharge:   12,
	})
	require.NoError(t, err)

	got, err := s.Scholarships.FindByID(ctx, *res.InsertedID, domain.ScholarshipDetailFields)
	require.NoError(t, err)
	assert.Equal(t, "MIT", got.UniversityName)
	assert.Empty(t, got.ScholarshipName)
	assert.Zero(t, got.ServiceCharge)

	_, err = s.Scholarships.FindByID(ctx, uuid.NewString(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Scholarships.FindByID(ctx, "not-an-id", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUsers_CreateAndRoles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res, err := s.Users.Create(ctx, &domain.User{Email: "alice@example.com"})
	require.NoError(t, err)
	id := *res.InsertedID

	_, err = s.Users.Create(ctx, &domain.User{Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	u, err := s.Users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleNone, u.EffectiveRole())

	upd, err := s.Users.SetRole(ctx, id, domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.MatchedCount)
	assert.EqualValues(t, 1, upd.ModifiedCount)

	upd, err = s.Users.SetRole(ctx, id, domain.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.MatchedCount)
	assert.EqualValues(t, 0, upd.ModifiedCount)

	del, err := s.Users.Delete(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)

	_, err = s.Users.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func createSubmission(t *testing.T, s *Store, email string) string {
	t.Helper()
	res, err := s.Submissions.Create(context.Background(), &domain.Submission{
		Email:         email,
		ScholarshipID: uuid.NewString(),
	})
	require.NoError(t, err)
	return *res.InsertedID
}

func TestSubmissions_DeleteManyIgnoresAbsent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createSubmission(t, s, "alice@example.com")
	b := createSubmission(t, s, "alice@example.com")

	res, err := s.Submissions.DeleteMany(ctx, []string{a, b, uuid.NewString()}, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.DeletedCount)

	_, err = s.Submissions.DeleteMany(ctx, []string{"bad"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestSubmissions_OwnerScope(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createSubmission(t, s, "alice@example.com")

	res, err := s.Submissions.Delete(ctx, a, "mallory@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.DeletedCount)

	upd, err := s.Submissions.SetStatus(ctx, a, domain.SubmissionProcessing)
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.MatchedCount)

	got, err := s.Submissions.FindByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionProcessing, got.Status)

	mine, err := s.Submissions.List(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	res, err = s.Submissions.Delete(ctx, a, "alice@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)
}

func TestPayments_RecordReleasesSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createSubmission(t, s, "alice@example.com")
	b := createSubmission(t, s, "alice@example.com")

	out, err := s.Payments.Record(ctx, &domain.Payment{
		Email:         "alice@example.com",
		TransactionID: "pi_1",
		Price:         20,
		SubmitIDs:     []string{a, b},
	})
	require.NoError(t, err)
	assert.True(t, out.PaymentResult.Acknowledged)
	require.NotNil(t, out.PaymentResult.InsertedID)
	assert.EqualValues(t, 2, out.DeleteResult.DeletedCount)

	left, err := s.Submissions.List(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, left)

	out, err = s.Payments.Record(ctx, &domain.Payment{
		Email:     "alice@example.com",
		Price:     20,
		SubmitIDs: []string{a, b},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, out.DeleteResult.DeletedCount)

	payments, err := s.Payments.List(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.ElementsMatch(t, []string{a, b}, payments[0].SubmitIDs)
}

func TestPayments_RecordRejectsForeignSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mine := createSubmission(t, s, "alice@example.com")
	theirs := createSubmission(t, s, "bob@example.com")

	_, err := s.Payments.Record(ctx, &domain.Payment{
		Email:     "alice@example.com",
		Price:     5,
		SubmitIDs: []string{mine, theirs},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	payments, err := s.Payments.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, payments)

	all, err := s.Submissions.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReviews_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	scholarshipID := uuid.NewString()

	res, err := s.Reviews.Create(ctx, &domain.Review{
		Email:         "alice@example.com",
		ScholarshipID: scholarshipID,
		RatingPoint:   4,
	})
	require.NoError(t, err)
	id := *res.InsertedID

	list, err := s.Reviews.List(ctx, scholarshipID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.Reviews.Update(ctx, id, domain.Fields{"ratingPoint": 5.0, "reviewComment": "great"})
	require.NoError(t, err)
	got, err := s.Reviews.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.RatingPoint)
	assert.Equal(t, "great", got.ReviewComment)

	del, err := s.Reviews.Delete(ctx, id, "bob@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, del.DeletedCount)

	del, err = s.Reviews.Delete(ctx, id, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, del.DeletedCount)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%100\% a\_b%`, containsPattern("100% A_b"))
}
