package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
	"github.com/pmorales/tour-builder/backend/testutil"
)

// testRepos bundles all three repos on one transaction so foreign keys
// between users, tours, and steps line up within a single test.
type testRepos struct {
	users repo.UserRepo
	tours repo.TourRepo
	steps repo.StepRepo
}

// newTestRepos opens a transaction against the test database and wires
// every repo to it. The rollback on cleanup discards everything the
// test inserted.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		users: repo.NewUserRepo(tx),
		tours: repo.NewTourRepo(tx),
		steps: repo.NewStepRepo(tx),
	}
}

// createAuthor inserts a user fixture and returns its ID for use as a
// tour's author_id.
func createAuthor(t *testing.T, r testRepos) uuid.UUID {
	t.Helper()
	user, err := r.users.Create(context.Background(), userFixture())
	require.NoError(t, err)
	return user.ID
}

func tourFixture(authorID uuid.UUID) domain.Tour {
	return domain.Tour{
		AuthorID:    authorID,
		Title:       "City Walking Tour",
		Description: "A stroll through the old town",
	}
}

func TestTourRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	input := tourFixture(author)
	got, err := r.tours.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, author, got.AuthorID)
	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.Description, got.Description)
	assert.False(t, got.IsPublic, "tours start private")
	assert.Nil(t, got.PublicSlug)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTourRepo_GetByID(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	created, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)

	got, err := r.tours.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
}

func TestTourRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.tours.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTourRepo_ListByAuthor(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)
	other := createAuthor(t, r)

	mine, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)
	_, err = r.tours.Create(ctx, tourFixture(other))
	require.NoError(t, err)

	// Two steps on my tour so the step count has something to count.
	for _, title := range []string{"Stop one", "Stop two"} {
		_, err = r.steps.Create(ctx, domain.Step{TourID: mine.ID, Title: title})
		require.NoError(t, err)
	}

	got, err := r.tours.ListByAuthor(ctx, author)

	require.NoError(t, err)
	require.Len(t, got, 1, "must only list the caller's own tours")
	assert.Equal(t, mine.ID, got[0].ID)
	assert.Equal(t, 2, got[0].StepCount)
}

func TestTourRepo_ListByAuthor_Empty(t *testing.T) {
	r := newTestRepos(t)
	author := createAuthor(t, r)

	got, err := r.tours.ListByAuthor(context.Background(), author)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTourRepo_Update(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	created, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)

	created.Title = "Renamed Tour"
	got, err := r.tours.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Renamed Tour", got.Title)
	assert.Equal(t, created.Description, got.Description)
}

func TestTourRepo_Delete_CascadesSteps(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	tour, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)
	step, err := r.steps.Create(ctx, domain.Step{TourID: tour.ID, Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, r.tours.Delete(ctx, tour.ID))

	_, err = r.tours.GetByID(ctx, tour.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.steps.GetByID(ctx, tour.ID, step.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "steps must die with their tour")
}

func TestTourRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepos(t)

	err := r.tours.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTourRepo_SetPublication(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	tour, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)

	slug := "abCD12efGH"
	got, err := r.tours.SetPublication(ctx, tour.ID, true, &slug)

	require.NoError(t, err)
	assert.True(t, got.IsPublic)
	require.NotNil(t, got.PublicSlug)
	assert.Equal(t, slug, *got.PublicSlug)

	got, err = r.tours.SetPublication(ctx, tour.ID, false, nil)

	require.NoError(t, err)
	assert.False(t, got.IsPublic)
	assert.Nil(t, got.PublicSlug)
}

func TestTourRepo_SetPublication_SlugTaken(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	first, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)
	second, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)

	slug := "samesameAB"
	_, err = r.tours.SetPublication(ctx, first.ID, true, &slug)
	require.NoError(t, err)

	_, err = r.tours.SetPublication(ctx, second.ID, true, &slug)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTourRepo_GetBySlug(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	tour, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)
	slug := "liveSlug01"
	_, err = r.tours.SetPublication(ctx, tour.ID, true, &slug)
	require.NoError(t, err)

	got, err := r.tours.GetBySlug(ctx, slug)

	require.NoError(t, err)
	assert.Equal(t, tour.ID, got.ID)
}

func TestTourRepo_GetBySlug_Unpublished(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	author := createAuthor(t, r)

	tour, err := r.tours.Create(ctx, tourFixture(author))
	require.NoError(t, err)
	slug := "deadSlug01"
	_, err = r.tours.SetPublication(ctx, tour.ID, true, &slug)
	require.NoError(t, err)
	_, err = r.tours.SetPublication(ctx, tour.ID, false, nil)
	require.NoError(t, err)

	_, err = r.tours.GetBySlug(ctx, slug)

	assert.ErrorIs(t, err, domain.ErrNotFound, "a retired slug must not resolve")
}

func TestTourRepo_GetBySlug_Unknown(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.tours.GetBySlug(context.Background(), "nosuchslug")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
