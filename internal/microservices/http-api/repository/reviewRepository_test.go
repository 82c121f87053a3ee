package repository_test

import (
	"context"
	"testing"

	"moviehub/internal/microservices/http-api/models"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_DeleteKeepsReplies(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	movie := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	require.NoError(t, db.Create(&movie).Error)

	repo := repository.NewReviewRepository(db)
	root := models.Review{Name: "Ann", Email: "a@example.com", Text: "Great", MovieID: movie.ID}
	require.NoError(t, repo.Create(ctx, &root))
	reply := models.Review{Name: "Bob", Email: "b@example.com", Text: "Agreed", MovieID: movie.ID, ParentID: &root.ID}
	require.NoError(t, repo.Create(ctx, &reply))

	require.NoError(t, repo.Delete(ctx, root.ID))

	got, err := repo.GetByID(ctx, reply.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	_, err = repo.GetByID(ctx, root.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, root.ID), repository.ErrNotFound)
}

func TestRatingRepository_UpsertAndSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	movie := models.Movie{Title: "Alien", Year: 1979, URL: "alien"}
	require.NoError(t, db.Create(&movie).Error)

	repo := repository.NewRatingRepository(db)
	two, five := models.RatingStar{Value: 2}, models.RatingStar{Value: 5}
	require.NoError(t, repo.CreateStar(ctx, &two))
	require.NoError(t, repo.CreateStar(ctx, &five))

	empty, err := repo.Summary(ctx, movie.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)

	require.NoError(t, repo.Upsert(ctx, &models.Rating{IP: "192.0.2.1", StarID: two.ID, MovieID: movie.ID}))
	require.NoError(t, repo.Upsert(ctx, &models.Rating{IP: "192.0.2.1", StarID: five.ID, MovieID: movie.ID}))
	require.NoError(t, repo.Upsert(ctx, &models.Rating{IP: "2001:db8::1", StarID: two.ID, MovieID: movie.ID}))

	summary, err := repo.Summary(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 3.5, summary.Average, 0.001)

	_, err = repo.GetStar(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
