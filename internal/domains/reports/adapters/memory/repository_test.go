package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/reports/ports"
)

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	run := &domain.Run{
		ID:      "a",
		BaseURL: "http://petstore/v2",
		Results: []domain.CaseResult{{Seq: 1, Case: "create", Outcome: domain.OutcomePassed}},
	}
	require.NoError(t, repo.Save(ctx, run))

	run.Results[0].Outcome = domain.OutcomeFailed
	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePassed, got.Results[0].Outcome)
	assert.Equal(t, "http://petstore/v2", got.BaseURL)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_RejectsInvalidRuns(t *testing.T) {
	repo := NewRepository()
	assert.Error(t, repo.Save(context.Background(), nil))
	assert.ErrorIs(t, repo.Save(context.Background(), &domain.Run{}), domain.ErrMissingRunID)
}

func TestRepository_ListMostRecentFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Save(ctx, &domain.Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].ID)
	assert.Equal(t, "first", all[2].ID)

	latest, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second"}, []string{latest[0].ID, latest[1].ID})
}
