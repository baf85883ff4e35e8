package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/datpedia"
	"github.com/fwojciec/datpedia/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestRun(t *testing.T, svc *sqlite.ReportService) *datpedia.Run {
	t.Helper()
	run := &datpedia.Run{ID: "run-1", Corpus: "wikipedia_en_all", Total: 3}
	require.NoError(t, svc.CreateRun(context.Background(), run))
	return run
}

func TestReportService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with start time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()

		run := &datpedia.Run{ID: "run-1", Corpus: "wikipedia_en_all", Total: 3}
		require.NoError(t, svc.CreateRun(ctx, run))

		assert.False(t, run.StartedAt.IsZero(), "StartedAt should be set")

		found, err := svc.FindRunByID(ctx, "run-1")
		require.NoError(t, err)
		assert.Equal(t, "wikipedia_en_all", found.Corpus)
		assert.Equal(t, 3, found.Total)
		assert.True(t, found.FinishedAt.IsZero())
	})

	t.Run("returns EINVALID without ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &datpedia.Run{Corpus: "wikipedia_en_all"})

		require.Error(t, err)
		assert.Equal(t, datpedia.EINVALID, datpedia.ErrorCode(err))
	})

	t.Run("returns EINVALID without corpus", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &datpedia.Run{ID: "run-1"})

		require.Error(t, err)
		assert.Equal(t, datpedia.EINVALID, datpedia.ErrorCode(err))
	})
}

func TestReportService_CreateOutcome(t *testing.T) {
	t.Parallel()

	t.Run("stores outcomes in insertion order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		run := createTestRun(t, svc)
		ctx := context.Background()

		outcomes := []*datpedia.Outcome{
			{RunID: run.ID, Slug: "Star_Wars", Status: datpedia.OutcomeWritten, ContentHash: "abc", Bytes: 120, Diagnostics: 2},
			{RunID: run.ID, Slug: "Anarchism", Status: datpedia.OutcomeSkipped, Error: "not found"},
			{RunID: run.ID, Slug: "Hypertext", Status: datpedia.OutcomeFailed, Error: "image not found"},
		}
		for _, o := range outcomes {
			require.NoError(t, svc.CreateOutcome(ctx, o))
		}

		found, err := svc.FindOutcomes(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, outcomes[0], found[0])
		assert.Equal(t, outcomes[1], found[1])
		assert.Equal(t, outcomes[2], found[2])
	})

	t.Run("returns EINVALID without slug", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		run := createTestRun(t, svc)

		err := svc.CreateOutcome(context.Background(), &datpedia.Outcome{RunID: run.ID})

		require.Error(t, err)
		assert.Equal(t, datpedia.EINVALID, datpedia.ErrorCode(err))
	})

	t.Run("rejects outcome of unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		err := svc.CreateOutcome(context.Background(), &datpedia.Outcome{
			RunID:  "missing",
			Slug:   "Star_Wars",
			Status: datpedia.OutcomeWritten,
		})

		require.Error(t, err)
	})
}

func TestReportService_FinishRun(t *testing.T) {
	t.Parallel()

	t.Run("stores final counts", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		run := createTestRun(t, svc)
		ctx := context.Background()

		run.Written = 2
		run.Skipped = 1
		require.NoError(t, svc.FinishRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.Written)
		assert.Equal(t, 1, found.Skipped)
		assert.Equal(t, 0, found.Failed)
		assert.False(t, found.FinishedAt.IsZero())
	})

	t.Run("returns ENOTFOUND for unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		err := svc.FinishRun(context.Background(), &datpedia.Run{ID: "missing"})

		require.Error(t, err)
		assert.Equal(t, datpedia.ENOTFOUND, datpedia.ErrorCode(err))
	})
}

func TestReportService_FindRunByID(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewReportService(setupTestDB(t))

	_, err := svc.FindRunByID(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, datpedia.ENOTFOUND, datpedia.ErrorCode(err))
}
