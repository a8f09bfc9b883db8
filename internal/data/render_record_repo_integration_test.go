package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenesmith/scenesmith/internal/domain/model"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
	"github.com/scenesmith/scenesmith/internal/testutil"
)

func TestRenderRecordRepo_Integration_CreateAndList(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		fixed := NewFixedTimeProvider(testutil.TestTime())
		repo := NewRenderRecordRepoWithTimeProvider(db, fixed)
		ctx := context.Background()

		req := &model.CreateRenderRecordRequest{
			ID:           "0123456789abcdef0123456789abcdef",
			Mode:         model.RenderModeCode,
			SceneName:    "SpinningCube",
			Status:       model.RenderStatusDone,
			ArtifactFile: "render_0123456789abcdef0123456789abcdef.mp4",
			DurationMS:   4200,
		}

		record, err := repo.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, req.ID, record.ID)
		assert.Equal(t, model.RenderModeCode, record.Mode)
		assert.Equal(t, "SpinningCube", record.SceneName)
		assert.Equal(t, model.RenderStatusDone, record.Status)
		assert.Empty(t, record.ErrorCode)
		assert.Equal(t, req.ArtifactFile, record.ArtifactFile)
		assert.Equal(t, int64(4200), record.DurationMS)
		assert.True(t, record.CreatedAt.Equal(testutil.TestTime()))

		records, err := repo.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, req.ID, records[0].ID)
	})
}

func TestRenderRecordRepo_Integration_CreateFailedJob(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewRenderRecordRepo(db)
		ctx := context.Background()

		record, err := repo.Create(ctx, &model.CreateRenderRecordRequest{
			ID:         "fedcba9876543210fedcba9876543210",
			Mode:       model.RenderModePrompt,
			Status:     model.RenderStatusFailed,
			ErrorCode:  "timeout",
			DurationMS: 120000,
		})
		require.NoError(t, err)
		assert.Equal(t, model.RenderStatusFailed, record.Status)
		assert.Equal(t, "timeout", record.ErrorCode)
		assert.Empty(t, record.ArtifactFile)
	})
}

func TestRenderRecordRepo_Integration_DuplicateID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewRenderRecordRepo(db)
		ctx := context.Background()

		req := &model.CreateRenderRecordRequest{
			ID:     "dupdupdupdupdupdupdupdupdupdup12",
			Mode:   model.RenderModeCode,
			Status: model.RenderStatusDone,
		}

		_, err := repo.Create(ctx, req)
		require.NoError(t, err)

		_, err = repo.Create(ctx, req)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestRenderRecordRepo_Integration_ListOrderAndPagination(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		fixed := NewFixedTimeProvider(testutil.TestTime())
		repo := NewRenderRecordRepoWithTimeProvider(db, fixed)
		ctx := context.Background()

		// Five records, one minute apart: record 4 is the newest.
		for i := range 5 {
			_, err := repo.Create(ctx, &model.CreateRenderRecordRequest{
				ID:     fmt.Sprintf("%032d", i),
				Mode:   model.RenderModeCode,
				Status: model.RenderStatusDone,
			})
			require.NoError(t, err)
			fixed.AddTime(time.Minute)
		}

		records, err := repo.List(ctx, 3, 0)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, fmt.Sprintf("%032d", 4), records[0].ID)
		assert.Equal(t, fmt.Sprintf("%032d", 3), records[1].ID)
		assert.Equal(t, fmt.Sprintf("%032d", 2), records[2].ID)

		rest, err := repo.List(ctx, 3, 3)
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, fmt.Sprintf("%032d", 1), rest[0].ID)
		assert.Equal(t, fmt.Sprintf("%032d", 0), rest[1].ID)

		// limit <= 0 falls back to the default page size.
		all, err := repo.List(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})
}

func TestRenderRecordRepo_Integration_ListEmpty(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewRenderRecordRepo(db)

		records, err := repo.List(context.Background(), 10, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestRenderRecordRepo_CreateValidation(t *testing.T) {
	repo := NewRenderRecordRepo(nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, nil)
	require.Error(t, err)

	_, err = repo.Create(ctx, &model.CreateRenderRecordRequest{Status: model.RenderStatusDone})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")

	_, err = repo.Create(ctx, &model.CreateRenderRecordRequest{ID: "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status is required")
}
