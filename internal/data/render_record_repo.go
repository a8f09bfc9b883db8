package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/scenesmith/scenesmith/internal/core"
	"github.com/scenesmith/scenesmith/internal/data/pgxutil"
	"github.com/scenesmith/scenesmith/internal/domain/model"
	apperrors "github.com/scenesmith/scenesmith/internal/errors"
)

// RenderRecordRepo provides database operations for the render ledger.
type RenderRecordRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.RenderRecordRepository = (*RenderRecordRepo)(nil)

// NewRenderRecordRepo creates a new RenderRecordRepo instance with the given database connection.
func NewRenderRecordRepo(db *sql.DB) *RenderRecordRepo {
	return &RenderRecordRepo{
		DB:           db,
		timeProvider: &RealTimeProvider{},
	}
}

// NewRenderRecordRepoWithTimeProvider creates a RenderRecordRepo with a custom TimeProvider (useful for testing).
func NewRenderRecordRepoWithTimeProvider(db *sql.DB, timeProvider TimeProvider) *RenderRecordRepo {
	return &RenderRecordRepo{
		DB:           db,
		timeProvider: timeProvider,
	}
}

// Create writes one finished job to the ledger and returns the stored row.
func (r *RenderRecordRepo) Create(ctx context.Context, req *model.CreateRenderRecordRequest) (*model.RenderRecord, error) {
	if req == nil {
		return nil, errors.New("create render record request is required")
	}
	if req.ID == "" {
		return nil, errors.New("render record id is required")
	}
	if req.Status == "" {
		return nil, errors.New("render record status is required")
	}

	createdAt := r.timeProvider.Now()

	var record model.RenderRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, renderRecordInsertQuery,
			req.ID, req.Mode, req.SceneName, req.Status, req.ErrorCode, req.ArtifactFile, req.DurationMS, createdAt)
		if err != nil {
			return err
		}
		defer rows.Close()
		record, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RenderRecord])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render record: %w", apperrors.MapDBError(err))
	}

	return &record, nil
}

// List retrieves ledger rows newest first with pagination.
func (r *RenderRecordRepo) List(ctx context.Context, limit, offset int) ([]*model.RenderRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var records []model.RenderRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, renderRecordListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		records, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RenderRecord])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list render records: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.RenderRecord, 0, len(records))
	for i := range records {
		out = append(out, &records[i])
	}
	return out, nil
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
// Using constants avoids runtime query building overhead for hot paths.
const (
	renderRecordInsertQuery = `
		INSERT INTO render_records (id, mode, scene_name, status, error_code, artifact_file, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, mode, scene_name, status, error_code, artifact_file, duration_ms, created_at`

	renderRecordListQuery = `
		SELECT id, mode, scene_name, status, error_code, artifact_file, duration_ms, created_at
		FROM render_records
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
)
