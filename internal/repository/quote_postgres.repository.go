package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/kgsd/fx-md-adapter/internal/entity"
)

// QuotePostgresRepository is the relational sink alternative, used in
// environments without a ClickHouse cluster.
type QuotePostgresRepository struct {
	db *sqlx.DB
}

func NewQuotePostgresRepository(db *sqlx.DB) *QuotePostgresRepository {
	return &QuotePostgresRepository{db: db}
}

var _ entity.RowSink = (*QuotePostgresRepository)(nil)

func (r *QuotePostgresRepository) InsertBatch(ctx context.Context, batch *entity.RowBatch) error {
	if batch == nil || len(batch.Rows) == 0 {
		return nil
	}

	queryBuilder := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert(batch.Table).
		Columns(batch.Columns...)

	for _, row := range batch.Rows {
		queryBuilder = queryBuilder.Values(row...)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert for %s: %w", batch.Table, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert %d rows into %s: %w", len(batch.Rows), batch.Table, err)
	}

	return nil
}

func (r *QuotePostgresRepository) GetBySymbol(ctx context.Context, symbol string) ([]entity.QuoteRecord, error) {
	var records []entity.QuoteRecord
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM fx_forward_quotes WHERE sym = $1 ORDER BY rcv_time DESC", symbol)
	return records, err
}
