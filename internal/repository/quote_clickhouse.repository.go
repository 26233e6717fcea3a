package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/sirupsen/logrus"
)

// QuoteClickHouseRepository writes row batches to ClickHouse using the
// native batch protocol. Batches are assumed already validated; the
// destination table is assumed pre-provisioned.
type QuoteClickHouseRepository struct {
	conn driver.Conn
}

func NewQuoteClickHouseRepository(conn driver.Conn) *QuoteClickHouseRepository {
	return &QuoteClickHouseRepository{conn: conn}
}

var _ entity.RowSink = (*QuoteClickHouseRepository)(nil)

func (r *QuoteClickHouseRepository) InsertBatch(ctx context.Context, batch *entity.RowBatch) error {
	if batch == nil || len(batch.Rows) == 0 {
		return nil
	}

	prepared, err := r.conn.PrepareBatch(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s)", batch.Table, strings.Join(batch.Columns, ", "),
	))
	if err != nil {
		return fmt.Errorf("prepare batch for %s: %w", batch.Table, err)
	}

	for i, row := range batch.Rows {
		if err := prepared.Append(row...); err != nil {
			return fmt.Errorf("append row %d to batch: %w", i, err)
		}
	}

	if err := prepared.Send(); err != nil {
		return fmt.Errorf("send batch to %s: %w", batch.Table, err)
	}

	logrus.Debugf("inserted %d rows into %s", len(batch.Rows), batch.Table)

	return nil
}
