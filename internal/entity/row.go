package entity

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var ErrNilBatch = errors.New("row batch is nil")

// Row is one ordered set of cell values destined for a sink table. Cell
// order follows the owning batch's Columns.
type Row []any

// RowBatch is a rectangular set of rows for one destination table.
type RowBatch struct {
	Table   string
	Columns []string
	Rows    []Row
}

func (b *RowBatch) Append(row Row) {
	b.Rows = append(b.Rows, row)
}

// ValidateRowBatch checks batch shape before it is handed to a sink. It
// returns whether the batch should be forwarded: an empty batch is valid but
// skipped. A nil row or a row whose cell count differs from
// expectedColumnCount rejects the whole batch. Nil cells are permitted and
// only logged.
func ValidateRowBatch(batch *RowBatch, expectedColumnCount int) (bool, error) {
	if batch == nil {
		return false, ErrNilBatch
	}

	if len(batch.Rows) == 0 {
		return false, nil
	}

	for i, row := range batch.Rows {
		if row == nil {
			return false, fmt.Errorf("row %d is nil in batch for table %s", i, batch.Table)
		}

		if len(row) != expectedColumnCount {
			return false, fmt.Errorf("row %d has incorrect column count: expected %d, got %d", i, expectedColumnCount, len(row))
		}

		for j, cell := range row {
			if cell == nil {
				logrus.Warnf("row %d column %d (%s) is nil", i, j, batch.columnName(j))
			}
		}
	}

	return true, nil
}

func (b *RowBatch) columnName(i int) string {
	if i < len(b.Columns) {
		return b.Columns[i]
	}
	return fmt.Sprintf("#%d", i)
}
