package fixadapter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
)

// SnapshotDecoder converts one MarketDataSnapshotFullRefresh message into a
// row batch matching the forward quote table shape. One row is emitted per
// MD entry; a malformed entry is skipped without aborting its siblings.
type SnapshotDecoder struct {
	now func() time.Time
}

func NewSnapshotDecoder() *SnapshotDecoder {
	return &SnapshotDecoder{now: time.Now}
}

func (d *SnapshotDecoder) Decode(msg *quickfix.Message) (*entity.RowBatch, error) {
	symbol, err := msg.Body.GetString(constant.TagSymbol)
	if err != nil {
		return nil, fmt.Errorf("snapshot missing symbol: %v", err)
	}

	reqID := getString(&msg.Body.FieldMap, constant.TagMDReqID, "")
	symbolSfx := getString(&msg.Body.FieldMap, constant.TagSymbolSfx, "")
	origin := getString(&msg.Body.FieldMap, constant.TagOrigin, constant.OriginDefault)

	batch := &entity.RowBatch{
		Table:   constant.QuoteTableName,
		Columns: constant.QuoteColumns,
	}

	if !msg.Body.Has(constant.TagNoMDEntries) {
		return batch, nil
	}

	entries := newMDEntriesGroup()
	if rejectErr := msg.Body.GetGroup(entries); rejectErr != nil {
		return nil, fmt.Errorf("read MD entries for %s: %v", symbol, rejectErr)
	}

	for i := 0; i < entries.Len(); i++ {
		group := entries.Get(i)

		entryType, rejectErr := group.GetString(constant.TagMDEntryType)
		if rejectErr != nil {
			logrus.Warnf("snapshot entry %d for %s missing entry type, skipping", i, symbol)
			continue
		}

		side := constant.SideOffer
		if entryType == constant.MDEntryTypeBid {
			side = constant.SideBid
		}

		price := getFloat(&group.FieldMap, constant.TagMDEntryPx)
		size := getFloat(&group.FieldMap, constant.TagMDEntrySize)

		forwardPoints := 0.0
		if group.Has(constant.TagForwardPoints) {
			raw, _ := group.GetString(constant.TagForwardPoints)
			parsed, parseErr := strconv.ParseFloat(raw, 64)
			if parseErr != nil {
				logrus.Warnf("invalid forwardPoints value '%s'", raw)
			} else {
				forwardPoints = parsed
			}
		}

		pip := getString(&group.FieldMap, constant.TagPip, "")
		tenorValue := getString(&group.FieldMap, constant.TagTenor, "")
		spotVDate := getString(&group.FieldMap, constant.TagSpotValueDate, "")

		var settlDate any
		if group.Has(constant.TagSettlDate) {
			raw, _ := group.GetString(constant.TagSettlDate)
			if parsed, ok := parseFixDate(raw); ok {
				settlDate = parsed
			}
		}

		entryTime := d.now()
		if group.Has(constant.TagMDEntryTime) {
			raw, _ := group.GetString(constant.TagMDEntryTime)
			entryTime = d.parseFixTime(raw)
		}

		rcvTime := d.now()
		entryDate := time.Date(rcvTime.Year(), rcvTime.Month(), rcvTime.Day(),
			0, 0, 0, 0, rcvTime.Location())

		quoteCond := false
		if raw := getString(&group.FieldMap, constant.TagQuoteCondition, ""); raw != "" {
			quoteCond = raw[0] == constant.QuoteConditionActive
		}

		batch.Append(entity.Row{
			entryTime,
			rcvTime,
			reqID,
			symbol,
			symbolSfx,
			1,
			side,
			price,
			size,
			entryDate,
			quoteCond,
			settlDate,
			forwardPoints,
			pip,
			tenorValue,
			spotVDate,
			origin,
		})
	}

	return batch, nil
}

// parseFixDate parses an eight digit YYYYMMDD string. Returns ok=false on
// any parse failure; callers treat that as a null cell.
func parseFixDate(yyyymmdd string) (time.Time, bool) {
	if len(yyyymmdd) != 8 {
		return time.Time{}, false
	}
	parsed, err := time.Parse("20060102", yyyymmdd)
	if err != nil {
		logrus.Warnf("failed to parse FIX date string '%s': %v", yyyymmdd, err)
		return time.Time{}, false
	}
	return parsed, true
}

// parseFixTime parses an HH:MM:SS string onto today's date, defaulting to
// the current wall-clock time on absence or failure.
func (d *SnapshotDecoder) parseFixTime(hhmmss string) time.Time {
	if !strings.Contains(hhmmss, ":") {
		return d.now()
	}
	parsed, err := time.Parse("15:04:05", hhmmss)
	if err != nil {
		logrus.Warnf("failed to parse FIX time '%s': %v", hhmmss, err)
		return d.now()
	}
	now := d.now()
	return time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, now.Location())
}

func newMDEntriesGroup() *quickfix.RepeatingGroup {
	return quickfix.NewRepeatingGroup(constant.TagNoMDEntries, quickfix.GroupTemplate{
		quickfix.GroupElement(constant.TagMDEntryType),
		quickfix.GroupElement(constant.TagMDEntryPx),
		quickfix.GroupElement(constant.TagMDEntrySize),
		quickfix.GroupElement(constant.TagMDEntryDate),
		quickfix.GroupElement(constant.TagMDEntryTime),
		quickfix.GroupElement(constant.TagQuoteCondition),
		quickfix.GroupElement(constant.TagSettlDate),
		quickfix.GroupElement(constant.TagForwardPoints),
		quickfix.GroupElement(constant.TagPip),
		quickfix.GroupElement(constant.TagTenor),
		quickfix.GroupElement(constant.TagSpotValueDate),
	})
}

func getString(m *quickfix.FieldMap, tag quickfix.Tag, fallback string) string {
	if !m.Has(tag) {
		return fallback
	}
	value, err := m.GetString(tag)
	if err != nil {
		return fallback
	}
	return value
}

func getFloat(m *quickfix.FieldMap, tag quickfix.Tag) float64 {
	raw := getString(m, tag, "")
	if raw == "" {
		return 0.0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0.0
	}
	return parsed
}
