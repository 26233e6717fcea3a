package fixadapter

import (
	"testing"
	"time"

	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/quickfixgo/quickfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

func newTestDecoder() *SnapshotDecoder {
	return &SnapshotDecoder{now: func() time.Time { return testClock }}
}

func newSnapshotMessage(symbol string) *quickfix.Message {
	msg := quickfix.NewMessage()
	msg.Header.SetString(constant.TagMsgType, constant.MsgTypeMarketDataSnapshot)
	msg.Body.SetString(constant.TagSymbol, symbol)
	msg.Body.SetString(constant.TagMDReqID, "MDReq-EURUSD-2M-1-abcd1234")
	msg.Body.SetString(constant.TagSymbolSfx, "KX")
	return msg
}

func TestSnapshotDecoder_Decode(t *testing.T) {
	msg := newSnapshotMessage("EUR/USD")

	entries := newMDEntriesGroup()

	bid := entries.Add()
	bid.SetString(constant.TagMDEntryType, "0")
	bid.SetString(constant.TagMDEntryPx, "1.0851")
	bid.SetString(constant.TagMDEntrySize, "1000000")
	bid.SetString(constant.TagQuoteCondition, "A")
	bid.SetString(constant.TagSettlDate, "20250804")
	bid.SetString(constant.TagForwardPoints, "0.00125")
	bid.SetString(constant.TagPip, "12.5")
	bid.SetString(constant.TagTenor, "2M")
	bid.SetString(constant.TagSpotValueDate, "20250604")

	offer := entries.Add()
	offer.SetString(constant.TagMDEntryType, "1")
	offer.SetString(constant.TagMDEntryPx, "1.0853")

	msg.Body.SetGroup(entries)

	batch, err := newTestDecoder().Decode(msg)
	require.NoError(t, err)
	require.Len(t, batch.Rows, 2)
	assert.Equal(t, constant.QuoteTableName, batch.Table)
	assert.Equal(t, constant.QuoteColumns, batch.Columns)

	row := batch.Rows[0]
	require.Len(t, row, 17)
	assert.Equal(t, "MDReq-EURUSD-2M-1-abcd1234", row[2])
	assert.Equal(t, "EUR/USD", row[3])
	assert.Equal(t, "KX", row[4])
	assert.Equal(t, 1, row[5])
	assert.Equal(t, constant.SideBid, row[6])
	assert.Equal(t, 1.0851, row[7])
	assert.Equal(t, 1000000.0, row[8])
	assert.Equal(t, true, row[10])
	assert.Equal(t, time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC), row[11])
	assert.Equal(t, 0.00125, row[12])
	assert.Equal(t, "12.5", row[13])
	assert.Equal(t, "2M", row[14])
	assert.Equal(t, "20250604", row[15])
	assert.Equal(t, "FIX", row[16])

	row = batch.Rows[1]
	assert.Equal(t, constant.SideOffer, row[6])
	assert.Equal(t, 0.0, row[8], "absent size defaults to zero")
	assert.Equal(t, false, row[10], "absent quote condition is false")
	assert.Nil(t, row[11], "absent settlement date is null")
}

func TestSnapshotDecoder_InvalidForwardPointsDefaulted(t *testing.T) {
	msg := newSnapshotMessage("EUR/USD")

	entries := newMDEntriesGroup()
	entry := entries.Add()
	entry.SetString(constant.TagMDEntryType, "0")
	entry.SetString(constant.TagForwardPoints, "n/a")
	msg.Body.SetGroup(entries)

	batch, err := newTestDecoder().Decode(msg)
	require.NoError(t, err)
	require.Len(t, batch.Rows, 1)
	assert.Equal(t, 0.0, batch.Rows[0][12], "unparseable forward points default to zero")
}

func TestSnapshotDecoder_InvalidSettlDateYieldsNull(t *testing.T) {
	msg := newSnapshotMessage("EUR/USD")

	entries := newMDEntriesGroup()

	bad := entries.Add()
	bad.SetString(constant.TagMDEntryType, "0")
	bad.SetString(constant.TagSettlDate, "20259999")

	good := entries.Add()
	good.SetString(constant.TagMDEntryType, "1")
	good.SetString(constant.TagSettlDate, "20250804")

	msg.Body.SetGroup(entries)

	batch, err := newTestDecoder().Decode(msg)
	require.NoError(t, err)
	require.Len(t, batch.Rows, 2, "a malformed entry must not abort its siblings")
	assert.Nil(t, batch.Rows[0][11])
	assert.NotNil(t, batch.Rows[1][11])
}

func TestSnapshotDecoder_EntryTime(t *testing.T) {
	msg := newSnapshotMessage("EUR/USD")

	entries := newMDEntriesGroup()

	timed := entries.Add()
	timed.SetString(constant.TagMDEntryType, "0")
	timed.SetString(constant.TagMDEntryTime, "09:15:30")

	bogus := entries.Add()
	bogus.SetString(constant.TagMDEntryType, "1")
	bogus.SetString(constant.TagMDEntryTime, "morning")

	msg.Body.SetGroup(entries)

	batch, err := newTestDecoder().Decode(msg)
	require.NoError(t, err)
	require.Len(t, batch.Rows, 2)

	assert.Equal(t, time.Date(2025, 6, 2, 9, 15, 30, 0, time.UTC), batch.Rows[0][0])
	assert.Equal(t, testClock, batch.Rows[1][0], "unparseable entry time defaults to wall clock")
}

func TestSnapshotDecoder_EntryDateIsLocalMidnight(t *testing.T) {
	// Just past midnight in a UTC+10 zone: midnight on that zone's calendar
	// day, not a day boundary on the absolute UTC timeline.
	zone := time.FixedZone("UTC+10", 10*60*60)
	clock := time.Date(2025, 6, 3, 0, 30, 0, 0, zone)
	decoder := &SnapshotDecoder{now: func() time.Time { return clock }}

	msg := newSnapshotMessage("EUR/USD")
	entries := newMDEntriesGroup()
	entry := entries.Add()
	entry.SetString(constant.TagMDEntryType, "0")
	msg.Body.SetGroup(entries)

	batch, err := decoder.Decode(msg)
	require.NoError(t, err)
	require.Len(t, batch.Rows, 1)

	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, zone), batch.Rows[0][9])
}

func TestSnapshotDecoder_NoEntries(t *testing.T) {
	batch, err := newTestDecoder().Decode(newSnapshotMessage("EUR/USD"))
	require.NoError(t, err)
	assert.Empty(t, batch.Rows)

	forward, err := entity.ValidateRowBatch(batch, len(constant.QuoteColumns))
	require.NoError(t, err)
	assert.False(t, forward)
}

func TestSnapshotDecoder_MissingSymbol(t *testing.T) {
	msg := quickfix.NewMessage()
	msg.Header.SetString(constant.TagMsgType, constant.MsgTypeMarketDataSnapshot)

	_, err := newTestDecoder().Decode(msg)
	assert.Error(t, err)
}
