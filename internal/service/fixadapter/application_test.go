package fixadapter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/kgsd/fx-md-adapter/internal/repository"
	"github.com/quickfixgo/quickfix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	batches   []*entity.RowBatch
	insertErr error
}

func (s *fakeSink) InsertBatch(_ context.Context, batch *entity.RowBatch) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.batches = append(s.batches, batch)
	return nil
}

func newTestApplication(pairs []string, catalogCSV string, sender MessageSender, sink entity.RowSink) *Application {
	catalog := repository.LoadSwapPoints(strings.NewReader(catalogCSV))
	registry := NewSubscriptionRegistry()
	return NewApplication(
		pairs,
		catalog,
		registry,
		NewRequestBuilder(registry, sender),
		newTestDecoder(),
		sink,
		nil,
	)
}

// hasTenorField reports whether the request's related symbol entry carries a
// tenor, distinguishing forward requests from spot requests.
func hasTenorField(t *testing.T, msg *quickfix.Message) bool {
	t.Helper()
	return relatedSymEntry(t, msg).Has(constant.TagTenor)
}

func TestApplication_OnLogonFanOut(t *testing.T) {
	csv := "ccy1,ccy2,fromMaturity,toMaturity\n" +
		"EUR,USD,1M,2M\n" +
		"EUR,USD,2M,2M\n"
	sender := &fakeSender{}
	app := newTestApplication([]string{"EUR/USD"}, csv, sender, &fakeSink{})

	app.OnLogon(quickfix.SessionID{})

	// One spot request plus one forward request: the two catalog entries
	// share tenor 2M and collapse to a single subscription.
	require.Len(t, sender.sent, 2)
	assert.False(t, hasTenorField(t, sender.sent[0]))

	forwardEntry := relatedSymEntry(t, sender.sent[1])
	tenorValue, err := forwardEntry.GetString(constant.TagTenor)
	require.Nil(t, err)
	assert.Equal(t, "2M", tenorValue)
}

func TestApplication_OnLogonStartsFreshCycle(t *testing.T) {
	csv := "ccy1,ccy2,fromMaturity,toMaturity\nEUR,USD,1M,2M\n"
	sender := &fakeSender{}
	app := newTestApplication([]string{"EUR/USD"}, csv, sender, &fakeSink{})

	app.OnLogon(quickfix.SessionID{})
	require.Len(t, sender.sent, 2)

	// A reconnect clears the registry, so the full fan-out repeats.
	app.OnLogon(quickfix.SessionID{})
	assert.Len(t, sender.sent, 4)
}

func TestApplication_OnLogonNDFPair(t *testing.T) {
	csv := "ccy1,ccy2,fromMaturity,toMaturity\nUSD,INR NDF,1M,2M\n"
	sender := &fakeSender{}
	app := newTestApplication([]string{"USD/INR NDF"}, csv, sender, &fakeSink{})

	app.OnLogon(quickfix.SessionID{})

	require.Len(t, sender.sent, 2)
	entry := relatedSymEntry(t, sender.sent[1])
	marker, err := entry.GetString(constant.TagNDFMarker)
	require.Nil(t, err)
	assert.Equal(t, constant.NDFMarkerValue, marker)
}

func TestApplication_OnLogonPairWithoutCatalogEntries(t *testing.T) {
	sender := &fakeSender{}
	app := newTestApplication([]string{"GBP/USD"}, "ccy1,ccy2,fromMaturity,toMaturity\n", sender, &fakeSink{})

	app.OnLogon(quickfix.SessionID{})

	// Spot only; no forward requests without reference data.
	require.Len(t, sender.sent, 1)
	assert.False(t, hasTenorField(t, sender.sent[0]))
}

func TestApplication_ToAdminStampsLogonMarker(t *testing.T) {
	app := newTestApplication(nil, "", &fakeSender{}, &fakeSink{})

	logon := quickfix.NewMessage()
	logon.Header.SetString(constant.TagMsgType, constant.MsgTypeLogon)
	app.ToAdmin(logon, quickfix.SessionID{})

	marker, err := logon.Body.GetInt(constant.TagLogonMarker)
	require.Nil(t, err)
	assert.Equal(t, 1, marker)

	heartbeat := quickfix.NewMessage()
	heartbeat.Header.SetString(constant.TagMsgType, "0")
	app.ToAdmin(heartbeat, quickfix.SessionID{})
	assert.False(t, heartbeat.Body.Has(constant.TagLogonMarker))
}

func TestApplication_FromAppSnapshotInserted(t *testing.T) {
	sink := &fakeSink{}
	app := newTestApplication(nil, "", &fakeSender{}, sink)

	msg := newSnapshotMessage("EUR/USD")
	entries := newMDEntriesGroup()
	entry := entries.Add()
	entry.SetString(constant.TagMDEntryType, "0")
	entry.SetString(constant.TagMDEntryPx, "1.0851")
	msg.Body.SetGroup(entries)

	require.Nil(t, app.FromApp(msg, quickfix.SessionID{}))

	require.Len(t, sink.batches, 1)
	assert.Equal(t, constant.QuoteTableName, sink.batches[0].Table)
	require.Len(t, sink.batches[0].Rows, 1)
}

func TestApplication_FromAppEmptySnapshotSkipsSink(t *testing.T) {
	sink := &fakeSink{}
	app := newTestApplication(nil, "", &fakeSender{}, sink)

	require.Nil(t, app.FromApp(newSnapshotMessage("EUR/USD"), quickfix.SessionID{}))
	assert.Empty(t, sink.batches)
}

func TestApplication_FromAppSinkFailureDoesNotReject(t *testing.T) {
	sink := &fakeSink{insertErr: errors.New("connection refused")}
	app := newTestApplication(nil, "", &fakeSender{}, sink)

	msg := newSnapshotMessage("EUR/USD")
	entries := newMDEntriesGroup()
	entry := entries.Add()
	entry.SetString(constant.TagMDEntryType, "0")
	msg.Body.SetGroup(entries)

	// Sink failures are logged, never surfaced as a session-level reject.
	assert.Nil(t, app.FromApp(msg, quickfix.SessionID{}))
}

func TestApplication_FromAppRequestReject(t *testing.T) {
	app := newTestApplication(nil, "", &fakeSender{}, &fakeSink{})

	msg := quickfix.NewMessage()
	msg.Header.SetString(constant.TagMsgType, constant.MsgTypeMarketDataRequestReject)
	msg.Body.SetString(constant.TagMDReqID, "MDReq-EURUSD-SPOT-1-abcd1234")
	msg.Body.SetString(constant.TagText, "unknown symbol")

	assert.Nil(t, app.FromApp(msg, quickfix.SessionID{}))
}
