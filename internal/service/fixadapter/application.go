package fixadapter

import (
	"context"
	"strings"

	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/kgsd/fx-md-adapter/internal/repository"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
)

// Application is the initiator-side FIX application. Logon triggers the
// subscription fan-out; inbound snapshots are decoded, validated, and handed
// to the sink. The transport layer may invoke callbacks concurrently across
// sessions, so all shared state lives in the registry.
type Application struct {
	currencyPairs []string
	catalog       *repository.SwapPointsCatalog
	registry      *SubscriptionRegistry
	builder       *RequestBuilder
	decoder       *SnapshotDecoder
	sink          entity.RowSink
	publisher     *RowPublisher
}

func NewApplication(
	currencyPairs []string,
	catalog *repository.SwapPointsCatalog,
	registry *SubscriptionRegistry,
	builder *RequestBuilder,
	decoder *SnapshotDecoder,
	sink entity.RowSink,
	publisher *RowPublisher,
) *Application {
	return &Application{
		currencyPairs: currencyPairs,
		catalog:       catalog,
		registry:      registry,
		builder:       builder,
		decoder:       decoder,
		sink:          sink,
		publisher:     publisher,
	}
}

func (a *Application) OnCreate(sessionID quickfix.SessionID) {
	logrus.Infof("session created: %s", sessionID)
}

// OnLogon runs the subscription fan-out: one spot request per configured
// currency pair, then at most one forward request per distinct normalized
// tenor found in the swap points catalog for that pair. A new logon starts a
// fresh cycle, so the registry is cleared first.
func (a *Application) OnLogon(sessionID quickfix.SessionID) {
	logrus.Infof("logon session: %s", sessionID)

	a.registry.Clear()

	for _, pair := range a.currencyPairs {
		a.builder.SendSpotRequest(sessionID, pair)

		entries := a.catalog.Lookup(pair)
		if len(entries) == 0 {
			continue
		}

		isNDF := strings.Contains(pair, "NDF") || strings.Contains(pair, "NDS")
		processedTenors := make(map[string]struct{})

		for _, entry := range entries {
			// Distinct catalog entries can collapse to the same tenor after
			// normalization; request each tenor only once per pair.
			if _, seen := processedTenors[entry.ToMaturity]; seen {
				logrus.Infof("skipping duplicate tenor %s for currency pair %s", entry.ToMaturity, pair)
				continue
			}
			processedTenors[entry.ToMaturity] = struct{}{}

			a.builder.SendForwardRequest(sessionID, pair, entry.FromMaturity, entry.ToMaturity, isNDF)
		}
	}
}

func (a *Application) OnLogout(sessionID quickfix.SessionID) {
	logrus.Infof("logout session: %s", sessionID)
}

// ToAdmin stamps the feed's custom logon marker on outbound Logon messages.
func (a *Application) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {
	msgType, err := msg.Header.GetString(constant.TagMsgType)
	if err != nil {
		logrus.Warnf("MsgType not found in ToAdmin for session %s: %v", sessionID, err)
		return
	}

	if msgType == constant.MsgTypeLogon {
		msg.Body.SetInt(constant.TagLogonMarker, 1)
		logrus.Infof("added logon marker to Logon message for session: %s", sessionID)
	}
}

func (a *Application) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	logrus.Debugf("admin message received on %s", sessionID)
	return nil
}

func (a *Application) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	logrus.Debugf("application message sent on %s", sessionID)
	return nil
}

func (a *Application) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	msgType, err := msg.Header.GetString(constant.TagMsgType)
	if err != nil {
		return err
	}

	switch msgType {
	case constant.MsgTypeMarketDataSnapshot:
		a.handleSnapshot(msg)
	case constant.MsgTypeMarketDataRequestReject:
		a.handleRequestReject(msg)
	default:
		logrus.Debugf("ignoring application message type %s", msgType)
	}

	return nil
}

func (a *Application) handleSnapshot(msg *quickfix.Message) {
	batch, err := a.decoder.Decode(msg)
	if err != nil {
		logrus.Errorf("error decoding market data snapshot: %v", err)
		return
	}

	forward, err := entity.ValidateRowBatch(batch, len(constant.QuoteColumns))
	if err != nil {
		logrus.Errorf("dropping invalid row batch: %v", err)
		return
	}
	if !forward {
		logrus.Debug("empty snapshot batch, nothing to insert")
		return
	}

	ctx := context.Background()
	if err := a.sink.InsertBatch(ctx, batch); err != nil {
		logrus.Errorf("failed to insert %d rows: %v", len(batch.Rows), err)
		return
	}
	logrus.Infof("published %d rows for table %s", len(batch.Rows), batch.Table)

	if a.publisher != nil {
		if err := a.publisher.PublishBatch(batch); err != nil {
			logrus.Errorf("failed to publish row batch event: %v", err)
		}
	}
}

func (a *Application) handleRequestReject(msg *quickfix.Message) {
	mdReqID := getString(&msg.Body.FieldMap, constant.TagMDReqID, "UNKNOWN")
	reason := getString(&msg.Body.FieldMap, constant.TagText, "no reason provided")
	logrus.Errorf("market data request rejected, MDReqID: %s, reason: %s", mdReqID, reason)
}
