package fixadapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/tenor"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
)

// MessageSender hands an outbound message to the transport layer, which owns
// delivery, sequencing, and retransmission.
type MessageSender interface {
	Send(msg *quickfix.Message, sessionID quickfix.SessionID) error
}

type sessionSender struct{}

func (sessionSender) Send(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return quickfix.SendToTarget(msg, sessionID)
}

// NewSessionSender returns the production MessageSender backed by the live
// quickfix session.
func NewSessionSender() MessageSender {
	return sessionSender{}
}

// RequestBuilder builds and dispatches market data subscription requests,
// deduplicated through a SubscriptionRegistry. A key is reserved before the
// send attempt and released again if the send fails, so a failed request
// never leaks a falsely-subscribed key.
type RequestBuilder struct {
	registry *SubscriptionRegistry
	sender   MessageSender
}

func NewRequestBuilder(registry *SubscriptionRegistry, sender MessageSender) *RequestBuilder {
	return &RequestBuilder{registry: registry, sender: sender}
}

// BuildSpotRequest reserves the spot subscription key for symbol and builds
// the request payload. Returns ok=false when the key is already reserved.
func (b *RequestBuilder) BuildSpotRequest(symbol string) (msg *quickfix.Message, key string, ok bool) {
	key = SpotKey(symbol)
	if !b.registry.TryReserve(key) {
		logrus.Infof("duplicate spot subscription for %s skipped", symbol)
		return nil, "", false
	}

	msg = quickfix.NewMessage()
	msg.Header.SetString(constant.TagMsgType, constant.MsgTypeMarketDataRequest)
	msg.Body.SetString(constant.TagMDReqID, newRequestID(symbol, "SPOT"))
	msg.Body.SetString(constant.TagSubscriptionRequestType, constant.SubscriptionSnapshotUpdates)

	group := newRelatedSymGroup()
	entry := group.Add()
	entry.SetString(constant.TagSymbol, symbol)
	entry.SetString(constant.TagSymbolSfx, constant.SymbolSfxKX)
	msg.Body.SetGroup(group)

	return msg, key, true
}

// BuildForwardRequest reserves the forward subscription key for symbol and
// the normalized tenor, then builds the request payload.
//
// Tenor selection: toMaturity, when non-empty, is set as the tenor field.
// Otherwise fromMaturity is used as a settlement date, but only when it
// normalizes to an eight digit explicit date. When toMaturity is empty and
// fromMaturity is a non-date tenor neither field is set; the desired request
// shape for that combination is still unclear with the feed provider, so the
// request goes out bare rather than guessing.
func (b *RequestBuilder) BuildForwardRequest(symbol, fromMaturity, toMaturity string, isNDF bool) (msg *quickfix.Message, key string, ok bool) {
	rawTenor := toMaturity
	if rawTenor == "" {
		rawTenor = fromMaturity
	}
	normalizedTenor := tenor.Normalize(rawTenor)

	key = ForwardKey(symbol, normalizedTenor)
	if !b.registry.TryReserve(key) {
		logrus.Infof("duplicate subscription for %s skipped", key)
		return nil, "", false
	}

	msg = quickfix.NewMessage()
	msg.Header.SetString(constant.TagMsgType, constant.MsgTypeMarketDataRequest)
	msg.Body.SetString(constant.TagMDReqID, newRequestID(symbol, normalizedTenor))
	msg.Body.SetString(constant.TagSubscriptionRequestType, constant.SubscriptionSnapshotUpdates)

	group := newRelatedSymGroup()
	entry := group.Add()
	entry.SetString(constant.TagSymbol, symbol)
	entry.SetString(constant.TagSymbolSfx, constant.SymbolSfxKX)

	tenorSet := false
	if toMaturity != "" && normalizedTenor != "" {
		entry.SetString(constant.TagTenor, normalizedTenor)
		logrus.Infof("using toMaturity as tenor: %s for %s", normalizedTenor, symbol)
		tenorSet = true
	}

	if !tenorSet && fromMaturity != "" && normalizedTenor != "" && tenor.IsExplicitDate(normalizedTenor) {
		entry.SetString(constant.TagSettlDate, normalizedTenor)
		logrus.Infof("using fromMaturity as settlement date: %s for %s", normalizedTenor, symbol)
	}

	if isNDF {
		entry.SetString(constant.TagNDFMarker, constant.NDFMarkerValue)
		entry.SetString(constant.TagSettlType, constant.SettlTypeNDF)
		logrus.Debugf("NDF flag set for %s", symbol)
	}

	msg.Body.SetGroup(group)

	return msg, key, true
}

// SendSpotRequest builds and dispatches a spot subscription for symbol.
// Duplicate keys are skipped silently; send failures release the key.
func (b *RequestBuilder) SendSpotRequest(sessionID quickfix.SessionID, symbol string) {
	msg, key, ok := b.BuildSpotRequest(symbol)
	if !ok {
		return
	}

	if err := b.sender.Send(msg, sessionID); err != nil {
		b.registry.Release(key)
		logrus.Errorf("error sending spot market data request for %s: %v", symbol, err)
		return
	}

	logrus.Infof("sent spot market data request for %s", symbol)
}

// SendForwardRequest builds and dispatches a forward subscription.
func (b *RequestBuilder) SendForwardRequest(sessionID quickfix.SessionID, symbol, fromMaturity, toMaturity string, isNDF bool) {
	msg, key, ok := b.BuildForwardRequest(symbol, fromMaturity, toMaturity, isNDF)
	if !ok {
		return
	}

	if err := b.sender.Send(msg, sessionID); err != nil {
		b.registry.Release(key)
		logrus.Errorf("error sending forward market data request for %s: %v", symbol, err)
		return
	}

	logrus.Infof("sent forward market data request for %s, key: %s, NDF: %v", symbol, key, isNDF)
}

func newRelatedSymGroup() *quickfix.RepeatingGroup {
	return quickfix.NewRepeatingGroup(constant.TagNoRelatedSym, quickfix.GroupTemplate{
		quickfix.GroupElement(constant.TagSymbol),
		quickfix.GroupElement(constant.TagSymbolSfx),
		quickfix.GroupElement(constant.TagTenor),
		quickfix.GroupElement(constant.TagSettlDate),
		quickfix.GroupElement(constant.TagNDFMarker),
		quickfix.GroupElement(constant.TagSettlType),
	})
}

// newRequestID generates a request identifier unique across rapid repeated
// calls for the same symbol and tenor.
func newRequestID(symbol, tenorLabel string) string {
	return fmt.Sprintf(
		"MDReq-%s-%s-%d-%s",
		strings.ReplaceAll(symbol, "/", ""),
		tenorLabel,
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
	)
}
