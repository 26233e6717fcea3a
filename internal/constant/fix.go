package constant

import "github.com/quickfixgo/quickfix"

const (
	MsgTypeLogon                   = "A"
	MsgTypeMarketDataRequest       = "V"
	MsgTypeMarketDataSnapshot      = "W"
	MsgTypeMarketDataRequestReject = "Y"
)

const (
	TagMsgType                 = quickfix.Tag(35)
	TagSymbol                  = quickfix.Tag(55)
	TagText                    = quickfix.Tag(58)
	TagSettlType               = quickfix.Tag(63)
	TagSettlDate               = quickfix.Tag(64)
	TagSymbolSfx               = quickfix.Tag(65)
	TagNoRelatedSym            = quickfix.Tag(146)
	TagMDReqID                 = quickfix.Tag(262)
	TagSubscriptionRequestType = quickfix.Tag(263)
	TagNoMDEntries             = quickfix.Tag(268)
	TagMDEntryType             = quickfix.Tag(269)
	TagMDEntryPx               = quickfix.Tag(270)
	TagMDEntrySize             = quickfix.Tag(271)
	TagMDEntryDate             = quickfix.Tag(272)
	TagMDEntryTime             = quickfix.Tag(273)
	TagQuoteCondition          = quickfix.Tag(276)

	// Feed-specific custom tags.
	TagForwardPoints = quickfix.Tag(5675)
	TagPip           = quickfix.Tag(5678)
	TagTenor         = quickfix.Tag(6215)
	TagLogonMarker   = quickfix.Tag(6300)
	TagOrigin        = quickfix.Tag(6313)
	TagSpotValueDate = quickfix.Tag(6314)
	TagNDFMarker     = quickfix.Tag(9001)
)

const (
	MDEntryTypeBid              = "0"
	SubscriptionSnapshotUpdates = "1"
	SettlTypeNDF                = "6"
	SymbolSfxKX                 = "KX"
	NDFMarkerValue              = "NDF"
	QuoteConditionActive        = 'A'
	OriginDefault               = "FIX"

	SideBid   = "BID"
	SideOffer = "OFFER"
)
