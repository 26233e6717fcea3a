package mapping

import (
	"context"

	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
)

// Adapter is the FIX application for the mapping-driven run mode. Every
// inbound application message goes through the engine; messages without a
// configured mapping are ignored, and a failed row never crashes the
// session.
type Adapter struct {
	engine *Engine
	sink   entity.RowSink
}

func NewAdapter(engine *Engine, sink entity.RowSink) *Adapter {
	return &Adapter{engine: engine, sink: sink}
}

func (a *Adapter) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	batch, err := a.engine.Decode(msg)
	if err != nil {
		logrus.Errorf("error processing FIX message: %v", err)
		return nil
	}
	if batch == nil {
		return nil
	}

	forward, err := entity.ValidateRowBatch(batch, len(batch.Columns))
	if err != nil {
		logrus.Errorf("dropping invalid mapped row: %v", err)
		return nil
	}
	if !forward {
		return nil
	}

	if err := a.sink.InsertBatch(context.Background(), batch); err != nil {
		logrus.Errorf("failed to insert mapped row into %s: %v", batch.Table, err)
	}

	return nil
}

func (a *Adapter) OnCreate(sessionID quickfix.SessionID) {}

func (a *Adapter) OnLogon(sessionID quickfix.SessionID) {
	logrus.Infof("logon session: %s", sessionID)
}

func (a *Adapter) OnLogout(sessionID quickfix.SessionID) {
	logrus.Infof("logout session: %s", sessionID)
}

func (a *Adapter) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}

func (a *Adapter) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

func (a *Adapter) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}
