package fixadapter

import (
	"sync"

	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
)

// TriggerApplication is the acceptor-side FIX application. It carries no
// market data logic: the first inbound logon launches the initiator adapter
// as a supervised background task with its own lifecycle. Subsequent logons
// are ignored.
type TriggerApplication struct {
	launch func()
	once   sync.Once
}

func NewTriggerApplication(launch func()) *TriggerApplication {
	return &TriggerApplication{launch: launch}
}

func (a *TriggerApplication) OnLogon(sessionID quickfix.SessionID) {
	logrus.Infof("inbound logon received on acceptor session: %s", sessionID)

	a.once.Do(func() {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logrus.Errorf("triggered adapter panicked: %v", r)
				}
			}()
			a.launch()
		}()
	})
}

func (a *TriggerApplication) OnCreate(sessionID quickfix.SessionID) {}
func (a *TriggerApplication) OnLogout(sessionID quickfix.SessionID) {}

func (a *TriggerApplication) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}

func (a *TriggerApplication) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

func (a *TriggerApplication) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}

func (a *TriggerApplication) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}
