package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/kgsd/fx-md-adapter/internal/config"
	"github.com/kgsd/fx-md-adapter/internal/service/fixadapter"
	"github.com/kgsd/fx-md-adapter/internal/util"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func StartTriggerAcceptor(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := fixadapter.NewTriggerApplication(func() {
		if err := RunAdapter(ctx); err != nil {
			logrus.Errorf("triggered adapter exited: %v", err)
		}
	})

	acceptor, err := newAcceptor(app, config.Env.Fix.AcceptorSettingsPath)
	util.ContinueOrFatal(err)

	err = acceptor.Start()
	util.ContinueOrFatal(err)

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, map[string]operation{
		"fix acceptor": func(ctx context.Context) error {
			acceptor.Stop()
			return nil
		},
		"triggered adapter": func(ctx context.Context) error {
			cancel()
			return nil
		},
	})

	<-wait
}

func newAcceptor(app quickfix.Application, settingsPath string) (*quickfix.Acceptor, error) {
	file, err := os.Open(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("open fix settings %s: %w", settingsPath, err)
	}
	defer file.Close()

	settings, err := quickfix.ParseSettings(file)
	if err != nil {
		return nil, fmt.Errorf("parse fix settings %s: %w", settingsPath, err)
	}

	return quickfix.NewAcceptor(app, quickfix.NewMemoryStoreFactory(), settings, quickfix.NewScreenLogFactory())
}
