package bootstrap

import (
	"context"

	"github.com/kgsd/fx-md-adapter/internal/config"
	"github.com/kgsd/fx-md-adapter/internal/service/mapping"
	"github.com/kgsd/fx-md-adapter/internal/util"
	"github.com/spf13/cobra"
)

func StartGenericAdapter(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An unreadable mapping table is the one fatal configuration error:
	// running the generic adapter without it is meaningless.
	mappingConfig, err := mapping.LoadMappingConfig(config.Env.MappingPath)
	util.ContinueOrFatal(err)

	engine, err := mapping.NewEngine(mappingConfig, mapping.NewParserRegistry())
	util.ContinueOrFatal(err)

	sink, closeSink, err := buildSink(ctx)
	util.ContinueOrFatal(err)

	app := mapping.NewAdapter(engine, sink)

	initiator, err := newInitiator(app, config.Env.Fix.SettingsPath)
	util.ContinueOrFatal(err)

	err = initiator.Start()
	util.ContinueOrFatal(err)

	wait := gracefulShutdown(ctx, config.Env.GracefulShutdownTimeout, map[string]operation{
		"fix initiator": func(ctx context.Context) error {
			initiator.Stop()
			return nil
		},
		"sink": closeSink,
	})

	<-wait
}
