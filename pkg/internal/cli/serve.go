package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	pkg "git.solsynth.dev/hypernet/meeting/pkg/internal"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/config"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/database"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/gateway"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/http"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/logging"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/transport"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the companion server",
		Run: func(cmd *cobra.Command, args []string) {
			serve()
		},
	}
}

func serve() {
	// Load settings
	if err := loadSettings(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}
	logging.Setup()

	if settings, err := config.LoadProviderSettings(); err != nil {
		log.Warn().Err(err).Msg("An error occurred when reading provider settings.")
	} else if err := settings.IsValid(); err != nil {
		log.Warn().Err(err).Msg("Provider settings are incomplete, the meeting server may refuse requests.")
	}

	// Connect to database
	if err := database.NewSource(); errors.Is(err, database.ErrNotConfigured) {
		log.Info().Msg("No database configured, meeting snapshots will not be archived.")
	} else if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Wire the plugin
	token := viper.GetString("server.token")
	pluginClient := transport.NewClient(config.PluginURL(), token, config.RequestTimeout())
	chatClient := transport.NewClient(config.SiteURL(), token, config.RequestTimeout())

	hub := host.NewHub()
	coordinator := services.NewCoordinator(pluginClient, chatClient, hub, config.ProviderName())
	plugin := host.NewPlugin(config.PluginID(), coordinator, hub)
	plugin.Archive = database.Enabled()
	plugin.Initialize(hub)

	// Server
	server := http.NewServer(hub)
	go server.Listen()

	grpcServer := grpc.NewGrpc()
	go func() {
		if err := grpcServer.Listen(); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting grpc server...")
		}
	}()

	// Gateway
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if site := config.SiteURL(); len(site) > 0 {
		listener, err := gateway.NewListener(site, token, hub)
		if err != nil {
			log.Fatal().Err(err).Msg("An error occurred when configuring gateway.")
		}
		listener.OnStateChange = grpcServer.SetGatewayConnected
		go func() {
			_ = listener.Run(ctx)
		}()
	} else {
		log.Warn().Msg("No server.site_url configured, push events will not be received.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoSnapshotCleanup)
	quartz.Start()

	// Messages
	log.Info().Msgf("Meeting v%s is started...", pkg.AppVersion)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msgf("Meeting v%s is quitting...", pkg.AppVersion)

	cancel()
	quartz.Stop()
	_ = server.Shutdown()
	grpcServer.Stop()
	hub.Close()
}
