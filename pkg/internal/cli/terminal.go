package cli

import (
	"io"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/config"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/host"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/services"
	"git.solsynth.dev/hypernet/meeting/pkg/internal/transport"
	"github.com/spf13/viper"
)

// terminalSession wires the plugin to a terminal for one command.
type terminalSession struct {
	term *host.Terminal
	hub  *host.Hub
}

func newTerminalSession(w io.Writer, channelID string, plugin services.MeetingTransport, threads services.ThreadResolver) *terminalSession {
	term := host.NewTerminal(w, channelID)
	coordinator := services.NewCoordinator(plugin, threads, term, config.ProviderName())

	hub := host.NewHub()
	host.NewPlugin(config.PluginID(), coordinator, term).Initialize(hub)

	return &terminalSession{term: term, hub: hub}
}

func newTerminalSessionFromSettings(w io.Writer, channelID string) *terminalSession {
	token := viper.GetString("server.token")
	timeout := config.RequestTimeout()
	pluginClient := transport.NewClient(config.PluginURL(), token, timeout)
	chatClient := transport.NewClient(config.SiteURL(), token, timeout)
	return newTerminalSession(w, channelID, pluginClient, chatClient)
}

func (v *terminalSession) Run(action string, req host.ActionRequest) error {
	return v.hub.RunAction(action, req)
}

func (v *terminalSession) Close() {
	v.hub.Close()
}
