package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	pkg "git.solsynth.dev/hypernet/meeting/pkg/internal"
	"github.com/spf13/viper"
)

const (
	providerDefaultURL    = "https://zoom.us"
	providerDefaultAPIURL = "https://api.zoom.us/v2"
)

// ProviderSettings mirrors the provider plugin's settings record.
// It is owned by the chat server; here it is only loaded and checked so
// misconfiguration shows up in the logs before the first meeting fails.
type ProviderSettings struct {
	AccountLevelApp    bool   `mapstructure:"account_level_app"`
	APIKey             string `mapstructure:"api_key"`
	APISecret          string `mapstructure:"api_secret"`
	EnableOAuth        bool   `mapstructure:"enable_oauth"`
	EncryptionKey      string `mapstructure:"encryption_key"`
	OAuthClientID      string `mapstructure:"oauth_client_id"`
	OAuthClientSecret  string `mapstructure:"oauth_client_secret"`
	WebhookSecret      string `mapstructure:"webhook_secret"`
	ProviderAPIBaseURL string `mapstructure:"api_base_url"`
	ProviderBaseURL    string `mapstructure:"base_url"`
}

func (v *ProviderSettings) SetDefaults() {
	if v.ProviderBaseURL == "" {
		v.ProviderBaseURL = providerDefaultURL
	}
	if v.ProviderAPIBaseURL == "" {
		v.ProviderAPIBaseURL = providerDefaultAPIURL
	}
}

func (v *ProviderSettings) IsValid() error {
	switch {
	case v.EnableOAuth && v.OAuthClientID == "":
		return fmt.Errorf("please configure oauth_client_id")
	case v.EnableOAuth && v.OAuthClientSecret == "":
		return fmt.Errorf("please configure oauth_client_secret")
	case v.EnableOAuth && v.EncryptionKey == "":
		return fmt.Errorf("please generate encryption_key from the plugin settings")
	case !v.EnableOAuth && v.APIKey == "":
		return fmt.Errorf("please configure api_key")
	case !v.EnableOAuth && v.APISecret == "":
		return fmt.Errorf("please configure api_secret")
	case v.WebhookSecret == "":
		return fmt.Errorf("please configure webhook_secret")
	}

	for _, raw := range []string{v.ProviderBaseURL, v.ProviderAPIBaseURL} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid provider url %q: %v", raw, err)
		}
	}

	return nil
}

func LoadProviderSettings() (ProviderSettings, error) {
	var settings ProviderSettings
	if err := viper.UnmarshalKey("zoom", &settings); err != nil {
		return settings, fmt.Errorf("unable to read provider settings: %v", err)
	}
	settings.SetDefaults()
	return settings, nil
}

func SetDefaults() {
	viper.SetDefault("bind", "0.0.0.0:8446")
	viper.SetDefault("grpc_bind", "0.0.0.0:7446")
	viper.SetDefault("plugin.id", pkg.DefaultPluginID)
	viper.SetDefault("plugin.provider", "Zoom")
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.max_size_mb", 50)
	viper.SetDefault("logging.max_backups", 5)
	viper.SetDefault("records.retention_days", 30)
}

// Load reads settings.toml from the working directory or its parent.
// Environment variables prefixed with MEETING_ override file values.
func Load() error {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("meeting")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()
	return viper.ReadInConfig()
}

// SiteURL is the chat server base url without a trailing slash.
func SiteURL() string {
	return strings.TrimSuffix(viper.GetString("server.site_url"), "/")
}

// PluginURL is the base url every plugin endpoint hangs off.
func PluginURL() string {
	return PluginURLFor(SiteURL(), viper.GetString("plugin.id"))
}

func PluginURLFor(siteURL, pluginID string) string {
	return strings.TrimSuffix(siteURL, "/") + "/plugins/" + pluginID
}

func PluginID() string {
	return viper.GetString("plugin.id")
}

func ProviderName() string {
	return viper.GetString("plugin.provider")
}

func RequestTimeout() time.Duration {
	return viper.GetDuration("server.timeout")
}
