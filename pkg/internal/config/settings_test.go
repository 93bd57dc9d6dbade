package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderSettingsIsValid(t *testing.T) {
	for name, tc := range map[string]struct {
		settings ProviderSettings
		wantErr  string
	}{
		"api key mode": {
			settings: ProviderSettings{APIKey: "key", APISecret: "secret", WebhookSecret: "hook"},
		},
		"oauth mode": {
			settings: ProviderSettings{
				EnableOAuth:       true,
				OAuthClientID:     "client",
				OAuthClientSecret: "secret",
				EncryptionKey:     "enc",
				WebhookSecret:     "hook",
			},
		},
		"missing api secret": {
			settings: ProviderSettings{APIKey: "key", WebhookSecret: "hook"},
			wantErr:  "api_secret",
		},
		"oauth without client id": {
			settings: ProviderSettings{EnableOAuth: true, WebhookSecret: "hook"},
			wantErr:  "oauth_client_id",
		},
		"missing webhook secret": {
			settings: ProviderSettings{APIKey: "key", APISecret: "secret"},
			wantErr:  "webhook_secret",
		},
		"bad base url": {
			settings: ProviderSettings{
				APIKey:          "key",
				APISecret:       "secret",
				WebhookSecret:   "hook",
				ProviderBaseURL: "not a url",
			},
			wantErr: "invalid provider url",
		},
	} {
		t.Run(name, func(t *testing.T) {
			tc.settings.SetDefaults()
			err := tc.settings.IsValid()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestProviderSettingsDefaults(t *testing.T) {
	var settings ProviderSettings
	settings.SetDefaults()

	assert.Equal(t, providerDefaultURL, settings.ProviderBaseURL)
	assert.Equal(t, providerDefaultAPIURL, settings.ProviderAPIBaseURL)
}

func TestPluginURL(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("server.site_url", "https://chat.example.com/")
	viper.Set("plugin.id", "zoom")

	assert.Equal(t, "https://chat.example.com", SiteURL())
	assert.Equal(t, "https://chat.example.com/plugins/zoom", PluginURL())
	assert.Equal(t, "https://a.example/plugins/p", PluginURLFor("https://a.example/", "p"))
}

func TestLoadProviderSettings(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("zoom.api_key", "key")
	viper.Set("zoom.enable_oauth", true)

	settings, err := LoadProviderSettings()
	require.NoError(t, err)
	assert.Equal(t, "key", settings.APIKey)
	assert.True(t, settings.EnableOAuth)
	assert.Equal(t, providerDefaultURL, settings.ProviderBaseURL)
}
