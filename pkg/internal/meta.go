package pkg

const AppVersion = "1.0.0"

// DefaultPluginID is the id the chat server knows the provider plugin by.
// Push event names and the plugin route are derived from it.
const DefaultPluginID = "zoom"
