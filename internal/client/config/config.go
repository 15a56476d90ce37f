package config

import "time"

// Config holds runtime settings for the PrayLink CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DataDir: directory, relative to the working directory, holding the
//     offline feed cache.
//   - FeedMode: initial feed filter, "community" or "all".
//   - LogFormat: "json" (slog) or "zap".
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DataDir             string
	FeedMode            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = "praylink-data"
	c.FeedMode = "community"
	c.LogFormat = "json"
}

// LoadConfig applies defaults and then overlays the file at path, if any.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
