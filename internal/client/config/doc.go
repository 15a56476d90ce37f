// Package config loads runtime configuration for the PrayLink CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file passed to LoadConfig; the extension picks
//     the format.
//  3. Command-line flags bound by the cli command, which override both.
//
// # File schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "data_dir": "praylink-data",
//	  "feed_mode": "community",
//	  "log_format": "json"
//	}
package config
