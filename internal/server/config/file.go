package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/flagx"
	"github.com/dmitrijs2005/praylink/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// "15m"-style strings. Only fields present in the file override defaults.
type FileConfig struct {
	EndpointAddrGRPC             string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	Storage                      string          `json:"storage" yaml:"storage"`
	DatabaseDSN                  string          `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string          `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	S3RootUser                   string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	StripeSecretKey              string          `json:"stripe_secret_key" yaml:"stripe_secret_key"`
	StripeWebhookSecret          string          `json:"stripe_webhook_secret" yaml:"stripe_webhook_secret"`
	PayPalClientID               string          `json:"paypal_client_id" yaml:"paypal_client_id"`
	PayPalSecret                 string          `json:"paypal_secret" yaml:"paypal_secret"`
	PayPalLive                   *bool           `json:"paypal_live" yaml:"paypal_live"`
	GeminiAPIKey                 string          `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel                  string          `json:"gemini_model" yaml:"gemini_model"`
	VerseFeedURL                 string          `json:"verse_feed_url" yaml:"verse_feed_url"`
	PremiumThreshold             *int64          `json:"premium_threshold" yaml:"premium_threshold"`
	LogFormat                    string          `json:"log_format" yaml:"log_format"`
	SeedDemo                     *bool           `json:"seed_demo" yaml:"seed_demo"`
}

// parseFile loads the file named by -c/-config, if any, and overlays it on
// config. The format follows the extension: .yaml/.yml or JSON otherwise.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&c.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&c.Storage, fc.Storage)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.SecretKey, fc.SecretKey)
	if fc.AccessTokenValidityDuration != nil {
		c.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.RefreshTokenValidityDuration != nil {
		c.RefreshTokenValidityDuration = fc.RefreshTokenValidityDuration.Duration
	}
	setString(&c.S3RootUser, fc.S3RootUser)
	setString(&c.S3RootPassword, fc.S3RootPassword)
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.StripeSecretKey, fc.StripeSecretKey)
	setString(&c.StripeWebhookSecret, fc.StripeWebhookSecret)
	setString(&c.PayPalClientID, fc.PayPalClientID)
	setString(&c.PayPalSecret, fc.PayPalSecret)
	if fc.PayPalLive != nil {
		c.PayPalLive = *fc.PayPalLive
	}
	setString(&c.GeminiAPIKey, fc.GeminiAPIKey)
	setString(&c.GeminiModel, fc.GeminiModel)
	setString(&c.VerseFeedURL, fc.VerseFeedURL)
	if fc.PremiumThreshold != nil {
		c.PremiumThreshold = *fc.PremiumThreshold
	}
	setString(&c.LogFormat, fc.LogFormat)
	if fc.SeedDemo != nil {
		c.SeedDemo = *fc.SeedDemo
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
