package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/praylink/internal/flagx"
)

var serverFlags = []string{
	"-a", "-w", "-m", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-l",
	"-stripe-key", "-stripe-webhook-secret", "-paypal-id", "-paypal-secret", "-paypal-live",
	"-ai-key", "-ai-model", "-verse-feed", "-premium-threshold", "-seed",
}

// parseFlags populates Config fields from command-line flags.
//
// Short flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address for webhooks and health
//	-m string   storage backend: postgres | memory
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-u/-p/-b/-g/-e  S3 user, password, bucket, region, endpoint
//	-l string   log format: json | zap
//
// Long flags cover the payment, AI and premium settings.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.Storage, "m", config.Storage, "storage backend (postgres|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|zap)")

	fs.StringVar(&config.StripeSecretKey, "stripe-key", config.StripeSecretKey, "Stripe secret key")
	fs.StringVar(&config.StripeWebhookSecret, "stripe-webhook-secret", config.StripeWebhookSecret, "Stripe webhook signing secret")
	fs.StringVar(&config.PayPalClientID, "paypal-id", config.PayPalClientID, "PayPal client id")
	fs.StringVar(&config.PayPalSecret, "paypal-secret", config.PayPalSecret, "PayPal secret")
	fs.BoolVar(&config.PayPalLive, "paypal-live", config.PayPalLive, "use PayPal live API instead of sandbox")
	fs.StringVar(&config.GeminiAPIKey, "ai-key", config.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&config.GeminiModel, "ai-model", config.GeminiModel, "Gemini model")
	fs.StringVar(&config.VerseFeedURL, "verse-feed", config.VerseFeedURL, "verse of the day RSS feed")
	fs.Int64Var(&config.PremiumThreshold, "premium-threshold", config.PremiumThreshold, "tithe amount in cents unlocking premium (0 disables)")
	fs.BoolVar(&config.SeedDemo, "seed", config.SeedDemo, "seed demo data in memory storage")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * time.Minute
	return nil
}
