// Package cloud constructs the AWS client configuration the platform
// hands to service clients. The configuration is resolved once per process
// and cached, mirroring the config accessor's compute-once lifecycle.
package cloud

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/caarlos0/env/v11"
	"golang.org/x/sync/singleflight"

	"github.com/humanmade/platform-core/src/environment"
	"github.com/humanmade/platform-core/src/logger"
)

var log = logger.New("cloud")

// Credentials are explicit key/secret identifiers for the platform's AWS
// account. When both are present the SDK uses them directly; otherwise
// resolution falls through to the SDK's default provider chain (shared
// config, instance role, and so on).
type Credentials struct {
	// Env: ALTIS_AWS_ACCESS_KEY_ID.
	AccessKeyID string `env:"ALTIS_AWS_ACCESS_KEY_ID"`

	// Env: ALTIS_AWS_SECRET_ACCESS_KEY.
	SecretAccessKey string `env:"ALTIS_AWS_SECRET_ACCESS_KEY"`
}

var (
	cacheMu sync.RWMutex
	cached  aws.Config
	loaded  bool

	flight singleflight.Group
)

// Config returns the process-wide AWS client configuration, building it on
// first call: region from the environment identity, explicit static
// credentials when ALTIS_AWS_ACCESS_KEY_ID and ALTIS_AWS_SECRET_ACCESS_KEY
// are both set. Subsequent calls return the cached value for the process
// lifetime.
func Config(ctx context.Context) (aws.Config, error) {
	cacheMu.RLock()
	if loaded {
		cfg := cached
		cacheMu.RUnlock()
		return cfg, nil
	}
	cacheMu.RUnlock()

	v, err, _ := flight.Do("aws", func() (any, error) {
		cfg, err := build(ctx)
		if err != nil {
			return nil, err
		}
		cacheMu.Lock()
		cached = cfg
		loaded = true
		cacheMu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return aws.Config{}, err
	}
	return v.(aws.Config), nil
}

func build(ctx context.Context) (aws.Config, error) {
	region := environment.Region()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	creds := Credentials{}
	if err := env.Parse(&creds); err != nil {
		log.Warn().Err(err).Msg("could not parse cloud credentials, using default provider chain")
		creds = Credentials{}
	}

	if creds.AccessKeyID != "" && creds.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading aws configuration: %w", err)
	}

	log.Debug().Str("region", region).Msg("aws client configuration resolved")
	return cfg, nil
}

// reset clears the process cache. Test use only.
func reset() {
	cacheMu.Lock()
	cached = aws.Config{}
	loaded = false
	cacheMu.Unlock()
}
