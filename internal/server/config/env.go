package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names. JWT_SECRET and DATABASE_URL are accepted as
// the conventional spellings next to the prefixed ones.
const (
	envHTTPAddr       = "HOVERBOARD_HTTP_ADDR"
	envGRPCAddr       = "HOVERBOARD_GRPC_ADDR"
	envDatabaseURL    = "DATABASE_URL"
	envDatabaseDSN    = "HOVERBOARD_DATABASE_DSN"
	envJWTSecret      = "JWT_SECRET"
	envJWTAlgorithm   = "JWT_ALGORITHM"
	envTokenValidity  = "HOVERBOARD_TOKEN_VALIDITY"
	envBcryptCost     = "HOVERBOARD_BCRYPT_COST"
	envSeed           = "HOVERBOARD_SEED"
	envS3User         = "HOVERBOARD_S3_USER"
	envS3Password     = "HOVERBOARD_S3_PASSWORD"
	envS3Bucket       = "HOVERBOARD_S3_BUCKET"
	envS3Region       = "HOVERBOARD_S3_REGION"
	envS3BaseEndpoint = "HOVERBOARD_S3_ENDPOINT"
	envLogLevel       = "HOVERBOARD_LOG_LEVEL"
)

// parseEnv loads the dotenv file named by -env (or ./.env when present)
// without overriding variables already set, then copies every non-empty
// variable into config. Malformed numbers, booleans or durations panic,
// like malformed JSON does.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load()
	}

	setString(&config.EndpointAddrHTTP, envHTTPAddr)
	setString(&config.EndpointAddrGRPC, envGRPCAddr)
	setString(&config.DatabaseDSN, envDatabaseURL)
	setString(&config.DatabaseDSN, envDatabaseDSN)
	setString(&config.SecretKey, envJWTSecret)
	setString(&config.TokenAlgorithm, envJWTAlgorithm)
	setString(&config.S3RootUser, envS3User)
	setString(&config.S3RootPassword, envS3Password)
	setString(&config.S3Bucket, envS3Bucket)
	setString(&config.S3Region, envS3Region)
	setString(&config.S3BaseEndpoint, envS3BaseEndpoint)
	setString(&config.LogLevel, envLogLevel)

	if v := os.Getenv(envTokenValidity); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.AccessTokenValidityDuration = d
	}
	if v := os.Getenv(envBcryptCost); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.BcryptCost = n
	}
	if v := os.Getenv(envSeed); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.SeedSampleData = b
	}
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
