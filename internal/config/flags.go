package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line configuration flags from args into a
// fresh [StructuredConfig]. A dedicated FlagSet is used so the function can
// be called more than once (e.g. from tests).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (postgres|sqlite)
//	-c/-config json file path with configs
//	-frontend-url web client base URL
//	-bcrypt-cost bcrypt cost factor
//	-access-token-secret access token signing key
//	-refresh-token-secret refresh token signing key
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-bucket object store bucket
//	-s3-endpoint object store endpoint
//	-mail-gateway mail gateway URL
//	-redis redis address for the notification queue
//	-otlp-endpoint OTLP/HTTP collector URL
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-onboard", flag.ContinueOnError)

	var serverAddress NetAddress
	var databaseDSN, driver string
	var jsonConfigPath string
	var frontendURL string
	var bcryptCost int
	var accessTokenSecret, refreshTokenSecret string
	var requestTimeout time.Duration
	var bucket, s3Endpoint string
	var mailGateway string
	var redisAddress string
	var otlpEndpoint string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&driver, "driver", "", "Database driver (postgres|sqlite)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&frontendURL, "frontend-url", "", "Web client base URL")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost factor")
	fs.StringVar(&accessTokenSecret, "access-token-secret", "", "Access token signing key")
	fs.StringVar(&refreshTokenSecret, "refresh-token-secret", "", "Refresh token signing key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&bucket, "bucket", "", "Object store bucket")
	fs.StringVar(&s3Endpoint, "s3-endpoint", "", "Object store endpoint")
	fs.StringVar(&mailGateway, "mail-gateway", "", "Mail gateway URL")
	fs.StringVar(&redisAddress, "redis", "", "Redis address for the notification queue")
	fs.StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP collector URL")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			FrontendURL:        frontendURL,
			BcryptCost:         bcryptCost,
			AccessTokenSecret:  accessTokenSecret,
			RefreshTokenSecret: refreshTokenSecret,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			ObjectStore: ObjectStore{
				Endpoint: s3Endpoint,
				Bucket:   bucket,
			},
			Mail: Mail{
				GatewayURL: mailGateway,
			},
		},
		Workers: Workers{
			RedisAddress: redisAddress,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: otlpEndpoint,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so that the
// default address is not overridden.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
