package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the optional JSON config file.
// Durations accept either Go duration strings ("15m") or nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		Name                 string   `json:"name"`
		FrontendURL          string   `json:"frontend_url"`
		SupportEmail         string   `json:"support_email"`
		BcryptCost           int      `json:"bcrypt_cost"`
		AccessTokenSecret    string   `json:"access_token_secret"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenSecret   string   `json:"refresh_token_secret"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		TokenIssuer          string   `json:"token_issuer"`
		Version              string   `json:"version"`
		LogLevel             string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		MaxUploadSize   int64    `json:"max_upload_size"`
		SecureCookies   bool     `json:"secure_cookies"`
	} `json:"server,omitempty"`

	Adapter struct {
		ObjectStore struct {
			Endpoint        string   `json:"endpoint"`
			Region          string   `json:"region"`
			Bucket          string   `json:"bucket"`
			AccessKeyID     string   `json:"access_key_id"`
			SecretAccessKey string   `json:"secret_access_key"`
			PublicBaseURL   string   `json:"public_base_url"`
			UsePathStyle    bool     `json:"use_path_style"`
			MaxRetries      int      `json:"max_retries"`
			CallTimeout     Duration `json:"call_timeout"`
		} `json:"object_store,omitempty"`

		Mail struct {
			GatewayURL   string   `json:"gateway_url"`
			GatewayToken string   `json:"gateway_token"`
			From         string   `json:"from"`
			Timeout      Duration `json:"timeout"`
		} `json:"mail,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		QueueSize     int    `json:"queue_size"`
		RedisAddress  string `json:"redis_address"`
		RedisPassword string `json:"redis_password"`
		RedisDB       int    `json:"redis_db"`
		Concurrency   int    `json:"concurrency"`
	} `json:"workers,omitempty"`

	Telemetry struct {
		OTLPEndpoint string `json:"otlp_endpoint"`
		ServiceName  string `json:"service_name"`
	} `json:"telemetry,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	app := jsonCfg.App
	objectStore := jsonCfg.Adapter.ObjectStore
	mail := jsonCfg.Adapter.Mail

	cfg := &StructuredConfig{
		App: App{
			Name:                 app.Name,
			FrontendURL:          app.FrontendURL,
			SupportEmail:         app.SupportEmail,
			BcryptCost:           app.BcryptCost,
			AccessTokenSecret:    app.AccessTokenSecret,
			AccessTokenDuration:  time.Duration(app.AccessTokenDuration),
			RefreshTokenSecret:   app.RefreshTokenSecret,
			RefreshTokenDuration: time.Duration(app.RefreshTokenDuration),
			TokenIssuer:          app.TokenIssuer,
			Version:              app.Version,
			LogLevel:             app.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver:       jsonCfg.Storage.DB.Driver,
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			MaxUploadSize:   jsonCfg.Server.MaxUploadSize,
			SecureCookies:   jsonCfg.Server.SecureCookies,
		},
		Adapter: Adapter{
			ObjectStore: ObjectStore{
				Endpoint:        objectStore.Endpoint,
				Region:          objectStore.Region,
				Bucket:          objectStore.Bucket,
				AccessKeyID:     objectStore.AccessKeyID,
				SecretAccessKey: objectStore.SecretAccessKey,
				PublicBaseURL:   objectStore.PublicBaseURL,
				UsePathStyle:    objectStore.UsePathStyle,
				MaxRetries:      objectStore.MaxRetries,
				CallTimeout:     time.Duration(objectStore.CallTimeout),
			},
			Mail: Mail{
				GatewayURL:   mail.GatewayURL,
				GatewayToken: mail.GatewayToken,
				From:         mail.From,
				Timeout:      time.Duration(mail.Timeout),
			},
		},
		Workers: Workers{
			QueueSize:     jsonCfg.Workers.QueueSize,
			RedisAddress:  jsonCfg.Workers.RedisAddress,
			RedisPassword: jsonCfg.Workers.RedisPassword,
			RedisDB:       jsonCfg.Workers.RedisDB,
			Concurrency:   jsonCfg.Workers.Concurrency,
		},
		Telemetry: Telemetry{
			OTLPEndpoint: jsonCfg.Telemetry.OTLPEndpoint,
			ServiceName:  jsonCfg.Telemetry.ServiceName,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
