package config

import "time"

// TopLevel wraps the app config so that the config file can namespace
// everything under "depositsync"; viper's Unmarshal does not play well with
// env vars when using UnmarshalKey.
type TopLevel struct {
	DepositSync DepositSync `json:"depositsync" mapstructure:"depositsync"`
}

type DepositSync struct {
	Shell App `json:"shell" mapstructure:"shell"`
}

type App struct {
	BindAddress     string         `json:"bind_address" mapstructure:"bind_address"`
	ShutdownTimeout time.Duration  `json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	Remote          RemoteClient   `json:"remote" mapstructure:"remote"`
	Auth            *Auth          `json:"auth,omitempty" mapstructure:"auth"`
	ApmClient       *ApmClient     `json:"apm,omitempty" mapstructure:"apm"`
	Logging         *Logging       `json:"logging,omitempty" mapstructure:"logging"`
	Events          Events         `json:"events" mapstructure:"events"`
	SchemaRefresh   *SchemaRefresh `json:"schema_refresh,omitempty" mapstructure:"schema_refresh"`
}

type Logging struct {
	Json  *bool   `json:"json,omitempty" mapstructure:"json"`
	File  *string `json:"file,omitempty" mapstructure:"file"`
	Level *string `json:"level,omitempty" mapstructure:"level"`
}

// RemoteClient configures the connection to the remote metadata service.
//
// InsecureSkipVerify turns off TLS certificate verification on that
// connection. It exists only because some deployments front the metadata
// service with self-signed certificates; it defaults to off, and turning it
// on is logged loudly at startup.
type RemoteClient struct {
	Address            string         `json:"address" mapstructure:"address"`
	User               *BasicAuthUser `json:"user,omitempty" mapstructure:"user"`
	InsecureSkipVerify bool           `json:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

type ApmClient struct {
	Address     *string `json:"address,omitempty" mapstructure:"address"`
	SecretToken *string `json:"secret_token,omitempty" mapstructure:"secret_token"`
}

// Events configures the in-memory status event store. MaxPerIndex bounds
// the number of events retained per research index; zero means unbounded,
// which matches the historical behaviour.
type Events struct {
	MaxPerIndex uint `json:"max_per_index" mapstructure:"max_per_index"`
}

type SchemaRefresh struct {
	RunInterval time.Duration `json:"run_interval" mapstructure:"run_interval"`
}

type Auth struct {
	BasicAuth []BasicAuthUser `json:"basic_auth" mapstructure:"basic_auth"`
}

type BasicAuthUser struct {
	Name     string `json:"name" mapstructure:"name"`
	Password string `json:"password" mapstructure:"password"`
}
