// Package config loads application configuration and turns configuration
// values into injector bindings.
//
// It uses Viper to load configuration from files and environment variables,
// supporting multiple formats (YAML, JSON, TOML) and .env files. Every key
// of the target struct can be overridden by an environment variable named
// after it, e.g. INJECT_TRACING for inject.tracing.
//
// # Usage
//
//	var cfg config.Config
//	err := config.LoadConfig("my-service", &cfg)
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
//
//	shutdown, err := config.StartTelemetry(ctx, &cfg)
//	defer shutdown(ctx)
//
//	opts, err := config.InjectorOptions(&cfg)
//	params, err := config.BindingsModule("params", "params.yml")
//	root, err := di.New(params, opts...)
//
// Every leaf key of the bindings file can then be injected by name:
//
//	Port int `inject:"int" named:"listen.port"`
package config
