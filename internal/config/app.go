package config

import "fmt"

// AppConfig is everything the server binary needs at startup.
type AppConfig struct {
	Server ServerConfig
	Log    LogConfig
}

// LoadApp reads envFiles (missing files are ignored) and then parses the
// logging and server settings from the environment.
func LoadApp(envFiles ...string) (AppConfig, error) {
	if err := LoadDotEnv(envFiles...); err != nil {
		return AppConfig{}, fmt.Errorf("load env files: %w", err)
	}
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, fmt.Errorf("log config: %w", err)
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, fmt.Errorf("server config: %w", err)
	}
	return AppConfig{Server: serverCfg, Log: logCfg}, nil
}
