package config

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/imasse-dev/browser-ios/internal/domain"
)

func LoadConfig(configPath string) (*domain.Config, *sync.RWMutex, error) {
	var config domain.Config
	configMutex := &sync.RWMutex{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configMutex.Lock()
		applyDefaults(&config)
		configMutex.Unlock()
		if err := SaveConfig(configPath, &config); err != nil {
			return nil, nil, err
		}
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return nil, nil, err
	}
	applyDefaults(&config)
	return &config, configMutex, nil
}

func SaveConfig(configPath string, cfg *domain.Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, b, 0644)
}

func applyDefaults(cfg *domain.Config) {
	if cfg.Main.ListenPort == 0 {
		cfg.Main.ListenPort = 9090
	}
	if cfg.Push.Endpoint == "" {
		cfg.Push.Endpoint = domain.DefaultPushEndpoint
	}
	if cfg.Notify.Mode == "" {
		cfg.Notify.Mode = domain.ModeProduction
	}
	if cfg.Notify.DeadlineSeconds <= 0 {
		cfg.Notify.DeadlineSeconds = domain.DefaultDeadlineSeconds
	}
	if cfg.Profile.Path == "" {
		cfg.Profile.Path = "profile.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
