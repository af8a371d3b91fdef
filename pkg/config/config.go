package config

import (
	"fmt"
	"os"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/ecosense/eco-ingest/pkg/utils"
	"github.com/pkg/errors"
)

const (
	DefaultNamespace = "eco_clients"

	defaultLogLevel                   = "info"
	defaultWorkers                    = 32
	defaultEnrichmentTimeoutSeconds   = 5
	defaultPersistenceTimeoutSeconds  = 10
	defaultMetricsPort                = 9090
	defaultDamperCapacity             = 100000
	defaultDamperFalsePositiveRate    = 0.01
	defaultDamperResetUsagePercentage = 0.75
)

// Config is the full startup configuration. The three collaborator addresses
// are mandatory; the process must not start without them.
type Config struct {
	BrokerURL         string
	BrokerUsername    string
	BrokerPassword    string
	DatabaseURL       string
	WeatherServiceURL string
	LogLevel          string
	Tuning            entities.TuningConfig
}

func Load() (*Config, error) {
	conf := &Config{
		BrokerURL:         os.Getenv("MQTT_BROKER_URL"),
		BrokerUsername:    os.Getenv("MQTT_USERNAME"),
		BrokerPassword:    os.Getenv("MQTT_PASSWORD"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		WeatherServiceURL: os.Getenv("CWA_API_SERVICE"),
		LogLevel:          getValueFromEnvironmentVariable("LOG_LEVEL", defaultLogLevel),
	}

	if conf.BrokerURL == "" {
		return nil, fmt.Errorf("MQTT_BROKER_URL environment variable is not set")
	}
	if conf.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}
	if conf.WeatherServiceURL == "" {
		return nil, fmt.Errorf("CWA_API_SERVICE environment variable is not set")
	}

	tuning := entities.TuningConfig{}
	tuningFilepath := os.Getenv("TUNING_CONFIG_FILEPATH")
	if tuningFilepath != "" {
		var err error
		tuning, err = utils.ConfigurationParser(tuningFilepath, tuning)
		if err != nil {
			return nil, errors.Wrap(err, "parse tuning configuration")
		}
	}
	conf.Tuning = applyTuningDefaults(tuning)

	return conf, nil
}

func applyTuningDefaults(tuning entities.TuningConfig) entities.TuningConfig {
	if tuning.Namespace == "" {
		tuning.Namespace = DefaultNamespace
	}
	if tuning.Workers <= 0 {
		tuning.Workers = defaultWorkers
	}
	if tuning.EnrichmentTimeoutSeconds <= 0 {
		tuning.EnrichmentTimeoutSeconds = defaultEnrichmentTimeoutSeconds
	}
	if tuning.PersistenceTimeoutSeconds <= 0 {
		tuning.PersistenceTimeoutSeconds = defaultPersistenceTimeoutSeconds
	}
	if tuning.MetricsPort <= 0 {
		tuning.MetricsPort = defaultMetricsPort
	}
	if tuning.DamperCapacity == 0 {
		tuning.DamperCapacity = defaultDamperCapacity
	}
	if tuning.DamperFalsePositiveRate <= 0 {
		tuning.DamperFalsePositiveRate = defaultDamperFalsePositiveRate
	}
	if tuning.DamperResetUsagePercentage <= 0 {
		tuning.DamperResetUsagePercentage = defaultDamperResetUsagePercentage
	}
	return tuning
}

func getValueFromEnvironmentVariable(variableName, defaultValue string) string {
	value := os.Getenv(variableName)
	if value != "" {
		return value
	}
	return defaultValue
}
