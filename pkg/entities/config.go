package entities

// TuningConfig carries the optional service knobs loaded from the YAML file
// pointed at by TUNING_CONFIG_FILEPATH. Zero values are replaced by defaults
// in pkg/config.
type TuningConfig struct {
	Namespace                  string  `yaml:"namespace"`
	Workers                    int     `yaml:"workers"`
	EnrichmentTimeoutSeconds   int     `yaml:"enrichmentTimeoutSeconds"`
	PersistenceTimeoutSeconds  int     `yaml:"persistenceTimeoutSeconds"`
	MetricsPort                int     `yaml:"metricsPort"`
	DamperCapacity             uint    `yaml:"damperCapacity"`
	DamperFalsePositiveRate    float64 `yaml:"damperFalsePositiveRate"`
	DamperResetUsagePercentage float32 `yaml:"damperResetUsagePercentage"`
}
