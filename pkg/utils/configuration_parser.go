package utils

import (
	"os"
	"path/filepath"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"gopkg.in/yaml.v2"
)

type config interface {
	entities.TuningConfig | map[string]string
}

func readTextFile(filepathName string) ([]byte, error) {
	fileContent, err := os.ReadFile(filepath.Clean(filepathName))
	return fileContent, err
}

func ConfigurationParser[T config](filepathName string, configEntity T) (T, error) {
	fileContent, err := readTextFile(filepath.Clean(filepathName))
	if err != nil {
		return configEntity, err
	}

	err = yaml.Unmarshal(fileContent, &configEntity)
	return configEntity, err
}
