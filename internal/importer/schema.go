// Package importer reads the YAML history file kept by earlier florodoro
// releases and turns it into archive records.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// History is the top-level structure of a history file.
type History struct {
	Studies []StudyImport `yaml:"studies"`
	Breaks  []BreakImport `yaml:"breaks"`
}

// StudyImport is one finished study. Date is the end time and Duration is in
// minutes. Plant holds the serialized plant of the old program; only its
// presence is used.
type StudyImport struct {
	Date     time.Time `yaml:"date"`
	Duration float64   `yaml:"duration"`
	Plant    yaml.Node `yaml:"plant"`
}

// HasPlant reports whether the study grew a plant.
func (s StudyImport) HasPlant() bool {
	return s.Plant.Kind != 0 && s.Plant.Tag != "!!null"
}

// BreakImport is one finished break, Duration in minutes.
type BreakImport struct {
	Date     time.Time `yaml:"date"`
	Duration float64   `yaml:"duration"`
}

// LoadHistory reads and parses a history file.
func LoadHistory(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseHistory(bytes.NewReader(data))
}

// ParseHistory parses history YAML. An empty document is an empty history.
func ParseHistory(r io.Reader) (*History, error) {
	var h History
	if err := yaml.NewDecoder(r).Decode(&h); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &h, nil
}
