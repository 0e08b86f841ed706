package export

import (
	"time"

	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/pkg/stats"
	"github.com/activecm/asa-elephant/util"
	jsoniter "github.com/json-iterator/go"
)

type (
	// StatsDocument is the JSON statistics export
	StatsDocument struct {
		RunID       string                  `json:"runId"`
		Version     string                  `json:"version"`
		GeneratedAt string                  `json:"generatedAt"`
		Source      string                  `json:"source"`
		Criteria    *elephant.Config        `json:"criteria,omitempty"`
		Connections stats.ConnectionSummary `json:"connections"`
		Flows       *stats.FlowSummary      `json:"elephantFlows,omitempty"`
		Flags       *stats.FlagAnalysis     `json:"flags,omitempty"`
		Rates       *stats.RateAnalysis     `json:"rates,omitempty"`
	}
)

// NewStatsDocument stamps a statistics export with the run details
func NewStatsDocument(runID, version, source string, connections stats.ConnectionSummary) StatsDocument {
	return StatsDocument{
		RunID:       runID,
		Version:     version,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Source:      source,
		Connections: connections,
	}
}

// MarshalIndented renders v as indented JSON
func MarshalIndented(v interface{}) ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
}

// WriteJSON writes v as indented JSON to path
func WriteJSON(path string, v interface{}) (err error) {
	data, err := MarshalIndented(v)
	if err != nil {
		return err
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() { err = closeFile(f, err) }()

	if _, writeErr := f.Write(append(data, '\n')); writeErr != nil {
		return util.NewIOError("write", path, writeErr)
	}
	return nil
}
