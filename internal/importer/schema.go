package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// StateDocument is the JSON snapshot of a tracker: the profile fields plus
// the full log. Field names follow the browser app's local-storage blob so
// an existing export imports unchanged.
type StateDocument struct {
	StartWeight    *float64   `json:"startWeight"`
	GoalWeight     *float64   `json:"goalWeight"`
	Height         *float64   `json:"height"`
	WeeklyRate     *float64   `json:"weeklyRate"`
	Logs           []LogEntry `json:"logs"`
	CalculatedTDEE *float64   `json:"calculatedTDEE"`
}

// LogEntry is one element of StateDocument.Logs. Zero and null both mean
// the value was not recorded.
type LogEntry struct {
	Date     string   `json:"date"`
	Weight   *float64 `json:"weight"`
	Calories *float64 `json:"calories"`
}

// Parse decodes a state document.
func Parse(data []byte) (*StateDocument, error) {
	var doc StateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing state document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a state document from path.
func Load(path string) (*StateDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal encodes doc as indented JSON.
func Marshal(doc *StateDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state document: %w", err)
	}
	return append(data, '\n'), nil
}
