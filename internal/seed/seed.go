/*
Package seed provides the built-in command dataset and the tldr-pages
ingestion parser.

The embedded dataset bootstraps an empty durable store on first run and
doubles as the display process's last-ditch fallback when the bridge to
the host process is unreachable.
*/
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cmdpal/cmdpal/internal/store"
)

//go:embed data/seed.json
var seedJSON []byte

// record is the flat seed/import format consumed verbatim by SaveCommand.
type record struct {
	Name        string   `json:"name"`
	StandsFor   string   `json:"standsFor,omitempty"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Content     string   `json:"content,omitempty"`
}

// Commands returns the built-in seed dataset tagged with the seed source.
func Commands() []store.Command {
	records, err := parseRecords(seedJSON)
	if err != nil {
		// The embedded dataset is validated by tests; an error here
		// means a broken build, not a runtime condition.
		panic(fmt.Sprintf("seed: embedded dataset invalid: %v", err))
	}
	return records
}

// ParseFile parses an import file in the flat seed format.
func ParseFile(data []byte) ([]store.Command, error) {
	return parseRecords(data)
}

func parseRecords(data []byte) ([]store.Command, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed records: %w", err)
	}

	cmds := make([]store.Command, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		summary := r.Summary
		if summary == "" {
			summary = r.Description
		}
		cmds = append(cmds, store.Command{
			Name:        r.Name,
			StandsFor:   r.StandsFor,
			Summary:     summary,
			Description: summary,
			Category:    r.Category,
			Examples:    r.Examples,
			Content:     r.Content,
			Source:      store.SourceSeed,
		})
	}
	return cmds, nil
}
