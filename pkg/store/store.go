// Package store persists the versioned hull parameter record. The core
// never touches files; this is the external collaborator that saves and
// loads designs, merging possibly-partial records over current defaults
// so that older files keep loading as parameters are added.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wmppaul/bow-wow/pkg/hull"
)

// FormatVersion is stamped into every saved design. Loading ignores the
// stored version beyond recording it; unknown fields are dropped and
// missing fields fall back to defaults, so older and newer files both
// load.
const FormatVersion = 1

// Design is the durable artifact: a version, the parameter map, and the
// save timestamp. Params stays raw JSON until merge time so unknown
// keys pass through harmlessly.
type Design struct {
	Version int                        `json:"version"`
	Params  map[string]json.RawMessage `json:"params"`
	SavedAt time.Time                  `json:"savedAt"`
}

// Save writes the parameter record to path.
func Save(path string, p hull.Params) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: marshal params: %w", err)
	}
	var params map[string]json.RawMessage
	if err := json.Unmarshal(raw, &params); err != nil {
		return fmt.Errorf("store: explode params: %w", err)
	}

	d := Design{
		Version: FormatVersion,
		Params:  params,
		SavedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal design: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Load reads a design from path and merges it over the defaults:
// parameters present in the file win, everything else keeps its default.
// A malformed individual field is skipped rather than failing the load.
func Load(path string) (hull.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hull.DefaultParams(), fmt.Errorf("store: %w", err)
	}
	return Merge(data)
}

// Merge decodes a design record and overlays it on DefaultParams.
func Merge(data []byte) (hull.Params, error) {
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return hull.DefaultParams(), fmt.Errorf("store: decode design: %w", err)
	}

	// Overlay one key at a time so an unknown or wrong-typed field only
	// loses itself, not the whole record.
	p := hull.DefaultParams()
	for k, v := range d.Params {
		patch, err := json.Marshal(map[string]json.RawMessage{k: v})
		if err != nil {
			continue
		}
		var candidate = p
		if err := json.Unmarshal(patch, &candidate); err != nil {
			continue
		}
		p = candidate
	}
	return p, nil
}
