package store

import (
	"encoding/json"
	"fmt"

	"postpilot/internal/slot"
)

// gridDoc is the JSON document shape shared by the file and redis drivers:
// platform -> "hour:dow" -> slot. Keys are parsed with strconv, never
// evaluated.
type gridDoc struct {
	Platforms map[string]map[string]slot.Slot `json:"platforms"`
}

func encodeGrid(g slot.Grid) ([]byte, error) {
	doc := gridDoc{Platforms: make(map[string]map[string]slot.Slot, len(g))}
	for platform, slots := range g {
		m := make(map[string]slot.Slot, len(slots))
		for key, s := range slots {
			m[key.Encode()] = *s
		}
		doc.Platforms[platform] = m
	}
	return json.MarshalIndent(doc, "", "  ")
}

func decodeGrid(b []byte) (slot.Grid, error) {
	var doc gridDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	g := slot.Grid{}
	for platform, slots := range doc.Platforms {
		for rawKey, s := range slots {
			key, err := slot.ParseKey(rawKey)
			if err != nil {
				return nil, fmt.Errorf("platform %q: %w", platform, err)
			}
			dup := s
			dup.Platform = platform
			dup.Hour = key.Hour
			dup.Weekday = key.Weekday
			g.Put(&dup)
		}
	}
	return g, nil
}
