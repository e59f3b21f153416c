/*
normalize.go - Record schema migration on the load/import path

PURPOSE:
  Day records persisted or exported by earlier iterations predate the
  ignored and didNotWork fields. Instead of versioning the payload, every
  load/import runs through an explicit migration step that defaults each
  absent optional field independently and idempotently.

CONTRACT:
  - A payload that is not a JSON sequence rejects the ENTIRE import
    (ErrNotDaySequence); prior state is the caller's to keep.
  - No partial-record validation: malformed individual fields pass through
    uncorrected. Balances degrade gracefully via TimeToMinutes.

Encode/Decode here are the single codec used for both the persistence port
("days" key) and backup export/import, so the round-trip law
DecodeDays(EncodeDays(days)) == days holds by construction.
*/
package overtime

import (
	"encoding/json"
	"fmt"
)

// dayRecord mirrors Day with pointers on the fields added after the first
// release, so absence is distinguishable from false.
type dayRecord struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Holiday    bool   `json:"holiday"`
	Ignored    *bool  `json:"ignored"`
	DidNotWork *bool  `json:"didNotWork"`
	Entrada1   string `json:"entrada1"`
	Saida1     string `json:"saida1"`
	Entrada2   string `json:"entrada2"`
	Saida2     string `json:"saida2"`
}

func (r dayRecord) normalize() Day {
	d := Day{
		ID:       r.ID,
		Date:     r.Date,
		Holiday:  r.Holiday,
		Entrada1: r.Entrada1,
		Saida1:   r.Saida1,
		Entrada2: r.Entrada2,
		Saida2:   r.Saida2,
	}
	if r.Ignored != nil {
		d.Ignored = *r.Ignored
	}
	if r.DidNotWork != nil {
		d.DidNotWork = *r.DidNotWork
	}
	return d
}

// DecodeDays parses a serialized day sequence and migrates each record to
// the current schema. Anything that is not a sequence of day-shaped records
// fails with ErrNotDaySequence.
func DecodeDays(data []byte) ([]Day, error) {
	var records []dayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDaySequence, err)
	}
	days := make([]Day, len(records))
	for i, r := range records {
		days[i] = r.normalize()
	}
	return days, nil
}

// EncodeDays serializes the collection as the pretty-printed, human-readable
// backup format.
func EncodeDays(days []Day) ([]byte, error) {
	if days == nil {
		days = []Day{}
	}
	return json.MarshalIndent(days, "", "  ")
}
