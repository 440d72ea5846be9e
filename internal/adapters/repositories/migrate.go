package repositories

import (
	"encoding/json"
	"fmt"
)

// Legacy per-row fields that predate the week-keyed record map. They
// are dropped on load; their values were already folded into weeklyData
// by the release that introduced it.
var legacyRouteFields = []string{"tools", "vehicleId", "meta", "notes"}

// MigratePlansDocument rewrites a raw serialized plan collection to the
// current schema:
//
//  1. Route rows lose any legacy flat fields; rows without a weeklyData
//     mapping gain an empty one.
//  2. Route rows without an explicit groupId get one derived from
//     adjacency: a route inherits the nearest group row above it, or
//     the empty id when none precedes it.
//
// Rows are re-marshaled with sorted keys, so running the migration on
// its own output is byte-identical. Applied on every load; the result
// is only re-persisted on the next explicit save.
func MigratePlansDocument(raw []byte) ([]byte, error) {
	var collection map[string][]json.RawMessage
	if err := json.Unmarshal(raw, &collection); err != nil {
		return nil, fmt.Errorf("migrate plans: parse collection: %w", err)
	}

	out := make(map[string][]json.RawMessage, len(collection))
	for region, rows := range collection {
		migrated := make([]json.RawMessage, 0, len(rows))
		currentGroup := ""
		for i, rawRow := range rows {
			var row map[string]json.RawMessage
			if err := json.Unmarshal(rawRow, &row); err != nil {
				return nil, fmt.Errorf("migrate plans: parse row %d of %q: %w", i, region, err)
			}

			rowType := stringField(row, "type")
			if rowType == "group" {
				currentGroup = stringField(row, "id")
			}
			if rowType == "route" {
				migrateRouteRow(row, currentGroup)
			}

			encoded, err := json.Marshal(row)
			if err != nil {
				return nil, fmt.Errorf("migrate plans: encode row %d of %q: %w", i, region, err)
			}
			migrated = append(migrated, encoded)
		}
		out[region] = migrated
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("migrate plans: encode collection: %w", err)
	}
	return encoded, nil
}

func migrateRouteRow(row map[string]json.RawMessage, currentGroup string) {
	for _, field := range legacyRouteFields {
		delete(row, field)
	}
	if _, ok := row["weeklyData"]; !ok {
		row["weeklyData"] = json.RawMessage(`{}`)
	}
	if _, ok := row["assignments"]; !ok {
		row["assignments"] = json.RawMessage(`{}`)
	}
	if _, ok := row["groupId"]; !ok {
		encoded, _ := json.Marshal(currentGroup)
		row["groupId"] = encoded
	}
}

func stringField(row map[string]json.RawMessage, field string) string {
	raw, ok := row[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
