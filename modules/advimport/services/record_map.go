package services

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/fieldmeta"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// RecordMapKey is the single key of the map returned by ImportedRecordMap.
const RecordMapKey = "$recordMap"

// ImportedRecordMap flattens an import result payload ({"<model>": ids, ...}) into
// {"$recordMap": []types.RecordEntry}, keeping the payload's key order.
// Each ids value is carried as JSON equal to the input value but compacted:
// insignificant whitespace is dropped, so `[1, 2]` becomes `[1,2]`.
// An empty payload yields nil without error.
func ImportedRecordMap(record string) (map[string]any, error) {
	if record == "" {
		return nil, nil
	}

	var p fastjson.Parser
	v, err := p.Parse(record)
	if err != nil {
		return nil, err
	}
	obj, err := v.Object()
	if err != nil {
		return nil, err
	}

	entries := make([]types.RecordEntry, 0, obj.Len())
	seen := make(map[string]struct{}, obj.Len())
	var dupErr error
	obj.Visit(func(key []byte, value *fastjson.Value) {
		k := string(key)
		if _, ok := seen[k]; ok {
			if dupErr == nil {
				dupErr = fmt.Errorf("record map: duplicate key %q", k)
			}
			return
		}
		seen[k] = struct{}{}

		model, isJSON := fieldmeta.SplitDynamicModelKey(k)
		entries = append(entries, types.RecordEntry{
			Model:  model,
			IDs:    json.RawMessage(value.MarshalTo(nil)),
			IsJSON: isJSON,
		})
	})
	if dupErr != nil {
		return nil, dupErr
	}

	return map[string]any{RecordMapKey: entries}, nil
}
