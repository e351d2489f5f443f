package fieldmeta

import (
	"strings"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// DynamicModelMarker prefixes dynamic model names in import result payloads.
const DynamicModelMarker = "JSON"

// SplitDynamicModelKey strips DynamicModelMarker from a payload key.
func SplitDynamicModelKey(key string) (string, bool) {
	if !strings.HasPrefix(key, DynamicModelMarker) {
		return key, false
	}
	return key[len(DynamicModelMarker):], true
}

// SimpleModelName returns the text after the last '.' of a qualified model name.
func SimpleModelName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// NameField picks the field used to display one record of a model:
// the flagged name column first, then a field called "name", then "code".
func NameField(fields []types.FieldDescriptor) (string, bool) {
	byName := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.NameColumn && f.Name != "" {
			return f.Name, true
		}
		byName[f.Name] = struct{}{}
	}
	for _, candidate := range []string{"name", "code"} {
		if _, ok := byName[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}
