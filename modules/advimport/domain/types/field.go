package types

import "encoding/json"

type RelationshipKind string

const (
	RelationshipNone          RelationshipKind = ""
	RelationshipOneToOne      RelationshipKind = "ONE_TO_ONE"
	RelationshipManyToOne     RelationshipKind = "MANY_TO_ONE"
	RelationshipOneToMany     RelationshipKind = "ONE_TO_MANY"
	RelationshipManyToMany    RelationshipKind = "MANY_TO_MANY"
	RelationshipJSONOneToMany RelationshipKind = "JSON_ONE_TO_MANY"
)

// IsToMany reports whether values of the relation cannot be imported as a scalar column.
func (k RelationshipKind) IsToMany() bool {
	return k == RelationshipOneToMany || k == RelationshipJSONOneToMany
}

// FieldDescriptor is a read-only field definition sourced from the metadata catalog.
// IsJSON marks the dynamic-field variant (owned by a dynamic model).
type FieldDescriptor struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Label                string           `json:"label"`
	ModelID              string           `json:"model_id"`
	Relationship         RelationshipKind `json:"relationship,omitempty"`
	TargetTypeName       string           `json:"target_type_name,omitempty"`
	TargetIsDynamicModel bool             `json:"target_is_dynamic_model,omitempty"`
	NameFieldHint        string           `json:"name_field_hint,omitempty"`
	ValueType            string           `json:"value_type,omitempty"`
	NameColumn           bool             `json:"name_column,omitempty"`
	IsJSON               bool             `json:"is_json,omitempty"`
}

type ModelRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FullName  string `json:"full_name,omitempty"`
	IsJSON    bool   `json:"is_json,omitempty"`
	NameField string `json:"name_field,omitempty"`
}

// RecordEntry is one model's slice of an import result payload.
type RecordEntry struct {
	Model  string          `json:"model"`
	IDs    json.RawMessage `json:"ids"`
	IsJSON bool            `json:"isJson"`
}
