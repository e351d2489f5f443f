package fieldmeta

import (
	"strings"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// ParseRelationshipKind maps catalog spellings onto RelationshipKind.
//
// Static fields store the JPA spelling (OneToMany, ManyToOne, ...); dynamic fields store the
// dashed type (many-to-one, json-one-to-many, ...). Anything else is a plain value field.
func ParseRelationshipKind(raw string) types.RelationshipKind {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	switch key {
	case "onetoone", "jsononetoone":
		return types.RelationshipOneToOne
	case "manytoone", "jsonmanytoone":
		return types.RelationshipManyToOne
	case "onetomany":
		return types.RelationshipOneToMany
	case "jsononetomany":
		return types.RelationshipJSONOneToMany
	case "manytomany", "jsonmanytomany":
		return types.RelationshipManyToMany
	default:
		return types.RelationshipNone
	}
}
