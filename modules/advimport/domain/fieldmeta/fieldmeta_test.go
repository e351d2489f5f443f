package fieldmeta

import (
	"testing"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

func TestParseRelationshipKind(t *testing.T) {
	cases := map[string]types.RelationshipKind{
		"":                  types.RelationshipNone,
		"string":            types.RelationshipNone,
		"OneToOne":          types.RelationshipOneToOne,
		"ManyToOne":         types.RelationshipManyToOne,
		" many-to-one ":     types.RelationshipManyToOne,
		"json-many-to-one":  types.RelationshipManyToOne,
		"OneToMany":         types.RelationshipOneToMany,
		"one-to-many":       types.RelationshipOneToMany,
		"json-one-to-many":  types.RelationshipJSONOneToMany,
		"ManyToMany":        types.RelationshipManyToMany,
		"json-many-to-many": types.RelationshipManyToMany,
	}
	for raw, want := range cases {
		if got := ParseRelationshipKind(raw); got != want {
			t.Fatalf("raw=%q got=%q want=%q", raw, got, want)
		}
	}
}

func TestRelationshipKind_IsToMany(t *testing.T) {
	if !types.RelationshipOneToMany.IsToMany() || !types.RelationshipJSONOneToMany.IsToMany() {
		t.Fatal("expected to-many")
	}
	if types.RelationshipManyToMany.IsToMany() || types.RelationshipManyToOne.IsToMany() {
		t.Fatal("unexpected to-many")
	}
}

func TestSplitDynamicModelKey(t *testing.T) {
	model, isJSON := SplitDynamicModelKey("JSONCustomer")
	if model != "Customer" || !isJSON {
		t.Fatalf("model=%q isJSON=%v", model, isJSON)
	}
	model, isJSON = SplitDynamicModelKey("Partner")
	if model != "Partner" || isJSON {
		t.Fatalf("model=%q isJSON=%v", model, isJSON)
	}
}

func TestSimpleModelName(t *testing.T) {
	cases := map[string]string{
		"com.axelor.apps.base.db.Partner": "Partner",
		"Partner":                         "Partner",
		" MetaFile ":                      "MetaFile",
		"":                                "",
		"trailing.":                       "",
	}
	for in, want := range cases {
		if got := SimpleModelName(in); got != want {
			t.Fatalf("in=%q got=%q want=%q", in, got, want)
		}
	}
}

func TestNameField(t *testing.T) {
	t.Run("name column wins", func(t *testing.T) {
		got, ok := NameField([]types.FieldDescriptor{
			{Name: "name"},
			{Name: "fullName", NameColumn: true},
		})
		if !ok || got != "fullName" {
			t.Fatalf("got=%q ok=%v", got, ok)
		}
	})
	t.Run("name before code", func(t *testing.T) {
		got, ok := NameField([]types.FieldDescriptor{{Name: "code"}, {Name: "name"}})
		if !ok || got != "name" {
			t.Fatalf("got=%q ok=%v", got, ok)
		}
	})
	t.Run("code fallback", func(t *testing.T) {
		got, ok := NameField([]types.FieldDescriptor{{Name: "code"}, {Name: "amount"}})
		if !ok || got != "code" {
			t.Fatalf("got=%q ok=%v", got, ok)
		}
	})
	t.Run("none", func(t *testing.T) {
		if got, ok := NameField([]types.FieldDescriptor{{Name: "amount"}}); ok {
			t.Fatalf("got=%q", got)
		}
	})
}
