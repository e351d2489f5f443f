package metayaml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/fieldmeta"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// catalogNamespace seeds deterministic IDs for entries that do not declare one.
var catalogNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("advimport/metayaml"))

type catalogFile struct {
	Version    int            `yaml:"version"`
	Models     []modelDoc     `yaml:"models"`
	JSONModels []jsonModelDoc `yaml:"json_models"`
}

type modelDoc struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	FullName string     `yaml:"full_name"`
	Fields   []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Label        string `yaml:"label"`
	Relationship string `yaml:"relationship"`
	TypeName     string `yaml:"type_name"`
	NameColumn   bool   `yaml:"name_column"`
}

type jsonModelDoc struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	NameField string         `yaml:"name_field"`
	Fields    []jsonFieldDoc `yaml:"fields"`
}

type jsonFieldDoc struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Title           string `yaml:"title"`
	Type            string `yaml:"type"`
	TargetModel     string `yaml:"target_model"`
	TargetJSONModel string `yaml:"target_json_model"`
}

// Catalog is an in-memory metadata catalog loaded from a YAML file.
type Catalog struct {
	models     map[string]types.ModelRef
	jsonModels map[string]types.ModelRef
	realFields map[string][]types.FieldDescriptor
	jsonFields map[string][]types.FieldDescriptor
}

func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogYAML(b)
}

func ParseCatalogYAML(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f.Version != 1 {
		return nil, errors.New("catalog: unsupported version")
	}

	c := &Catalog{
		models:     make(map[string]types.ModelRef, len(f.Models)),
		jsonModels: make(map[string]types.ModelRef, len(f.JSONModels)),
		realFields: make(map[string][]types.FieldDescriptor, len(f.Models)),
		jsonFields: make(map[string][]types.FieldDescriptor, len(f.JSONModels)),
	}

	for _, m := range f.Models {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, errors.New("catalog: model name required")
		}
		if _, ok := c.models[name]; ok {
			return nil, fmt.Errorf("catalog: duplicate model %q", name)
		}
		c.models[name] = types.ModelRef{
			ID:       idOrDerived(m.ID, "model", name),
			Name:     name,
			FullName: strings.TrimSpace(m.FullName),
		}
	}
	for _, m := range f.JSONModels {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return nil, errors.New("catalog: json model name required")
		}
		if _, ok := c.jsonModels[name]; ok {
			return nil, fmt.Errorf("catalog: duplicate json model %q", name)
		}
		c.jsonModels[name] = types.ModelRef{
			ID:        idOrDerived(m.ID, "json-model", name),
			Name:      name,
			IsJSON:    true,
			NameField: strings.TrimSpace(m.NameField),
		}
	}

	for _, m := range f.Models {
		model := c.models[strings.TrimSpace(m.Name)]
		fields, err := buildRealFields(model, m.Fields)
		if err != nil {
			return nil, err
		}
		c.realFields[model.ID] = fields
	}
	for _, m := range f.JSONModels {
		model := c.jsonModels[strings.TrimSpace(m.Name)]
		fields, err := c.buildJSONFields(model, m.Fields)
		if err != nil {
			return nil, err
		}
		c.jsonFields[model.ID] = fields
	}
	return c, nil
}

func buildRealFields(model types.ModelRef, docs []fieldDoc) ([]types.FieldDescriptor, error) {
	out := make([]types.FieldDescriptor, 0, len(docs))
	labels := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: model %q: field name required", model.Name)
		}
		label := strings.TrimSpace(d.Label)
		if label != "" {
			if _, ok := labels[label]; ok {
				return nil, fmt.Errorf("catalog: model %q: duplicate label %q", model.Name, label)
			}
			labels[label] = struct{}{}
		}

		field := types.FieldDescriptor{
			ID:           idOrDerived(d.ID, "field", model.Name+"."+name),
			Name:         name,
			Label:        label,
			ModelID:      model.ID,
			Relationship: fieldmeta.ParseRelationshipKind(d.Relationship),
			NameColumn:   d.NameColumn,
		}
		if strings.TrimSpace(d.Relationship) == "" {
			field.ValueType = strings.TrimSpace(d.TypeName)
		} else {
			field.TargetTypeName = strings.TrimSpace(d.TypeName)
		}
		out = append(out, field)
	}
	return out, nil
}

func (c *Catalog) buildJSONFields(model types.ModelRef, docs []jsonFieldDoc) ([]types.FieldDescriptor, error) {
	out := make([]types.FieldDescriptor, 0, len(docs))
	titles := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("catalog: json model %q: field name required", model.Name)
		}
		title := strings.TrimSpace(d.Title)
		if title != "" {
			if _, ok := titles[title]; ok {
				return nil, fmt.Errorf("catalog: json model %q: duplicate title %q", model.Name, title)
			}
			titles[title] = struct{}{}
		}

		field := types.FieldDescriptor{
			ID:           idOrDerived(d.ID, "json-field", model.Name+"."+name),
			Name:         name,
			Label:        title,
			ModelID:      model.ID,
			Relationship: fieldmeta.ParseRelationshipKind(d.Type),
			IsJSON:       true,
		}
		targetJSON := strings.TrimSpace(d.TargetJSONModel)
		targetModel := strings.TrimSpace(d.TargetModel)
		switch {
		case targetJSON != "":
			target, ok := c.jsonModels[targetJSON]
			if !ok {
				return nil, fmt.Errorf("catalog: json model %q: field %q targets unknown json model %q", model.Name, name, targetJSON)
			}
			field.TargetIsDynamicModel = true
			field.TargetTypeName = target.Name
			field.NameFieldHint = target.NameField
		case targetModel != "":
			field.TargetTypeName = targetModel
		default:
			field.ValueType = strings.TrimSpace(d.Type)
		}
		out = append(out, field)
	}
	return out, nil
}

func idOrDerived(id string, kind string, name string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewSHA1(catalogNamespace, []byte(kind+":"+name)).String()
}

func (c *Catalog) FindRealField(_ context.Context, label string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	for _, f := range c.realFields[model.ID] {
		if f.Label == label {
			return f, true, nil
		}
	}
	return types.FieldDescriptor{}, false, nil
}

func (c *Catalog) FindJSONField(_ context.Context, title string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	for _, f := range c.jsonFields[model.ID] {
		if f.Label == title {
			return f, true, nil
		}
	}
	return types.FieldDescriptor{}, false, nil
}

// FindFieldByName looks a field up by its technical name among the model's real or dynamic fields.
func (c *Catalog) FindFieldByName(_ context.Context, model types.ModelRef, name string) (types.FieldDescriptor, bool, error) {
	fields := c.realFields[model.ID]
	if model.IsJSON {
		fields = c.jsonFields[model.ID]
	}
	for _, f := range fields {
		if f.Name == name {
			return f, true, nil
		}
	}
	return types.FieldDescriptor{}, false, nil
}

func (c *Catalog) FindModelByName(_ context.Context, name string) (types.ModelRef, bool, error) {
	m, ok := c.models[name]
	return m, ok, nil
}

func (c *Catalog) FindJSONModelByName(_ context.Context, name string) (types.ModelRef, bool, error) {
	m, ok := c.jsonModels[name]
	return m, ok, nil
}

func (c *Catalog) NameFieldOf(_ context.Context, model types.ModelRef) (string, bool, error) {
	if model.IsJSON {
		return model.NameField, model.NameField != "", nil
	}
	name, ok := fieldmeta.NameField(c.realFields[model.ID])
	return name, ok, nil
}
