package metayaml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// ModelLookup binds tab files to catalog models and, for columns naming a field, to catalog fields.
type ModelLookup interface {
	FindModelByName(ctx context.Context, name string) (types.ModelRef, bool, error)
	FindJSONModelByName(ctx context.Context, name string) (types.ModelRef, bool, error)
	FindFieldByName(ctx context.Context, model types.ModelRef, name string) (types.FieldDescriptor, bool, error)
}

type tabsFile struct {
	Version int      `yaml:"version"`
	Tabs    []tabDoc `yaml:"tabs"`
}

type tabDoc struct {
	Name    string       `yaml:"name"`
	Model   string       `yaml:"model"`
	IsJSON  bool         `yaml:"is_json"`
	Columns []*columnDoc `yaml:"columns"`
}

// columnDoc is a column as written in a tab file. Field carries an earlier match by field name.
type columnDoc struct {
	Column types.ImportColumn `yaml:",inline"`
	Field  string             `yaml:"field"`
}

func LoadTabs(ctx context.Context, path string, models ModelLookup) ([]types.ImportTab, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTabsYAML(ctx, b, models)
}

// ParseTabsYAML decodes a tab file. A tab without a model is kept with a nil Model.
func ParseTabsYAML(ctx context.Context, b []byte, models ModelLookup) ([]types.ImportTab, error) {
	var f tabsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f.Version != 1 {
		return nil, errors.New("tabs: unsupported version")
	}

	out := make([]types.ImportTab, 0, len(f.Tabs))
	for _, d := range f.Tabs {
		tab := types.ImportTab{
			Name:   strings.TrimSpace(d.Name),
			IsJSON: d.IsJSON,
		}
		modelName := strings.TrimSpace(d.Model)
		if modelName != "" {
			lookup := models.FindModelByName
			if d.IsJSON {
				lookup = models.FindJSONModelByName
			}
			model, ok, err := lookup(ctx, modelName)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("tabs: tab %q: unknown model %q", tab.Name, modelName)
			}
			tab.Model = &model
		}

		cols, err := bindColumns(ctx, tab, d.Columns, models)
		if err != nil {
			return nil, err
		}
		tab.Columns = cols
		out = append(out, tab)
	}
	return out, nil
}

// bindColumns restores ResolvedField for columns naming a field. Nil entries are kept in place.
func bindColumns(ctx context.Context, tab types.ImportTab, docs []*columnDoc, models ModelLookup) ([]*types.ImportColumn, error) {
	if docs == nil {
		return nil, nil
	}
	cols := make([]*types.ImportColumn, len(docs))
	for i, d := range docs {
		if d == nil {
			continue
		}
		col := d.Column
		fieldName := strings.TrimSpace(d.Field)
		if fieldName != "" {
			if tab.Model == nil {
				return nil, fmt.Errorf("tabs: tab %q: column %q names field %q but the tab has no model", tab.Name, col.Title, fieldName)
			}
			field, ok, err := models.FindFieldByName(ctx, *tab.Model, fieldName)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("tabs: tab %q: unknown field %q on model %q", tab.Name, fieldName, tab.Model.Name)
			}
			col.ResolvedField = &field
		}
		cols[i] = &col
	}
	return cols, nil
}
