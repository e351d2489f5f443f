package types

type ImportType string

const (
	ImportTypeNone ImportType = "NONE"
	ImportTypeFind ImportType = "FIND"
	ImportTypeNew  ImportType = "NEW"
)

// ImportColumn is one user-declared column of an import tab.
// SubField and FullName use "" for the unset state.
type ImportColumn struct {
	Sequence      int              `json:"sequence" yaml:"sequence"`
	Title         string           `json:"title" yaml:"title"`
	IsJSON        bool             `json:"is_json" yaml:"is_json"`
	ResolvedField *FieldDescriptor `json:"resolved_field,omitempty" yaml:"-"`
	SubField      string           `json:"sub_field,omitempty" yaml:"sub_field"`
	ImportType    ImportType       `json:"import_type,omitempty" yaml:"import_type"`
	FullName      string           `json:"full_name,omitempty" yaml:"full_name"`
	TargetType    string           `json:"target_type,omitempty" yaml:"-"`
}

func (c ImportColumn) Clone() *ImportColumn {
	if c.ResolvedField != nil {
		field := *c.ResolvedField
		c.ResolvedField = &field
	}
	return &c
}

// ImportTab is one sheet of an import file. Column order is the source file column order.
type ImportTab struct {
	Name    string          `json:"name"`
	IsJSON  bool            `json:"is_json"`
	Model   *ModelRef       `json:"model,omitempty"`
	Columns []*ImportColumn `json:"columns"`
}

// Clone copies the tab and every non-nil column. Nil entries are kept in place.
func (t ImportTab) Clone() ImportTab {
	if t.Model != nil {
		model := *t.Model
		t.Model = &model
	}
	if t.Columns == nil {
		return t
	}
	cols := make([]*ImportColumn, len(t.Columns))
	for i, col := range t.Columns {
		if col == nil {
			continue
		}
		cols[i] = col.Clone()
	}
	t.Columns = cols
	return t
}
