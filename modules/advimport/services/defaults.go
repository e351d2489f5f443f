package services

import (
	"sort"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/fieldmeta"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// DottedFullNameBuilder builds "<field>" or "<field>.<sub field>".
type DottedFullNameBuilder struct{}

func (DottedFullNameBuilder) ComputeFullName(col types.ImportColumn) string {
	if col.ResolvedField == nil {
		return ""
	}
	if col.SubField == "" {
		return col.ResolvedField.Name
	}
	return col.ResolvedField.Name + "." + col.SubField
}

// TargetTypeClassifier fills TargetType with the simple target model name,
// or the value type for plain fields.
type TargetTypeClassifier struct{}

func (TargetTypeClassifier) FillType(col types.ImportColumn) types.ImportColumn {
	if col.ResolvedField == nil {
		col.TargetType = ""
		return col
	}
	target := fieldmeta.SimpleModelName(col.ResolvedField.TargetTypeName)
	if target == "" {
		target = col.ResolvedField.ValueType
	}
	col.TargetType = target
	return col
}

// SequenceSorter orders columns by Sequence, keeping file order for ties. Nil entries go last.
type SequenceSorter struct{}

func (SequenceSorter) SortColumns(cols []*types.ImportColumn) {
	sort.SliceStable(cols, func(i, j int) bool {
		a, b := cols[i], cols[j]
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Sequence < b.Sequence
	})
}
