package services

import (
	"context"
	"errors"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/ports"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// FileTabService derives field bindings for the columns of an import tab.
type FileTabService interface {
	// ResolveFields matches every column title against the tab's target model and returns the
	// resolved copy. The input tab is never modified. A sub-field model that cannot be found
	// aborts the whole tab with ports.ErrModelNotFound.
	ResolveFields(ctx context.Context, tab types.ImportTab) (types.ImportTab, error)
	// RecomputeFullNames rebuilds FullName of every column from its current field and sub-field.
	RecomputeFullNames(tab types.ImportTab) types.ImportTab
	ImportedRecordMap(record string) (map[string]any, error)
	PropagateIsJSON(tab *types.ImportTab) *types.ImportTab
}

// FileTabServiceOptions wires the collaborators of a FileTabService. Catalog and Introspector are required.
type FileTabServiceOptions struct {
	Catalog      ports.ModelCatalog
	Introspector ports.Introspector

	// Optional; defaults are DottedFullNameBuilder, TargetTypeClassifier and SequenceSorter.
	FullNames ports.FullNameBuilder
	Types     ports.TypeClassifier
	Sorter    ports.ColumnSorter

	// CreateNewRule is a CEL bool expression over target_type, relationship and field_name.
	// Empty means DefaultCreateNewRule.
	CreateNewRule string
}

type fileTabService struct {
	catalog      ports.ModelCatalog
	introspector ports.Introspector
	fullNames    ports.FullNameBuilder
	classifier   ports.TypeClassifier
	sorter       ports.ColumnSorter
	createNew    *importTypeRule
}

// NewFileTabService validates opts, fills in default collaborators and compiles CreateNewRule.
func NewFileTabService(opts FileTabServiceOptions) (FileTabService, error) {
	if opts.Catalog == nil {
		return nil, errors.New("advimport: catalog is nil")
	}
	if opts.Introspector == nil {
		return nil, errors.New("advimport: introspector is nil")
	}
	rule, err := newImportTypeRule(opts.CreateNewRule)
	if err != nil {
		return nil, err
	}

	s := &fileTabService{
		catalog:      opts.Catalog,
		introspector: opts.Introspector,
		fullNames:    opts.FullNames,
		classifier:   opts.Types,
		sorter:       opts.Sorter,
		createNew:    rule,
	}
	if s.fullNames == nil {
		s.fullNames = DottedFullNameBuilder{}
	}
	if s.classifier == nil {
		s.classifier = TargetTypeClassifier{}
	}
	if s.sorter == nil {
		s.sorter = SequenceSorter{}
	}
	return s, nil
}

func (s *fileTabService) ResolveFields(ctx context.Context, tab types.ImportTab) (types.ImportTab, error) {
	if tab.Model == nil || len(tab.Columns) == 0 {
		return tab, nil
	}

	out := tab.Clone()
	// Sub-field lookups rely on normalized column order; sort before resolving.
	s.sorter.SortColumns(out.Columns)

	resolver := s.resolverFor(out)
	for _, col := range out.Columns {
		if col == nil {
			continue
		}
		if err := resolver.resolveColumn(ctx, *out.Model, col); err != nil {
			return tab, err
		}
	}
	return out, nil
}

func (s *fileTabService) RecomputeFullNames(tab types.ImportTab) types.ImportTab {
	if len(tab.Columns) == 0 {
		return tab
	}
	out := tab.Clone()
	for _, col := range out.Columns {
		if col == nil {
			continue
		}
		col.FullName = s.fullNames.ComputeFullName(*col)
	}
	return out
}

func (s *fileTabService) ImportedRecordMap(record string) (map[string]any, error) {
	return ImportedRecordMap(record)
}

func (s *fileTabService) PropagateIsJSON(tab *types.ImportTab) *types.ImportTab {
	return PropagateIsJSON(tab)
}

// PropagateIsJSON copies the tab's IsJSON flag onto every column and drops nil entries.
func PropagateIsJSON(tab *types.ImportTab) *types.ImportTab {
	if tab == nil {
		return nil
	}
	out := tab.Clone()
	cols := make([]*types.ImportColumn, 0, len(out.Columns))
	for _, col := range out.Columns {
		if col == nil {
			continue
		}
		col.IsJSON = out.IsJSON
		cols = append(cols, col)
	}
	out.Columns = cols
	return &out
}
