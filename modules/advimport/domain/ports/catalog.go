package ports

import (
	"context"
	"errors"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

var ErrModelNotFound = errors.New("import_model_not_found")

// ModelCatalog looks up metadata. Each lookup yields zero or one result; titles are unique per model.
type ModelCatalog interface {
	FindRealField(ctx context.Context, label string, model types.ModelRef) (types.FieldDescriptor, bool, error)
	FindJSONField(ctx context.Context, title string, model types.ModelRef) (types.FieldDescriptor, bool, error)
	FindModelByName(ctx context.Context, name string) (types.ModelRef, bool, error)
}

type Introspector interface {
	NameFieldOf(ctx context.Context, model types.ModelRef) (string, bool, error)
}

type FullNameBuilder interface {
	ComputeFullName(col types.ImportColumn) string
}

type TypeClassifier interface {
	FillType(col types.ImportColumn) types.ImportColumn
}

// ColumnSorter must sort stably in place.
type ColumnSorter interface {
	SortColumns(cols []*types.ImportColumn)
}
