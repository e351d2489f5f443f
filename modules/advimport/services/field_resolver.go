package services

import (
	"context"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

type fieldResolver interface {
	resolveColumn(ctx context.Context, model types.ModelRef, col *types.ImportColumn) error
}

func (s *fileTabService) resolverFor(tab types.ImportTab) fieldResolver {
	if tab.IsJSON {
		return dynamicFieldResolver{s: s}
	}
	return staticFieldResolver{s: s}
}

// staticFieldResolver matches column titles against field labels of a compiled model.
type staticFieldResolver struct {
	s *fileTabService
}

func (r staticFieldResolver) resolveColumn(ctx context.Context, model types.ModelRef, col *types.ImportColumn) error {
	field, ok, err := r.s.catalog.FindRealField(ctx, col.Title, model)
	if err != nil {
		return err
	}
	if !ok {
		clearResolvedField(col)
		return nil
	}

	col.ResolvedField = &field
	if field.Relationship.IsToMany() {
		return nil
	}

	relational := field.Relationship != types.RelationshipNone
	if relational {
		subField, err := r.s.subFieldOf(ctx, field)
		if err != nil {
			return err
		}
		col.SubField = subField
	}

	*col = r.s.classifier.FillType(*col)

	createNew, err := r.s.createNew.createsNew(*col)
	if err != nil {
		return err
	}
	switch {
	case createNew:
		col.ImportType = types.ImportTypeNew
	case relational:
		col.ImportType = types.ImportTypeFind
	}

	col.FullName = r.s.fullNames.ComputeFullName(*col)
	return nil
}

// dynamicFieldResolver matches column titles against field titles of a dynamic model.
type dynamicFieldResolver struct {
	s *fileTabService
}

func (r dynamicFieldResolver) resolveColumn(ctx context.Context, model types.ModelRef, col *types.ImportColumn) error {
	field, ok, err := r.s.catalog.FindJSONField(ctx, col.Title, model)
	if err != nil {
		return err
	}
	if !ok {
		clearResolvedField(col)
		return nil
	}

	col.ResolvedField = &field
	if field.Relationship.IsToMany() {
		return nil
	}

	if field.TargetIsDynamicModel || field.TargetTypeName != "" {
		col.ImportType = types.ImportTypeFind
		subField, err := r.s.subFieldOf(ctx, field)
		if err != nil {
			return err
		}
		col.SubField = subField
	}

	*col = r.s.classifier.FillType(*col)
	col.FullName = r.s.fullNames.ComputeFullName(*col)
	return nil
}

// clearResolvedField leaves ImportType and FullName from any earlier pass untouched.
func clearResolvedField(col *types.ImportColumn) {
	col.ResolvedField = nil
	col.SubField = ""
}
