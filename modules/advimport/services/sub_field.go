package services

import (
	"context"
	"fmt"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/fieldmeta"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/ports"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// subFieldOf returns the name field of the model a relational field points to.
func (s *fileTabService) subFieldOf(ctx context.Context, field types.FieldDescriptor) (string, error) {
	if field.TargetIsDynamicModel {
		return field.NameFieldHint, nil
	}

	name := fieldmeta.SimpleModelName(field.TargetTypeName)
	model, ok, err := s.catalog.FindModelByName(ctx, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", ports.ErrModelNotFound, name)
	}

	nameField, ok, err := s.introspector.NameFieldOf(ctx, model)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return nameField, nil
}
