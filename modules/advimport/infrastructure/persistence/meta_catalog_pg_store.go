package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/fieldmeta"
	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

type pgBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// MetaCatalogPGStore reads field and model metadata from the meta schema
// (meta_model, meta_field, meta_json_model, meta_json_field).
type MetaCatalogPGStore struct {
	pool pgBeginner
}

func NewMetaCatalogPGStore(pool pgBeginner) *MetaCatalogPGStore {
	return &MetaCatalogPGStore{pool: pool}
}

func (s *MetaCatalogPGStore) readTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const realFieldSelectSQL = `
SELECT
  f.id::text,
  f.name,
  f.label,
  COALESCE(f.relationship, ''),
  COALESCE(f.type_name, ''),
  f.name_column
FROM meta.meta_field f
`

const jsonFieldSelectSQL = `
SELECT
  f.id::text,
  f.name,
  f.title,
  f.type,
  COALESCE(f.target_model, ''),
  t.id IS NOT NULL,
  COALESCE(t.name, ''),
  COALESCE(t.name_field, '')
FROM meta.meta_json_field f
LEFT JOIN meta.meta_json_model t ON t.id = f.target_json_model_id
`

func (s *MetaCatalogPGStore) FindRealField(ctx context.Context, label string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	return s.findRealField(ctx, realFieldSelectSQL+`WHERE f.label = $1::text AND f.meta_model_id = $2::uuid
ORDER BY f.id
LIMIT 1
`, label, model)
}

func (s *MetaCatalogPGStore) FindJSONField(ctx context.Context, title string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	return s.findJSONField(ctx, jsonFieldSelectSQL+`WHERE f.title = $1::text AND f.json_model_id = $2::uuid
ORDER BY f.id
LIMIT 1
`, title, model)
}

// FindFieldByName looks a field up by its technical name, in meta_json_field for dynamic models.
func (s *MetaCatalogPGStore) FindFieldByName(ctx context.Context, model types.ModelRef, name string) (types.FieldDescriptor, bool, error) {
	if model.IsJSON {
		return s.findJSONField(ctx, jsonFieldSelectSQL+`WHERE f.name = $1::text AND f.json_model_id = $2::uuid
ORDER BY f.id
LIMIT 1
`, name, model)
	}
	return s.findRealField(ctx, realFieldSelectSQL+`WHERE f.name = $1::text AND f.meta_model_id = $2::uuid
ORDER BY f.id
LIMIT 1
`, name, model)
}

func (s *MetaCatalogPGStore) findRealField(ctx context.Context, query string, key string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	var (
		field        types.FieldDescriptor
		relationship string
		typeName     string
		found        bool
	)
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, key, model.ID).Scan(&field.ID, &field.Name, &field.Label, &relationship, &typeName, &field.NameColumn)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return types.FieldDescriptor{}, false, err
	}

	field.ModelID = model.ID
	field.Relationship = fieldmeta.ParseRelationshipKind(relationship)
	if relationship == "" {
		field.ValueType = typeName
	} else {
		field.TargetTypeName = typeName
	}
	return field, true, nil
}

func (s *MetaCatalogPGStore) findJSONField(ctx context.Context, query string, key string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	var (
		field           types.FieldDescriptor
		fieldType       string
		targetModel     string
		hasTargetJSON   bool
		targetJSONName  string
		targetNameField string
		found           bool
	)
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, key, model.ID).Scan(&field.ID, &field.Name, &field.Label, &fieldType, &targetModel, &hasTargetJSON, &targetJSONName, &targetNameField)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return types.FieldDescriptor{}, false, err
	}

	field.ModelID = model.ID
	field.IsJSON = true
	field.Relationship = fieldmeta.ParseRelationshipKind(fieldType)
	switch {
	case hasTargetJSON:
		field.TargetIsDynamicModel = true
		field.TargetTypeName = targetJSONName
		field.NameFieldHint = targetNameField
	case targetModel != "":
		field.TargetTypeName = targetModel
	default:
		field.ValueType = fieldType
	}
	return field, true, nil
}

func (s *MetaCatalogPGStore) FindModelByName(ctx context.Context, name string) (types.ModelRef, bool, error) {
	var (
		model types.ModelRef
		found bool
	)
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
SELECT id::text, name, COALESCE(full_name, '')
FROM meta.meta_model
WHERE name = $1::text
ORDER BY id
LIMIT 1
`, name).Scan(&model.ID, &model.Name, &model.FullName)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return types.ModelRef{}, false, err
	}
	return model, true, nil
}

func (s *MetaCatalogPGStore) FindJSONModelByName(ctx context.Context, name string) (types.ModelRef, bool, error) {
	var (
		model types.ModelRef
		found bool
	)
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
SELECT id::text, name, COALESCE(name_field, '')
FROM meta.meta_json_model
WHERE name = $1::text
ORDER BY id
LIMIT 1
`, name).Scan(&model.ID, &model.Name, &model.NameField)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil || !found {
		return types.ModelRef{}, false, err
	}
	model.IsJSON = true
	return model, true, nil
}

// NameFieldOf answers from the model itself for dynamic models and from meta_field otherwise.
func (s *MetaCatalogPGStore) NameFieldOf(ctx context.Context, model types.ModelRef) (string, bool, error) {
	if model.IsJSON {
		return model.NameField, model.NameField != "", nil
	}

	fields := make([]types.FieldDescriptor, 0)
	err := s.readTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
SELECT name, name_column
FROM meta.meta_field
WHERE meta_model_id = $1::uuid
ORDER BY name ASC
`, model.ID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var f types.FieldDescriptor
			if err := rows.Scan(&f.Name, &f.NameColumn); err != nil {
				return err
			}
			fields = append(fields, f)
		}
		return rows.Err()
	})
	if err != nil {
		return "", false, err
	}

	name, ok := fieldmeta.NameField(fields)
	return name, ok, nil
}
