package services

import (
	"context"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

type fakeCatalog struct {
	realFields map[string]types.FieldDescriptor
	jsonFields map[string]types.FieldDescriptor
	models     map[string]types.ModelRef
	nameFields map[string]string

	realErr  error
	jsonErr  error
	modelErr error
	nameErr  error

	modelLookups int
}

func fieldKey(modelID string, label string) string { return modelID + "|" + label }

func (c *fakeCatalog) FindRealField(_ context.Context, label string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	if c.realErr != nil {
		return types.FieldDescriptor{}, false, c.realErr
	}
	f, ok := c.realFields[fieldKey(model.ID, label)]
	return f, ok, nil
}

func (c *fakeCatalog) FindJSONField(_ context.Context, title string, model types.ModelRef) (types.FieldDescriptor, bool, error) {
	if c.jsonErr != nil {
		return types.FieldDescriptor{}, false, c.jsonErr
	}
	f, ok := c.jsonFields[fieldKey(model.ID, title)]
	return f, ok, nil
}

func (c *fakeCatalog) FindModelByName(_ context.Context, name string) (types.ModelRef, bool, error) {
	c.modelLookups++
	if c.modelErr != nil {
		return types.ModelRef{}, false, c.modelErr
	}
	m, ok := c.models[name]
	return m, ok, nil
}

func (c *fakeCatalog) NameFieldOf(_ context.Context, model types.ModelRef) (string, bool, error) {
	if c.nameErr != nil {
		return "", false, c.nameErr
	}
	f, ok := c.nameFields[model.ID]
	return f, ok, nil
}

var (
	saleOrderModel = types.ModelRef{ID: "m-sale-order", Name: "SaleOrder", FullName: "com.axelor.apps.sale.db.SaleOrder"}
	customerModel  = types.ModelRef{ID: "jm-customer", Name: "Customer", IsJSON: true, NameField: "code"}
)

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		realFields: map[string]types.FieldDescriptor{
			fieldKey("m-sale-order", "Reference"): {
				ID: "f1", Name: "saleOrderSeq", Label: "Reference", ModelID: "m-sale-order", ValueType: "String",
			},
			fieldKey("m-sale-order", "Customer"): {
				ID: "f2", Name: "clientPartner", Label: "Customer", ModelID: "m-sale-order",
				Relationship: types.RelationshipManyToOne, TargetTypeName: "Partner",
			},
			fieldKey("m-sale-order", "Attachment"): {
				ID: "f3", Name: "attachment", Label: "Attachment", ModelID: "m-sale-order",
				Relationship: types.RelationshipManyToOne, TargetTypeName: "MetaFile",
			},
			fieldKey("m-sale-order", "Lines"): {
				ID: "f4", Name: "saleOrderLineList", Label: "Lines", ModelID: "m-sale-order",
				Relationship: types.RelationshipOneToMany, TargetTypeName: "SaleOrderLine",
			},
			fieldKey("m-sale-order", "Currency"): {
				ID: "f5", Name: "currency", Label: "Currency", ModelID: "m-sale-order",
				Relationship: types.RelationshipManyToOne, TargetTypeName: "Currency",
			},
			fieldKey("m-sale-order", "Broken"): {
				ID: "f6", Name: "broken", Label: "Broken", ModelID: "m-sale-order",
				Relationship: types.RelationshipManyToOne, TargetTypeName: "Ghost",
			},
		},
		jsonFields: map[string]types.FieldDescriptor{
			fieldKey("jm-customer", "Code"): {
				ID: "j1", Name: "code", Label: "Code", ModelID: "jm-customer", ValueType: "string", IsJSON: true,
			},
			fieldKey("jm-customer", "Partner"): {
				ID: "j2", Name: "partner", Label: "Partner", ModelID: "jm-customer", IsJSON: true,
				Relationship: types.RelationshipManyToOne, TargetTypeName: "com.axelor.apps.base.db.Partner",
			},
			fieldKey("jm-customer", "Segment"): {
				ID: "j3", Name: "segment", Label: "Segment", ModelID: "jm-customer", IsJSON: true,
				Relationship: types.RelationshipManyToOne, TargetTypeName: "Segment",
				TargetIsDynamicModel: true, NameFieldHint: "label",
			},
			fieldKey("jm-customer", "Contacts"): {
				ID: "j4", Name: "contacts", Label: "Contacts", ModelID: "jm-customer", IsJSON: true,
				Relationship: types.RelationshipJSONOneToMany, TargetTypeName: "Contact", TargetIsDynamicModel: true,
			},
			fieldKey("jm-customer", "Addresses"): {
				ID: "j5", Name: "addresses", Label: "Addresses", ModelID: "jm-customer", IsJSON: true,
				Relationship: types.RelationshipOneToMany, TargetTypeName: "com.axelor.apps.base.db.Address",
			},
		},
		models: map[string]types.ModelRef{
			"Partner":  {ID: "m-partner", Name: "Partner", FullName: "com.axelor.apps.base.db.Partner"},
			"MetaFile": {ID: "m-meta-file", Name: "MetaFile", FullName: "com.axelor.meta.db.MetaFile"},
			"Currency": {ID: "m-currency", Name: "Currency", FullName: "com.axelor.apps.base.db.Currency"},
		},
		nameFields: map[string]string{
			"m-partner":   "fullName",
			"m-meta-file": "fileName",
		},
	}
}
