package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/jacksonlee411/advanced-imports/modules/advimport/domain/types"
)

// DefaultCreateNewRule marks file attachments as always created fresh on import.
const DefaultCreateNewRule = `target_type == "MetaFile"`

// The CEL seams below run only on a program cache miss. Code replacing them must
// clear importTypeRuleProgramCache first.
var newImportTypeCELEnv = func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("target_type", cel.StringType),
		cel.Variable("relationship", cel.StringType),
		cel.Variable("field_name", cel.StringType),
	)
}

var newImportTypeCELProgram = func(env *cel.Env, ast *cel.Ast) (cel.Program, error) {
	return env.Program(ast)
}

// importTypeRuleProgramCache maps a trimmed expression to its compiled cel.Program.
var importTypeRuleProgramCache sync.Map

// importTypeRule decides whether a static column creates its related record (NEW)
// instead of looking it up (FIND).
type importTypeRule struct {
	expr    string
	program cel.Program
}

func newImportTypeRule(expr string) (*importTypeRule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = DefaultCreateNewRule
	}
	if cached, ok := importTypeRuleProgramCache.Load(expr); ok {
		return &importTypeRule{expr: expr, program: cached.(cel.Program)}, nil
	}
	env, err := newImportTypeCELEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.New("import type rule: expression must return bool")
	}
	program, err := newImportTypeCELProgram(env, ast)
	if err != nil {
		return nil, err
	}
	importTypeRuleProgramCache.Store(expr, program)
	return &importTypeRule{expr: expr, program: program}, nil
}

func (r *importTypeRule) createsNew(col types.ImportColumn) (bool, error) {
	vars := map[string]any{
		"target_type":  col.TargetType,
		"relationship": "",
		"field_name":   "",
	}
	if col.ResolvedField != nil {
		vars["relationship"] = string(col.ResolvedField.Relationship)
		vars["field_name"] = col.ResolvedField.Name
	}
	out, _, err := r.program.Eval(vars)
	if err != nil {
		return false, err
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("import type rule: non-bool result")
	}
	return v, nil
}
