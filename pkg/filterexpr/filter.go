// Package filterexpr turns list request filters written in CEL and order_by clauses
// into plain conditions and sort keys a caller can evaluate itself.
package filterexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Msg wraps request values that expose filter and order_by raw inputs.
type Msg interface {
	GetFilter() string
	GetOrderBy() string
}

// ValueKind describes the kind of literal value a field accepts.
type ValueKind string

const (
	KindString    ValueKind = "string"
	KindNumber    ValueKind = "number"
	KindTimestamp ValueKind = "timestamp"
)

// Op represents a supported comparison operation.
type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// celOps maps CEL function names onto comparison operations.
var celOps = map[string]Op{
	"_==_":       OpEQ,
	"_>=_":       OpGTE,
	"_<=_":       OpLTE,
	"startsWith": OpSW,
	"@in":        OpIN,
	"_in_":       OpIN,
}

// Field declares the literal kind and the operations allowed for one filter identifier.
type Field struct {
	Kind ValueKind
	Ops  []Op
}

func (f Field) allows(op Op) bool {
	for _, o := range f.Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Schema whitelists the filter fields and order keys of one resource.
type Schema struct {
	Fields map[string]Field
	Order  OrderSchema
}

// Literal is the right-hand side of a condition. String holds string literals, List
// holds the elements of an in list, Number numeric literals and Time timestamps.
type Literal struct {
	String string
	List   []string
	Number float64
	Time   time.Time
}

// Condition is one comparison of an AND chain, e.g. `mastery >= 80`.
type Condition struct {
	Field string
	Op    Op
	Value Literal
}

// Query is a compiled request: every condition must hold, results follow Order.
type Query struct {
	Conditions []Condition
	Order      Ordering
}

// Compile parses the request filter and order_by against schema.
func Compile(msg Msg, schema Schema) (Query, error) {
	conds, err := ParseFilter(msg.GetFilter(), schema.Fields)
	if err != nil {
		return Query{}, fmt.Errorf("filter: %w", err)
	}
	order, err := ParseOrderBy(msg.GetOrderBy(), schema.Order)
	if err != nil {
		return Query{}, fmt.Errorf("order_by: %w", err)
	}
	return Query{Conditions: conds, Order: order}, nil
}

// ParseFilter splits an AND chain of comparisons into conditions. A blank filter yields none.
func ParseFilter(filter string, fields map[string]Field) ([]Condition, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		return nil, errors.New("filter schema has no fields defined")
	}

	env, err := newEnv(fields)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("convert filter AST: %w", err)
	}

	var conds []Condition
	if err := collect(parsed.GetExpr(), fields, &conds); err != nil {
		return nil, err
	}
	return conds, nil
}

func newEnv(fields map[string]Field) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for name, f := range fields {
		var typ *cel.Type
		switch f.Kind {
		case KindString:
			typ = cel.StringType
		case KindNumber:
			typ = cel.DoubleType
		case KindTimestamp:
			typ = cel.TimestampType
		default:
			return nil, fmt.Errorf("field %q: unsupported kind %s", name, f.Kind)
		}
		opts = append(opts, cel.Variable(name, typ))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

// collect walks nested _&&_ calls and appends one condition per leaf.
func collect(expr *exprpb.Expr, fields map[string]Field, out *[]Condition) error {
	call := expr.GetCallExpr()
	if call == nil {
		return errors.New("unsupported expression; expected a comparison")
	}
	switch call.Function {
	case "_&&_":
		for _, arg := range call.Args {
			if err := collect(arg, fields, out); err != nil {
				return err
			}
		}
		return nil
	case "_||_", "_?_:_", "!_":
		return fmt.Errorf("logical operator %q is not supported; only AND is allowed", call.Function)
	}

	cond, err := condition(call, fields)
	if err != nil {
		return err
	}
	*out = append(*out, cond)
	return nil
}

func condition(call *exprpb.Expr_Call, fields map[string]Field) (Condition, error) {
	op, ok := celOps[call.Function]
	if !ok {
		return Condition{}, fmt.Errorf("function %q is not supported", call.Function)
	}

	// receiver calls like word.startsWith("re") carry the field as target
	operands := call.Args
	if call.Target != nil {
		operands = append([]*exprpb.Expr{call.Target}, call.Args...)
	}
	if len(operands) != 2 {
		return Condition{}, fmt.Errorf("operator %q expects two operands", op)
	}

	ident := operands[0].GetIdentExpr()
	if ident == nil {
		return Condition{}, errors.New("left-hand side must be a field name")
	}
	name := ident.GetName()
	field, ok := fields[name]
	if !ok {
		return Condition{}, fmt.Errorf("field %q is not allowed", name)
	}
	if !field.allows(op) {
		return Condition{}, fmt.Errorf("operator %q is not allowed for field %q", op, name)
	}

	value, err := literal(operands[1], field.Kind, op)
	if err != nil {
		return Condition{}, fmt.Errorf("field %q: %w", name, err)
	}
	return Condition{Field: name, Op: op, Value: value}, nil
}

func literal(expr *exprpb.Expr, kind ValueKind, op Op) (Literal, error) {
	if op == OpIN {
		list := expr.GetListExpr()
		if list == nil {
			return Literal{}, errors.New("in expects a list literal")
		}
		if kind != KindString {
			return Literal{}, fmt.Errorf("in is only supported for %s fields", KindString)
		}
		if len(list.GetElements()) == 0 {
			return Literal{}, errors.New("list literal must not be empty")
		}
		items := make([]string, 0, len(list.GetElements()))
		for _, elem := range list.GetElements() {
			c := elem.GetConstExpr()
			if c == nil {
				return Literal{}, errors.New("list elements must be strings")
			}
			s, ok := c.ConstantKind.(*exprpb.Constant_StringValue)
			if !ok {
				return Literal{}, errors.New("list elements must be strings")
			}
			if s.StringValue == "" {
				return Literal{}, errors.New("list literal must not contain empty strings")
			}
			items = append(items, s.StringValue)
		}
		return Literal{List: items}, nil
	}

	if kind == KindTimestamp {
		t, err := timestampLiteral(expr)
		return Literal{Time: t}, err
	}

	c := expr.GetConstExpr()
	if c == nil {
		return Literal{}, errors.New("right-hand side must be a literal")
	}
	switch v := c.ConstantKind.(type) {
	case *exprpb.Constant_StringValue:
		if kind == KindString {
			return Literal{String: v.StringValue}, nil
		}
	case *exprpb.Constant_Int64Value:
		if kind == KindNumber {
			return Literal{Number: float64(v.Int64Value)}, nil
		}
	case *exprpb.Constant_Uint64Value:
		if kind == KindNumber {
			return Literal{Number: float64(v.Uint64Value)}, nil
		}
	case *exprpb.Constant_DoubleValue:
		if kind == KindNumber {
			return Literal{Number: v.DoubleValue}, nil
		}
	}
	return Literal{}, fmt.Errorf("expected %s literal", kind)
}

func timestampLiteral(expr *exprpb.Expr) (time.Time, error) {
	call := expr.GetCallExpr()
	if call == nil || call.Function != "timestamp" {
		return time.Time{}, errors.New("right-hand side must be a literal timestamp(\"...\") call")
	}
	if call.Target != nil || len(call.Args) != 1 {
		return time.Time{}, errors.New("timestamp() expects a single string argument")
	}
	raw := call.Args[0].GetConstExpr().GetStringValue()
	if raw == "" {
		return time.Time{}, errors.New("timestamp() argument must be a non-empty string literal")
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp literal %q is not RFC3339", raw)
	}
	return t, nil
}
