package minimaple

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ============================================================
// JSON Serialization
// ============================================================

type jsonEncoder struct{}

// ToJSON encodes n as a tree of objects tagged by "type":
//
//	{"type":"binary","op":"+","left":{...},"right":{...}}
//	{"type":"variable","name":"x"}
//	{"type":"number","value":2}
//	{"type":"pending","target":{...}}
func ToJSON(n Node) (string, error) {
	m, err := nodeJSON(n)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func nodeJSON(n Node) (map[string]interface{}, error) {
	return Visit[map[string]interface{}](jsonEncoder{}, n)
}

func (e jsonEncoder) VisitBinary(n *BinaryOp) (map[string]interface{}, error) {
	left, err := nodeJSON(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := nodeJSON(n.Right)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"type": "binary", "op": n.Op.Symbol(), "left": left, "right": right}, nil
}

func (e jsonEncoder) VisitVariable(n *Variable) (map[string]interface{}, error) {
	return map[string]interface{}{"type": "variable", "name": n.Name}, nil
}

func (e jsonEncoder) VisitNumber(n *Number) (map[string]interface{}, error) {
	return map[string]interface{}{"type": "number", "value": n.Value}, nil
}

func (e jsonEncoder) VisitPending(n *PendingDerivative) (map[string]interface{}, error) {
	target, err := nodeJSON(n.Target)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"type": "pending", "target": target}, nil
}

// FromJSON decodes a tree produced by ToJSON after it has been unmarshalled
// into generic maps.
func FromJSON(data map[string]interface{}) (Node, error) {
	if data == nil {
		return nil, errors.New("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, errors.New("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Node, error) {
		v, ok := data[field]
		if !ok {
			return nil, errors.Newf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, errors.Newf("%s: %q must be an object", typ, field)
		}
		n, err := FromJSON(m)
		return n, errors.Wrapf(err, "%s.%s", typ, field)
	}

	switch typ {
	case "binary":
		sym, _ := data["op"].(string)
		op, ok := OperatorFromSymbol(sym)
		if !ok {
			return nil, errors.Newf("binary: unknown operator %q", sym)
		}
		left, err := sub("left")
		if err != nil {
			return nil, err
		}
		right, err := sub("right")
		if err != nil {
			return nil, err
		}
		return Bin(left, op, right), nil

	case "variable":
		name, _ := data["name"].(string)
		if !validVariable(name) {
			return nil, errors.Newf("variable: invalid name %q", name)
		}
		return Var(name), nil

	case "number":
		switch v := data["value"].(type) {
		case float64:
			return Num(v), nil
		case int:
			return Num(float64(v)), nil
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, errors.Wrap(err, "number")
			}
			return Num(f), nil
		}
		return nil, errors.New("number: 'value' must be numeric")

	case "pending":
		target, err := sub("target")
		if err != nil {
			return nil, err
		}
		return Pending(target), nil
	}
	return nil, errors.Newf("unknown expression type: %s", typ)
}

// TermsJSON encodes a term list. Atom keys are strings and composite keys
// are objects holding their own term list.
func TermsJSON(terms []Term) []map[string]interface{} {
	out := make([]map[string]interface{}, len(terms))
	for i, t := range terms {
		factors := make([]map[string]interface{}, len(t.Factors))
		for j, f := range t.Factors {
			var key interface{}
			switch k := f.Key.(type) {
			case Atom:
				key = string(k)
			case Composite:
				key = map[string]interface{}{"composite": TermsJSON(k)}
			}
			factors[j] = map[string]interface{}{"key": key, "exponent": f.Exponent}
		}
		out[i] = map[string]interface{}{"coefficient": t.Coefficient, "factors": factors}
	}
	return out
}
