package minimaple

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs a tool with a default Differentiator.
func HandleToolCall(req ToolRequest) ToolResponse {
	return New().HandleToolCall(req)
}

// HandleToolCall dispatches req to the named tool. Expression parameters
// accept either source text or a tree in the ToJSON encoding.
func (d *Differentiator) HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", errors.Newf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", errors.Newf("param %s must be a string", key)
		}
		return s, nil
	}
	getNode := func(key string) (Node, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, errors.Newf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return Parse(val)
		case map[string]interface{}:
			return FromJSON(val)
		}
		return nil, errors.Newf("param %s must be a string or an object", key)
	}
	respond := func(n Node) ToolResponse {
		m, err := nodeJSON(n)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: m, LaTeX: LaTeX(n), String: Print(n)}
	}

	switch req.Tool {
	case "differentiate":
		text, err := getString("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		variable, err := getString("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		res, err := d.DifferentiateSteps(text, variable)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		resp := respond(res.Node)
		if steps, _ := req.Params["steps"].(bool); steps {
			resp.Result = map[string]interface{}{
				"expr":       resp.Result,
				"iterations": res.Iterations,
				"steps":      res.Steps,
			}
		}
		return resp

	case "parse":
		n, err := getNode("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(n)

	case "print", "latex":
		n, err := getNode("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if req.Tool == "latex" {
			return ToolResponse{Result: LaTeX(n), LaTeX: LaTeX(n)}
		}
		return ToolResponse{Result: Print(n), String: Print(n)}

	case "expand":
		n, err := getNode("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		expanded, err := Distribute(n)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(expanded)

	case "terms":
		n, err := getNode("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		terms, err := CanonicalTerms(n)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: TermsJSON(terms), LaTeX: LaTeX(ToAST(terms)), String: FormatTerms(terms)}

	case "mcp_spec":
		return ToolResponse{Result: ToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: errors.Newf("unknown tool: %s", req.Tool).Error()}
}

// CanonicalTerms distributes n, removes division and returns its grouped
// monomials.
func CanonicalTerms(n Node) ([]Term, error) {
	n, err := Distribute(n)
	if err != nil {
		return nil, err
	}
	if n, err = RemoveDivision(n); err != nil {
		return nil, err
	}
	terms, err := Decompose(n)
	if err != nil {
		return nil, err
	}
	return Group(terms), nil
}

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("differentiate", "Differentiate expr with respect to var and simplify. Optional: steps (bool)",
			[]string{"expr", "var"}, map[string]string{"expr": "string", "var": "string", "steps": "boolean"}),
		ts("parse", "Parse expression text into a tree", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("print", "Render a tree as minimally parenthesized text", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("latex", "Render an expression as LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("expand", "Distribute products and integer powers", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("terms", "Canonical grouped monomials of an expression", []string{"expr"}, map[string]string{"expr": "string"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
