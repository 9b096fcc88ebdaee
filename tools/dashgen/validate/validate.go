// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/tcg-analytics/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// only get printed.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Expr parses one expression and checks the metric names it references.
func (r *Result) Expr(where, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		r.errorf("%s: parsing %q: %v", where, expr, err)
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: selector without metric name in %q", where, expr))
			return nil
		}
		if !known[vs.Name] {
			r.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}

// Dashboard validates every query target in a built dashboard. It walks the
// JSON form so it does not depend on the panel types used.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	exprs := collectExprs(doc, "", nil)
	if len(exprs) == 0 {
		res.errorf("dashboard has no query targets")
	}
	for _, e := range exprs {
		res.Expr(e.panel, e.expr, known)
	}
	return res
}

// Rules validates a PrometheusRule. Recording rule names become known for
// the rules that follow them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			name := rule.Alert
			if rule.Record != "" {
				name = rule.Record
			}
			if name == "" {
				res.errorf("%s: rule without record or alert name", g.Name)
				continue
			}
			res.Expr(g.Name+"/"+name, rule.Expr, known)
			if rule.Alert != "" && rule.Labels["severity"] == "" {
				res.errorf("%s/%s: missing severity label", g.Name, name)
			}
		}
	}
	return res
}

type panelExpr struct {
	panel string
	expr  string
}

func collectExprs(v any, panel string, out []panelExpr) []panelExpr {
	switch t := v.(type) {
	case map[string]any:
		if title, ok := t["title"].(string); ok {
			panel = title
		}
		if expr, ok := t["expr"].(string); ok {
			out = append(out, panelExpr{panel: panel, expr: expr})
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			out = collectExprs(t[k], panel, out)
		}
	case []any:
		for _, item := range t {
			out = collectExprs(item, panel, out)
		}
	}
	return out
}
