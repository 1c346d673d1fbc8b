// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the gateway does not export.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/ebay-listing-gateway/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// panelJSON is the subset of a serialized panel the checks need. Row panels
// carry their children in Panels.
type panelJSON struct {
	Title   string       `json:"title"`
	Type    string       `json:"type"`
	Targets []targetJSON `json:"targets"`
	Panels  []panelJSON  `json:"panels"`
}

type targetJSON struct {
	RefID string `json:"refId"`
	Expr  string `json:"expr"`
}

// Dashboard parses every panel target expression in dash and checks the
// metrics it selects against known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}

	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		res.errorf("decoding dashboard JSON: %v", err)
		return res
	}

	for _, p := range doc.Panels {
		checkPanel(&res, p, known)
	}
	return res
}

func checkPanel(res *Result, p panelJSON, known map[string]bool) {
	if p.Type == "row" {
		for _, child := range p.Panels {
			checkPanel(res, child, known)
		}
		return
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", p.Title)
		return
	}

	for _, t := range p.Targets {
		where := fmt.Sprintf("panel %q target %s", p.Title, t.RefID)
		checkExpr(res, where, t.Expr, known)
	}
}

// Rules parses every rule expression in cr. Recording rule names defined in
// cr count as known for the rules that follow them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	names := make(map[string]bool, len(known))
	for k, v := range known {
		names[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			id := r.Record
			if id == "" {
				id = r.Alert
			}
			if id == "" {
				res.errorf("group %q has a rule with neither record nor alert", g.Name)
				continue
			}
			checkExpr(&res, fmt.Sprintf("rule %q", id), r.Expr, names)
			if r.Record != "" {
				names[r.Record] = true
			}
		}
	}
	return res
}

// MetricNames returns the metric names selected by expr.
func MetricNames(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var out []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		if vs, ok := n.(*parser.VectorSelector); ok && vs.Name != "" {
			out = append(out, vs.Name)
		}
		return nil
	})
	return out, nil
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		res.errorf("%s: empty expression", where)
		return
	}

	names, err := MetricNames(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}

	for _, name := range names {
		if !known[name] {
			res.errorf("%s: unknown metric %q", where, name)
		}
	}
}
