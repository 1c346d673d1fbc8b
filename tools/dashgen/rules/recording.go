package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "elg-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "elg-recording",
					Rules: []Rule{
						{
							Record: "elg:http_requests:rate5m",
							Expr:   `sum(rate(elg_http_requests_total[5m]))`,
						},
						{
							Record: "elg:http_errors:rate5m",
							Expr:   `sum(rate(elg_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "elg:ebay_api_calls:rate5m",
							Expr:   `sum(rate(elg_ebay_api_calls_total[5m]))`,
						},
						{
							Record: "elg:ebay_api_errors:rate5m",
							Expr:   `sum(rate(elg_ebay_api_calls_total{status!~"2.."}[5m]))`,
						},
						{
							Record: "elg:listing_fetches:rate5m",
							Expr:   `sum(rate(elg_listing_fetches_total{result!="invalid"}[5m]))`,
						},
						{
							Record: "elg:listing_failures:rate5m",
							Expr:   `sum(rate(elg_listing_fetches_total{result="error"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
