package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// ebay-listing-gateway operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "elg-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "elg-alerts",
					Rules: []Rule{
						{
							Alert: "ElgDown",
							Expr:  `absent(up{job="ebay-listing-gateway"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay Listing Gateway is down",
								"description": "The ebay-listing-gateway job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "ElgReadinessDown",
							Expr:  `elg_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay Listing Gateway readiness check is failing",
								"description": "The readiness check has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "ElgHighErrorRate",
							Expr:  `elg:http_errors:rate5m / elg:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on eBay Listing Gateway",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "ElgEbayErrors",
							Expr:  `elg:ebay_api_errors:rate5m / elg:ebay_api_calls:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API calls are failing",
								"description": "More than 10% of proxied eBay API calls failed or returned a non-2xx status over the last 5 minutes.",
							},
						},
						{
							Alert: "ElgListingFetchFailures",
							Expr:  `elg:listing_failures:rate5m / elg:listing_fetches:rate5m > 0.25`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Listing page fetches are failing",
								"description": "More than 25% of listing page fetches were unreachable or non-2xx for the last 10 minutes.",
							},
						},
						{
							Alert: "ElgEbayQuotaHigh",
							Expr:  `elg_ebay_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily quota above 80%",
								"description": "The rolling 24h eBay API call count has exceeded 4000 of the 5000 daily allowance.",
							},
						},
						{
							Alert: "ElgEbayLimitReached",
							Expr:  `increase(elg_ebay_daily_limit_hits_total[1h]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily limit reached",
								"description": "Requests are being rejected with 429 because the eBay daily call limit was reached.",
							},
						},
						{
							Alert: "ElgTokenRefreshFailures",
							Expr:  `increase(elg_ebay_token_refreshes_total{result="error"}[15m]) > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay OAuth token refresh is failing",
								"description": "The gateway could not exchange its client credentials for an access token in the last 15 minutes.",
							},
						},
						{
							Alert: "ElgQuotaSyncFailures",
							Expr:  `increase(elg_quota_syncs_total{result="error"}[1h]) > 2`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay quota sync is failing",
								"description": "The background quota sync could not read the eBay Analytics API more than twice in the last hour.",
							},
						},
					},
				},
			},
		},
	}
}
