package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate returns a timeseries panel showing the eBay API call rate per
// proxied operation.
func APICallsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Calls Rate").
		Description("eBay API calls per second by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(`+Sel("elg_ebay_api_calls_total")+`[5m])) by (operation)`,
			"{{operation}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// APILatency returns a timeseries panel showing p95 eBay API latency per
// operation.
func APILatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("API Latency (p95)").
		Description("95th percentile eBay API call duration by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			Quantile(0.95, "elg_ebay_api_duration_seconds", "operation"),
			"{{operation}}", "A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UpstreamErrors returns a timeseries panel showing the rate of failed eBay
// API calls.
func UpstreamErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Errors").
		Description("eBay API calls per second that failed or returned a non-2xx status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`elg:ebay_api_errors:rate5m`, "errors/s", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// DailyUsage returns a timeseries panel showing the rolling 24h eBay API
// usage with a threshold line at the daily limit.
func DailyUsage() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Daily Usage vs Limit").
		Description(fmt.Sprintf("Rolling 24h eBay API call count (limit: %d)", EbayDailyLimit)).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(Sel("elg_ebay_daily_usage"), "usage", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(float64(EbayDailyLimit)*0.8, float64(EbayDailyLimit))).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LimitHits returns a stat panel showing the number of daily limit hits
// in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Requests rejected because the eBay daily limit was reached").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(`+Sel("elg_ebay_daily_limit_hits_total")+`[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// TokenRefreshes returns a stat panel showing OAuth token exchanges in the
// past 24 hours by result. A healthy gateway refreshes roughly once per token
// lifetime.
func TokenRefreshes() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Refreshes (24h)").
		Description("OAuth client-credentials exchanges by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("elg_ebay_token_refreshes_total")+`[24h])) by (result)`,
			"{{result}}", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeNone)
}

// UpstreamRemaining returns a timeseries panel showing the remaining call
// quota eBay reports per resource, as collected by the quota sync job.
func UpstreamRemaining() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Upstream Quota Remaining").
		Description("Calls remaining per resource as reported by the eBay Analytics API").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(`+Sel("elg_ebay_upstream_remaining")+`) by (resource)`,
			"{{resource}}", "A",
		)).
		WithTarget(PromQuery(
			`sum(`+Sel("elg_ebay_upstream_limit")+`) by (resource)`,
			"{{resource}} limit", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("last", "min")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// QuotaSyncResults returns a stat panel showing quota sync runs and alerts
// sent in the past 24 hours.
func QuotaSyncResults() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Quota Sync (24h)").
		Description("Quota sync runs by result and low-quota alerts sent").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("elg_quota_syncs_total")+`[24h])) by (result)`,
			"sync {{result}}", "A",
		)).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("elg_quota_alerts_total")+`[24h])) by (result)`,
			"alert {{result}}", "B",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeNone)
}
