package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/ebay-listing-gateway/internal/api/client"
	domain "github.com/donaldgifford/ebay-listing-gateway/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printExtraction(w io.Writer, x *domain.ListingExtraction) error {
	tw := newTabWriter(w)
	tw.writef("Title:\t%s\n", x.Title)
	tw.writef("Keywords:\t%s\n", strings.Join(x.Keywords, ", "))
	tw.writef("Snippet:\t%s\n", truncate(x.DescriptionSnippet, 80))
	return tw.finish()
}

func printScore(w io.Writer, s *domain.ScoreResult) error {
	tw := newTabWriter(w)
	tw.writef("Score:\t%d/100\n", s.Score)
	tw.writef("Rating:\t%s\n", s.Rating)
	for i, tip := range s.ImprovementTips {
		label := ""
		if i == 0 {
			label = "Tips:"
		}
		tw.writef("%s\t- %s\n", label, tip)
	}
	tw.writef("Advice:\t%s\n", s.MarketAdvice)
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.QuotaStatus) error {
	tw := newTabWriter(w)
	if q.DailyLimit > 0 {
		tw.writef("Daily Limit:\t%d\n", q.DailyLimit)
		tw.writef("Used:\t%d\n", q.DailyUsed)
		tw.writef("Remaining:\t%d\n", q.Remaining)
		tw.writef("Resets:\t%s\n", q.ResetAt.Format(time.RFC3339))
	} else {
		tw.writef("Daily Limit:\tnot enforced\n")
	}

	if len(q.Upstream) > 0 {
		tw.writef("\nRESOURCE\tCOUNT\tLIMIT\tREMAINING\tRESETS\n")
		for i := range q.Upstream {
			u := &q.Upstream[i]
			tw.writef("%s\t%d\t%d\t%d\t%s\n",
				u.Resource,
				u.Count,
				u.Limit,
				u.Remaining,
				u.ResetAt.Format(time.RFC3339),
			)
		}
	}
	return tw.finish()
}

// printRaw pretty-prints an upstream JSON body, falling back to the bytes as
// received.
func printRaw(w io.Writer, body json.RawMessage) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(body))
		return err
	}
	_, err := fmt.Fprintln(w, pretty.String())
	return err
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
