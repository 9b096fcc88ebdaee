package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/tcg-analytics/internal/api/client"
	domain "github.com/donaldgifford/tcg-analytics/pkg/types"
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

// printCard shows the top-level scalar fields of the pricing document, then
// any marketplace data.
func printCard(w io.Writer, res *apiclient.CardResult) error {
	tw := newTabWriter(w)
	for _, card := range cards(res.Raw) {
		keys := make([]string, 0, len(card))
		for k, v := range card {
			if isScalar(v) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			tw.writef("%s:\t%v\n", k, card[k])
		}
		tw.writef("\n")
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if res.Market.Empty() {
		_, err := fmt.Fprintln(w, "No eBay data.")
		return err
	}
	return printMarketplace(w, res.Market)
}

// cards returns the card objects under "data", which JustTCG sends as either
// a list or a single object.
func cards(raw map[string]any) []map[string]any {
	switch d := raw["data"].(type) {
	case map[string]any:
		return []map[string]any{d}
	case []any:
		out := make([]map[string]any, 0, len(d))
		for _, v := range d {
			if m, ok := v.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any, nil:
		return false
	default:
		return true
	}
}

func printMarketplace(w io.Writer, md *domain.MarketplaceData) error {
	tw := newTabWriter(w)
	if s := md.PriceSummary; s != nil {
		tw.writef("MIN\tMAX\tAVERAGE\tTOTAL\n")
		tw.writef("$%.2f\t$%.2f\t$%.2f\t%d\n\n", s.Min, s.Max, s.Average, md.TotalResults)
	}
	if len(md.Listings) > 0 {
		tw.writef("TITLE\tPRICE\tCONDITION\tSELLER\n")
		for i := range md.Listings {
			l := &md.Listings[i]
			tw.writef("%s\t%s %s\t%s\t%s\n",
				truncate(l.Title, 50),
				l.Price,
				l.Currency,
				l.Condition,
				l.Seller,
			)
		}
	}
	return tw.finish()
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
