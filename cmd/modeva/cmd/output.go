package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
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

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProductTable(w io.Writer, products []models.ProductCard) error {
	tw := newTabWriter(w)
	tw.writef("SLUG\tNAME\tCATEGORY\tBRAND\tPRICE\n")
	for _, p := range products {
		tw.writef("%s\t%s\t%s\t%s\t%.2f\n", p.Slug, p.Name, p.Category, p.Brand, p.Price)
	}
	return tw.finish()
}
