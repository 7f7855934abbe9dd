package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kr/text"
)

const wrapWidth = 72

func (a *app) table(header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, text.Indent("(none)", "  "))
		return
	}
	tw := tabwriter.NewWriter(text.NewIndentWriter(a.out, []byte("  ")), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

func (a *app) section(title string) {
	fmt.Fprintf(a.out, "\n%s\n", title)
}

// note prints wrapped, indented prose such as store errors.
func (a *app) note(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(a.out, text.Indent(text.Wrap(msg, wrapWidth), "  ! "))
}

func (a *app) field(label, value string) {
	fmt.Fprintf(a.out, "  %-10s %s\n", label+":", value)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optionalMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return money(*v)
}
