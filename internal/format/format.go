// Package format renders numbers, dates and label tooltips for display.
package format

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultDecimals is used when callers pass a negative decimal count.
const DefaultDecimals = 2

const displayDateLayout = "02/01/2006"

// Number formats v with a fixed number of decimals.
func Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Missing is shown in place of a value that was never written.
const Missing = "--"

// Optional formats a display slot read as (v, ok) followed by unit. A slot
// that was never written renders as Missing, without the unit.
func Optional(v float64, ok bool, decimals int, unit string) string {
	if !ok {
		return Missing
	}
	return Number(v, decimals) + unit
}

// Date renders an ISO date or timestamp as dd/mm/yyyy. Input that does not
// parse is returned unchanged.
func Date(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return s
}

// Tooltips maps glossary terms to the help shown next to matching labels.
var Tooltips = map[string]string{
	"TMB":     "Taxa Metabólica Basal - calorias queimadas em repouso",
	"TDEE":    "Total Daily Energy Expenditure - gasto calórico total diário",
	"IMC":     "Índice de Massa Corporal - relação entre peso e altura",
	"Déficit": "Redução de calorias necessária para emagrecer",
}

// Tooltip returns the help text for every term contained in label, sorted
// by term so output is stable.
func Tooltip(label string) []string {
	terms := make([]string, 0, len(Tooltips))
	for term := range Tooltips {
		if strings.Contains(label, term) {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		out = append(out, Tooltips[term])
	}
	return out
}
