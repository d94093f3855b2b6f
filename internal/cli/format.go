package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pkordes/itinerary-planner/backend/internal/domain"
)

// fatih/color disables itself when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
	timeColor    = color.New(color.FgCyan)
)

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w)
	_, _ = headerColor.Fprintf(w, "▸ %s\n", title)
	fmt.Fprintln(w)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

func printEmptyState(w io.Writer, msg string) {
	_, _ = dimColor.Fprintf(w, "  %s\n", msg)
}

func printLabelValue(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "  %s: ", label)
	fmt.Fprintln(w, value)
}

// printTable prints rows under headers with left-aligned, padded columns.
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	fmt.Fprint(w, "  ")
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		_, _ = headerColor.Fprint(w, pad(h, widths[i]))
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "  ")
	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		fmt.Fprint(w, "  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprint(w, pad(cell, widths[i]))
		}
		fmt.Fprintln(w)
	}
}

// pad right-pads s to width runes. %-*s counts bytes, which misaligns
// place names with accents.
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ---- JSON views ------------------------------------------------------------

type summaryView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PlaceCount int    `json:"place_count"`
}

type placeView struct {
	ID      string  `json:"id"`
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Time    string  `json:"time"`
}

type dayView struct {
	Day    int         `json:"day"`
	Date   string      `json:"date"`
	Places []placeView `json:"places"`
}

type itineraryView struct {
	summaryView
	Days []dayView `json:"days"`
}

func toSummaryView(s domain.Summary) summaryView {
	return summaryView{
		ID:         s.ID,
		Title:      s.Title,
		StartDate:  s.StartDate.Format(domain.DateLayout),
		EndDate:    s.EndDate.Format(domain.DateLayout),
		PlaceCount: s.PlaceCount,
	}
}

func toItineraryView(it domain.Itinerary) itineraryView {
	v := itineraryView{summaryView: toSummaryView(domain.Summarize(it)), Days: make([]dayView, len(it.Days))}
	for i, d := range it.Days {
		dv := dayView{Day: d.Number, Date: d.Date.Format(domain.DateLayout), Places: make([]placeView, len(d.Places))}
		for j, p := range d.Places {
			dv.Places[j] = placeView{
				ID: p.ID, PlaceID: p.PlaceID, Name: p.Name, Address: p.Address,
				Lat: p.Location.Lat, Lng: p.Location.Lng, Time: p.Time,
			}
		}
		v.Days[i] = dv
	}
	return v
}
