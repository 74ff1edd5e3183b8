package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/gestloc/gestloc/internal/datacache"
	"github.com/gestloc/gestloc/internal/format"
	"github.com/gestloc/gestloc/internal/model"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns
// accounting for wide characters like emojis (which take 2 columns)
// and stripping ANSI escape sequences
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth truncates a string to fit within maxWidth display columns
func truncateToWidth(s string, maxWidth int) (string, int) {
	plain := stripAnsi(s)
	width := runewidth.StringWidth(plain)

	if width <= maxWidth {
		return s, width
	}

	cutWidth := 0
	cutIndex := 0
	for i, r := range plain {
		rw := runewidth.RuneWidth(r)
		if cutWidth+rw > maxWidth-3 { // Leave room for "..."
			cutIndex = i
			break
		}
		cutWidth += rw
	}

	if cutIndex > 0 && cutIndex < len(plain) {
		return plain[:cutIndex] + "...", maxWidth
	}
	return plain[:maxWidth-3] + "...", maxWidth
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Notifications outputs the notification feed as a table
func (f *TableFormatter) Notifications(list []model.Notification, w io.Writer) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "Aucune notification.")
		return nil
	}

	const (
		colPriority = 8
		colType     = 12
		colTitle    = 24
		colMessage  = 46
	)

	fmt.Fprintf(w, "   %-*s  %-*s  %-*s  %-*s  %s\n",
		colPriority, "Priority",
		colType, "Type",
		colTitle, "Title",
		colMessage, "Message",
		"When")
	fmt.Fprintln(w, strings.Repeat("-", colPriority+colType+colTitle+colMessage+18))

	for _, n := range list {
		marker := color.New(color.Bold).Sprint("●")
		if n.Read {
			marker = " "
		}

		title, titleWidth := truncateToWidth(n.Title, colTitle)
		message, messageWidth := truncateToWidth(n.Message, colMessage)

		priorityDisplay := strings.ToUpper(string(n.Priority))
		priorityStr := padRight(colorPriority(n.Priority), len(priorityDisplay), colPriority)

		fmt.Fprintf(w, " %s %s  %-*s  %s  %s  %s\n",
			marker,
			priorityStr,
			colType, string(n.Type),
			padRight(title, titleWidth, colTitle),
			padRight(message, messageWidth, colMessage),
			n.TimestampFR,
		)
	}

	printUnreadFooter(list, w)
	return nil
}

// printUnreadFooter prints an unread summary when something needs attention
func printUnreadFooter(list []model.Notification, w io.Writer) {
	var unread, urgent int
	for _, n := range list {
		if !n.Read {
			unread++
			if n.Priority == model.PriorityHigh {
				urgent++
			}
		}
	}
	if unread == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %d non lue(s)", color.New(color.Bold).Sprint("●"), unread)
	if urgent > 0 {
		fmt.Fprintf(w, ", dont %s", color.RedString("%d urgente(s)", urgent))
	}
	fmt.Fprintln(w)
}

// Bills outputs enriched bills as a table
func (f *TableFormatter) Bills(bills []model.EnrichedBill, w io.Writer) error {
	if len(bills) == 0 {
		fmt.Fprintln(w, "Aucune facture.")
		return nil
	}

	const (
		colMonth    = 14
		colAmount   = 12
		colDue      = 18
		colStatus   = 12
		colPriority = 8
	)

	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %-*s  %s\n",
		colMonth, "Mois",
		colAmount, "Montant",
		colDue, "Échéance",
		colStatus, "Statut",
		"Priorité")
	fmt.Fprintln(w, strings.Repeat("-", colMonth+colAmount+colDue+colStatus+colPriority+8))

	for _, b := range bills {
		month, monthWidth := truncateToWidth(format.MonthFR(b.Month), colMonth)
		due, dueWidth := truncateToWidth(b.DueDateFR, colDue)

		status := b.StatusLabel
		if b.Overdue {
			status = color.RedString(status)
		}

		fmt.Fprintf(w, "%s  %-*s  %s  %s  %s\n",
			padRight(month, monthWidth, colMonth),
			colAmount, b.AmountFmt,
			padRight(due, dueWidth, colDue),
			padRight(status, displayWidth(status), colStatus),
			colorBillPriority(b.Priority),
		)
	}

	return nil
}

// Summary outputs the dashboard aggregate
func (f *TableFormatter) Summary(summary *datacache.Summary, w io.Writer) error {
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n", bold("Tableau de bord"))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  Biens:      %d (%d loués)\n", summary.TotalProperties, summary.ActiveProperties)
	fmt.Fprintf(w, "  Locataires: %d (%d actifs)\n", summary.TotalTenants, summary.ActiveTenants)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", bold("Factures"))
	fmt.Fprintf(w, "  En attente: %d\n", summary.PendingBills)
	if summary.OverdueBills > 0 {
		fmt.Fprintf(w, "  En retard:  %s\n", color.RedString("%d", summary.OverdueBills))
	} else {
		fmt.Fprintf(w, "  En retard:  0\n")
	}
	fmt.Fprintf(w, "  Payées:     %d\n", summary.PaidBills)

	if summary.Stats != nil {
		fmt.Fprintf(w, "  Encaissé:   %s\n", format.EuroFR(summary.Stats.PaidAmount))
		fmt.Fprintf(w, "  Attendu:    %s\n", format.EuroFR(summary.Stats.PendingAmount))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", bold("Dépenses"))
	fmt.Fprintf(w, "  Total:      %s (%d lignes)\n",
		format.EuroFR(summary.TotalExpenses), len(summary.Expenses))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Mis à jour: %s\n", format.DateFR(summary.LastUpdated))
	return nil
}

func colorPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return color.RedString("HIGH")
	case model.PriorityMedium:
		return color.YellowString("MEDIUM")
	default:
		return color.WhiteString("LOW")
	}
}

func colorBillPriority(p model.BillPriority) string {
	switch p {
	case model.BillPriorityCritical:
		return color.RedString("critique")
	case model.BillPriorityHigh:
		return color.YellowString("haute")
	case model.BillPriorityMedium:
		return color.CyanString("moyenne")
	default:
		return color.WhiteString("basse")
	}
}
