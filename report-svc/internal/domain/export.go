package domain

import (
	"fmt"
	"strings"
)

// Export renders the report as the plain-text document admins download.
// The layout is consumed by existing tooling and must not drift.
func (r DailyReport) Export() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily Report - %s\n", r.Date.Format("Mon Jan 02 2006"))
	b.WriteString("=====================================\n\n")

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "- Total Revenue: ₹%.2f\n", r.TotalRevenue)
	fmt.Fprintf(&b, "- Total Orders: %d\n", r.TotalOrders)
	fmt.Fprintf(&b, "- Average Order Value: ₹%.2f\n\n", r.AverageOrderValue)

	b.WriteString("Category Breakdown:\n")
	categories := make([]string, len(r.RevenueByCategory))
	for i, c := range r.RevenueByCategory {
		categories[i] = fmt.Sprintf("- %s: ₹%.2f", c.Name, c.Value)
	}
	b.WriteString(strings.Join(categories, "\n"))
	b.WriteString("\n\n")

	b.WriteString("Most Ordered Items:\n")
	b.WriteString(rankedLines(r.MostOrderedItems))
	b.WriteString("\n\n")

	b.WriteString("Least Ordered Items:\n")
	b.WriteString(rankedLines(r.LeastOrderedItems))
	b.WriteString("\n\n")

	b.WriteString("Veg vs Non-Veg Split:\n")
	fmt.Fprintf(&b, "- Vegetarian: %d items\n", r.splitValue(labelVegetarian))
	fmt.Fprintf(&b, "- Non-Vegetarian: %d items", r.splitValue(labelNonVegetarian))

	return b.String()
}

// ExportFilename is the download name for the report of the given day.
func (r DailyReport) ExportFilename() string {
	return "daily-report-" + r.Date.Format("2006-01-02") + ".txt"
}

func (r DailyReport) splitValue(name string) int {
	for _, s := range r.VegNonVegSplit {
		if s.Name == name {
			return s.Value
		}
	}
	return 0
}

func rankedLines(items []ItemCount) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s: %d orders", i+1, item.Name, item.Count)
	}
	return strings.Join(lines, "\n")
}
