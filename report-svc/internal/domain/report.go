package domain

import (
	"math"
	"sort"
	"time"
)

const (
	rankedItems        = 5
	uncategorized      = "Uncategorized"
	labelVegetarian    = "Vegetarian"
	labelNonVegetarian = "Non-Vegetarian"
)

type OrderItem struct {
	MenuItemID int
	Name       string
	Quantity   int
	Price      float64
}

// StatusCompleted is the only order status a report counts.
const StatusCompleted = "Completed"

type Order struct {
	ID          int
	Status      string
	TotalAmount float64
	Items       []OrderItem
	CreatedAt   time.Time
}

type MenuItemRef struct {
	ID           int
	Name         string
	CategoryID   int
	IsVegetarian bool
}

type CatalogEntry struct {
	Name         string
	CategoryName string
	IsVegetarian bool
}

// Catalog is the read-only lookup table a report resolves order items
// against. It reflects the catalog at generation time, so an item whose
// category changed since the order is attributed to its current category.
type Catalog map[int]CatalogEntry

func NewCatalog(items []MenuItemRef, categories map[int]string) Catalog {
	catalog := make(Catalog, len(items))
	for _, item := range items {
		name, ok := categories[item.CategoryID]
		if !ok {
			name = uncategorized
		}
		catalog[item.ID] = CatalogEntry{Name: item.Name, CategoryName: name, IsVegetarian: item.IsVegetarian}
	}
	return catalog
}

type CategoryRevenue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type SplitCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DailyReport struct {
	Date              time.Time         `json:"date"`
	TotalRevenue      float64           `json:"total_revenue"`
	TotalOrders       int               `json:"total_orders"`
	AverageOrderValue float64           `json:"average_order_value"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
	VegNonVegSplit    []SplitCount      `json:"veg_non_veg_split"`
	MostOrderedItems  []ItemCount       `json:"most_ordered_items"`
	LeastOrderedItems []ItemCount       `json:"least_ordered_items"`
}

// DayWindow returns the half-open window [start, end) covering the calendar
// day containing t, in t's location. end is the following local midnight.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// Aggregate summarises the completed orders of one day. Orders in any other
// status are ignored. Every completed order counts toward the totals, but
// items missing from the catalog are left out of the category breakdown, the
// veg split and the item rankings.
func Aggregate(day time.Time, orders []Order, catalog Catalog) DailyReport {
	start, _ := DayWindow(day)
	report := DailyReport{
		Date:              start,
		RevenueByCategory: []CategoryRevenue{},
		MostOrderedItems:  []ItemCount{},
		LeastOrderedItems: []ItemCount{},
	}

	byCategory := map[string]float64{}
	itemCounts := map[string]int{}
	veg, nonVeg := 0, 0

	for _, order := range orders {
		if order.Status != StatusCompleted {
			continue
		}
		report.TotalRevenue += order.TotalAmount
		report.TotalOrders++

		for _, item := range order.Items {
			entry, ok := catalog[item.MenuItemID]
			if !ok {
				continue
			}
			byCategory[entry.CategoryName] += item.Price * float64(item.Quantity)
			itemCounts[item.Name] += item.Quantity
			if entry.IsVegetarian {
				veg += item.Quantity
			} else {
				nonVeg += item.Quantity
			}
		}
	}

	if report.TotalOrders > 0 {
		report.AverageOrderValue = round2(report.TotalRevenue / float64(report.TotalOrders))
	}
	report.TotalRevenue = round2(report.TotalRevenue)

	for name, value := range byCategory {
		report.RevenueByCategory = append(report.RevenueByCategory, CategoryRevenue{Name: name, Value: round2(value)})
	}
	sort.Slice(report.RevenueByCategory, func(i, j int) bool {
		a, b := report.RevenueByCategory[i], report.RevenueByCategory[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Name < b.Name
	})

	report.VegNonVegSplit = []SplitCount{
		{Name: labelVegetarian, Value: veg},
		{Name: labelNonVegetarian, Value: nonVeg},
	}

	ranked := make([]ItemCount, 0, len(itemCounts))
	for name, count := range itemCounts {
		ranked = append(ranked, ItemCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	report.MostOrderedItems = append(report.MostOrderedItems, ranked[:min(rankedItems, len(ranked))]...)
	for i := len(ranked) - 1; i >= 0 && len(report.LeastOrderedItems) < rankedItems; i-- {
		report.LeastOrderedItems = append(report.LeastOrderedItems, ranked[i])
	}

	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
