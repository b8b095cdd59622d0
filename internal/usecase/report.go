package usecase

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ordesk/backoffice/internal/domain/model"
)

// Line items whose product id marks them as packaging or warranty add-ons
// never count as cross-sells. Fixed exclusion list carried over from the
// sales team's historical reports.
var crossSellExcluded = []string{"cutie", "garantie"}

const reportDayFormat = "02/01/2006"

type reportKey struct {
	date     string
	operator string
}

type reportAccumulator struct {
	orders         int
	delivered      int
	upsellTotal    decimal.Decimal
	upsellCount    int
	crossSellTotal decimal.Decimal
	crossSellCount int
	extraSellCount int
}

// FoldSentOrders aggregates archive records into per-(day, operator) sales
// statistics. It is a pure fold; averages and percentages are truncated, not
// rounded, so regenerated reports reproduce historical values.
func FoldSentOrders(records []model.SentOrder) []model.OperatorDayStats {
	acc := make(map[reportKey]*reportAccumulator)

	for _, record := range records {
		operator := "Unassigned"
		if record.ResolvedBy != nil && *record.ResolvedBy != "" {
			operator = *record.ResolvedBy
		}
		key := reportKey{date: record.UpdatedAt.Format(reportDayFormat), operator: operator}

		current, ok := acc[key]
		if !ok {
			current = &reportAccumulator{
				upsellTotal:    decimal.Zero,
				crossSellTotal: decimal.Zero,
			}
			acc[key] = current
		}

		current.orders++
		if record.AWBStatus == model.AWBStatusDelivered {
			current.delivered++
		}

		orderUpsell := decimal.Zero
		for _, item := range record.Products {
			orderUpsell = orderUpsell.Add(item.Upsell)
		}
		current.upsellTotal = current.upsellTotal.Add(orderUpsell)
		if orderUpsell.IsPositive() {
			current.upsellCount++
		}

		crossSells := 0
		for i, item := range record.Products {
			if i == 0 || crossSellExcludedProduct(item.ProductID) {
				continue
			}
			current.crossSellTotal = current.crossSellTotal.Add(item.Price)
			crossSells++
		}
		if crossSells > 0 {
			current.crossSellCount++
		}

		if orderUpsell.IsPositive() || crossSells > 0 {
			current.extraSellCount++
		}
	}

	stats := make([]model.OperatorDayStats, 0, len(acc))
	for key, current := range acc {
		n := decimal.NewFromInt(int64(current.orders))
		stats = append(stats, model.OperatorDayStats{
			Date:              key.date,
			Operator:          key.operator,
			OrdersInArchive:   current.orders,
			DeliveredOrders:   current.delivered,
			UpsellTotal:       current.upsellTotal,
			UpsellCount:       current.upsellCount,
			UpsellAvg:         truncatedDiv(current.upsellTotal, n),
			UpsellProcent:     truncatedPercent(current.upsellCount, n),
			CrossSellTotal:    current.crossSellTotal,
			CrossSellCount:    current.crossSellCount,
			CrossSellAvg:      truncatedDiv(current.crossSellTotal, n),
			CrossSellProcent:  truncatedPercent(current.crossSellCount, n),
			ExtraSellCount:    current.extraSellCount,
			ExtraSellProcents: truncatedPercent(current.extraSellCount, n),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Date != stats[j].Date {
			return stats[i].Date < stats[j].Date
		}
		return stats[i].Operator < stats[j].Operator
	})
	return stats
}

func crossSellExcludedProduct(productID string) bool {
	for _, marker := range crossSellExcluded {
		if strings.Contains(productID, marker) {
			return true
		}
	}
	return false
}

// truncatedDiv divides total by n and truncates toward zero.
func truncatedDiv(total, n decimal.Decimal) int64 {
	if n.IsZero() {
		return 0
	}
	return total.Div(n).Truncate(0).IntPart()
}

// truncatedPercent computes count/n*100 truncated toward zero.
func truncatedPercent(count int, n decimal.Decimal) int64 {
	if n.IsZero() {
		return 0
	}
	return decimal.NewFromInt(int64(count) * 100).Div(n).Truncate(0).IntPart()
}
