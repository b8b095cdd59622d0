package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordesk/backoffice/internal/domain/model"
)

func sentRecord(operator string, day time.Time, status model.AWBStatus, items ...model.LineItem) model.SentOrder {
	resolved := operator
	return model.SentOrder{
		Order: model.Order{
			Status:     model.OrderStatusConfirmed,
			ResolvedBy: &resolved,
			Products:   items,
			UpdatedAt:  day,
		},
		AWBStatus: status,
	}
}

func item(productID string, price, upsell int64) model.LineItem {
	return model.LineItem{
		ProductID: productID,
		Price:     decimal.NewFromInt(price),
		Upsell:    decimal.NewFromInt(upsell),
	}
}

func TestFoldSentOrdersGroupsByDayAndOperator(t *testing.T) {
	day1 := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	records := []model.SentOrder{
		sentRecord("Ana", day1, model.AWBStatusDelivered, item("lamp", 100, 0)),
		sentRecord("Ana", day1.Add(4*time.Hour), model.AWBStatusInProgress, item("lamp", 100, 0)),
		sentRecord("Bogdan", day1, model.AWBStatusDelivered, item("lamp", 100, 0)),
		sentRecord("Ana", day2, model.AWBStatusDelivered, item("lamp", 100, 0)),
	}

	stats := FoldSentOrders(records)
	if len(stats) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(stats))
	}
	if stats[0].Date != "02/03/2025" || stats[0].Operator != "Ana" {
		t.Fatalf("expected first group 02/03/2025/Ana, got %s/%s", stats[0].Date, stats[0].Operator)
	}
	if stats[0].OrdersInArchive != 2 || stats[0].DeliveredOrders != 1 {
		t.Fatalf("expected 2 orders 1 delivered for Ana day one, got %d/%d", stats[0].OrdersInArchive, stats[0].DeliveredOrders)
	}
	if stats[1].Operator != "Bogdan" || stats[2].Date != "03/03/2025" {
		t.Fatal("groups must sort by date then operator")
	}
}

func TestFoldSentOrdersUnassignedOperator(t *testing.T) {
	day := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	record := sentRecord("", day, model.AWBStatusUnknown, item("lamp", 100, 0))
	record.ResolvedBy = nil

	stats := FoldSentOrders([]model.SentOrder{record})
	if len(stats) != 1 || stats[0].Operator != "Unassigned" {
		t.Fatalf("expected Unassigned group, got %+v", stats)
	}
}

func TestFoldSentOrdersUpsell(t *testing.T) {
	day := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	records := []model.SentOrder{
		sentRecord("Ana", day, model.AWBStatusDelivered, item("lamp", 100, 30), item("vase-garantie", 20, 20)),
		sentRecord("Ana", day, model.AWBStatusDelivered, item("lamp", 100, 0)),
		sentRecord("Ana", day, model.AWBStatusDelivered, item("lamp", 100, 0)),
	}

	stats := FoldSentOrders(records)
	if len(stats) != 1 {
		t.Fatalf("expected one group, got %d", len(stats))
	}
	got := stats[0]
	if !got.UpsellTotal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected upsell total 50, got %s", got.UpsellTotal)
	}
	if got.UpsellCount != 1 {
		t.Fatalf("expected one order with upsell, got %d", got.UpsellCount)
	}
	// 50/3 and 100/3 truncate, never round
	if got.UpsellAvg != 16 {
		t.Fatalf("expected truncated upsell avg 16, got %d", got.UpsellAvg)
	}
	if got.UpsellProcent != 33 {
		t.Fatalf("expected truncated upsell percent 33, got %d", got.UpsellProcent)
	}
}

func TestFoldSentOrdersCrossSell(t *testing.T) {
	day := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	records := []model.SentOrder{
		// first item never counts; packaging and warranty add-ons excluded
		sentRecord("Ana", day, model.AWBStatusDelivered,
			item("lamp", 100, 0),
			item("cutie-cadou", 15, 0),
			item("garantie-2ani", 25, 0),
			item("vase", 40, 0),
			item("mug", 10, 0),
		),
		sentRecord("Ana", day, model.AWBStatusDelivered, item("lamp", 100, 0)),
	}

	stats := FoldSentOrders(records)
	got := stats[0]
	if !got.CrossSellTotal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected cross-sell total 50, got %s", got.CrossSellTotal)
	}
	if got.CrossSellCount != 1 {
		t.Fatalf("expected one order with cross-sells, got %d", got.CrossSellCount)
	}
	if got.CrossSellProcent != 50 {
		t.Fatalf("expected cross-sell percent 50, got %d", got.CrossSellProcent)
	}
	if got.ExtraSellCount != 1 || got.ExtraSellProcents != 50 {
		t.Fatalf("expected extra-sell 1/50%%, got %d/%d", got.ExtraSellCount, got.ExtraSellProcents)
	}
}

func TestFoldSentOrdersEmpty(t *testing.T) {
	if stats := FoldSentOrders(nil); len(stats) != 0 {
		t.Fatalf("expected no groups, got %+v", stats)
	}
}
