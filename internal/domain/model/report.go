package model

import "github.com/shopspring/decimal"

// OperatorDayStats aggregates archived sales per operator per calendar day.
// Averages and percentages are truncated, never rounded, so regenerated
// reports match historical ones exactly.
type OperatorDayStats struct {
	Date             string          `json:"date"`
	Operator         string          `json:"operator"`
	OrdersInArchive  int             `json:"ordersInArchive"`
	DeliveredOrders  int             `json:"deliveredOrders"`
	UpsellTotal      decimal.Decimal `json:"upsellTotal"`
	UpsellCount      int             `json:"upsellCount"`
	UpsellAvg        int64           `json:"upsellAvg"`
	UpsellProcent    int64           `json:"upsellProcent"`
	CrossSellTotal   decimal.Decimal `json:"crossSellTotal"`
	CrossSellCount   int             `json:"crossSellCount"`
	CrossSellAvg     int64           `json:"crossSellAvg"`
	CrossSellProcent int64           `json:"crossSellProcent"`
	ExtraSellCount   int             `json:"extraSellCount"`
	ExtraSellProcents int64          `json:"extraSellProcents"`
}
