package model

// Market identifies one of the parallel per-country partitions. Every
// collection (orders, products, archive) exists once per market and no
// operation ever crosses partitions.
type Market string

const (
	MarketRO Market = "RO"
	MarketMD Market = "MD"
)

// Markets lists all served partitions.
func Markets() []Market {
	return []Market{MarketRO, MarketMD}
}

// Valid reports whether the market is a served partition.
func (m Market) Valid() bool {
	return m == MarketRO || m == MarketMD
}
