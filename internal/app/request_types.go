package app

import "stockmaster/internal/core"

// WarehouseSummaryRequest is the input for summarizing one warehouse.
type WarehouseSummaryRequest struct {
	WarehouseName string            `json:"warehouseName"`
	Entries       []core.DailyEntry `json:"entries"`
}

func (r WarehouseSummaryRequest) series() core.WarehouseSeries {
	return core.WarehouseSeries{WarehouseName: r.WarehouseName, Entries: r.Entries}
}
