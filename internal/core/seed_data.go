package core

import "github.com/shopspring/decimal"

// InventorySeed is the set of sample records shown on a fresh dashboard.
type InventorySeed struct {
	Stock       []StockItem
	Receipts    []Receipt
	Deliveries  []Delivery
	Adjustments []Adjustment
	Transfers   []Transfer
	Moves       []MoveRecord
	Warehouses  []Warehouse
}

// SeedInventory returns the sample records. Totals are left for Normalized to derive.
func SeedInventory() InventorySeed {
	usd := decimal.NewFromInt
	return InventorySeed{
		Stock: []StockItem{
			{Product: "Laptop Pro", Barcode: "8901234567890", PerUnitCost: usd(1200), OnHand: 50, FreeToUse: 45},
			{Product: "Wireless Mouse", Barcode: "8901234567906", PerUnitCost: usd(25), OnHand: 0, FreeToUse: 0},
			{Product: "Mechanical Keyboard", Barcode: "8901234567913", PerUnitCost: usd(150), OnHand: 75, FreeToUse: 60},
			{Product: "4K Monitor", Barcode: "8901234567920", PerUnitCost: usd(450), OnHand: 30, FreeToUse: 25},
			{Product: "Webcam HD", Barcode: "8901234567937", PerUnitCost: usd(80), OnHand: 0, FreeToUse: 0},
		},
		Receipts: []Receipt{
			{Kind: ReceiptSales, ProductName: "Laptop Pro", Date: "2024-05-15", Quantity: 2, PricePerItem: usd(1200)},
			{Kind: ReceiptSales, ProductName: "Wireless Mouse", Date: "2024-05-16", Quantity: 5, PricePerItem: usd(25)},
			{Kind: ReceiptPurchase, ProductName: "4K Monitor", Barcode: "8901234567920", Date: "2024-05-10", Quantity: 10, PricePerItem: usd(400)},
			{Kind: ReceiptPurchase, ProductName: "Mechanical Keyboard", Barcode: "8901234567913", Date: "2024-05-11", Quantity: 15, PricePerItem: usd(130)},
		},
		Deliveries: []Delivery{
			{ProductName: "Laptop Pro", Quantity: 1, CostPerItem: usd(1200), Status: DeliveryShipped},
			{ProductName: "Wireless Mouse", Quantity: 2, CostPerItem: usd(25), Status: DeliveryDelivered},
			{ProductName: "4K Monitor", Quantity: 1, CostPerItem: usd(450), Status: DeliveryPending},
			{ProductName: "Mechanical Keyboard", Quantity: 1, CostPerItem: usd(150), Status: DeliveryDelivered},
		},
		Adjustments: []Adjustment{
			{Kind: AdjustmentDamage, ProductName: "Laptop Pro", Barcode: "8901234567890", Date: "2024-06-01", Quantity: 1, Reason: "Dropped during handling"},
			{Kind: AdjustmentDamage, ProductName: "4K Monitor", Barcode: "8901234567920", Date: "2024-06-02", Quantity: 2, Reason: "Screen cracked in storage"},
			{Kind: AdjustmentShrinkage, ProductName: "Wireless Mouse", Barcode: "8901234567906", Date: "2024-06-01", Quantity: 5, Reason: "Inventory count discrepancy"},
			{Kind: AdjustmentShrinkage, ProductName: "Laptop Pro", Barcode: "8901234567890", Date: "2024-06-03", Quantity: 1, Reason: "Theft"},
			{Kind: AdjustmentExpiry, ProductName: "Organic Tea Leaves", Barcode: "9988776655441", Date: "2024-05-31", Quantity: 10, Reason: "Expired on shelf"},
		},
		Transfers: []Transfer{
			{ProductName: "Laptop Pro", FromWarehouse: "Main Warehouse", ToWarehouse: "West Coast Hub", Quantity: 10, ScheduledDate: "2024-06-15", Status: TransferPending},
			{ProductName: "4K Monitor", FromWarehouse: "Secondary Warehouse", ToWarehouse: "Main Warehouse", Quantity: 5, ScheduledDate: "2024-06-10", Status: TransferCompleted},
			{ProductName: "Wireless Mouse", FromWarehouse: "Main Warehouse", ToWarehouse: "Secondary Warehouse", Quantity: 50, ScheduledDate: "2024-06-20", Status: TransferPending},
			{ProductName: "Mechanical Keyboard", FromWarehouse: "West Coast Hub", ToWarehouse: "Main Warehouse", Quantity: 20, ScheduledDate: "2024-06-05", Status: TransferCompleted},
		},
		Moves: []MoveRecord{
			{Reference: "WH-IN-2024-00125", Date: "2024-05-20", Contact: "Tech Supplies Inc.", From: "Vendor", To: "Main Warehouse", Quantity: 50, Status: MoveCompleted},
			{Reference: "WH-OUT-2024-00321", Date: "2024-05-22", Contact: "Retail Store A", From: "Main Warehouse", To: "Store A", Quantity: 10, Status: MoveInTransit},
			{Reference: "WH-ADJ-2024-00045", Date: "2024-05-23", Contact: "Internal", From: "Main Warehouse", To: "Damaged Goods", Quantity: 2, Status: MoveCompleted},
			{Reference: "WH-OUT-2024-00322", Date: "2024-05-24", Contact: "Retail Store B", From: "Main Warehouse", To: "Store B", Quantity: 5, Status: MovePending},
		},
		Warehouses: []Warehouse{
			{Number: "WH-001", Name: "Main Warehouse", Location: "New York, USA"},
			{Number: "WH-002", Name: "Secondary Warehouse", Location: "London, UK"},
			{Number: "WH-003", Name: "West Coast Hub", Location: "California, USA"},
		},
	}
}
