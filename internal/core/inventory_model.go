package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation wraps every field-level validation failure of an inventory record.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a record clashes with an existing one.
	ErrConflict = errors.New("record conflicts with an existing record")
)

// DateLayout is the calendar date format used by every record date field.
const DateLayout = "2006-01-02"

// Entity is anything a Repository can store: a value type carrying its own id.
type Entity[T any] interface {
	EntityID() string
	WithEntityID(id string) T
}

// Record is an Entity that can clean and check its own fields.
type Record[T any] interface {
	Entity[T]
	Normalized() T
	Validate() error
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockItem is the on-hand position of one product.
// FreeToUse is the part of OnHand not reserved for open orders.
type StockItem struct {
	ID          string          `json:"id"`
	Product     string          `json:"product"`
	Barcode     string          `json:"barcodeNumber"`
	PerUnitCost decimal.Decimal `json:"perUnitCost"`
	OnHand      int             `json:"onHand"`
	FreeToUse   int             `json:"freeToUse"`
}

func (s StockItem) EntityID() string                 { return s.ID }
func (s StockItem) WithEntityID(id string) StockItem { s.ID = id; return s }

// InStock reports whether any units are on hand.
func (s StockItem) InStock() bool { return s.OnHand > 0 }

func (s StockItem) Normalized() StockItem {
	s.Product = strings.TrimSpace(s.Product)
	s.Barcode = strings.TrimSpace(s.Barcode)
	return s
}

func (s StockItem) Validate() error {
	if err := minLength("product", s.Product, 2); err != nil {
		return err
	}
	if s.PerUnitCost.IsNegative() {
		return invalid("per unit cost must be 0 or greater")
	}
	if s.OnHand < 0 {
		return invalid("on hand must be 0 or greater")
	}
	if s.FreeToUse < 0 || s.FreeToUse > s.OnHand {
		return invalid("free to use must be between 0 and on hand (%d)", s.OnHand)
	}
	return nil
}

// WithOnHand changes the on-hand quantity while keeping the reserved amount,
// never letting FreeToUse go below zero.
func (s StockItem) WithOnHand(onHand int) StockItem {
	reserved := s.OnHand - s.FreeToUse
	s.OnHand = onHand
	s.FreeToUse = max(0, onHand-reserved)
	return s
}

// ── Receipts ──────────────────────────────────────────────────────────────────

type ReceiptKind string

const (
	ReceiptSales    ReceiptKind = "sales"
	ReceiptPurchase ReceiptKind = "purchase"
)

// Receipt records a sale or a purchase. TotalAmount is always
// Quantity × PricePerItem; any caller-supplied total is replaced.
type Receipt struct {
	ID           string          `json:"id"`
	Kind         ReceiptKind     `json:"type"`
	ProductName  string          `json:"productName"`
	Barcode      string          `json:"barcodeNumber,omitempty"`
	Date         string          `json:"date"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"pricePerItem"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

func (r Receipt) EntityID() string               { return r.ID }
func (r Receipt) WithEntityID(id string) Receipt { r.ID = id; return r }

func (r Receipt) Normalized() Receipt {
	r.ProductName = strings.TrimSpace(r.ProductName)
	r.Barcode = strings.TrimSpace(r.Barcode)
	r.Date = strings.TrimSpace(r.Date)
	r.Kind = ReceiptKind(strings.ToLower(strings.TrimSpace(string(r.Kind))))
	r.TotalAmount = r.PricePerItem.Mul(decimal.NewFromInt(int64(r.Quantity)))
	return r
}

func (r Receipt) Validate() error {
	if r.Kind != ReceiptSales && r.Kind != ReceiptPurchase {
		return invalid("receipt type must be sales or purchase, got %q", r.Kind)
	}
	if err := minLength("product name", r.ProductName, 2); err != nil {
		return err
	}
	if err := validDate("date", r.Date); err != nil {
		return err
	}
	if r.Quantity < 1 {
		return invalid("quantity must be at least 1")
	}
	if r.PricePerItem.IsNegative() {
		return invalid("price per item must be 0 or greater")
	}
	return nil
}

// ── Deliveries ────────────────────────────────────────────────────────────────

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pending"
	DeliveryShipped   DeliveryStatus = "Shipped"
	DeliveryDelivered DeliveryStatus = "Delivered"
)

// Delivery is an outbound shipment. New deliveries start Pending.
type Delivery struct {
	ID          string          `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	CostPerItem decimal.Decimal `json:"costPerItem"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      DeliveryStatus  `json:"deliveryStatus"`
}

func (d Delivery) EntityID() string                { return d.ID }
func (d Delivery) WithEntityID(id string) Delivery { d.ID = id; return d }

// Open reports whether the delivery has not arrived yet.
func (d Delivery) Open() bool {
	return d.Status == DeliveryPending || d.Status == DeliveryShipped
}

func (d Delivery) Normalized() Delivery {
	d.ProductName = strings.TrimSpace(d.ProductName)
	if d.Status == "" {
		d.Status = DeliveryPending
	}
	d.TotalAmount = d.CostPerItem.Mul(decimal.NewFromInt(int64(d.Quantity)))
	return d
}

func (d Delivery) Validate() error {
	if err := minLength("product name", d.ProductName, 2); err != nil {
		return err
	}
	if d.Quantity < 1 {
		return invalid("quantity must be at least 1")
	}
	if d.CostPerItem.IsNegative() {
		return invalid("cost per item must be 0 or greater")
	}
	switch d.Status {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered:
		return nil
	default:
		return invalid("unknown delivery status %q", d.Status)
	}
}

// ── Adjustments ───────────────────────────────────────────────────────────────

type AdjustmentKind string

const (
	AdjustmentDamage    AdjustmentKind = "damage"
	AdjustmentShrinkage AdjustmentKind = "shrinkage"
	AdjustmentExpiry    AdjustmentKind = "expiry"
)

// Adjustment writes stock off for damage, shrinkage or expiry.
type Adjustment struct {
	ID          string         `json:"id"`
	Kind        AdjustmentKind `json:"type"`
	ProductName string         `json:"productName"`
	Barcode     string         `json:"barcodeNumber"`
	Date        string         `json:"date"`
	Quantity    int            `json:"quantity"`
	Reason      string         `json:"reason"`
}

func (a Adjustment) EntityID() string                  { return a.ID }
func (a Adjustment) WithEntityID(id string) Adjustment { a.ID = id; return a }

func (a Adjustment) Normalized() Adjustment {
	a.Kind = AdjustmentKind(strings.ToLower(strings.TrimSpace(string(a.Kind))))
	a.ProductName = strings.TrimSpace(a.ProductName)
	a.Barcode = strings.TrimSpace(a.Barcode)
	a.Reason = strings.TrimSpace(a.Reason)
	a.Date = strings.TrimSpace(a.Date)
	if a.Date == "" {
		a.Date = time.Now().Format(DateLayout)
	}
	return a
}

func (a Adjustment) Validate() error {
	switch a.Kind {
	case AdjustmentDamage, AdjustmentShrinkage, AdjustmentExpiry:
	default:
		return invalid("adjustment type must be damage, shrinkage or expiry, got %q", a.Kind)
	}
	if err := minLength("product name", a.ProductName, 2); err != nil {
		return err
	}
	if err := minLength("barcode number", a.Barcode, 2); err != nil {
		return err
	}
	if err := validDate("date", a.Date); err != nil {
		return err
	}
	if a.Quantity < 1 {
		return invalid("quantity must be at least 1")
	}
	return minLength("reason", a.Reason, 2)
}

// Matches reports whether term appears in the product name, barcode or reason,
// ignoring case. An empty term matches everything.
func (a Adjustment) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.ProductName), term) ||
		strings.Contains(strings.ToLower(a.Barcode), term) ||
		strings.Contains(strings.ToLower(a.Reason), term)
}

// ── Transfers ─────────────────────────────────────────────────────────────────

type TransferStatus string

const (
	TransferPending   TransferStatus = "Pending"
	TransferCompleted TransferStatus = "Completed"
)

// Transfer moves stock between two warehouses. New transfers start Pending.
type Transfer struct {
	ID            string         `json:"id"`
	ProductName   string         `json:"productName"`
	FromWarehouse string         `json:"fromWarehouse"`
	ToWarehouse   string         `json:"toWarehouse"`
	Quantity      int            `json:"quantity"`
	ScheduledDate string         `json:"scheduledDate"`
	Status        TransferStatus `json:"status"`
}

func (t Transfer) EntityID() string                { return t.ID }
func (t Transfer) WithEntityID(id string) Transfer { t.ID = id; return t }

func (t Transfer) Normalized() Transfer {
	t.ProductName = strings.TrimSpace(t.ProductName)
	t.FromWarehouse = strings.TrimSpace(t.FromWarehouse)
	t.ToWarehouse = strings.TrimSpace(t.ToWarehouse)
	t.ScheduledDate = strings.TrimSpace(t.ScheduledDate)
	if t.Status == "" {
		t.Status = TransferPending
	}
	return t
}

func (t Transfer) Validate() error {
	if err := minLength("product name", t.ProductName, 2); err != nil {
		return err
	}
	if err := minLength("from warehouse", t.FromWarehouse, 2); err != nil {
		return err
	}
	if err := minLength("to warehouse", t.ToWarehouse, 2); err != nil {
		return err
	}
	if strings.EqualFold(t.FromWarehouse, t.ToWarehouse) {
		return invalid("from and to warehouse must differ")
	}
	if t.Quantity < 1 {
		return invalid("quantity must be at least 1")
	}
	if err := validDate("scheduled date", t.ScheduledDate); err != nil {
		return err
	}
	if t.Status != TransferPending && t.Status != TransferCompleted {
		return invalid("unknown transfer status %q", t.Status)
	}
	return nil
}

// ── Move history ──────────────────────────────────────────────────────────────

type MoveStatus string

const (
	MovePending   MoveStatus = "Pending"
	MoveInTransit MoveStatus = "In Transit"
	MoveCompleted MoveStatus = "Completed"

	// MoveAll is a filter value only; it never appears on a record.
	MoveAll MoveStatus = "All"
)

// MoveRecord is one line of the stock movement history.
type MoveRecord struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Date      string     `json:"date"`
	Contact   string     `json:"contact"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Quantity  int        `json:"quantity"`
	Status    MoveStatus `json:"status"`
}

func (m MoveRecord) EntityID() string                  { return m.ID }
func (m MoveRecord) WithEntityID(id string) MoveRecord { m.ID = id; return m }

func (m MoveRecord) Normalized() MoveRecord {
	m.Reference = strings.TrimSpace(m.Reference)
	m.Date = strings.TrimSpace(m.Date)
	m.Contact = strings.TrimSpace(m.Contact)
	m.From = strings.TrimSpace(m.From)
	m.To = strings.TrimSpace(m.To)
	return m
}

func (m MoveRecord) Validate() error {
	if err := minLength("reference", m.Reference, 2); err != nil {
		return err
	}
	if err := validDate("date", m.Date); err != nil {
		return err
	}
	if err := minLength("contact", m.Contact, 2); err != nil {
		return err
	}
	if err := minLength("from location", m.From, 2); err != nil {
		return err
	}
	if err := minLength("to location", m.To, 2); err != nil {
		return err
	}
	if m.Quantity < 1 {
		return invalid("quantity must be at least 1")
	}
	switch m.Status {
	case MovePending, MoveInTransit, MoveCompleted:
		return nil
	default:
		return invalid("unknown move status %q", m.Status)
	}
}

// ── Warehouses ────────────────────────────────────────────────────────────────

// Warehouse is a physical storage location. Number is unique.
type Warehouse struct {
	ID       string `json:"id"`
	Number   string `json:"warehouseNumber"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (w Warehouse) EntityID() string                 { return w.ID }
func (w Warehouse) WithEntityID(id string) Warehouse { w.ID = id; return w }

func (w Warehouse) Normalized() Warehouse {
	w.Number = strings.ToUpper(strings.TrimSpace(w.Number))
	w.Name = strings.TrimSpace(w.Name)
	w.Location = strings.TrimSpace(w.Location)
	return w
}

func (w Warehouse) Validate() error {
	if err := minLength("warehouse number", w.Number, 2); err != nil {
		return err
	}
	if err := minLength("name", w.Name, 2); err != nil {
		return err
	}
	return minLength("location", w.Location, 2)
}

// ── Filters ───────────────────────────────────────────────────────────────────

// StockFilter selects stock items by availability: "in-stock", "out-of-stock"
// or "" for all.
func StockFilter(availability string) (func(StockItem) bool, error) {
	switch availability {
	case "", "all":
		return nil, nil
	case "in-stock":
		return StockItem.InStock, nil
	case "out-of-stock":
		return func(s StockItem) bool { return !s.InStock() }, nil
	default:
		return nil, invalid("unknown stock filter %q", availability)
	}
}

// ReceiptFilter selects receipts of one kind; "" selects all.
func ReceiptFilter(kind string) (func(Receipt) bool, error) {
	switch k := ReceiptKind(strings.ToLower(kind)); k {
	case "":
		return nil, nil
	case ReceiptSales, ReceiptPurchase:
		return func(r Receipt) bool { return r.Kind == k }, nil
	default:
		return nil, invalid("unknown receipt type %q", kind)
	}
}

// DeliveryFilter selects "pending" (Pending or Shipped) or "delivered"
// deliveries; "" selects all.
func DeliveryFilter(state string) (func(Delivery) bool, error) {
	switch strings.ToLower(state) {
	case "":
		return nil, nil
	case "pending":
		return Delivery.Open, nil
	case "delivered":
		return func(d Delivery) bool { return !d.Open() }, nil
	default:
		return nil, invalid("unknown delivery filter %q", state)
	}
}

// AdjustmentFilter selects adjustments of one kind ("" for any) whose
// product name, barcode or reason contains search.
func AdjustmentFilter(kind, search string) (func(Adjustment) bool, error) {
	k := AdjustmentKind(strings.ToLower(kind))
	switch k {
	case "", AdjustmentDamage, AdjustmentShrinkage, AdjustmentExpiry:
	default:
		return nil, invalid("unknown adjustment type %q", kind)
	}
	if k == "" && strings.TrimSpace(search) == "" {
		return nil, nil
	}
	return func(a Adjustment) bool {
		return (k == "" || a.Kind == k) && a.Matches(search)
	}, nil
}

// TransferFilter selects transfers with the given status; "" selects all.
func TransferFilter(status string) (func(Transfer) bool, error) {
	switch s := TransferStatus(status); s {
	case "":
		return nil, nil
	case TransferPending, TransferCompleted:
		return func(t Transfer) bool { return t.Status == s }, nil
	default:
		return nil, invalid("unknown transfer status %q", status)
	}
}

// MoveFilter selects moves with the given status; "" and "All" select all.
func MoveFilter(status string) (func(MoveRecord) bool, error) {
	switch s := MoveStatus(status); s {
	case "", MoveAll:
		return nil, nil
	case MovePending, MoveInTransit, MoveCompleted:
		return func(m MoveRecord) bool { return m.Status == s }, nil
	default:
		return nil, invalid("unknown move status %q", status)
	}
}

// ── Validation helpers ────────────────────────────────────────────────────────

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func minLength(field, value string, n int) error {
	if len([]rune(value)) < n {
		return invalid("%s must be at least %d characters", field, n)
	}
	return nil
}

func validDate(field, value string) error {
	if value == "" {
		return invalid("%s is required", field)
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return invalid("%s must be a YYYY-MM-DD date, got %q", field, value)
	}
	return nil
}
