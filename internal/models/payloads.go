package models

// PurchaseOrderPayload is the body of POST /purchaseorders for bills.
type PurchaseOrderPayload struct {
	VendorID            string                  `json:"vendor_id,omitempty"`
	ReferenceNumber     string                  `json:"reference_number,omitempty"`
	PurchaseOrderNumber string                  `json:"purchaseorder_number,omitempty"`
	Date                string                  `json:"date,omitempty"`
	CurrencyCode        string                  `json:"currency_code,omitempty"`
	LineItems           []PurchaseOrderLineItem `json:"line_items"`
}

type PurchaseOrderLineItem struct {
	ItemID      string   `json:"item_id,omitempty"`
	Name        string   `json:"name,omitempty"`
	Quantity    *Decimal `json:"quantity,omitempty"`
	UnitPrice   *Decimal `json:"unit_price,omitempty"`
	Discount    *Decimal `json:"discount,omitempty"`
	TaxName     string   `json:"tax_name,omitempty"`
	Description string   `json:"description,omitempty"`
}

// BuyOrderPayload is the body of POST /purchaseorders for buy orders.
type BuyOrderPayload struct {
	Date            string             `json:"date,omitempty"`
	ReferenceNumber string             `json:"reference_number,omitempty"`
	VendorID        string             `json:"vendor_id,omitempty"`
	LineItems       []BuyOrderLineItem `json:"line_items"`
}

type BuyOrderLineItem struct {
	Quantity *Decimal `json:"quantity,omitempty"`
	ItemID   string   `json:"item_id,omitempty"`
}

// BundlePayload is the body of POST /bundles.
type BundlePayload struct {
	Date              string           `json:"date,omitempty"`
	CompositeItemID   string           `json:"composite_item_id,omitempty"`
	CompositeItemName string           `json:"composite_item_name,omitempty"`
	QuantityToBundle  *Decimal         `json:"quantity_to_bundle,omitempty"`
	IsCompleted       bool             `json:"is_completed"`
	ReferenceNumber   string           `json:"reference_number,omitempty"`
	LineItems         []BundleLineItem `json:"line_items"`
}

type BundleLineItem struct {
	ItemID           string   `json:"item_id,omitempty"`
	Name             string   `json:"name,omitempty"`
	QuantityConsumed *Decimal `json:"quantity_consumed,omitempty"`
	WarehouseID      string   `json:"warehouse_id,omitempty"`
	AccountID        string   `json:"account_id,omitempty"`
}
