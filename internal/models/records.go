package models

// BillRecord is a record of the "Bills" stream.
type BillRecord struct {
	ID         FlexString          `json:"id"`
	BillNum    FlexString          `json:"billNum"`
	VendorID   FlexString          `json:"vendorId"`
	VendorName string              `json:"vendorName"`
	VendorNum  FlexString          `json:"vendorNum"`
	CreatedAt  Date                `json:"createdAt"`
	Currency   string              `json:"currency"`
	LineItems  LineItems[BillLine] `json:"lineItems"`
}

type BillLine struct {
	ProductID      FlexString `json:"productId"`
	ProductName    string     `json:"productName"`
	Quantity       *Decimal   `json:"quantity"`
	UnitPrice      *Decimal   `json:"unitPrice"`
	DiscountAmount *Decimal   `json:"discountAmount"`
	TaxCode        string     `json:"taxCode"`
	Description    string     `json:"description"`
}

// BuyOrderRecord is a record of the "BuyOrders" stream.
type BuyOrderRecord struct {
	ID              FlexString              `json:"id"`
	TransactionDate Date                    `json:"transaction_date"`
	SupplierName    string                  `json:"supplier_name"`
	LineItems       LineItems[BuyOrderLine] `json:"line_items"`
}

type BuyOrderLine struct {
	Quantity        *Decimal   `json:"quantity"`
	ProductRemoteID FlexString `json:"product_remoteId"`
}

// AssemblyOrderRecord is a record of the "AssemblyOrders" stream.
type AssemblyOrderRecord struct {
	ID              FlexString              `json:"id"`
	TransactionDate Date                    `json:"transaction_date"`
	ProductRemoteID FlexString              `json:"product_remoteId"`
	ProductName     string                  `json:"product_name"`
	Quantity        *Decimal                `json:"quantity"`
	IsCompleted     bool                    `json:"is_completed"`
	LineItems       LineItems[AssemblyLine] `json:"line_items"`
}

type AssemblyLine struct {
	PartProductRemoteID FlexString `json:"part_product_remoteId"`
	PartProductName     string     `json:"part_product_name"`
	PartQuantity        *Decimal   `json:"part_quantity"`
	AccountID           FlexString `json:"account_id"`
}
