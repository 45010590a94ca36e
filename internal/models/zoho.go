package models

// ZohoContact is an entry of GET /contacts.
type ZohoContact struct {
	ContactID   FlexString `json:"contact_id"`
	ContactName string     `json:"contact_name"`
	CompanyName string     `json:"company_name"`
	Name        string     `json:"name"`
}

// DisplayName is the name used for fuzzy matching.
func (c ZohoContact) DisplayName() string {
	if c.ContactName != "" {
		return c.ContactName
	}
	return c.Name
}

type ZohoContactsResponse struct {
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Contacts []ZohoContact `json:"contacts"`
}

// ZohoItem is an entry of GET /items.
type ZohoItem struct {
	ItemID FlexString `json:"item_id"`
	Name   string     `json:"name"`
	SKU    string     `json:"sku"`
}

type ZohoPageContext struct {
	Page        int  `json:"page"`
	PerPage     int  `json:"per_page"`
	HasMorePage bool `json:"has_more_page"`
}

type ZohoItemsResponse struct {
	Code        int             `json:"code"`
	Message     string          `json:"message"`
	Items       []ZohoItem      `json:"items"`
	PageContext ZohoPageContext `json:"page_context"`
}

type ZohoPurchaseOrderResponse struct {
	Code          int    `json:"code"`
	Message       string `json:"message"`
	PurchaseOrder *struct {
		PurchaseOrderID FlexString `json:"purchaseorder_id"`
	} `json:"purchaseorder"`
}

type ZohoBundleResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Bundle  *struct {
		BundleID FlexString `json:"bundle_id"`
	} `json:"bundle"`
}
