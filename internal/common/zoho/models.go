package zoho

const SERVICE_NAME string = "zoho-inventory"

const (
	PathPurchaseOrders = "/purchaseorders"
	PathBundles        = "/bundles"
)
