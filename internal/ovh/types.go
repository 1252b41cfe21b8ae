package ovh

// DatacenterInfo is one datacenter's availability for a plan.
type DatacenterInfo struct {
	Datacenter   string `json:"datacenter"`
	Availability string `json:"availability"`
}

// PlanAvailability is one element of the availabilities response.
type PlanAvailability struct {
	PlanCode    string           `json:"planCode"`
	Datacenters []DatacenterInfo `json:"datacenters"`
}

// Cart is the response to cart creation.
type Cart struct {
	CartID string `json:"cartId"`
}

// CartItem is the response to adding an item to a cart.
type CartItem struct {
	ItemID int64 `json:"itemId"`
}

// RequiredConfiguration is one declared mandatory configuration field of
// a cart item.
type RequiredConfiguration struct {
	Label         string   `json:"label"`
	Type          string   `json:"type"`
	Required      bool     `json:"required"`
	AllowedValues []string `json:"allowedValues"`
}

// itemPayload carries the fixed commercial terms used for every cart
// item: default pricing, one month, quantity one.
type itemPayload struct {
	PlanCode    string `json:"planCode"`
	PricingMode string `json:"pricingMode"`
	Duration    string `json:"duration"`
	Quantity    int    `json:"quantity"`
}

type configurationPayload struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type checkoutPayload struct {
	AutoPayWithPreferredPaymentMethod bool `json:"autoPayWithPreferredPaymentMethod"`
	WaiveRetractationPeriod           bool `json:"waiveRetractationPeriod"`
}

// Order is the response to a cart checkout.
type Order struct {
	OrderID int64  `json:"orderId"`
	URL     string `json:"url"`
}

// CatalogPlanProperty is one hardware attribute in the catalog details.
type CatalogPlanProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CatalogAddon is one purchasable add-on declared for a catalog plan.
type CatalogAddon struct {
	PlanCode    string `json:"planCode"`
	Description string `json:"description"`
}

// CatalogPlanDetails holds the declared hardware attributes of a plan.
type CatalogPlanDetails struct {
	Properties []CatalogPlanProperty `json:"properties"`
}

// CatalogPlan is one plan from the public eco catalog.
type CatalogPlan struct {
	PlanCode    string             `json:"planCode"`
	InvoiceName string             `json:"invoiceName"`
	Description string             `json:"description"`
	Addons      []CatalogAddon     `json:"addons"`
	Details     CatalogPlanDetails `json:"details"`
}

// Catalog is the public eco catalog for one subsidiary.
type Catalog struct {
	Plans []CatalogPlan `json:"plans"`
}
