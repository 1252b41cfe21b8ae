package model

// UnknownAttr is the sentinel for hardware attributes the catalog omits.
const UnknownAttr = "unknown"

// Availability tags that mean a datacenter cannot deliver the plan.
const (
	AvailabilityUnavailable = "unavailable"
	AvailabilityUnknown     = "unknown"
)

// Available reports whether an availability tag counts as purchasable.
// Anything that is not explicitly unavailable or unknown is treated as
// in stock (tags like "1H", "72H", "240H" all mean orderable).
func Available(tag string) bool {
	return tag != AvailabilityUnavailable && tag != AvailabilityUnknown
}

// DatacenterAvailability is the last-observed availability of a plan in
// one datacenter.
type DatacenterAvailability struct {
	Datacenter   string `json:"datacenter"`
	Availability string `json:"availability"`
}

// PlanOption is a purchasable add-on for a server plan.
type PlanOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ServerPlan is a catalog entry for a purchasable dedicated server.
// Refreshed wholesale from the OVH eco catalog; used for display and
// availability counting only.
type ServerPlan struct {
	PlanCode         string                   `json:"planCode"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	CPU              string                   `json:"cpu"`
	Memory           string                   `json:"memory"`
	Storage          string                   `json:"storage"`
	Bandwidth        string                   `json:"bandwidth"`
	VrackBandwidth   string                   `json:"vrackBandwidth"`
	Datacenters      []DatacenterAvailability `json:"datacenters"`
	AvailableOptions []PlanOption             `json:"availableOptions"`
}

// AnyAvailable reports whether at least one datacenter can deliver the plan.
func (p *ServerPlan) AnyAvailable() bool {
	for _, dc := range p.Datacenters {
		if Available(dc.Availability) {
			return true
		}
	}
	return false
}
