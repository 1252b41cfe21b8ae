package model

// Stats are derived counters recomputed from the queue, purchase history
// and catalog on every read. Never stored independently.
type Stats struct {
	ActiveQueues     int `json:"activeQueues"`
	TotalServers     int `json:"totalServers"`
	AvailableServers int `json:"availableServers"`
	PurchaseSuccess  int `json:"purchaseSuccess"`
	PurchaseFailed   int `json:"purchaseFailed"`
}

// ComputeStats derives the counters from the current collections. Pure:
// identical inputs always yield identical output.
func ComputeStats(queue []QueueEntry, history []PurchaseRecord, plans []ServerPlan) Stats {
	var s Stats
	for i := range queue {
		if queue[i].Status == StatusRunning {
			s.ActiveQueues++
		}
	}
	s.TotalServers = len(plans)
	for i := range plans {
		if plans[i].AnyAvailable() {
			s.AvailableServers++
		}
	}
	for i := range history {
		switch history[i].Status {
		case PurchaseSuccess:
			s.PurchaseSuccess++
		case PurchaseFailed:
			s.PurchaseFailed++
		}
	}
	return s
}
