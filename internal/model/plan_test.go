package model

import "testing"

func TestAvailable(t *testing.T) {
	cases := []struct {
		tag  string
		want bool
	}{
		{"1H", true},
		{"24H", true},
		{"72H", true},
		{"240H", true},
		{"unavailable", false},
		{"unknown", false},
		// Tags OVH has not documented yet still count as in stock.
		{"comingSoon", true},
	}
	for _, tc := range cases {
		if got := Available(tc.tag); got != tc.want {
			t.Errorf("Available(%q): expected %v, got %v", tc.tag, tc.want, got)
		}
	}
}

func TestServerPlan_AnyAvailable(t *testing.T) {
	none := ServerPlan{Datacenters: []DatacenterAvailability{
		{Datacenter: "gra", Availability: "unavailable"},
		{Datacenter: "rbx", Availability: "unknown"},
	}}
	if none.AnyAvailable() {
		t.Error("expected no availability")
	}

	one := ServerPlan{Datacenters: []DatacenterAvailability{
		{Datacenter: "gra", Availability: "unavailable"},
		{Datacenter: "rbx", Availability: "72H"},
	}}
	if !one.AnyAvailable() {
		t.Error("expected availability via rbx")
	}

	empty := ServerPlan{}
	if empty.AnyAvailable() {
		t.Error("expected a plan without datacenters to be unavailable")
	}
}
