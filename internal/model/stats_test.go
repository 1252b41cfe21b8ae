package model

import (
	"reflect"
	"testing"
)

func TestComputeStats(t *testing.T) {
	queue := []QueueEntry{
		{ID: "1", Status: StatusPending},
		{ID: "2", Status: StatusRunning},
		{ID: "3", Status: StatusRunning},
		{ID: "4", Status: StatusCompleted},
		{ID: "5", Status: StatusFailed},
	}
	history := []PurchaseRecord{
		{Status: PurchaseSuccess},
		{Status: PurchaseFailed},
		{Status: PurchaseFailed},
	}
	plans := []ServerPlan{
		{PlanCode: "a", Datacenters: []DatacenterAvailability{{Datacenter: "gra", Availability: "1H"}}},
		{PlanCode: "b", Datacenters: []DatacenterAvailability{{Datacenter: "gra", Availability: "unavailable"}}},
		{PlanCode: "c"},
	}

	want := Stats{
		ActiveQueues:     2,
		TotalServers:     3,
		AvailableServers: 1,
		PurchaseSuccess:  1,
		PurchaseFailed:   2,
	}
	got := ComputeStats(queue, history, plans)
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	// Pure: identical inputs yield identical output, inputs untouched.
	again := ComputeStats(queue, history, plans)
	if again != got {
		t.Error("expected identical output on identical inputs")
	}
	if queue[1].Status != StatusRunning || !reflect.DeepEqual(history[0], PurchaseRecord{Status: PurchaseSuccess}) {
		t.Error("ComputeStats must not mutate its inputs")
	}
}

func TestComputeStats_Empty(t *testing.T) {
	if got := ComputeStats(nil, nil, nil); got != (Stats{}) {
		t.Fatalf("expected zero stats for empty collections, got %+v", got)
	}
}
