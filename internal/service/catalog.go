package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/ovh"
	"ovh-sniper-api/internal/repository"
)

// CatalogService caches the OVH eco catalog: purchasable server plans
// with hardware attributes, datacenter availability and add-on codes.
// Refreshed wholesale on demand; used for display and stats only.
type CatalogService struct {
	mu    sync.RWMutex
	repo  repository.SnapshotRepository
	api   ovh.API
	logs  *LogService
	zone  string
	plans []model.ServerPlan
}

// NewCatalogService creates a catalog service. api may be nil; Refresh
// then reports an error and the cached snapshot keeps serving reads.
func NewCatalogService(repo repository.SnapshotRepository, api ovh.API, logs *LogService, zone string) *CatalogService {
	return &CatalogService{repo: repo, api: api, logs: logs, zone: zone}
}

// Load restores the catalog cache from its snapshot.
func (s *CatalogService) Load(ctx context.Context) error {
	data, err := s.repo.Load(ctx, repository.CollectionServers)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.plans); err != nil {
		return fmt.Errorf("failed to decode servers snapshot: %w", err)
	}
	return nil
}

// List returns a copy of the cached plans.
func (s *CatalogService) List() []model.ServerPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ServerPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

// Refresh replaces the cache with the live catalog and persists it.
// Returns the number of plans loaded.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	if s.api == nil {
		s.logs.Error(ctx, "system", "Missing OVH API credentials")
		return 0, ovh.ErrNotConfigured
	}

	catalog, err := s.api.Catalog(ctx, s.zone)
	if err != nil {
		s.logs.Error(ctx, "system", "Failed to load server list: %v", err)
		return 0, err
	}

	plans := make([]model.ServerPlan, 0, len(catalog.Plans))
	for _, plan := range catalog.Plans {
		if plan.PlanCode == "" {
			continue
		}
		plans = append(plans, s.buildPlan(ctx, plan))
	}

	data, err := json.Marshal(plans)
	if err != nil {
		return 0, fmt.Errorf("failed to encode servers: %w", err)
	}

	s.mu.Lock()
	s.plans = plans
	s.mu.Unlock()

	if err := s.repo.Save(ctx, repository.CollectionServers, data); err != nil {
		return 0, fmt.Errorf("failed to persist servers: %w", err)
	}

	s.logs.Info(ctx, "system", "Loaded %d servers from OVH API", len(plans))
	return len(plans), nil
}

// buildPlan maps one catalog plan plus its live availability into the
// cached representation.
func (s *CatalogService) buildPlan(ctx context.Context, plan ovh.CatalogPlan) model.ServerPlan {
	out := model.ServerPlan{
		PlanCode:         plan.PlanCode,
		Name:             plan.InvoiceName,
		Description:      plan.Description,
		CPU:              model.UnknownAttr,
		Memory:           model.UnknownAttr,
		Storage:          model.UnknownAttr,
		Bandwidth:        model.UnknownAttr,
		VrackBandwidth:   model.UnknownAttr,
		Datacenters:      []model.DatacenterAvailability{},
		AvailableOptions: []model.PlanOption{},
	}

	for _, prop := range plan.Details.Properties {
		if prop.Value == "" {
			continue
		}
		switch prop.Name {
		case "cpu":
			out.CPU = prop.Value
		case "memory":
			out.Memory = prop.Value
		case "storage":
			out.Storage = prop.Value
		case "bandwidth":
			out.Bandwidth = prop.Value
		case "vrackBandwidth":
			out.VrackBandwidth = prop.Value
		}
	}

	for _, addon := range plan.Addons {
		if addon.PlanCode == "" {
			continue
		}
		label := addon.Description
		if label == "" {
			label = addon.PlanCode
		}
		out.AvailableOptions = append(out.AvailableOptions, model.PlanOption{
			Label: label,
			Value: addon.PlanCode,
		})
	}

	availabilities, err := s.api.Availabilities(ctx, plan.PlanCode)
	if err != nil {
		s.logs.Warning(ctx, "system", "Failed to check availability for %s: %v", plan.PlanCode, err)
		return out
	}
	for _, item := range availabilities {
		for _, dc := range item.Datacenters {
			out.Datacenters = append(out.Datacenters, model.DatacenterAvailability{
				Datacenter:   dc.Datacenter,
				Availability: dc.Availability,
			})
		}
	}
	return out
}
