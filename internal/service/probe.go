package service

import (
	"context"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/ovh"
)

// ProbeService performs read-only availability checks against OVH.
// Remote failures are logged and surface as an "unreachable" result,
// never as a crash.
type ProbeService struct {
	api  ovh.API
	logs *LogService
}

// NewProbeService creates a probe. api may be nil when credentials are
// missing; every check then reports unreachable.
func NewProbeService(api ovh.API, logs *LogService) *ProbeService {
	return &ProbeService{api: api, logs: logs}
}

// CheckAvailability returns the datacenter -> availability tag mapping
// for a plan, or an error when OVH cannot be queried.
func (s *ProbeService) CheckAvailability(ctx context.Context, planCode string) (map[string]string, error) {
	if s.api == nil {
		s.logs.Error(ctx, "system", "Missing OVH API credentials")
		return nil, ovh.ErrNotConfigured
	}

	availabilities, err := s.api.Availabilities(ctx, planCode)
	if err != nil {
		s.logs.Error(ctx, "system", "Failed to check availability for %s: %v", planCode, err)
		return nil, err
	}

	result := make(map[string]string)
	for _, item := range availabilities {
		for _, dc := range item.Datacenters {
			result[dc.Datacenter] = dc.Availability
		}
	}
	return result, nil
}

// IsAvailable reports whether the plan is purchasable in the given
// datacenter. Unreachable OVH counts as not available.
func (s *ProbeService) IsAvailable(ctx context.Context, planCode, datacenter string) bool {
	availability, err := s.CheckAvailability(ctx, planCode)
	if err != nil {
		return false
	}
	tag, ok := availability[datacenter]
	return ok && model.Available(tag)
}
