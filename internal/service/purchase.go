package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/notify"
	"ovh-sniper-api/internal/ovh"
	"ovh-sniper-api/pkg/uid"
)

// defaultOS is the no-OS install selection applied to every order.
const defaultOS = "none_64.en"

// Outcome is the result of one executor invocation.
type Outcome int

const (
	// OutcomeSkipped means the availability gate (or missing
	// credentials) short-circuited the attempt before the pipeline.
	// No history record is written; the entry stays eligible for retry.
	OutcomeSkipped Outcome = iota
	// OutcomePurchased means checkout succeeded and a success record
	// was appended.
	OutcomePurchased
	// OutcomeFailed means a pipeline step failed and a failure record
	// was appended.
	OutcomeFailed
)

// Executor drives one purchase attempt for a queue entry.
type Executor interface {
	Execute(ctx context.Context, entry model.QueueEntry) Outcome
}

// PurchaseService performs the multi-step purchase transaction:
// availability re-check, cart creation, assignment, item add,
// configuration, best-effort options, checkout. A failure at any step
// abandons the attempt; the orphaned cart expires server-side.
type PurchaseService struct {
	api      ovh.API
	history  *HistoryService
	logs     *LogService
	notifier notify.Notifier
	zone     string
}

// NewPurchaseService creates the executor. api may be nil (missing
// credentials); notifier may be nil (notifications disabled).
func NewPurchaseService(api ovh.API, history *HistoryService, logs *LogService, notifier notify.Notifier, zone string) *PurchaseService {
	return &PurchaseService{
		api:      api,
		history:  history,
		logs:     logs,
		notifier: notifier,
		zone:     zone,
	}
}

// Execute runs the full transaction for one entry. It never panics past
// its boundary; queue status transitions belong to the scheduler.
func (s *PurchaseService) Execute(ctx context.Context, entry model.QueueEntry) Outcome {
	if s.api == nil {
		s.logs.Error(ctx, "purchase", "Missing OVH API credentials")
		return OutcomeSkipped
	}

	// Defensive re-check immediately before spending quota on a cart:
	// availability may have changed since the last scan.
	available, err := s.recheckAvailability(ctx, entry)
	if err != nil {
		return s.fail(ctx, entry, err)
	}
	if !available {
		s.logs.Info(ctx, "purchase", "Server %s not available in %s", entry.PlanCode, entry.Datacenter)
		return OutcomeSkipped
	}

	s.logs.Info(ctx, "purchase", "Creating cart for %s", s.zone)
	cartID, err := s.api.CreateCart(ctx, s.zone)
	if err != nil {
		return s.fail(ctx, entry, err)
	}
	s.logs.Info(ctx, "purchase", "Cart created with ID: %s", cartID)

	s.logs.Info(ctx, "purchase", "Assigning cart %s", cartID)
	if err := s.api.AssignCart(ctx, cartID); err != nil {
		return s.fail(ctx, entry, err)
	}

	s.logs.Info(ctx, "purchase", "Adding %s to cart", entry.PlanCode)
	itemID, err := s.api.AddEcoItem(ctx, cartID, entry.PlanCode)
	if err != nil {
		return s.fail(ctx, entry, err)
	}

	if err := s.configureItem(ctx, entry, cartID, itemID); err != nil {
		return s.fail(ctx, entry, err)
	}

	// Options are best-effort: a failed add-on never aborts the base
	// purchase.
	for _, option := range entry.Options {
		if option == "" {
			continue
		}
		s.logs.Info(ctx, "purchase", "Adding option: %s", option)
		if err := s.api.AddOption(ctx, cartID, itemID, option); err != nil {
			s.logs.Warning(ctx, "purchase", "Failed to add option %s: %v", option, err)
		}
	}

	s.logs.Info(ctx, "purchase", "Checking out cart %s", cartID)
	order, err := s.api.Checkout(ctx, cartID)
	if err != nil {
		return s.fail(ctx, entry, err)
	}

	record := model.PurchaseRecord{
		ID:           uid.New(),
		PlanCode:     entry.PlanCode,
		Datacenter:   entry.Datacenter,
		Status:       model.PurchaseSuccess,
		OrderID:      strconv.FormatInt(order.OrderID, 10),
		OrderURL:     order.URL,
		PurchaseTime: time.Now().UTC(),
	}
	if err := s.history.Append(ctx, record); err != nil {
		s.logs.Error(ctx, "purchase", "Failed to record purchase history: %v", err)
	}

	s.logs.Info(ctx, "purchase", "Successfully purchased %s in %s", entry.PlanCode, entry.Datacenter)
	s.notify(ctx, fmt.Sprintf("Purchased %s in %s — order %s\n%s",
		entry.PlanCode, entry.Datacenter, record.OrderID, record.OrderURL))
	return OutcomePurchased
}

// recheckAvailability gates the pipeline on the exact plan/datacenter pair.
func (s *PurchaseService) recheckAvailability(ctx context.Context, entry model.QueueEntry) (bool, error) {
	availabilities, err := s.api.Availabilities(ctx, entry.PlanCode)
	if err != nil {
		return false, err
	}
	for _, item := range availabilities {
		for _, dc := range item.Datacenters {
			if dc.Datacenter == entry.Datacenter && model.Available(dc.Availability) {
				return true, nil
			}
		}
	}
	return false, nil
}

// configureItem applies the mandatory item configuration. The declared
// required-configuration schema is honored where a default is known;
// the datacenter and OS labels are always set.
func (s *PurchaseService) configureItem(ctx context.Context, entry model.QueueEntry, cartID string, itemID int64) error {
	defaults := map[string]string{
		"dedicated_datacenter": entry.Datacenter,
		"dedicated_os":         defaultOS,
	}

	configs := make(map[string]string, len(defaults))
	required, err := s.api.RequiredConfigurations(ctx, cartID, itemID)
	if err != nil {
		return err
	}
	for _, rc := range required {
		if value, ok := defaults[rc.Label]; ok {
			configs[rc.Label] = value
		} else if rc.Required {
			s.logs.Warning(ctx, "purchase", "No known default for required configuration %q", rc.Label)
		}
	}
	// The two fixed labels are mandatory even when the schema omits them.
	configs["dedicated_datacenter"] = entry.Datacenter
	configs["dedicated_os"] = defaultOS

	for _, label := range []string{"dedicated_datacenter", "dedicated_os"} {
		value := configs[label]
		s.logs.Info(ctx, "purchase", "Setting configuration %s=%s", label, value)
		if err := s.api.SetConfiguration(ctx, cartID, itemID, label, value); err != nil {
			return err
		}
	}
	return nil
}

// fail records a failed attempt and reports it.
func (s *PurchaseService) fail(ctx context.Context, entry model.QueueEntry, cause error) Outcome {
	record := model.PurchaseRecord{
		ID:           uid.New(),
		PlanCode:     entry.PlanCode,
		Datacenter:   entry.Datacenter,
		Status:       model.PurchaseFailed,
		ErrorMessage: cause.Error(),
		PurchaseTime: time.Now().UTC(),
	}
	if err := s.history.Append(ctx, record); err != nil {
		s.logs.Error(ctx, "purchase", "Failed to record purchase history: %v", err)
	}

	s.logs.Error(ctx, "purchase", "Failed to purchase %s: %v", entry.PlanCode, cause)
	s.notify(ctx, fmt.Sprintf("Purchase of %s in %s failed: %v", entry.PlanCode, entry.Datacenter, cause))
	return OutcomeFailed
}

// notify sends a best-effort notification; failures are warnings only.
func (s *PurchaseService) notify(ctx context.Context, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		s.logs.Warning(ctx, "purchase", "Failed to send notification: %v", err)
	}
}

// Ensure PurchaseService implements Executor
var _ Executor = (*PurchaseService)(nil)
