package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ovh-sniper-api/internal/model"
	"ovh-sniper-api/internal/ovh"
	"ovh-sniper-api/internal/repository"
)

// mockAPI implements ovh.API for testing.
type mockAPI struct {
	availabilities []ovh.PlanAvailability
	availErr       error
	createCartErr  error
	assignErr      error
	addItemErr     error
	required       []ovh.RequiredConfiguration
	requiredErr    error
	configErr      error
	optionErr      error
	order          *ovh.Order
	checkoutErr    error
	catalog        *ovh.Catalog
	catalogErr     error
	verifyErr      error

	calls       []string
	addedOption []string
	configs     map[string]string
}

func (m *mockAPI) Availabilities(_ context.Context, planCode string) ([]ovh.PlanAvailability, error) {
	m.calls = append(m.calls, "availabilities")
	if m.availErr != nil {
		return nil, m.availErr
	}
	return m.availabilities, nil
}

func (m *mockAPI) CreateCart(_ context.Context, subsidiary string) (string, error) {
	m.calls = append(m.calls, "createCart")
	if m.createCartErr != nil {
		return "", m.createCartErr
	}
	return "cart-1", nil
}

func (m *mockAPI) AssignCart(_ context.Context, cartID string) error {
	m.calls = append(m.calls, "assignCart")
	return m.assignErr
}

func (m *mockAPI) AddEcoItem(_ context.Context, cartID, planCode string) (int64, error) {
	m.calls = append(m.calls, "addEcoItem")
	if m.addItemErr != nil {
		return 0, m.addItemErr
	}
	return 77, nil
}

func (m *mockAPI) RequiredConfigurations(_ context.Context, cartID string, itemID int64) ([]ovh.RequiredConfiguration, error) {
	m.calls = append(m.calls, "requiredConfigurations")
	if m.requiredErr != nil {
		return nil, m.requiredErr
	}
	return m.required, nil
}

func (m *mockAPI) SetConfiguration(_ context.Context, cartID string, itemID int64, label, value string) error {
	m.calls = append(m.calls, "setConfiguration")
	if m.configErr != nil {
		return m.configErr
	}
	if m.configs == nil {
		m.configs = make(map[string]string)
	}
	m.configs[label] = value
	return nil
}

func (m *mockAPI) AddOption(_ context.Context, cartID string, itemID int64, optionCode string) error {
	m.calls = append(m.calls, "addOption")
	if m.optionErr != nil {
		return m.optionErr
	}
	m.addedOption = append(m.addedOption, optionCode)
	return nil
}

func (m *mockAPI) Checkout(_ context.Context, cartID string) (*ovh.Order, error) {
	m.calls = append(m.calls, "checkout")
	if m.checkoutErr != nil {
		return nil, m.checkoutErr
	}
	if m.order != nil {
		return m.order, nil
	}
	return &ovh.Order{OrderID: 4242, URL: "https://www.ovh.com/order/4242"}, nil
}

func (m *mockAPI) Catalog(_ context.Context, subsidiary string) (*ovh.Catalog, error) {
	m.calls = append(m.calls, "catalog")
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.catalog, nil
}

func (m *mockAPI) VerifyAuth(_ context.Context) error {
	m.calls = append(m.calls, "verifyAuth")
	return m.verifyErr
}

func availableIn(planCode string, datacenters map[string]string) []ovh.PlanAvailability {
	var dcs []ovh.DatacenterInfo
	for dc, tag := range datacenters {
		dcs = append(dcs, ovh.DatacenterInfo{Datacenter: dc, Availability: tag})
	}
	return []ovh.PlanAvailability{{PlanCode: planCode, Datacenters: dcs}}
}

func newPurchaseFixture(api ovh.API) (*PurchaseService, *HistoryService) {
	repo := repository.NewMemorySnapshotRepository()
	logs := NewLogService(repo)
	history := NewHistoryService(repo)
	return NewPurchaseService(api, history, logs, nil, "IE"), history
}

func testEntry(options ...string) model.QueueEntry {
	if options == nil {
		options = []string{}
	}
	return model.QueueEntry{
		ID:         "entry-1",
		PlanCode:   "25skle01",
		Datacenter: "gra",
		Options:    options,
		Status:     model.StatusRunning,
	}
}

func TestExecute_Success(t *testing.T) {
	api := &mockAPI{availabilities: availableIn("25skle01", map[string]string{"gra": "1H"})}
	svc, history := newPurchaseFixture(api)

	outcome := svc.Execute(context.Background(), testEntry())
	if outcome != OutcomePurchased {
		t.Fatalf("expected OutcomePurchased, got %v", outcome)
	}

	records := history.List()
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 history record, got %d", len(records))
	}
	rec := records[0]
	if rec.Status != model.PurchaseSuccess {
		t.Errorf("expected success record, got %s", rec.Status)
	}
	if rec.OrderID != "4242" {
		t.Errorf("expected order id 4242, got %q", rec.OrderID)
	}
	if rec.OrderURL == "" {
		t.Error("expected order URL to be recorded")
	}

	// Step order is fixed: availability gate, cart, assign, item,
	// required config, two configurations, checkout.
	want := []string{
		"availabilities", "createCart", "assignCart", "addEcoItem",
		"requiredConfigurations", "setConfiguration", "setConfiguration", "checkout",
	}
	if len(api.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, api.calls)
	}
	for i := range want {
		if api.calls[i] != want[i] {
			t.Fatalf("call %d: expected %s, got %s", i, want[i], api.calls[i])
		}
	}

	if api.configs["dedicated_datacenter"] != "gra" {
		t.Errorf("expected datacenter configuration gra, got %q", api.configs["dedicated_datacenter"])
	}
	if api.configs["dedicated_os"] != "none_64.en" {
		t.Errorf("expected OS configuration none_64.en, got %q", api.configs["dedicated_os"])
	}
}

func TestExecute_UnavailableSkipsWithoutRecord(t *testing.T) {
	api := &mockAPI{availabilities: availableIn("25skle01", map[string]string{"gra": "unavailable"})}
	svc, history := newPurchaseFixture(api)

	outcome := svc.Execute(context.Background(), testEntry())
	if outcome != OutcomeSkipped {
		t.Fatalf("expected OutcomeSkipped, got %v", outcome)
	}
	if len(history.List()) != 0 {
		t.Fatalf("expected no history record for an unavailable plan, got %d", len(history.List()))
	}
	for _, call := range api.calls {
		if call == "createCart" {
			t.Fatal("cart must not be created when the availability gate fails")
		}
	}
}

func TestExecute_AddItemFailureRecordsError(t *testing.T) {
	api := &mockAPI{
		availabilities: availableIn("25skle01", map[string]string{"gra": "72H"}),
		addItemErr:     errors.New("quota exceeded"),
	}
	svc, history := newPurchaseFixture(api)

	outcome := svc.Execute(context.Background(), testEntry())
	if outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %v", outcome)
	}

	records := history.List()
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 history record, got %d", len(records))
	}
	rec := records[0]
	if rec.Status != model.PurchaseFailed {
		t.Errorf("expected failed record, got %s", rec.Status)
	}
	if !strings.Contains(rec.ErrorMessage, "quota exceeded") {
		t.Errorf("expected error text in record, got %q", rec.ErrorMessage)
	}
	if rec.OrderID != "" {
		t.Errorf("expected no order id on failure, got %q", rec.OrderID)
	}
}

func TestExecute_OptionFailuresAreBestEffort(t *testing.T) {
	api := &mockAPI{
		availabilities: availableIn("25skle01", map[string]string{"gra": "1H"}),
		optionErr:      errors.New("option out of stock"),
	}
	svc, history := newPurchaseFixture(api)

	outcome := svc.Execute(context.Background(), testEntry("ram-64g", "ssd-2x480"))
	if outcome != OutcomePurchased {
		t.Fatalf("expected OutcomePurchased despite option failures, got %v", outcome)
	}

	records := history.List()
	if len(records) != 1 || records[0].Status != model.PurchaseSuccess {
		t.Fatalf("expected one success record, got %+v", records)
	}
}

func TestExecute_EmptyOptionCodesSkipped(t *testing.T) {
	api := &mockAPI{availabilities: availableIn("25skle01", map[string]string{"gra": "1H"})}
	svc, _ := newPurchaseFixture(api)

	if outcome := svc.Execute(context.Background(), testEntry("", "ram-64g", "")); outcome != OutcomePurchased {
		t.Fatalf("expected OutcomePurchased, got %v", outcome)
	}
	if len(api.addedOption) != 1 || api.addedOption[0] != "ram-64g" {
		t.Fatalf("expected only ram-64g added, got %v", api.addedOption)
	}
}

func TestExecute_AvailabilityErrorRecordsFailure(t *testing.T) {
	api := &mockAPI{availErr: errors.New("connection reset")}
	svc, history := newPurchaseFixture(api)

	if outcome := svc.Execute(context.Background(), testEntry()); outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %v", outcome)
	}
	if len(history.List()) != 1 {
		t.Fatalf("expected one failed record, got %d", len(history.List()))
	}
}

func TestExecute_NoCredentialsSkips(t *testing.T) {
	svc, history := newPurchaseFixture(nil)

	if outcome := svc.Execute(context.Background(), testEntry()); outcome != OutcomeSkipped {
		t.Fatalf("expected OutcomeSkipped without credentials, got %v", outcome)
	}
	if len(history.List()) != 0 {
		t.Fatal("expected no history record without credentials")
	}
}

func TestExecute_CheckoutFailureRecordsFailure(t *testing.T) {
	api := &mockAPI{
		availabilities: availableIn("25skle01", map[string]string{"gra": "1H"}),
		checkoutErr:    errors.New("payment method required"),
	}
	svc, history := newPurchaseFixture(api)

	if outcome := svc.Execute(context.Background(), testEntry()); outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %v", outcome)
	}
	records := history.List()
	if len(records) != 1 || records[0].Status != model.PurchaseFailed {
		t.Fatalf("expected one failed record, got %+v", records)
	}
}
