package services

import (
	"context"
	"errors"
	"testing"

	"packbill-backoffice/internal/adapters/persistence/models"
)

func seedCustomer(t *testing.T, f *fixture, actor Actor, name, email string) *models.Customer {
	t.Helper()
	customer, err := f.customerService.CreateCustomer(context.Background(), actor, &CreateCustomerInput{
		Name:       name,
		Email:      email,
		PackageFee: 49.90,
	})
	if err != nil {
		t.Fatalf("CreateCustomer(%s): %v", name, err)
	}
	return customer
}

func TestCreateCustomerSetsOwnerAndAudits(t *testing.T) {
	f := newFixture()

	customer := seedCustomer(t, f, employeeActor, "Acme", "acme@example.com")

	if customer.CreatedBy == nil || *customer.CreatedBy != employeeActor.ID {
		t.Error("customer must record its creator")
	}
	if !customer.IsActive {
		t.Error("new customers start active")
	}
	if f.logs.lastAction() != models.ActionCustomerCreated {
		t.Errorf("expected %s audit entry, got %q", models.ActionCustomerCreated, f.logs.lastAction())
	}
}

func TestCreateCustomerRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	seedCustomer(t, f, adminActor, "Acme", "acme@example.com")

	_, err := f.customerService.CreateCustomer(context.Background(), adminActor, &CreateCustomerInput{
		Name:  "Other",
		Email: "acme@example.com",
	})
	if !errors.Is(err, ErrCustomerEmailTaken) {
		t.Errorf("expected ErrCustomerEmailTaken, got %v", err)
	}
}

func TestEmployeeSeesOnlyOwnCustomers(t *testing.T) {
	f := newFixture()
	seedCustomer(t, f, adminActor, "AdminCo", "adminco@example.com")
	seedCustomer(t, f, employeeActor, "BobCo", "bobco@example.com")

	mine, total, err := f.customerService.ListCustomers(context.Background(), employeeActor, &ListCustomersInput{Limit: 10})
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if total != 1 || len(mine) != 1 || mine[0].Name != "BobCo" {
		t.Errorf("employee should only see own customers, got %d results", len(mine))
	}

	all, total, err := f.customerService.ListCustomers(context.Background(), adminActor, &ListCustomersInput{Limit: 10})
	if err != nil {
		t.Fatalf("ListCustomers as admin: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("admin should see all customers, got %d", len(all))
	}
}

func TestEmployeeCannotTouchForeignCustomer(t *testing.T) {
	f := newFixture()
	foreign := seedCustomer(t, f, adminActor, "AdminCo", "adminco@example.com")

	_, err := f.customerService.GetCustomer(context.Background(), employeeActor, foreign.ID)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied on get, got %v", err)
	}

	err = f.customerService.DeactivateCustomer(context.Background(), employeeActor, foreign.ID)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied on deactivate, got %v", err)
	}
}

func TestDeactivateCustomerIsSoft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := seedCustomer(t, f, adminActor, "Acme", "acme@example.com")

	if err := f.customerService.DeactivateCustomer(ctx, adminActor, customer.ID); err != nil {
		t.Fatalf("DeactivateCustomer: %v", err)
	}

	// Row still exists, just inactive
	got, err := f.customerService.GetCustomer(ctx, adminActor, customer.ID)
	if err != nil {
		t.Fatalf("GetCustomer after deactivate: %v", err)
	}
	if got.IsActive {
		t.Error("customer should be inactive")
	}
	if f.logs.lastAction() != models.ActionCustomerDeleted {
		t.Errorf("expected %s audit entry, got %q", models.ActionCustomerDeleted, f.logs.lastAction())
	}

	restored, err := f.customerService.ReactivateCustomer(ctx, adminActor, customer.ID)
	if err != nil {
		t.Fatalf("ReactivateCustomer: %v", err)
	}
	if !restored.IsActive {
		t.Error("customer should be active after reactivate")
	}
}

func TestListCustomersFiltersByActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	active := seedCustomer(t, f, adminActor, "Active", "active@example.com")
	inactive := seedCustomer(t, f, adminActor, "Inactive", "inactive@example.com")
	_ = active

	if err := f.customerService.DeactivateCustomer(ctx, adminActor, inactive.ID); err != nil {
		t.Fatalf("DeactivateCustomer: %v", err)
	}

	isActive := true
	results, total, err := f.customerService.ListCustomers(ctx, adminActor, &ListCustomersInput{
		IsActive: &isActive,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if total != 1 || len(results) != 1 || results[0].Name != "Active" {
		t.Errorf("expected only the active customer, got %d results", len(results))
	}
}

func TestUpdateCustomerChecksEmailUniqueness(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedCustomer(t, f, adminActor, "First", "first@example.com")
	second := seedCustomer(t, f, adminActor, "Second", "second@example.com")

	taken := "first@example.com"
	_, err := f.customerService.UpdateCustomer(ctx, adminActor, second.ID, &UpdateCustomerInput{Email: &taken})
	if !errors.Is(err, ErrCustomerEmailTaken) {
		t.Errorf("expected ErrCustomerEmailTaken, got %v", err)
	}

	// Writing back its own email is not a conflict
	own := "second@example.com"
	if _, err := f.customerService.UpdateCustomer(ctx, adminActor, second.ID, &UpdateCustomerInput{Email: &own}); err != nil {
		t.Errorf("own email should not conflict: %v", err)
	}
}
