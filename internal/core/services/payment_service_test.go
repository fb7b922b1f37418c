package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"packbill-backoffice/internal/adapters/persistence/models"
	"packbill-backoffice/internal/pkg/timeseries"
)

func seedPayment(t *testing.T, f *fixture, actor Actor, customerID uint, amount float64, date time.Time) *models.Payment {
	t.Helper()
	payment, err := f.paymentService.CreatePayment(context.Background(), actor, &CreatePaymentInput{
		CustomerID: customerID,
		Amount:     amount,
		Date:       &date,
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	return payment
}

func TestCreatePaymentValidations(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := seedCustomer(t, f, employeeActor, "BobCo", "bobco@example.com")

	_, err := f.paymentService.CreatePayment(ctx, employeeActor, &CreatePaymentInput{
		CustomerID: customer.ID,
		Amount:     0,
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	_, err = f.paymentService.CreatePayment(ctx, employeeActor, &CreatePaymentInput{
		CustomerID: 999,
		Amount:     10,
	})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestEmployeeCannotPayForeignCustomer(t *testing.T) {
	f := newFixture()
	foreign := seedCustomer(t, f, adminActor, "AdminCo", "adminco@example.com")

	_, err := f.paymentService.CreatePayment(context.Background(), employeeActor, &CreatePaymentInput{
		CustomerID: foreign.ID,
		Amount:     10,
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestEmployeeSeesOnlyOwnPayments(t *testing.T) {
	f := newFixture()
	now := time.Now()

	adminCustomer := seedCustomer(t, f, adminActor, "AdminCo", "adminco@example.com")
	bobCustomer := seedCustomer(t, f, employeeActor, "BobCo", "bobco@example.com")
	seedPayment(t, f, adminActor, adminCustomer.ID, 100, now)
	seedPayment(t, f, employeeActor, bobCustomer.ID, 50, now)

	mine, total, err := f.paymentService.ListPayments(context.Background(), employeeActor, &ListPaymentsInput{Limit: 10})
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if total != 1 || len(mine) != 1 || mine[0].Amount != 50 {
		t.Errorf("employee should only see payments of own customers, got %d", len(mine))
	}

	all, total, err := f.paymentService.ListPayments(context.Background(), adminActor, &ListPaymentsInput{Limit: 10})
	if err != nil {
		t.Fatalf("ListPayments as admin: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Errorf("admin should see all payments, got %d", len(all))
	}
}

func TestDeletePaymentIsHard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	customer := seedCustomer(t, f, adminActor, "Acme", "acme@example.com")
	payment := seedPayment(t, f, adminActor, customer.ID, 100, time.Now())

	if err := f.paymentService.DeletePayment(ctx, adminActor, payment.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}

	_, err := f.paymentService.GetPayment(ctx, adminActor, payment.ID)
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("expected ErrPaymentNotFound after hard delete, got %v", err)
	}
	if f.logs.lastAction() != models.ActionPaymentDeleted {
		t.Errorf("expected %s audit entry, got %q", models.ActionPaymentDeleted, f.logs.lastAction())
	}
}

func TestStatsMonthly(t *testing.T) {
	f := newFixture()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	customer := seedCustomer(t, f, adminActor, "Acme", "acme@example.com")
	seedPayment(t, f, adminActor, customer.ID, 500, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC))
	seedPayment(t, f, adminActor, customer.ID, 300, time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC))
	seedPayment(t, f, adminActor, customer.ID, 999, time.Date(2023, time.June, 17, 0, 0, 0, 0, time.UTC))

	stats, err := f.paymentService.Stats(context.Background(), adminActor, timeseries.Monthly, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if len(stats.Labels) != 12 || len(stats.Totals) != 12 {
		t.Fatalf("expected 12 buckets, got %d/%d", len(stats.Labels), len(stats.Totals))
	}
	if stats.Totals[5] != 800 {
		t.Errorf("expected Jun total 800, got %v", stats.Totals[5])
	}
}

func TestStatsScopedForEmployee(t *testing.T) {
	f := newFixture()
	now := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

	adminCustomer := seedCustomer(t, f, adminActor, "AdminCo", "adminco@example.com")
	bobCustomer := seedCustomer(t, f, employeeActor, "BobCo", "bobco@example.com")
	seedPayment(t, f, adminActor, adminCustomer.ID, 700, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	seedPayment(t, f, employeeActor, bobCustomer.ID, 40, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))

	stats, err := f.paymentService.Stats(context.Background(), employeeActor, timeseries.Monthly, now)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Totals[5] != 40 {
		t.Errorf("employee stats should only cover own customers, got %v", stats.Totals[5])
	}
}

func TestStatsRejectsUnknownGranularity(t *testing.T) {
	f := newFixture()

	_, err := f.paymentService.Stats(context.Background(), adminActor, timeseries.Granularity("hourly"), time.Now())
	if !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity, got %v", err)
	}
}
