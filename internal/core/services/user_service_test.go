package services

import (
	"context"
	"errors"
	"testing"

	"packbill-backoffice/internal/adapters/persistence/models"
)

func TestRegisterAdminForcesStaffFlags(t *testing.T) {
	f := newFixture()

	user, err := f.userService.Register(context.Background(), adminActor, &RegisterUserInput{
		Username: "alice",
		Password: "password123",
		UserType: models.UserTypeAdmin,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !user.IsStaff || !user.IsSuperuser {
		t.Errorf("admin user must have is_staff and is_superuser set, got %v/%v", user.IsStaff, user.IsSuperuser)
	}
	if f.logs.lastAction() != models.ActionUserCreated {
		t.Errorf("expected %s audit entry, got %q", models.ActionUserCreated, f.logs.lastAction())
	}
}

func TestRegisterEmployeeForcesFlagsOff(t *testing.T) {
	f := newFixture()

	user, err := f.userService.Register(context.Background(), adminActor, &RegisterUserInput{
		Username: "bob",
		Password: "password123",
		UserType: models.UserTypeEmployee,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.IsStaff || user.IsSuperuser {
		t.Error("employee user must not carry staff flags")
	}
	if !user.IsActive {
		t.Error("new users start active")
	}
}

func TestRegisterDefaultsToEmployee(t *testing.T) {
	f := newFixture()

	user, err := f.userService.Register(context.Background(), adminActor, &RegisterUserInput{
		Username: "carol",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.UserType != models.UserTypeEmployee {
		t.Errorf("expected default user type employee, got %q", user.UserType)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	input := &RegisterUserInput{Username: "alice", Password: "password123"}
	if _, err := f.userService.Register(ctx, adminActor, input); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := f.userService.Register(ctx, adminActor, input)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newFixture()

	_, err := f.userService.Register(context.Background(), adminActor, &RegisterUserInput{
		Username: "alice",
		Password: "short",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestUpdateReappliesRoleMapping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.userService.Register(ctx, adminActor, &RegisterUserInput{
		Username: "bob",
		Password: "password123",
		UserType: models.UserTypeAdmin,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Demote: flags must be forced off, not just the user_type string
	demoted := models.UserTypeEmployee
	updated, err := f.userService.Update(ctx, adminActor, user.ID, &UpdateUserInput{UserType: &demoted})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.IsStaff || updated.IsSuperuser {
		t.Error("demoting to employee must clear staff flags")
	}
}

func TestCannotDeactivateSelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.userService.Register(ctx, adminActor, &RegisterUserInput{
		Username: "alice",
		Password: "password123",
		UserType: models.UserTypeAdmin,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	self := Actor{ID: user.ID, Username: user.Username, IsAdmin: true}
	if err := f.userService.Deactivate(ctx, self, user.ID); !errors.Is(err, ErrCannotDeactivateSelf) {
		t.Errorf("expected ErrCannotDeactivateSelf, got %v", err)
	}

	// Same guard on the update path
	inactive := false
	_, err = f.userService.Update(ctx, self, user.ID, &UpdateUserInput{IsActive: &inactive})
	if !errors.Is(err, ErrCannotDeactivateSelf) {
		t.Errorf("expected ErrCannotDeactivateSelf via Update, got %v", err)
	}
}

func TestDeactivateAndReactivate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	user, err := f.userService.Register(ctx, adminActor, &RegisterUserInput{
		Username: "bob",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := f.userService.Deactivate(ctx, adminActor, user.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	got, _ := f.userService.GetUser(ctx, user.ID)
	if got.IsActive {
		t.Error("user should be inactive after Deactivate")
	}

	restored, err := f.userService.Reactivate(ctx, adminActor, user.ID)
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if !restored.IsActive {
		t.Error("user should be active after Reactivate")
	}
}

func TestGetUserNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.userService.GetUser(context.Background(), 999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
