package profile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mkallio/splitlog/internal/contexthelpers"
	"github.com/mkallio/splitlog/internal/profile"
	"github.com/mkallio/splitlog/internal/sqlite"
	"github.com/mkallio/splitlog/internal/testhelpers"
	"github.com/mkallio/splitlog/internal/workout"
)

func newService(t *testing.T) (*profile.Service, context.Context) {
	t.Helper()

	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close database: %v", closeErr)
		}
	})

	return profile.NewService(db, logger), ctx
}

func authenticate(ctx context.Context, userID int) context.Context {
	ctx = context.WithValue(ctx, contexthelpers.AuthenticatedUserIDContextKey, userID)
	return context.WithValue(ctx, contexthelpers.IsAuthenticatedContextKey, true)
}

func Test_LoginOrRegister(t *testing.T) {
	svc, ctx := newService(t)

	created, err := svc.LoginOrRegister(ctx, "Lifter@Example.com", "Lifter")
	if err != nil {
		t.Fatalf("LoginOrRegister: %v", err)
	}
	if created.Email != "lifter@example.com" {
		t.Errorf("email = %q, want lowercased lifter@example.com", created.Email)
	}
	if created.HasCompletedOnboarding {
		t.Error("fresh account must not have completed onboarding")
	}

	// A second login resolves to the same account.
	again, err := svc.LoginOrRegister(ctx, "lifter@example.com", "Someone Else")
	if err != nil {
		t.Fatalf("second LoginOrRegister: %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("second login created a new account: %d != %d", again.ID, created.ID)
	}
	if again.Name != "Lifter" {
		t.Errorf("second login renamed the account to %q", again.Name)
	}

	if _, err = svc.LoginOrRegister(ctx, "not-an-email", ""); !errors.Is(err, workout.ErrInvalidInput) {
		t.Errorf("invalid email error = %v, want ErrInvalidInput", err)
	}
}

func Test_CompleteOnboarding(t *testing.T) {
	svc, ctx := newService(t)

	created, err := svc.LoginOrRegister(ctx, "lifter@example.com", "Lifter")
	if err != nil {
		t.Fatalf("LoginOrRegister: %v", err)
	}
	ctx = authenticate(ctx, created.ID)

	age := 30
	height := 180
	updated, err := svc.CompleteOnboarding(ctx, profile.OnboardingInput{
		PlanType: "ABC",
		Gender:   "MALE",
		Age:      &age,
		HeightCm: &height,
	})
	if err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	if !updated.HasCompletedOnboarding || updated.PlanType != "ABC" {
		t.Errorf("onboarding not recorded: %+v", updated)
	}
	if updated.Age == nil || *updated.Age != 30 {
		t.Errorf("age not stored: %+v", updated.Age)
	}

	// Plan type can be changed later without wiping the measurements.
	updated, err = svc.CompleteOnboarding(ctx, profile.OnboardingInput{PlanType: "AB"})
	if err != nil {
		t.Fatalf("second CompleteOnboarding: %v", err)
	}
	if updated.PlanType != "AB" {
		t.Errorf("plan type = %q, want AB", updated.PlanType)
	}
	if updated.Age == nil || *updated.Age != 30 || updated.HeightCm == nil || *updated.HeightCm != 180 {
		t.Errorf("measurements wiped: %+v", updated)
	}
}

func Test_CompleteOnboarding_Validation(t *testing.T) {
	svc, ctx := newService(t)

	created, err := svc.LoginOrRegister(ctx, "lifter@example.com", "Lifter")
	if err != nil {
		t.Fatalf("LoginOrRegister: %v", err)
	}
	ctx = authenticate(ctx, created.ID)

	intp := func(v int) *int { return &v }

	tests := []struct {
		name  string
		input profile.OnboardingInput
	}{
		{name: "missing plan type", input: profile.OnboardingInput{}},
		{name: "unknown plan type", input: profile.OnboardingInput{PlanType: "ABCDE"}},
		{name: "unknown gender", input: profile.OnboardingInput{PlanType: "AB", Gender: "YES"}},
		{name: "age too low", input: profile.OnboardingInput{PlanType: "AB", Age: intp(9)}},
		{name: "age too high", input: profile.OnboardingInput{PlanType: "AB", Age: intp(101)}},
		{name: "height too low", input: profile.OnboardingInput{PlanType: "AB", HeightCm: intp(119)}},
		{name: "height too high", input: profile.OnboardingInput{PlanType: "AB", HeightCm: intp(231)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CompleteOnboarding(ctx, tt.input); !errors.Is(err, workout.ErrInvalidInput) {
				t.Errorf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}
