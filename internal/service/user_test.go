package service

import (
	"context"
	"errors"
	"testing"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
)

func TestLoginWithProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	profile := &models.ExternalProfile{
		Provider:   "github",
		ProviderID: "42",
		Username:   "ada",
		ProfilePic: "https://img/1.png",
	}

	first, err := f.users.LoginWithProfile(ctx, profile)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if first.ExternalID != "github:42" || first.DisplayName != "ada" {
		t.Errorf("unexpected user: %+v", first)
	}

	profile.ProfilePic = "https://img/2.png"
	second, err := f.users.LoginWithProfile(ctx, profile)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same user, got %s and %s", first.ID, second.ID)
	}
	if second.ProfilePic != "https://img/2.png" {
		t.Errorf("profile picture not refreshed: %q", second.ProfilePic)
	}
	if len(f.store.users) != 1 {
		t.Errorf("expected one stored user, got %d", len(f.store.users))
	}
}

func TestLoginWithProfileValidation(t *testing.T) {
	f := newFixture()
	_, err := f.users.LoginWithProfile(context.Background(), &models.ExternalProfile{Provider: "github"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestResolveExternal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	existing := f.store.addUser("ada")

	id, err := f.users.ResolveExternal(ctx, &models.ExternalProfile{Provider: "github", ProviderID: "ada"})
	if err != nil || id != existing.ID {
		t.Fatalf("ResolveExternal = %q, %v; want %q", id, err, existing.ID)
	}

	created, err := f.users.ResolveExternal(ctx, &models.ExternalProfile{Provider: "oidc", ProviderID: "sub-1", Username: "new"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == existing.ID || f.store.users[created] == nil {
		t.Errorf("expected a new user, got %q", created)
	}

	if _, err := f.users.GetProfile(ctx, created); err != nil {
		t.Errorf("GetProfile: %v", err)
	}
}
