package service

import (
	"context"
	"testing"

	"github.com/nourtech/storefront/internal/core/domain"
)

func TestContactService_DefaultsUntilSaved(t *testing.T) {
	svc := NewContactService(&stubContactRepo{})

	c, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.SupportEmail != domain.DefaultContact().SupportEmail || c.Availability == nil {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestContactService_Update(t *testing.T) {
	svc := NewContactService(&stubContactRepo{})

	c, err := svc.Update(context.Background(), &domain.Contact{
		SalesHotline: " 123 ",
		Availability: []string{" Sat-Thu 10-10 ", "", "Fri closed"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.SalesHotline != "123" || len(c.Availability) != 2 || c.Availability[0] != "Sat-Thu 10-10" {
		t.Fatalf("unexpected contact %+v", c)
	}
	if c.SupportEmail != "" {
		t.Fatalf("expected omitted fields to be cleared, got %q", c.SupportEmail)
	}
}
