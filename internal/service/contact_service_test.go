package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/validation"
)

func validContact(name string) ContactInput {
	return ContactInput{
		Name:    name,
		Email:   "jane@example.com",
		Message: "Need 500 flyers by Friday please.",
	}
}

func TestContactSubmitValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ContactInput
		field string
	}{
		{"short name", ContactInput{Name: "J", Email: "jane@example.com", Message: "Need 500 flyers by Friday"}, "name"},
		{"bad email", ContactInput{Name: "Jane", Email: "not-an-email", Message: "Need 500 flyers by Friday"}, "email"},
		{"missing email", ContactInput{Name: "Jane", Message: "Need 500 flyers by Friday"}, "email"},
		{"short message", ContactInput{Name: "Jane", Email: "jane@example.com", Message: "Hi"}, "message"},
		{"padded message", ContactInput{Name: "Jane", Email: "jane@example.com", Message: "   short    "}, "message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.input)
			verrs, ok := validation.AsErrors(err)
			if !ok {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if _, failed := verrs.Fields()[tc.field]; !failed {
				t.Fatalf("expected %s to fail, got %v", tc.field, verrs.Fields())
			}
		})
	}

	var total int64
	gdb.Model(&db.ContactSubmission{}).Count(&total)
	if total != 0 {
		t.Fatalf("expected no submissions stored, got %d", total)
	}
}

func TestContactSubmitStoresUnhandled(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	item, err := svc.Submit(ctx, validContact("Jane"))
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	if item.ID == 0 || item.Handled {
		t.Fatalf("expected new unhandled submission, got %#v", item)
	}
	if item.Phone != nil {
		t.Fatalf("expected missing phone to be stored as nil")
	}

	withPhone := validContact("John")
	withPhone.Phone = " 555-0100 "
	item, err = svc.Submit(ctx, withPhone)
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}
	if item.Phone == nil || *item.Phone != "555-0100" {
		t.Fatalf("expected trimmed phone, got %v", item.Phone)
	}
}

func TestContactListNewestFirst(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 3; i++ {
		item, err := svc.Submit(ctx, validContact(fmt.Sprintf("Customer %d", i)))
		if err != nil {
			t.Fatalf("submit contact: %v", err)
		}
		ids = append(ids, item.ID)
	}

	if _, err := svc.List(ctx, nil); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for anonymous list, got %v", err)
	}

	items, err := svc.List(ctx, testAdmin)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(items))
	}
	for i, item := range items {
		if item.ID != ids[len(ids)-1-i] {
			t.Fatalf("position %d: expected id %d, got %d", i, ids[len(ids)-1-i], item.ID)
		}
	}

	recent, err := svc.Recent(ctx, testAdmin, 2)
	if err != nil {
		t.Fatalf("recent contacts: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != ids[2] {
		t.Fatalf("unexpected recent submissions: %#v", recent)
	}
}

func TestContactToggleTwiceRestoresState(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	item, err := svc.Submit(ctx, validContact("Jane"))
	if err != nil {
		t.Fatalf("submit contact: %v", err)
	}

	toggled, err := svc.Toggle(ctx, testAdmin, item.ID)
	if err != nil {
		t.Fatalf("toggle contact: %v", err)
	}
	if !toggled.Handled {
		t.Fatalf("expected handled after first toggle")
	}

	toggled, err = svc.Toggle(ctx, testAdmin, item.ID)
	if err != nil {
		t.Fatalf("toggle contact: %v", err)
	}
	if toggled.Handled {
		t.Fatalf("expected unhandled after second toggle")
	}

	if _, err := svc.Toggle(ctx, testAdmin, 9999); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactSetHandledAndCounts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	first, _ := svc.Submit(ctx, validContact("Jane"))
	if _, err := svc.Submit(ctx, validContact("John")); err != nil {
		t.Fatalf("submit contact: %v", err)
	}

	if _, err := svc.SetHandled(ctx, nil, first.ID, true); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	updated, err := svc.SetHandled(ctx, testAdmin, first.ID, true)
	if err != nil {
		t.Fatalf("set handled: %v", err)
	}
	if !updated.Handled {
		t.Fatalf("expected handled flag to be stored")
	}

	// 重复设置同一值仍然成功。
	if _, err := svc.SetHandled(ctx, testAdmin, first.ID, true); err != nil {
		t.Fatalf("set handled again: %v", err)
	}

	unhandled, total, err := svc.Counts(ctx, testAdmin)
	if err != nil {
		t.Fatalf("count contacts: %v", err)
	}
	if unhandled != 1 || total != 2 {
		t.Fatalf("expected 1 unhandled of 2, got %d of %d", unhandled, total)
	}

	if _, err := svc.SetHandled(ctx, testAdmin, 9999, true); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactDelete(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactService(gdb)
	ctx := context.Background()

	item, _ := svc.Submit(ctx, validContact("Jane"))

	if err := svc.Delete(ctx, nil, item.ID); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := svc.Delete(ctx, testAdmin, item.ID); err != nil {
		t.Fatalf("delete contact: %v", err)
	}
	if err := svc.Delete(ctx, testAdmin, item.ID); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}
