package auth

import (
	"context"
	"testing"
)

func TestWithSessionAndFromContext(t *testing.T) {
	s := Session{
		UserID:     1,
		UserName:   "Anna",
		FamilyCode: "FAM123",
		SessionID:  3,
	}

	ctx := WithSession(context.Background(), s)
	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("expected Session in context")
	}
	if got != s {
		t.Errorf("session = %+v, want %+v", got, s)
	}
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	if ok {
		t.Error("expected false for missing Session")
	}
}

func TestFamilyCode(t *testing.T) {
	ctx := WithSession(context.Background(), Session{FamilyCode: "FAM123"})
	if FamilyCode(ctx) != "FAM123" {
		t.Errorf("FamilyCode = %q, want %q", FamilyCode(ctx), "FAM123")
	}
	if FamilyCode(context.Background()) != "" {
		t.Error("expected empty family code for missing context")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		s    Session
		want bool
	}{
		{Session{UserName: "Anna", FamilyCode: "FAM123"}, true},
		{Session{UserName: "Anna"}, false},
		{Session{FamilyCode: "FAM123"}, false},
		{Session{}, false},
	}
	for _, tt := range tests {
		if got := tt.s.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.s, got, tt.want)
		}
	}
}
