package store

import (
	"context"
	"testing"
	"time"
)

func TestSessionCreate(t *testing.T) {
	db := setupTestDB(t)
	ss, us := NewSessionStore(db), NewUserStore(db)
	ctx := context.Background()

	u, err := us.Create(ctx, "Anna", "FAM123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	sess, err := ss.Create(ctx, u.ID, time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 { // 32 bytes hex-encoded
		t.Errorf("token length = %d, want 64", len(sess.Token))
	}
	if sess.UserID != u.ID {
		t.Errorf("user_id = %d, want %d", sess.UserID, u.ID)
	}
}

func TestSessionGetByToken(t *testing.T) {
	db := setupTestDB(t)
	ss, us := NewSessionStore(db), NewUserStore(db)
	ctx := context.Background()

	u, _ := us.Create(ctx, "Anna", "FAM123")
	created, _ := ss.Create(ctx, u.ID, time.Hour)

	sess, err := ss.GetByToken(ctx, created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.ID != created.ID {
		t.Errorf("id = %d, want %d", sess.ID, created.ID)
	}

	missing, err := ss.GetByToken(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestSessionExpired(t *testing.T) {
	db := setupTestDB(t)
	ss, us := NewSessionStore(db), NewUserStore(db)
	ctx := context.Background()

	u, _ := us.Create(ctx, "Anna", "FAM123")
	expired, _ := ss.Create(ctx, u.ID, -time.Minute)
	live, _ := ss.Create(ctx, u.ID, time.Hour)

	got, err := ss.GetByToken(ctx, expired.Token)
	if err != nil {
		t.Fatalf("get expired: %v", err)
	}
	if got != nil {
		t.Error("expected nil for expired session")
	}

	n, err := ss.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if got, _ := ss.GetByToken(ctx, live.Token); got == nil {
		t.Error("live session should survive cleanup")
	}
}

func TestSessionDelete(t *testing.T) {
	db := setupTestDB(t)
	ss, us := NewSessionStore(db), NewUserStore(db)
	ctx := context.Background()

	u, _ := us.Create(ctx, "Anna", "FAM123")
	sess, _ := ss.Create(ctx, u.ID, time.Hour)

	if err := ss.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := ss.GetByToken(ctx, sess.Token); got != nil {
		t.Error("expected nil after delete")
	}
}
