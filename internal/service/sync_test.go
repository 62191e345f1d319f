package service

import (
	"context"
	"errors"
	"testing"
	"time"

	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/store"
)

func newSyncFixture(t *testing.T) (*SyncService, *store.Memory, string) {
	t.Helper()
	mem := store.NewMemory()
	user, err := mem.CreateUser(context.Background(), "alice", "alice@example.com", "x", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	svc := NewSyncService(mem)
	return svc, mem, user.ID
}

func dailyTotal(t *testing.T, mem *store.Memory, userID, date string) int {
	t.Helper()
	totals, err := mem.DailyTotals(context.Background(), userID)
	if err != nil {
		t.Fatalf("DailyTotals: %v", err)
	}
	for _, d := range totals {
		if d.Date == date {
			return d.Points
		}
	}
	return 0
}

func TestUpsertObservationIdempotent(t *testing.T) {
	svc, mem, userID := newSyncFixture(t)
	ctx := context.Background()

	entry := model.SyncEntry{Date: "2026-03-10", WorkPoints: 12, DeviceFingerprint: "phone"}
	first, err := svc.UpsertObservation(ctx, userID, entry)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := svc.UpsertObservation(ctx, userID, entry)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same ledger row, got %s then %s", first.ID, second.ID)
	}
	if got := dailyTotal(t, mem, userID, "2026-03-10"); got != 12 {
		t.Fatalf("daily total = %d, want 12", got)
	}
}

func TestUpsertObservationReplacesValue(t *testing.T) {
	svc, mem, userID := newSyncFixture(t)
	ctx := context.Background()

	if _, err := svc.UpsertObservation(ctx, userID, model.SyncEntry{Date: "2026-03-10", WorkPoints: 12, DeviceFingerprint: "phone"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// La nouvelle valeur absolue remplace, elle ne s'additionne pas
	if _, err := svc.UpsertObservation(ctx, userID, model.SyncEntry{Date: "2026-03-10", WorkPoints: 7, DeviceFingerprint: "phone"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if got := dailyTotal(t, mem, userID, "2026-03-10"); got != 7 {
		t.Fatalf("daily total = %d, want 7", got)
	}
}

func TestDeviceSummation(t *testing.T) {
	svc, mem, userID := newSyncFixture(t)
	ctx := context.Background()

	if _, err := svc.UpsertObservation(ctx, userID, model.SyncEntry{Date: "2026-03-10", WorkPoints: 5, DeviceFingerprint: "phone"}); err != nil {
		t.Fatalf("upsert phone: %v", err)
	}
	if _, err := svc.UpsertObservation(ctx, userID, model.SyncEntry{Date: "2026-03-10", WorkPoints: 7, DeviceFingerprint: "laptop"}); err != nil {
		t.Fatalf("upsert laptop: %v", err)
	}

	if got := dailyTotal(t, mem, userID, "2026-03-10"); got != 12 {
		t.Fatalf("daily total = %d, want 12", got)
	}
}

func TestBulkUpsertIdempotent(t *testing.T) {
	svc, mem, userID := newSyncFixture(t)
	ctx := context.Background()

	entries := []model.SyncEntry{
		{Date: "2026-03-09", WorkPoints: 3, DeviceFingerprint: "phone"},
		{Date: "2026-03-10", WorkPoints: 8, DeviceFingerprint: "phone"},
	}

	if _, err := svc.BulkUpsert(ctx, userID, "test-agent", entries); err != nil {
		t.Fatalf("first bulk: %v", err)
	}
	if _, err := svc.BulkUpsert(ctx, userID, "test-agent", entries); err != nil {
		t.Fatalf("second bulk: %v", err)
	}

	if got := dailyTotal(t, mem, userID, "2026-03-09"); got != 3 {
		t.Fatalf("daily total 03-09 = %d, want 3", got)
	}
	if got := dailyTotal(t, mem, userID, "2026-03-10"); got != 8 {
		t.Fatalf("daily total 03-10 = %d, want 8", got)
	}
}

func TestBulkUpsertFallbackFingerprintPerCall(t *testing.T) {
	svc, mem, userID := newSyncFixture(t)
	ctx := context.Background()

	// Deux appels sans fingerprint à des instants différents : chacun reçoit
	// son propre compartiment, les totaux s'additionnent au lieu de se remplacer
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if _, err := svc.BulkUpsert(ctx, userID, "agent-a", []model.SyncEntry{{Date: "2026-03-10", WorkPoints: 5}}); err != nil {
		t.Fatalf("first bulk: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Minute) }
	if _, err := svc.BulkUpsert(ctx, userID, "agent-a", []model.SyncEntry{{Date: "2026-03-10", WorkPoints: 7}}); err != nil {
		t.Fatalf("second bulk: %v", err)
	}

	if got := dailyTotal(t, mem, userID, "2026-03-10"); got != 12 {
		t.Fatalf("daily total = %d, want 12", got)
	}
}

func TestUpsertObservationValidation(t *testing.T) {
	svc, _, userID := newSyncFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		userID string
		entry  model.SyncEntry
	}{
		{"empty user", "", model.SyncEntry{Date: "2026-03-10", WorkPoints: 1, DeviceFingerprint: "phone"}},
		{"empty date", userID, model.SyncEntry{WorkPoints: 1, DeviceFingerprint: "phone"}},
		{"bad date", userID, model.SyncEntry{Date: "10/03/2026", WorkPoints: 1, DeviceFingerprint: "phone"}},
		{"empty fingerprint", userID, model.SyncEntry{Date: "2026-03-10", WorkPoints: 1}},
		{"negative points", userID, model.SyncEntry{Date: "2026-03-10", WorkPoints: -1, DeviceFingerprint: "phone"}},
	}

	for _, tc := range cases {
		_, err := svc.UpsertObservation(ctx, tc.userID, tc.entry)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestBulkUpsertNoPartialWrite(t *testing.T) {
	svc, mem, userID := newSyncFixture(t)
	ctx := context.Background()

	entries := []model.SyncEntry{
		{Date: "2026-03-10", WorkPoints: 5, DeviceFingerprint: "phone"},
		{Date: "2026-03-11", WorkPoints: -2, DeviceFingerprint: "phone"},
	}

	if _, err := svc.BulkUpsert(ctx, userID, "test-agent", entries); err == nil {
		t.Fatal("expected validation error")
	}

	// L'entrée invalide doit empêcher toute écriture du lot
	totals, err := mem.DailyTotals(ctx, userID)
	if err != nil {
		t.Fatalf("DailyTotals: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("ledger not empty after rejected bulk: %v", totals)
	}
}

func TestBulkUpsertEmptyEntries(t *testing.T) {
	svc, _, userID := newSyncFixture(t)

	_, err := svc.BulkUpsert(context.Background(), userID, "test-agent", nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
