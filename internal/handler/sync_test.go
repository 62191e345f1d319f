package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WordPulse/WordPulse-backend/internal/middleware"
	model "github.com/WordPulse/WordPulse-backend/internal/models"
	"github.com/WordPulse/WordPulse-backend/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Error   string          `json:"error"`
}

func setupHandlers(t *testing.T) (*store.Memory, model.UserProfile) {
	t.Helper()
	mem := store.NewMemory()
	user, err := mem.CreateUser(context.Background(), "Nina", "nina@example.com", "hash", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	Init(mem)
	return mem, *user
}

func doSync(t *testing.T, user model.UserProfile, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/workpoints/sync", strings.NewReader(body))
	req = middleware.WithUser(req, user)
	rec := httptest.NewRecorder()
	SyncWorkPoints(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return rec, env
}

func TestSyncWorkPointsSingle(t *testing.T) {
	_, user := setupHandlers(t)

	rec, env := doSync(t, user, `{"date":"2026-03-10","workPoints":6,"deviceFingerprint":"phone"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !env.Success {
		t.Fatalf("success = false, error %q", env.Error)
	}

	// Variante simple : l'objet sauvegardé, pas un tableau
	var saved model.WorkPointEntry
	if err := json.Unmarshal(env.Data, &saved); err != nil {
		t.Fatalf("data is not a single entry: %v", err)
	}
	if saved.WorkPoints != 6 || saved.StudyDate != "2026-03-10" || saved.DeviceFingerprint != "phone" {
		t.Fatalf("unexpected saved entry: %+v", saved)
	}
}

func TestSyncWorkPointsBulk(t *testing.T) {
	_, user := setupHandlers(t)

	body := `{"entries":[
		{"date":"2026-03-09","workPoints":4,"deviceFingerprint":"phone"},
		{"date":"2026-03-10","workPoints":7,"deviceFingerprint":"laptop"}
	]}`
	rec, env := doSync(t, user, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Variante lot : un tableau, dans l'ordre de la requête
	var saved []model.WorkPointEntry
	if err := json.Unmarshal(env.Data, &saved); err != nil {
		t.Fatalf("data is not an entry list: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("len(saved) = %d, want 2", len(saved))
	}
	if saved[0].StudyDate != "2026-03-09" || saved[1].StudyDate != "2026-03-10" {
		t.Fatalf("entries out of request order: %+v", saved)
	}
}

func TestSyncWorkPointsMixedBody(t *testing.T) {
	_, user := setupHandlers(t)

	rec, env := doSync(t, user, `{"date":"2026-03-10","workPoints":6,"entries":[{"date":"2026-03-10","workPoints":3}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", env.Code)
	}
}

func TestSyncWorkPointsMissingPoints(t *testing.T) {
	_, user := setupHandlers(t)

	rec, env := doSync(t, user, `{"date":"2026-03-10","deviceFingerprint":"phone"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Code != "VALIDATION_ERROR" {
		t.Fatalf("code = %q, want VALIDATION_ERROR", env.Code)
	}
}

func TestSyncWorkPointsInvalidJSON(t *testing.T) {
	_, user := setupHandlers(t)

	rec, _ := doSync(t, user, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSyncWorkPointsNoUser(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/workpoints/sync", strings.NewReader(`{"workPoints":1}`))
	rec := httptest.NewRecorder()
	SyncWorkPoints(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHeartbeatRateLimited(t *testing.T) {
	mem, user := setupHandlers(t)

	t0 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	mem.Now = func() time.Time { return t0 }

	ping := func() (*httptest.ResponseRecorder, envelope) {
		req := httptest.NewRequest(http.MethodPost, "/workpoints/heartbeat", nil)
		req = middleware.WithUser(req, user)
		rec := httptest.NewRecorder()
		Heartbeat(rec, req)

		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		return rec, env
	}

	rec, env := ping()
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("first heartbeat: status %d success %v", rec.Code, env.Success)
	}
	var res model.HeartbeatResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !res.Accepted || res.TotalWorkPoints != 1 {
		t.Fatalf("first heartbeat result: %+v", res)
	}

	// Second ping dans la fenêtre : 429, pas une 500
	mem.Now = func() time.Time { return t0.Add(time.Second) }
	rec, env = ping()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second heartbeat: status = %d, want 429", rec.Code)
	}
	if env.Success {
		t.Fatal("second heartbeat: success = true")
	}
	if env.Code != "RATE_LIMITED" {
		t.Fatalf("code = %q, want RATE_LIMITED", env.Code)
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Accepted || res.RetryInSeconds != 58 {
		t.Fatalf("rejection result: %+v", res)
	}

	// La fenêtre écoulée (borne inclusive), le ping repasse
	mem.Now = func() time.Time { return t0.Add(store.Cooldown) }
	rec, env = ping()
	if rec.Code != http.StatusOK {
		t.Fatalf("third heartbeat: status = %d, want 200", rec.Code)
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.TotalWorkPoints != 2 {
		t.Fatalf("TotalWorkPoints = %d, want 2", res.TotalWorkPoints)
	}
}
