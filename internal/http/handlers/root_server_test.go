package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bmlt-tools/snapshot-server/internal/data/repos"
	"github.com/bmlt-tools/snapshot-server/internal/data/repos/testutil"
	httpx "github.com/bmlt-tools/snapshot-server/internal/http"
	httpH "github.com/bmlt-tools/snapshot-server/internal/http/handlers"
)

type apiFixture struct {
	router      *gin.Engine
	rootServers repos.RootServerRepo
	snapshots   repos.SnapshotRepo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	rootServers := repos.NewRootServerRepo(gdb, log)
	snapshots := repos.NewSnapshotRepo(gdb, log)

	router := httpx.NewRouter(httpx.RouterConfig{
		HealthHandler:     httpH.NewHealthHandler(),
		RootServerHandler: httpH.NewRootServerHandler(log, rootServers, snapshots),
	})
	return &apiFixture{router: router, rootServers: rootServers, snapshots: snapshots}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) createServer(t *testing.T, name, url string) uuid.UUID {
	t.Helper()
	w := f.do(t, http.MethodPost, "/rootservers", `{"name": "`+name+`", "url": "`+url+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var row struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	t.Cleanup(func() {
		_, _ = f.rootServers.Delete(context.Background(), nil, row.ID)
	})
	return row.ID
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t)
	w := f.do(t, http.MethodGet, "/healthcheck", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateRootServer(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/rootservers", `{"name": "Test Region", "url": "https://bmlt.example.org/main_server"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var row struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
		URL  string    `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode: %v", err)
	}
	t.Cleanup(func() {
		_, _ = f.rootServers.Delete(context.Background(), nil, row.ID)
	})
	if row.Name != "Test Region" {
		t.Fatalf("unexpected name: %q", row.Name)
	}
	if row.URL != "https://bmlt.example.org/main_server/" {
		t.Fatalf("url should gain a trailing slash, got %q", row.URL)
	}
}

func TestCreateRootServerValidation(t *testing.T) {
	f := newAPIFixture(t)

	cases := map[string]string{
		"missing name": `{"url": "https://bmlt.example.org/"}`,
		"missing url":  `{"name": "Region"}`,
		"bad url":      `{"name": "Region", "url": "not-a-url"}`,
		"not json":     `name=Region`,
	}
	for name, body := range cases {
		w := f.do(t, http.MethodPost, "/rootservers", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, w.Code)
		}
	}
}

func TestGetRootServer(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createServer(t, "Get Region", "https://bmlt.example.org/")

	w := f.do(t, http.MethodGet, "/rootservers/"+id.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if w := f.do(t, http.MethodGet, "/rootservers/not-a-uuid", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/rootservers/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown id, got %d", w.Code)
	}
}

func TestListRootServers(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createServer(t, "List Region", "https://bmlt.example.org/")

	w := f.do(t, http.MethodGet, "/rootservers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		RootServers []struct {
			ID uuid.UUID `json:"id"`
		} `json:"root_servers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, row := range body.RootServers {
		if row.ID == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("created server missing from listing")
	}
}

func TestDeleteRootServer(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createServer(t, "Doomed Region", "https://bmlt.example.org/")

	if w := f.do(t, http.MethodDelete, "/rootservers/"+id.String(), ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := f.do(t, http.MethodDelete, "/rootservers/"+id.String(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", w.Code)
	}
}

func TestListSnapshots(t *testing.T) {
	f := newAPIFixture(t)
	id := f.createServer(t, "Snap Region", "https://bmlt.example.org/")

	snap, err := f.snapshots.Create(context.Background(), nil, id)
	if err != nil {
		t.Fatalf("create snapshot: %v", err)
	}

	w := f.do(t, http.MethodGet, "/rootservers/"+id.String()+"/snapshots", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Snapshots []struct {
			ID           uuid.UUID `json:"id"`
			RootServerID uuid.UUID `json:"root_server_id"`
		} `json:"snapshots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Snapshots) != 1 || body.Snapshots[0].ID != snap.ID || body.Snapshots[0].RootServerID != id {
		t.Fatalf("unexpected snapshots: %+v", body.Snapshots)
	}

	if w := f.do(t, http.MethodGet, "/rootservers/"+uuid.NewString()+"/snapshots", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown server, got %d", w.Code)
	}
}
