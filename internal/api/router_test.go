package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	logrus "github.com/sirupsen/logrus"

	"route-plan-service/internal/adapters/kvstore"
	"route-plan-service/internal/adapters/repositories"
	"route-plan-service/internal/auth"
	"route-plan-service/internal/domain"
)

type testAPI struct {
	ts         *httptest.Server
	adminToken string
	goldToken  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	authSvc, err := auth.NewService()
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	gateway := repositories.NewGateway(kvstore.NewMemoryStore(), log)
	router := NewRouter(RouterDeps{
		Plans:       gateway,
		Technicians: gateway,
		Vehicles:    gateway,
		Auth:        authSvc,
		RegionName:  func(id string) string { return id },
	})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	a := &testAPI{ts: ts}
	a.adminToken = a.login(t, "admin", "admin")
	a.goldToken = a.login(t, "gold", "gold")
	return a
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	res, err := http.Post(a.ts.URL+"/login", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", res.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func (a *testAPI) do(t *testing.T, token, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, a.ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	defer res.Body.Close()

	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestAuthGates(t *testing.T) {
	a := newTestAPI(t)

	res := a.do(t, "", http.MethodGet, "/plans", "")
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", res.StatusCode)
	}

	res = a.do(t, a.goldToken, http.MethodPost, "/plans/MG/groups", `{"name":"NORTE"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("viewer mutation: status = %d, want 403", res.StatusCode)
	}

	res = a.do(t, a.goldToken, http.MethodGet, "/plans", "")
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("viewer read: status = %d, want 200", res.StatusCode)
	}
}

func TestPlanRowLifecycle(t *testing.T) {
	a := newTestAPI(t)

	res := a.do(t, a.adminToken, http.MethodPost, "/plans/MG/groups", `{"name":"NORTE"}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("insert group: status = %d", res.StatusCode)
	}
	group := decodeBody[struct {
		ID string `json:"id"`
	}](t, res)

	res = a.do(t, a.adminToken, http.MethodPost, "/plans/MG/routes",
		fmt.Sprintf(`{"name":"BETIM","afterGroupId":%q}`, group.ID))
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("insert route: status = %d", res.StatusCode)
	}
	route := decodeBody[struct {
		ID string `json:"id"`
	}](t, res)

	res = a.do(t, a.adminToken, http.MethodPut,
		"/plans/MG/routes/"+route.ID+"/assignments/2026-05-04", `{"technicianIds":["t1"]}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("set assignment: status = %d", res.StatusCode)
	}

	res = a.do(t, a.adminToken, http.MethodPut,
		"/plans/MG/routes/"+route.ID+"/weeks/2026-19", `{"field":"tools","value":"escada"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("set weekly field: status = %d", res.StatusCode)
	}

	res = a.do(t, a.adminToken, http.MethodGet, "/plans/MG", "")
	plan := decodeBody[domain.Plan](t, res)
	if len(plan) != 2 {
		t.Fatalf("plan rows = %d, want 2", len(plan))
	}
	routeRow, _ := plan.FindRow(route.ID)
	if routeRow.GroupID != group.ID {
		t.Errorf("route groupId = %q, want %q", routeRow.GroupID, group.ID)
	}
	if got := routeRow.AssignmentFor("2026-05-04").TechnicianIDs; len(got) != 1 || got[0] != "t1" {
		t.Errorf("assignment = %v", got)
	}
	if routeRow.WeeklyRecordFor("2026-19").Tools != "escada" {
		t.Errorf("weekly record = %+v", routeRow.WeeklyRecordFor("2026-19"))
	}

	// Visibility filter: active in week 19, empty result one week later.
	res = a.do(t, a.adminToken, http.MethodGet, "/plans/MG?week=2026-05-06", "")
	filtered := decodeBody[domain.Plan](t, res)
	if len(filtered) != 2 {
		t.Errorf("filtered rows = %d, want group + route", len(filtered))
	}
	res = a.do(t, a.adminToken, http.MethodGet, "/plans/MG?week=2026-05-13", "")
	filtered = decodeBody[domain.Plan](t, res)
	if len(filtered) != 0 {
		t.Errorf("off-week rows = %d, want 0", len(filtered))
	}

	// Deleting the group detaches the member but keeps it.
	res = a.do(t, a.adminToken, http.MethodDelete, "/plans/MG/rows/"+group.ID, "")
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete group: status = %d", res.StatusCode)
	}
	res = a.do(t, a.adminToken, http.MethodGet, "/plans/MG", "")
	plan = decodeBody[domain.Plan](t, res)
	if len(plan) != 1 || !plan[0].IsRoute() || plan[0].GroupID != "" {
		t.Errorf("plan after group delete = %+v", plan)
	}
}

func TestReplaceTechniciansPrunesAssignments(t *testing.T) {
	a := newTestAPI(t)

	res := a.do(t, a.adminToken, http.MethodPut, "/technicians",
		`{"items":[{"id":"t1","name":"Carlos"},{"id":"t2","name":"Ana"}]}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("seed technicians: status = %d", res.StatusCode)
	}

	res = a.do(t, a.adminToken, http.MethodPost, "/plans/MG/routes", `{"name":"BETIM"}`)
	route := decodeBody[struct {
		ID string `json:"id"`
	}](t, res)
	res = a.do(t, a.adminToken, http.MethodPut,
		"/plans/MG/routes/"+route.ID+"/assignments/2026-05-04", `{"technicianIds":["t1","t2"]}`)
	res.Body.Close()

	// Dropping t1 from the list cascades into the stored plan.
	res = a.do(t, a.adminToken, http.MethodPut, "/technicians",
		`{"items":[{"id":"t2","name":"Ana"}]}`)
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("replace technicians: status = %d", res.StatusCode)
	}

	res = a.do(t, a.adminToken, http.MethodGet, "/plans/MG", "")
	plan := decodeBody[domain.Plan](t, res)
	row, _ := plan.FindRow(route.ID)
	got := row.AssignmentFor("2026-05-04").TechnicianIDs
	if len(got) != 1 || got[0] != "t2" {
		t.Errorf("assignment after prune = %v, want [t2]", got)
	}
}

func TestWeeklyReportEndpoint(t *testing.T) {
	a := newTestAPI(t)

	res := a.do(t, a.adminToken, http.MethodPost, "/plans/MG/routes", `{"name":"BETIM"}`)
	route := decodeBody[struct {
		ID string `json:"id"`
	}](t, res)
	res = a.do(t, a.adminToken, http.MethodPut,
		"/plans/MG/routes/"+route.ID+"/assignments/2026-05-04", `{"technicianIds":["t9"]}`)
	res.Body.Close()

	res = a.do(t, a.adminToken, http.MethodGet, "/reports/weekly?region=MG&date=2026-05-06", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("weekly report: status = %d", res.StatusCode)
	}
	grid := decodeBody[struct {
		WeekKey string `json:"weekKey"`
		Rows    []struct {
			Name string   `json:"name"`
			Days []string `json:"days"`
		} `json:"rows"`
	}](t, res)

	if grid.WeekKey != "2026-19" {
		t.Errorf("weekKey = %q", grid.WeekKey)
	}
	if len(grid.Rows) != 1 || grid.Rows[0].Days[0] != "t9" {
		t.Errorf("rows = %+v, want raw-id fallback in Monday cell", grid.Rows)
	}

	res = a.do(t, a.adminToken, http.MethodGet, "/reports/weekly?date=2026-05-06", "")
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing region: status = %d, want 400", res.StatusCode)
	}
}

func TestReportNavStepsReferencePeriod(t *testing.T) {
	a := newTestAPI(t)

	weekKey := func(query string) string {
		res := a.do(t, a.adminToken, http.MethodGet, "/reports/weekly?region=MG&"+query, "")
		if res.StatusCode != http.StatusOK {
			t.Fatalf("weekly report %q: status = %d", query, res.StatusCode)
		}
		grid := decodeBody[struct {
			WeekKey string `json:"weekKey"`
		}](t, res)
		return grid.WeekKey
	}

	if got := weekKey("date=2026-05-06&nav=next"); got != "2026-20" {
		t.Errorf("nav=next weekKey = %q, want 2026-20", got)
	}
	if got := weekKey("date=2026-05-06&nav=prev"); got != "2026-18" {
		t.Errorf("nav=prev weekKey = %q, want 2026-18", got)
	}

	res := a.do(t, a.adminToken, http.MethodGet, "/reports/weekly?region=MG&date=2026-05-06&nav=sideways", "")
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("bad nav: status = %d, want 400", res.StatusCode)
	}
}

func TestCreateIdentityEndpoints(t *testing.T) {
	a := newTestAPI(t)

	res := a.do(t, a.adminToken, http.MethodPost, "/technicians", `{"name":"CÉLIO BATALHA"}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create technician: status = %d", res.StatusCode)
	}
	created := decodeBody[struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}](t, res)
	if created.ID == "" || created.ID[0] != 't' {
		t.Errorf("technician id = %q, want server-generated t-prefixed id", created.ID)
	}

	res = a.do(t, a.adminToken, http.MethodGet, "/technicians", "")
	list := decodeBody[struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}](t, res)
	if len(list.Items) != 1 || list.Items[0].ID != created.ID {
		t.Errorf("technicians = %+v, want the created one", list.Items)
	}

	res = a.do(t, a.adminToken, http.MethodPost, "/vehicles", `{"name":"HB20"}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create vehicle: status = %d", res.StatusCode)
	}
	vehicle := decodeBody[struct {
		ID string `json:"id"`
	}](t, res)
	if vehicle.ID == "" || vehicle.ID[0] != 'v' {
		t.Errorf("vehicle id = %q, want server-generated v-prefixed id", vehicle.ID)
	}

	res = a.do(t, a.adminToken, http.MethodPost, "/technicians", `{"name":"  "}`)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("blank name: status = %d, want 400", res.StatusCode)
	}

	res = a.do(t, a.goldToken, http.MethodPost, "/technicians", `{"name":"X"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("viewer create: status = %d, want 403", res.StatusCode)
	}
}
