package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"regimen-tracker/internal/middleware"
	"regimen-tracker/internal/router"
)

type checkResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    []struct {
		ItemIDs  [2]string `json:"item_ids"`
		Severity string    `json:"severity"`
		Items    [2]struct {
			Name string `json:"name"`
		} `json:"items"`
	} `json:"data"`
}

func TestHTTP_EndToEnd_CheckSaveAndDiscuss(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"

	// 1) Owner registra paciente
	patientID := createPatient(t, ts.URL, ownerID, map[string]any{
		"name":           "Ana",
		"relationship":   "mother",
		"diagnosis":      "Breast cancer",
		"diagnosis_tags": []string{"oncology"},
	})

	// 2) Régimen: Tamoxifen, St. John's Wort, Calcium, Iron (en ese orden)
	tam := addItem(t, ts.URL, ownerID, patientID, "Tamoxifen", "medication")
	sjw := addItem(t, ts.URL, ownerID, patientID, "St. John's Wort", "supplement")
	cal := addItem(t, ts.URL, ownerID, patientID, "Calcium", "supplement")
	iron := addItem(t, ts.URL, ownerID, patientID, "Iron", "supplement")

	// 3) Chequeo: más recientes primero => [iron, calcium] low, [sjw, tamoxifen] high
	res := check(t, ts.URL, ownerID, patientID)
	if len(res.Data) != 2 {
		t.Fatalf("expected 2 interactions, got %+v", res.Data)
	}
	if res.Data[0].Severity != "low" || res.Data[0].ItemIDs != [2]string{iron, cal} {
		t.Fatalf("unexpected first interaction %+v", res.Data[0])
	}
	if res.Data[1].Severity != "high" || res.Data[1].ItemIDs != [2]string{sjw, tam} {
		t.Fatalf("unexpected second interaction %+v", res.Data[1])
	}
	if res.Data[1].Items[1].Name != "Tamoxifen" {
		t.Fatalf("expected embedded item names, got %+v", res.Data[1].Items)
	}

	// 4) Guardar la interacción high
	var interactionID string
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/interactions", ownerID, map[string]any{
			"item_ids": []string{sjw, tam},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 save interaction, got %d body=%s", st, string(body))
		}
		var out struct {
			Success bool `json:"success"`
			Data    struct {
				ID       string `json:"id"`
				Severity string `json:"severity"`
				Sources  []any  `json:"sources"`
			} `json:"data"`
		}
		mustUnmarshal(t, body, &out)
		if !out.Success || out.Data.ID == "" || out.Data.Severity != "high" || len(out.Data.Sources) == 0 {
			t.Fatalf("unexpected save response %s", string(body))
		}
		interactionID = out.Data.ID
	}

	// 5) Un par que no interactúa => 422
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/interactions", ownerID, map[string]any{
			"item_ids": []string{tam, iron},
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for non interacting pair, got %d body=%s", st, string(body))
		}
	}

	// 6) Marcar como conversada con el médico
	{
		st, body := doReq(t, ts.URL, "PATCH", "/patients/"+patientID+"/interactions/"+interactionID, ownerID, map[string]any{
			"discussed_with_clinician": true,
			"discussion_notes":         "Dr. Lee: stop St. John's Wort",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch interaction, got %d body=%s", st, string(body))
		}
		var out map[string]any
		mustUnmarshal(t, body, &out)
		if out["discussed_with_clinician"] != true || out["discussion_notes"] != "Dr. Lee: stop St. John's Wort" {
			t.Fatalf("unexpected patch response %s", string(body))
		}
	}

	// 7) Listado de guardadas
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/interactions", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list interactions, got %d body=%s", st, string(body))
		}
		var out []map[string]any
		mustUnmarshal(t, body, &out)
		if len(out) != 1 {
			t.Fatalf("expected 1 saved interaction, got %d", len(out))
		}
	}

	// 8) Desactivar St. John's Wort => solo queda la low
	{
		st, body := doReq(t, ts.URL, "PATCH", "/patients/"+patientID+"/regimen/"+sjw, ownerID, map[string]any{
			"is_active": false,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 deactivate item, got %d body=%s", st, string(body))
		}
		res := check(t, ts.URL, ownerID, patientID)
		if len(res.Data) != 1 || res.Data[0].Severity != "low" {
			t.Fatalf("expected only the low interaction, got %+v", res.Data)
		}
	}

	// 9) Dashboard del owner
	{
		st, body := doReq(t, ts.URL, "GET", "/me/dashboard", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var out struct {
			Patients       int            `json:"patients"`
			ActiveRegimens int            `json:"active_regimens"`
			Interactions   int            `json:"interactions"`
			BySeverity     map[string]int `json:"by_severity"`
			Failed         int            `json:"failed"`
		}
		mustUnmarshal(t, body, &out)
		if out.Patients != 1 || out.ActiveRegimens != 3 || out.Interactions != 1 || out.BySeverity["low"] != 1 || out.BySeverity["high"] != 0 {
			t.Fatalf("unexpected dashboard %s", string(body))
		}
	}

	// 10) Borrar paciente arrastra régimen e interacciones
	{
		st, body := doReq(t, ts.URL, "DELETE", "/patients/"+patientID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete patient, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "GET", "/patients/"+patientID+"/interactions/check", ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, body = doReq(t, ts.URL, "GET", "/me/dashboard", ownerID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"patients":0`) {
			t.Fatalf("expected empty dashboard after delete, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Check_EmptyRegimen(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	patientID := createPatient(t, ts.URL, "owner-1", map[string]any{"name": "Ana"})
	addItem(t, ts.URL, "owner-1", patientID, "Warfarin", "medication")

	res := check(t, ts.URL, "owner-1", patientID)
	if !res.Success || res.Data == nil || len(res.Data) != 0 {
		t.Fatalf("expected empty successful result, got %+v", res)
	}
}

func TestHTTP_AuthAndOwnership(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	patientID := createPatient(t, ts.URL, "owner-1", map[string]any{"name": "Ana"})

	cases := []struct {
		name   string
		method string
		path   string
		user   string
		want   int
	}{
		{"no user check", "GET", "/patients/" + patientID + "/interactions/check", "", http.StatusUnauthorized},
		{"no user patients", "GET", "/patients", "", http.StatusUnauthorized},
		{"other user check", "GET", "/patients/" + patientID + "/interactions/check", "intruder", http.StatusForbidden},
		{"other user regimen", "GET", "/patients/" + patientID + "/regimen", "intruder", http.StatusForbidden},
		{"other user patient", "GET", "/patients/" + patientID, "intruder", http.StatusForbidden},
		{"missing patient", "GET", "/patients/missing/interactions/check", "owner-1", http.StatusNotFound},
		{"no user dashboard", "GET", "/me/dashboard", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		st, body := doReq(t, ts.URL, tc.method, tc.path, tc.user, nil)
		if st != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, st, string(body))
		}
	}
}

func TestHTTP_SeverityDisplay(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	cases := map[string]string{
		"high":     "High Priority",
		"moderate": "Moderate",
		"low":      "Low",
		"bogus":    "Unknown",
		"":         "Unknown",
	}
	for sev, label := range cases {
		st, body := doReq(t, ts.URL, "GET", "/severity-display?severity="+sev, "", nil)
		if st != http.StatusOK {
			t.Fatalf("severity %q: expected 200, got %d", sev, st)
		}
		var out map[string]any
		mustUnmarshal(t, body, &out)
		if out["label"] != label {
			t.Fatalf("severity %q: expected label %q, got %v", sev, label, out["label"])
		}
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "http_request_total") {
		t.Fatalf("expected prometheus metrics, got %d", st)
	}
}

func TestHTTP_RateLimitAndBodyLimit(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier:   nil,
		RateLimiter:    middleware.NewRateLimiter(0.001, 2),
		MaxRequestBody: 64,
	}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/patients", "owner-1", map[string]any{
		"name":  "Ana",
		"notes": strings.Repeat("x", 200),
	})
	if st != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized body, got %d", st)
	}

	// Capacidad 2: dos requests pasan, el tercero no.
	for i := 0; i < 2; i++ {
		st, _ = doReq(t, ts.URL, "GET", "/patients", "owner-1", nil)
		if st != http.StatusOK {
			t.Fatalf("request %d: expected 200 within bucket, got %d", i, st)
		}
	}
	st, _ = doReq(t, ts.URL, "GET", "/patients", "owner-1", nil)
	if st != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the bucket is empty, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("health must bypass the rate limit, got %d", st)
	}
}

func createPatient(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create patient, got %d body=%s", st, string(body))
	}

	var out map[string]any
	mustUnmarshal(t, body, &out)
	id, _ := out["id"].(string)
	if id == "" {
		t.Fatalf("expected patient id in response, body=%s", string(body))
	}
	return id
}

func addItem(t *testing.T, baseURL, userID, patientID, name, category string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients/"+patientID+"/regimen", userID, map[string]any{
		"name":     name,
		"category": category,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 add item %q, got %d body=%s", name, st, string(body))
	}

	var out map[string]any
	mustUnmarshal(t, body, &out)
	id, _ := out["id"].(string)
	if id == "" {
		t.Fatalf("expected item id in response, body=%s", string(body))
	}
	return id
}

func check(t *testing.T, baseURL, userID, patientID string) checkResult {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/patients/"+patientID+"/interactions/check", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 check, got %d body=%s", st, string(body))
	}
	var out checkResult
	mustUnmarshal(t, body, &out)
	if !out.Success {
		t.Fatalf("expected success result, got %s", string(body))
	}
	return out
}

func mustUnmarshal(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(b))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set(middleware.DebugUserHeader, debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
