package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"atlas/internal/app/bootstrap"
)

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T) (*httptest.Server, func() *client) {
	t.Helper()
	api := bootstrap.BuildMemoryAPI(nil)
	server := httptest.NewServer(api.Server.Handler())
	t.Cleanup(server.Close)

	return server, func() *client {
		jar, err := cookiejar.New(nil)
		if err != nil {
			t.Fatalf("cookie jar: %v", err)
		}
		return &client{t: t, base: server.URL, http: &http.Client{Jar: jar}}
	}
}

func (c *client) do(method, path string, body any) (*http.Response, map[string]any) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (c *client) doList(method, path string) (*http.Response, []map[string]any) {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, nil)
	if err != nil {
		c.t.Fatalf("build request: %v", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (c *client) register(username, company string) map[string]any {
	c.t.Helper()
	resp, body := c.do("POST", "/api/auth/register", map[string]any{
		"username":    username,
		"password":    "s3cret-pass",
		"companyName": company,
	})
	if resp.StatusCode != http.StatusCreated {
		c.t.Fatalf("register %s: status %d body %v", username, resp.StatusCode, body)
	}
	return body
}

func TestRegisterSetsSessionCookieAndHidesToken(t *testing.T) {
	_, newClient := newTestServer(t)
	c := newClient()

	resp, body := c.do("POST", "/api/auth/register", map[string]any{
		"username":    "alice",
		"password":    "s3cret-pass",
		"companyName": "Acme",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d body %v", resp.StatusCode, body)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "atlas_session" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("register should set the session cookie")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be httpOnly")
	}
	if _, exposed := body["token"]; exposed {
		t.Fatalf("session token must not appear in the response body")
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected register body %v", body)
	}
	if _, exposed := user["passwordHash"]; exposed {
		t.Fatalf("password hash must never leave the server")
	}
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	_, newClient := newTestServer(t)
	c := newClient()

	resp, _ := c.do("GET", "/api/objects", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", resp.StatusCode)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	_, newClient := newTestServer(t)
	c := newClient()
	c.register("alice", "Acme")

	resp, body := newClient().do("POST", "/api/auth/login", map[string]any{
		"username": "alice",
		"password": "wrong-pass",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if body["message"] != "invalid credentials" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestObjectLifecycleWithinCompany(t *testing.T) {
	_, newClient := newTestServer(t)
	alice := newClient()
	alice.register("alice", "Acme")

	resp, created := alice.do("POST", "/api/objects", map[string]any{
		"name": "Globex deal",
		"type": "Lead",
		"fields": map[string]any{
			"value": 5000,
			"city":  "Paris",
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create object: status %d body %v", resp.StatusCode, created)
	}
	objectID, _ := created["id"].(string)
	if objectID == "" {
		t.Fatalf("created object has no id: %v", created)
	}
	fields, _ := created["fields"].(map[string]any)
	if fields["value"] != float64(5000) || fields["city"] != "Paris" {
		t.Fatalf("fields should round-trip as bare values, got %v", fields)
	}

	resp, patched := alice.do("PUT", "/api/objects/"+objectID, map[string]any{
		"fields": map[string]any{"stage": "won"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d body %v", resp.StatusCode, patched)
	}
	patchedFields, _ := patched["fields"].(map[string]any)
	if patchedFields["stage"] != "won" || patchedFields["city"] != "Paris" {
		t.Fatalf("update should merge fields, got %v", patchedFields)
	}

	resp, listed := alice.doList("GET", "/api/objects?search=globex")
	if resp.StatusCode != http.StatusOK || len(listed) != 1 {
		t.Fatalf("search: status %d results %v", resp.StatusCode, listed)
	}
}

func TestCrossTenantAccessLooksLikeNotFound(t *testing.T) {
	_, newClient := newTestServer(t)
	alice := newClient()
	alice.register("alice", "Acme")
	mallory := newClient()
	mallory.register("mallory", "Globex")

	_, created := alice.do("POST", "/api/objects", map[string]any{
		"name": "Acme secret",
		"type": "Project",
	})
	objectID, _ := created["id"].(string)

	resp, _ := mallory.do("GET", "/api/objects/"+objectID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign read should 404, got %d", resp.StatusCode)
	}
	resp, _ = mallory.do("PUT", "/api/objects/"+objectID, map[string]any{"name": "hijack"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign update should 404, got %d", resp.StatusCode)
	}
	resp, _ = mallory.do("DELETE", "/api/objects/"+objectID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete should 404, got %d", resp.StatusCode)
	}

	resp, listed := mallory.doList("GET", "/api/objects")
	if resp.StatusCode != http.StatusOK || len(listed) != 0 {
		t.Fatalf("foreign listing must be empty, got %v", listed)
	}
}

func TestDefaultRoleCannotDelete(t *testing.T) {
	_, newClient := newTestServer(t)
	alice := newClient()
	alice.register("alice", "Acme")
	bob := newClient()
	bob.register("bob", "Acme")

	_, created := bob.do("POST", "/api/objects", map[string]any{
		"name": "Bob's lead",
		"type": "Lead",
	})
	objectID, _ := created["id"].(string)

	resp, _ := bob.do("DELETE", "/api/objects/"+objectID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("default role delete should 403, got %d", resp.StatusCode)
	}

	resp, _ = alice.do("DELETE", "/api/objects/"+objectID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete should succeed, got %d", resp.StatusCode)
	}
}

func TestAdminUserManagementEndpoints(t *testing.T) {
	_, newClient := newTestServer(t)
	alice := newClient()
	alice.register("alice", "Acme")
	bob := newClient()
	bobBody := bob.register("bob", "Acme")
	bobUser, _ := bobBody["user"].(map[string]any)
	bobID, _ := bobUser["id"].(string)

	// Members cannot reach the admin surface.
	resp, _ := bob.doList("GET", "/api/users")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("member user listing should 403, got %d", resp.StatusCode)
	}

	resp, roles := alice.doList("GET", "/api/roles")
	if resp.StatusCode != http.StatusOK || len(roles) == 0 {
		t.Fatalf("admin role listing: status %d roles %v", resp.StatusCode, roles)
	}
	var adminRoleID string
	for _, role := range roles {
		if role["name"] == "admin" {
			adminRoleID, _ = role["id"].(string)
		}
	}
	if adminRoleID == "" {
		t.Fatalf("admin role missing from listing %v", roles)
	}

	resp, _ = alice.do("POST", fmt.Sprintf("/api/users/%s/roles", bobID), map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("assignment without roleId should 400, got %d", resp.StatusCode)
	}

	resp, _ = alice.do("POST", fmt.Sprintf("/api/users/%s/roles", bobID), map[string]any{
		"roleId": adminRoleID,
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("role assignment should succeed, got %d", resp.StatusCode)
	}

	resp, users := alice.doList("GET", "/api/users")
	if resp.StatusCode != http.StatusOK || len(users) != 2 {
		t.Fatalf("user listing: status %d users %v", resp.StatusCode, users)
	}

	// Bob now passes the admin gate.
	resp, _ = bob.doList("GET", "/api/users")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promoted user should pass the admin gate, got %d", resp.StatusCode)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	_, newClient := newTestServer(t)
	alice := newClient()
	alice.register("alice", "Acme")

	resp, _ := alice.do("POST", "/api/auth/logout", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: %d", resp.StatusCode)
	}
	resp, _ = alice.do("GET", "/api/user", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("session should be gone after logout, got %d", resp.StatusCode)
	}
}

func TestObjectTypesCatalog(t *testing.T) {
	_, newClient := newTestServer(t)
	alice := newClient()
	alice.register("alice", "Acme")

	resp, body := alice.do("POST", "/api/object-types", map[string]any{"name": "Invoice"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save type: status %d body %v", resp.StatusCode, body)
	}

	resp, body = alice.do("GET", "/api/object-types", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list types: %d", resp.StatusCode)
	}
	names, _ := body["types"].([]any)
	found := false
	for _, name := range names {
		if name == "Invoice" {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered type missing from catalog %v", names)
	}
}
