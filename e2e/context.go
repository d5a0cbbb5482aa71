package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TestContext carries shared state across steps in a scenario: the HTTP
// client, the bearer token for the current user, the last response, and
// IDs saved by earlier steps for later ones to reference.
type TestContext struct {
	baseURL    string
	signingKey string
	client     *http.Client

	accessToken string
	userID      string

	lastStatus int
	lastBody   []byte

	// Saved entity IDs, keyed by a step-chosen alias.
	saved map[string]string

	// Users minted this scenario, keyed by step name.
	users map[string]string
}

// NewTestContext reads the target server and signing key from the
// environment. Both default to the local development setup.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("CALLSYNC_E2E_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	signingKey := os.Getenv("CALLSYNC_JWT_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "dev-secret-key-change-in-production"
	}
	return &TestContext{
		baseURL:    strings.TrimRight(baseURL, "/"),
		signingKey: signingKey,
		client:     &http.Client{Timeout: 10 * time.Second},
		saved:      make(map[string]string),
		users:      make(map[string]string),
	}
}

// Reset clears per-scenario state so scenarios stay independent.
func (tc *TestContext) Reset() {
	tc.accessToken = ""
	tc.userID = ""
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.saved = make(map[string]string)
	tc.users = make(map[string]string)
}

// AuthenticateAs mints a signed token for the named user. Each scenario gets
// fresh user IDs so pool counts stay stable across reruns against the same
// server; within a scenario the same name maps to the same user.
func (tc *TestContext) AuthenticateAs(name string) error {
	userID, ok := tc.users[name]
	if !ok {
		userID = uuid.NewString()
		tc.users[name] = userID
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(tc.signingKey))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	tc.accessToken = token
	tc.userID = userID
	return nil
}

// ClearAuth drops the bearer token so subsequent requests go unauthenticated.
func (tc *TestContext) ClearAuth() {
	tc.accessToken = ""
	tc.userID = ""
}

func (tc *TestContext) POST(path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return tc.do(http.MethodPost, path, bytes.NewReader(payload), "application/json")
}

// POSTRaw sends an arbitrary body with an explicit content type, used for
// CSV uploads.
func (tc *TestContext) POSTRaw(path, contentType string, body []byte) error {
	return tc.do(http.MethodPost, path, bytes.NewReader(body), contentType)
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil, "")
}

func (tc *TestContext) DELETE(path string) error {
	return tc.do(http.MethodDelete, path, nil, "application/json")
}

func (tc *TestContext) do(method, path string, body io.Reader, contentType string) error {
	req, err := http.NewRequest(method, tc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	return nil
}

func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) LastBody() []byte {
	return tc.lastBody
}

// ResponseField resolves a dotted path ("best.score") into the last JSON
// response. Array elements are not addressable; steps save IDs instead.
func (tc *TestContext) ResponseField(field string) (interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(tc.lastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}

	var current interface{} = doc
	for _, part := range strings.Split(field, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not present in response", field)
		}
	}
	return current, nil
}

// Save stores an ID under an alias for later steps; SavedID retrieves it.
func (tc *TestContext) Save(alias, value string) {
	tc.saved[alias] = value
}

func (tc *TestContext) SavedID(alias string) (string, error) {
	v, ok := tc.saved[alias]
	if !ok {
		return "", fmt.Errorf("no saved id under alias %q", alias)
	}
	return v, nil
}

// Expand substitutes {alias} placeholders in a path with saved IDs.
func (tc *TestContext) Expand(path string) (string, error) {
	for strings.Contains(path, "{") {
		start := strings.Index(path, "{")
		end := strings.Index(path, "}")
		if end < start {
			return "", fmt.Errorf("unbalanced placeholder in %q", path)
		}
		alias := path[start+1 : end]
		v, err := tc.SavedID(alias)
		if err != nil {
			return "", err
		}
		path = path[:start] + v + path[end+1:]
	}
	return path, nil
}
