package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"testing"
	"time"

	"live-sports-service/internal/dispatch"
	httpserver "live-sports-service/internal/http"
	"live-sports-service/internal/http/handlers"
	"live-sports-service/internal/sports"
	"live-sports-service/internal/testutil"
	"live-sports-service/internal/upstream"
)

type fetcherFunc func(ctx context.Context, url string) (any, error)

func (f fetcherFunc) FetchJSON(ctx context.Context, url string) (any, error) {
	return f(ctx, url)
}

func fixedClock() func() time.Time {
	return testutil.NowAt(testutil.MustParseRFC3339("2024-05-15T12:00:00Z"))
}

func newTestRouter(t *testing.T, fetcher dispatch.Fetcher, readyFn func() error) nethttp.Handler {
	t.Helper()
	registry := sports.NewRegistry("", time.UTC, fixedClock())
	dispatcher := dispatch.New(registry, fetcher, nil, nil)
	h := handlers.NewHandler(dispatcher, nil, readyFn)
	return httpserver.NewRouter(h, nil, nil, []string{"*"})
}

func payloadFetcher(t *testing.T, raw string) dispatch.Fetcher {
	t.Helper()
	return fetcherFunc(func(_ context.Context, _ string) (any, error) {
		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("bad fixture payload: %v", err)
		}
		return payload, nil
	})
}

func errorFetcher(err error) dispatch.Fetcher {
	return fetcherFunc(func(context.Context, string) (any, error) {
		return nil, err
	})
}

func TestLiveReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t, payloadFetcher(t, `{"response": [
		{"fixture": {"id": 55, "date": "2024-05-15T15:00:00+00:00", "status": {"long": "First Half", "short": "1H", "elapsed": 30}},
		 "league": {"id": 39, "name": "Premier League", "season": 2023},
		 "teams": {"home": {"id": 1, "name": "A"}, "away": {"id": 2, "name": "B"}},
		 "goals": {"home": 2, "away": 1}}
	]}`), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live?sport=football", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	var body struct {
		Sport    string           `json:"sport"`
		Response []map[string]any `json:"response"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.Sport != "football" {
		t.Fatalf("expected sport football, got %q", body.Sport)
	}
	if len(body.Response) != 1 {
		t.Fatalf("expected one match, got %d", len(body.Response))
	}
	if body.Response[0]["id"] != float64(55) {
		t.Fatalf("expected match id 55, got %v", body.Response[0]["id"])
	}
}

func TestLiveEmptyFeedIsStillAnEnvelope(t *testing.T) {
	router := newTestRouter(t, payloadFetcher(t, `{"response": []}`), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	response, ok := body["response"].([]any)
	if !ok {
		t.Fatalf("expected a response array, got %T", body["response"])
	}
	if len(response) != 0 {
		t.Fatalf("expected an empty response, got %d entries", len(response))
	}
}

func TestLiveExplicitZeroLastUsesDefault(t *testing.T) {
	records := ""
	for i := 1; i <= 7; i++ {
		if i > 1 {
			records += ","
		}
		records += fmt.Sprintf(`{
			"fixture": {"id": %d, "date": "2024-05-%02dT15:00:00+00:00", "status": {"long": "Match Finished", "short": "FT", "elapsed": 90}},
			"league": {"id": 39, "name": "Premier League", "season": 2023},
			"teams": {"home": {"id": 1, "name": "A"}, "away": {"id": 2, "name": "B"}},
			"goals": {"home": 1, "away": 0}
		}`, i, i)
	}
	router := newTestRouter(t, payloadFetcher(t, `{"response": [`+records+`]}`), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live?sport=football&h2h=33-40&last=0", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	var body struct {
		Response []map[string]any `json:"response"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if len(body.Response) != 5 {
		t.Fatalf("expected last=0 to fall back to the default of 5, got %d", len(body.Response))
	}
}

func TestLiveMalformedH2HIsBadRequest(t *testing.T) {
	called := false
	router := newTestRouter(t, fetcherFunc(func(context.Context, string) (any, error) {
		called = true
		return nil, nil
	}), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live?sport=football&h2h=nonsense", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)
	if called {
		t.Fatal("expected no upstream call for a malformed h2h pair")
	}

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] == nil || body["error"] == "" {
		t.Fatalf("expected an error message, got %v", body)
	}
}

func TestLiveUnsupportedH2HCarriesEmptyResponse(t *testing.T) {
	registry := sports.NewRegistryWithTable("snooker", map[string]sports.Config{
		"snooker": {Endpoint: "https://v1.snooker.example/games", Family: sports.FamilyGame},
	}, time.UTC, fixedClock())
	dispatcher := dispatch.New(registry, errorFetcher(errors.New("must not be called")), nil, nil)
	router := httpserver.NewRouter(handlers.NewHandler(dispatcher, nil, nil), nil, nil, []string{"*"})

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live?sport=snooker&h2h=1-2", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusBadRequest)

	var body struct {
		Error    string `json:"error"`
		Sport    string `json:"sport"`
		Response []any  `json:"response"`
	}
	testutil.DecodeJSON(t, rr, &body)
	if body.Sport != "snooker" {
		t.Fatalf("expected sport snooker, got %q", body.Sport)
	}
	if body.Response == nil || len(body.Response) != 0 {
		t.Fatalf("expected an empty response array, got %#v", body.Response)
	}
	if body.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestLivePassesUpstreamStatusThrough(t *testing.T) {
	router := newTestRouter(t, errorFetcher(&upstream.StatusError{Code: nethttp.StatusNotFound}), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live?sport=football&matchId=999", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "upstream error" {
		t.Fatalf("expected upstream error marker, got %v", body["error"])
	}
	if body["status"] != float64(nethttp.StatusNotFound) {
		t.Fatalf("expected status 404 in the body, got %v", body["status"])
	}
}

func TestLiveRateLimitPassesRetryStatusThrough(t *testing.T) {
	router := newTestRouter(t, errorFetcher(&upstream.RateLimitError{
		StatusCode: nethttp.StatusTooManyRequests,
		RetryAfter: 30 * time.Second,
	}), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusTooManyRequests)
}

func TestLiveMissingAPIKeyIsInternal(t *testing.T) {
	router := newTestRouter(t, errorFetcher(upstream.ErrMissingAPIKey), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusInternalServerError)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "missing API key" {
		t.Fatalf("unexpected error message %v", body["error"])
	}
}

func TestLiveUnknownErrorIncludesDetails(t *testing.T) {
	router := newTestRouter(t, errorFetcher(fmt.Errorf("connection reset")), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusInternalServerError)

	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "upstream fetch failed" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if body["details"] != "connection reset" {
		t.Fatalf("expected the underlying cause, got %v", body["details"])
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, errorFetcher(errors.New("unused")), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestReadyReflectsReadyFn(t *testing.T) {
	router := newTestRouter(t, errorFetcher(errors.New("unused")), nil)
	rr := testutil.Serve(router, nethttp.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	notReady := newTestRouter(t, errorFetcher(errors.New("unused")), func() error {
		return errors.New("missing API key")
	})
	rr = testutil.Serve(notReady, nethttp.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusServiceUnavailable)
}

func TestLiveSetsRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, payloadFetcher(t, `{"response": []}`), nil)

	rr := testutil.Serve(router, nethttp.MethodGet, "/api/live", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated request id header")
	}
}
