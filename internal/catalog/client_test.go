package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8000" {
		t.Fatalf("url = %q, want %q", u.String(), defaultAPIBase)
	}

	u, err = parseBaseURL("example.com:1234/comics?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Host != "example.com:1234" || u.Path != "/comics" {
		t.Fatalf("url = %q, want host and path kept", u.String())
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchCollectionArrayInOrder(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept, gotUserAgent, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get(requestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"slug":"b","name":"Beta"},{"slug":"a","name":"Alpha"}]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	raw, err := c.FetchCollection(ctx, "/api/publisher/")
	if err != nil {
		t.Fatalf("FetchCollection returned error: %v", err)
	}
	records, err := Decode[PublisherRecord]("/api/publisher/", raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(records) != 2 || records[0].Slug != "b" || records[1].Slug != "a" {
		t.Fatalf("records = %#v, want [b a] in server order", records)
	}
	if gotPath != "/api/publisher/" {
		t.Fatalf("path = %q, want /api/publisher/", gotPath)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if !strings.HasPrefix(gotUserAgent, "thwip/") {
		t.Fatalf("User-Agent = %q, want thwip/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("%s header missing", requestIDHeader)
	}
}

func TestClient_KeepsBasePathPrefix(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/comics/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchCollection(context.Background(), "/api/series/7/issue_list/"); err != nil {
		t.Fatalf("FetchCollection returned error: %v", err)
	}
	if gotPath != "/comics/api/series/7/issue_list/" {
		t.Fatalf("path = %q, want prefixed endpoint", gotPath)
	}
}

func TestClient_EmptyArrayAndEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/empty":
			_, _ = w.Write([]byte(" [] "))
		case "/page":
			_, _ = w.Write([]byte(`{"count":2,"next":null,"previous":null,"results":[{"id":1},{"id":2}]}`))
		case "/page-empty":
			_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	raw, err := c.FetchCollection(context.Background(), "/empty")
	if err != nil {
		t.Fatalf("FetchCollection(/empty) returned error: %v", err)
	}
	if raw == nil || len(raw) != 0 {
		t.Fatalf("FetchCollection(/empty) = %#v, want non-nil empty", raw)
	}

	raw, err = c.FetchCollection(context.Background(), "/page")
	if err != nil {
		t.Fatalf("FetchCollection(/page) returned error: %v", err)
	}
	series, err := Decode[SeriesRecord]("/page", raw)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(series) != 2 || series[0].NaturalKey() != "1" || series[1].NaturalKey() != "2" {
		t.Fatalf("series = %#v, want ids 1 and 2", series)
	}

	raw, err = c.FetchCollection(context.Background(), "/page-empty")
	if err != nil {
		t.Fatalf("FetchCollection(/page-empty) returned error: %v", err)
	}
	if len(raw) != 0 {
		t.Fatalf("FetchCollection(/page-empty) = %d items, want 0", len(raw))
	}
}

func TestClient_ClassifiesFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken":
			_, _ = w.Write([]byte("{not-json"))
		case "/object":
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
		case "/scalar":
			_, _ = w.Write([]byte(`"hello"`))
		case "/blank":
		case "/boom":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	cases := []struct {
		path   string
		kind   ErrorKind
		status int
	}{
		{"/broken", ParseError, 0},
		{"/object", ParseError, 0},
		{"/scalar", ParseError, 0},
		{"/blank", ParseError, 0},
		{"/boom", HTTPError, http.StatusInternalServerError},
		{"/missing", HTTPError, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			_, err := c.FetchCollection(context.Background(), tc.path)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v, want *FetchError", err)
			}
			if fe.Kind != tc.kind || fe.Status != tc.status {
				t.Fatalf("error = %s/%d, want %s/%d", fe.Kind, fe.Status, tc.kind, tc.status)
			}
			if fe.Endpoint != tc.path {
				t.Fatalf("Endpoint = %q, want %q", fe.Endpoint, tc.path)
			}
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchCollection(context.Background(), "/api/series/")
	fe := AsFetchError(err)
	if fe == nil || fe.Kind != NetworkError {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if errors.Unwrap(fe) == nil {
		t.Fatalf("NetworkError should wrap its cause")
	}
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchCollection(context.Background(), "/slow")
	if fe := AsFetchError(err); fe == nil || fe.Kind != NetworkError {
		t.Fatalf("error = %v, want NetworkError", err)
	}
}

func TestDecode_ElementMismatchIsParseError(t *testing.T) {
	raw, err := parseCollection([]byte(`[{"slug":"a"}, 42]`))
	if err != nil {
		t.Fatalf("parseCollection returned error: %v", err)
	}
	_, err = Decode[PublisherRecord]("/api/publisher/", raw)
	fe := AsFetchError(err)
	if fe == nil || fe.Kind != ParseError {
		t.Fatalf("Decode error = %v, want ParseError", err)
	}
	if !strings.Contains(fe.Error(), "element 1") {
		t.Fatalf("Decode error = %q, want element index", fe.Error())
	}
}

func TestAsFetchError_ClassifiesForeignErrors(t *testing.T) {
	if AsFetchError(nil) != nil {
		t.Fatalf("AsFetchError(nil) should be nil")
	}
	fe := AsFetchError(errors.New("boom"))
	if fe.Kind != NetworkError {
		t.Fatalf("Kind = %s, want network", fe.Kind)
	}
	orig := &FetchError{Kind: HTTPError, Status: 503, Endpoint: "/x"}
	if got := AsFetchError(orig); got != orig {
		t.Fatalf("AsFetchError should return the same *FetchError")
	}
	if got := orig.Error(); got != "api /x returned status 503" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestNewClient_TimeoutLeavesSharedHTTPClientAlone(t *testing.T) {
	for _, order := range []string{"timeout_first", "timeout_last"} {
		t.Run(order, func(t *testing.T) {
			shared := &http.Client{}
			opts := []Option{WithHTTPClient(shared), WithTimeout(3 * time.Second)}
			if order == "timeout_first" {
				opts[0], opts[1] = opts[1], opts[0]
			}

			c, err := NewClient("", opts...)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			if c.http.Timeout != 3*time.Second {
				t.Fatalf("Timeout = %v, want 3s", c.http.Timeout)
			}
			if c.http == shared {
				t.Fatalf("client should not mutate the shared *http.Client")
			}
			if shared.Timeout != 0 {
				t.Fatalf("shared Timeout = %v, want 0", shared.Timeout)
			}
		})
	}

	shared := &http.Client{}
	c, err := NewClient("", WithHTTPClient(shared))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.http != shared {
		t.Fatalf("without a timeout the given client should be used as is")
	}
}
