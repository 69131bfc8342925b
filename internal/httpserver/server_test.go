package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/scramble/internal/corpus"
	"github.com/verte-zerg/scramble/internal/generator"
	"github.com/verte-zerg/scramble/internal/session"
)

func newTestRegistry() *session.Registry {
	dict := corpus.NewWordSet("en", []string{"bake", "baker", "bark"})
	return session.NewRegistry(corpus.New([]string{"bakery"}, dict), "en", session.WithPicker(generator.NewSeeded(1)))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(newTestRegistry()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return resp.StatusCode
}

func TestSessionFlow(t *testing.T) {
	ts := newTestServer(t)

	var created sessionRes
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", nil, &created); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if created.ID == "" || created.Root != "bakery" || created.State != "active" {
		t.Fatalf("unexpected session %+v", created)
	}
	base := ts.URL + "/sessions/" + created.ID

	var accepted submitRes
	if status := doJSON(t, http.MethodPost, base+"/words", submitReq{Word: " Bake "}, &accepted); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !accepted.Accepted || accepted.Word != "bake" || accepted.Title != "" {
		t.Fatalf("unexpected submit response %+v", accepted)
	}
	if accepted.Session.Score != (scoreRes{Words: 1, Letters: 4}) {
		t.Fatalf("unexpected score %+v", accepted.Session.Score)
	}

	var rejected submitRes
	doJSON(t, http.MethodPost, base+"/words", submitReq{Word: "bakerz"}, &rejected)
	want := submitRes{
		Accepted: false,
		Reason:   "not_possible",
		Word:     "bakerz",
		Title:    "Word not possible",
		Message:  "You can't spell that word from 'bakery'",
		Session:  accepted.Session,
	}
	if diff := cmp.Diff(want, rejected); diff != "" {
		t.Fatalf("unexpected rejection (-want +got):\n%s", diff)
	}

	var restarted sessionRes
	if status := doJSON(t, http.MethodPost, base+"/restart", nil, &restarted); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(restarted.Used) != 0 || restarted.Score != (scoreRes{}) {
		t.Fatalf("expected fresh session, got %+v", restarted)
	}

	var fetched sessionRes
	if status := doJSON(t, http.MethodGet, base, nil, &fetched); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if diff := cmp.Diff(restarted, fetched); diff != "" {
		t.Fatalf("get differs from restart (-restart +get):\n%s", diff)
	}

	if status := doJSON(t, http.MethodDelete, base, nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", status)
	}
	var missing map[string]string
	if status := doJSON(t, http.MethodGet, base, nil, &missing); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if missing["error"] != "session_not_found" {
		t.Fatalf("unexpected error body %v", missing)
	}
}

func TestSubmitInvalidBody(t *testing.T) {
	ts := newTestServer(t)
	var created sessionRes
	doJSON(t, http.MethodPost, ts.URL+"/sessions", nil, &created)

	resp, err := http.Post(ts.URL+"/sessions/"+created.ID+"/words", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateWithEmptyCorpus(t *testing.T) {
	reg := session.NewRegistry(corpus.New(nil, nil), "en")
	ts := httptest.NewServer(New(reg).Handler())
	defer ts.Close()
	var body map[string]string
	if status := doJSON(t, http.MethodPost, ts.URL+"/sessions", nil, &body); status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	var body map[string]any
	if status := doJSON(t, http.MethodGet, ts.URL+"/health", nil, &body); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["ok"] != true {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- New(newTestRegistry(), WithIdleTTL(time.Minute)).Serve(ctx, ln)
	}()

	var created sessionRes
	if status := doJSON(t, http.MethodPost, "http://"+ln.Addr().String()+"/sessions", nil, &created); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * shutdownGrace):
		t.Fatalf("Serve did not return after cancellation")
	}
}

func TestStartReportsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer func() {
		_ = ln.Close()
	}()
	if err := New(newTestRegistry()).Start(context.Background(), ln.Addr().String()); err == nil {
		t.Fatalf("expected error for an address in use")
	}
}
