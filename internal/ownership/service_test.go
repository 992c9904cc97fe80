package ownership

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const contract = "0xBAE9dD42C2B69Cfa4D457384297Fcf6bec72C0c4"

func TestIsValidator(t *testing.T) {
	cases := []struct {
		name    string
		owners  Set
		custody string
		want    bool
	}{
		{"empty set", NewSet(), "0xA", false},
		{"member", NewSet("0xB", "0xA"), "0xA", true},
		{"others only", NewSet("0xB", "0xC"), "0xA", false},
		{"case sensitive", NewSet("0xabc"), "0xABC", false},
	}
	for _, tc := range cases {
		if got := IsValidator(tc.custody, tc.owners); got != tc.want {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.want, got)
		}
	}
}

func TestSetDeduplicates(t *testing.T) {
	s := NewSet("0xB", "0xA", "0xB")
	if s.Len() != 2 {
		t.Fatalf("expected 2 owners, got %d", s.Len())
	}
	if diff := cmp.Diff([]string{"0xB", "0xA"}, s.Addresses()); diff != "" {
		t.Fatalf("addresses mismatch (-want +got):\n%s", diff)
	}
	if !NewSet().Empty() || s.Empty() {
		t.Fatal("unexpected Empty result")
	}
}

func TestServiceFetch(t *testing.T) {
	src := NewMemorySource()
	src.SetOwners(contract, "0xB", "0xC", "0xB")
	svc := NewService(src, Collection{Contract: contract})

	set, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if set.Len() != 2 || !set.Contains("0xC") {
		t.Fatalf("unexpected set %v", set.Addresses())
	}

	src.Fail(errors.New("indexer down"))
	if _, err := svc.Fetch(context.Background()); !errors.Is(err, ErrOwnershipFetch) {
		t.Fatalf("expected ownership fetch error, got %v", err)
	}
	if src.Calls() != 2 {
		t.Fatalf("expected exactly one attempt per fetch, got %d calls", src.Calls())
	}
}

func TestAlchemySourceContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nft/v3/key/getOwnersForContract" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("contractAddress") != contract || r.URL.Query().Get("withTokenBalances") != "false" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"owners":["0xB","0xC"],"pageKey":null}`))
	}))
	defer srv.Close()

	src := NewAlchemySource(srv.URL, "key", srv.Client())
	owners, err := src.Owners(context.Background(), Collection{Contract: contract})
	if err != nil {
		t.Fatalf("owners: %v", err)
	}
	if diff := cmp.Diff([]string{"0xB", "0xC"}, owners); diff != "" {
		t.Fatalf("owners mismatch (-want +got):\n%s", diff)
	}
}

func TestAlchemySourceUnionsTokens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/nft/v3/key/getOwnersForNFT" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.URL.Query().Get("tokenId") {
		case "0":
			_, _ = w.Write([]byte(`{"owners":["0xB"]}`))
		case "1":
			_, _ = w.Write([]byte(`{"owners":["0xB","0xC"]}`))
		default:
			_, _ = w.Write([]byte(`{"owners":[]}`))
		}
	}))
	defer srv.Close()

	svc := NewService(NewAlchemySource(srv.URL, "key", srv.Client()), Collection{Contract: contract, TokenIDs: []string{"0", "1", "2"}})
	set, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if diff := cmp.Diff([]string{"0xB", "0xC"}, set.Addresses()); diff != "" {
		t.Fatalf("owners mismatch (-want +got):\n%s", diff)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected one call per token, got %d", calls.Load())
	}
}

func TestAlchemySourceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("contractAddress") == "garbage" {
			_, _ = w.Write([]byte(`not json`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src := NewAlchemySource(srv.URL, "key", srv.Client())
	if _, err := src.Owners(context.Background(), Collection{Contract: contract}); err == nil {
		t.Fatal("expected status error")
	}
	if _, err := src.Owners(context.Background(), Collection{Contract: "garbage"}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestAlchemySourceFollowsPageKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Query().Get("pageKey") {
		case "":
			_, _ = w.Write([]byte(`{"owners":["0xB","0xC"],"pageKey":"p2"}`))
		case "p2":
			_, _ = w.Write([]byte(`{"owners":["0xD"],"pageKey":"p3"}`))
		case "p3":
			_, _ = w.Write([]byte(`{"owners":["0xE"],"pageKey":null}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	src := NewAlchemySource(srv.URL, "key", srv.Client())
	owners, err := src.Owners(context.Background(), Collection{Contract: contract})
	if err != nil {
		t.Fatalf("owners: %v", err)
	}
	if diff := cmp.Diff([]string{"0xB", "0xC", "0xD", "0xE"}, owners); diff != "" {
		t.Fatalf("owners mismatch (-want +got):\n%s", diff)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected three page requests, got %d", calls.Load())
	}
}
