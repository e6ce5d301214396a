// Full-stack cleanup tests: bookmarks pointing at error-answering servers are
// swept out of every group, the removal hits disk, and the next query
// reflects it.
package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
)

// newStatusServer answers every path with the status mapped to it, 200 for
// unmapped paths.
func newStatusServer(t *testing.T, statuses map[string]int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := statuses[r.URL.Path]; ok {
			w.WriteHeader(status)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestCleanUpSweepsDeadLinks runs the sweep over two groups holding a mix of
// live and dead links.
func TestCleanUpSweepsDeadLinks(t *testing.T) {
	srv := newStatusServer(t, map[string]int{
		"/gone":    http.StatusGone,
		"/missing": http.StatusNotFound,
		"/broken":  http.StatusInternalServerError,
	})

	env := NewTestEnv(t)
	env.MustRegister("ivan")
	env.MustCreateGroup("ivan", "Dev")
	env.MustCreateGroup("ivan", "Reading")
	env.MustAdd("ivan", "Alive", srv.URL+"/ok", nil, "Dev")
	env.MustAdd("ivan", "Gone", srv.URL+"/gone", nil, "Dev")
	env.MustAdd("ivan", "Missing", srv.URL+"/missing", nil, "Reading")
	env.MustAdd("ivan", "Broken", srv.URL+"/broken", nil, "Reading")
	env.MustAdd("ivan", "AlsoAlive", srv.URL+"/fine", nil, "Reading")

	if err := env.Manager.CleanUp(context.Background(), "ivan"); err != nil {
		t.Fatalf("CleanUp failed: %v", err)
	}

	all, err := env.Manager.ListAll("ivan")
	if err != nil {
		t.Fatalf("ListAll after cleanup failed: %v", err)
	}
	want := []string{"Alive", "AlsoAlive"}
	if got := Titles(all); !reflect.DeepEqual(got, want) {
		t.Errorf("survivors = %v, want %v", got, want)
	}

	// The sweep's removals must be durable, not just in memory.
	sf := env.ReadStoreFile("ivan")
	persisted := 0
	for _, g := range sf.Groups {
		persisted += len(g.Bookmarks)
	}
	if persisted != 2 {
		t.Errorf("persisted bookmarks after cleanup = %d, want 2", persisted)
	}
	if len(sf.Groups) != 2 {
		t.Errorf("groups after cleanup = %d, want 2 (empty groups survive)", len(sf.Groups))
	}
}

// TestCleanUpKeepsUnreachableLinks verifies a transport failure never deletes
// a bookmark.
func TestCleanUpKeepsUnreachableLinks(t *testing.T) {
	srv := newStatusServer(t, nil)
	// Closed before the sweep runs, so its URL refuses connections.
	deadHost := httptest.NewServer(http.NotFoundHandler())
	deadHostURL := deadHost.URL
	deadHost.Close()

	env := NewTestEnv(t)
	env.MustRegister("ivan")
	env.MustCreateGroup("ivan", "Dev")
	env.MustAdd("ivan", "Alive", srv.URL+"/ok", nil, "Dev")
	env.MustAdd("ivan", "Unreachable", deadHostURL+"/x", nil, "Dev")

	if err := env.Manager.CleanUp(context.Background(), "ivan"); err != nil {
		t.Fatalf("CleanUp failed: %v", err)
	}

	all, err := env.Manager.ListAll("ivan")
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	want := []string{"Alive", "Unreachable"}
	if got := Titles(all); !reflect.DeepEqual(got, want) {
		t.Errorf("survivors = %v, want %v (unreachable is inconclusive)", got, want)
	}
}

// TestCleanUpInvalidatesCache verifies a primed cached view does not outlive
// the sweep.
func TestCleanUpInvalidatesCache(t *testing.T) {
	srv := newStatusServer(t, map[string]int{"/gone": http.StatusGone})

	env := NewTestEnv(t)
	env.MustRegister("ivan")
	env.MustCreateGroup("ivan", "Dev")
	env.MustAdd("ivan", "Alive", srv.URL+"/ok", nil, "Dev")
	env.MustAdd("ivan", "Gone", srv.URL+"/gone", nil, "Dev")

	if _, err := env.Manager.ListAll("ivan"); err != nil {
		t.Fatalf("priming ListAll failed: %v", err)
	}
	if !env.Finder.Cached("ivan") {
		t.Fatal("expected primed cache before cleanup")
	}

	if err := env.Manager.CleanUp(context.Background(), "ivan"); err != nil {
		t.Fatalf("CleanUp failed: %v", err)
	}
	if env.Finder.Cached("ivan") {
		t.Error("cleanup must drop the cached view")
	}

	all, err := env.Manager.ListAll("ivan")
	if err != nil {
		t.Fatalf("ListAll after cleanup failed: %v", err)
	}
	if got := Titles(all); !reflect.DeepEqual(got, []string{"Alive"}) {
		t.Errorf("post-cleanup view = %v, want [Alive]", got)
	}
}

// TestCleanUpProbesEachURLOnce verifies the whole sweep issues one probe per
// bookmark across all groups.
func TestCleanUpProbesEachURLOnce(t *testing.T) {
	var probes atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	env := NewTestEnv(t)
	env.MustRegister("ivan")
	env.MustCreateGroup("ivan", "A")
	env.MustCreateGroup("ivan", "B")
	for i, group := range []string{"A", "B", "A", "B"} {
		env.MustAdd("ivan", "Link"+string(rune('1'+i)), srv.URL+"/"+group, nil, group)
	}

	if err := env.Manager.CleanUp(context.Background(), "ivan"); err != nil {
		t.Fatalf("CleanUp failed: %v", err)
	}
	if got := probes.Load(); got != 4 {
		t.Errorf("probe count = %d, want 4", got)
	}
}
