// Package hubtest provides utilities for testing applications that consume
// hub handoffs.
//
// It lets a child application test its session handling without running a
// real hub: the Env mints credentials with the same codec the hub uses, and
// helpers build inbound requests that carry them.
//
//	func TestHandoff(t *testing.T) {
//	    env := hubtest.NewEnv("hub.example.com")
//
//	    c := client.New(env.Verifier(), session.NewMemoryStore())
//	    router := myapp.NewRouter(c)
//
//	    req := env.HandoffRequest("GET", "/", hubtest.Alice)
//	    rr := httptest.NewRecorder()
//	    router.ServeHTTP(rr, req)
//
//	    if rr.Code != http.StatusOK {
//	        t.Errorf("expected 200, got %d", rr.Code)
//	    }
//	}
//
// For expiry scenarios, use IssueSessionAt to mint credentials from an
// arbitrary point in time.
package hubtest
