package memory

import (
	"context"
	"reflect"
	"testing"

	"github.com/studentms/portal-gateway/internal/core/domain"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	stores := NewSessionStores()
	store := stores.ForID("sid")

	sess := &domain.Session{
		ID:       3,
		Username: "alice",
		Roles:    domain.RoleSet{domain.RoleModerator},
		Token:    "header.payload.signature",
	}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(got, sess) {
		t.Fatalf("round trip mismatch: %+v != %+v", got, sess)
	}
}

func TestSessionStore_MissingRecord(t *testing.T) {
	store := NewSessionStores().ForID("sid")

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session, got %+v", got)
	}
}

func TestSessionStore_CorruptedRecordCleared(t *testing.T) {
	stores := NewSessionStores()
	stores.SetRaw("sid", []byte(`{not json`))

	store := stores.ForID("sid")
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil session for corrupted record, got %+v", got)
	}
	if stores.HasRecord("sid") {
		t.Fatalf("corrupted record should have been removed")
	}
}

func TestSessionStore_LoadNormalizesAndRepersists(t *testing.T) {
	stores := NewSessionStores()
	stores.SetRaw("sid", []byte(`{"username":"alice","token":"header.payload.signature","roles":[{"name":"ROLE_ADMIN"}]}`))

	store := stores.ForID("sid")
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(got.Roles, domain.RoleSet{domain.RoleAdmin}) {
		t.Fatalf("roles not normalized: %v", got.Roles)
	}

	// The persisted record now carries the canonical shape.
	again, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load error: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Fatalf("re-persisted record differs: %+v != %+v", again, got)
	}
}

func TestSessionStore_MissingRolesDefault(t *testing.T) {
	stores := NewSessionStores()
	stores.SetRaw("sid", []byte(`{"username":"alice","token":"header.payload.signature"}`))

	got, err := stores.ForID("sid").Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(got.Roles, domain.RoleSet{domain.RoleUser}) {
		t.Fatalf("expected default ROLE_USER, got %v", got.Roles)
	}
}

func TestSessionStore_ClearIdempotent(t *testing.T) {
	stores := NewSessionStores()
	store := stores.ForID("sid")

	if err := store.Save(context.Background(), &domain.Session{Username: "alice", Token: "header.payload.signature"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("second Clear error: %v", err)
	}
	if got, _ := store.Load(context.Background()); got != nil {
		t.Fatalf("expected nil after clear, got %+v", got)
	}
}

func TestSessionStores_IsolatedByID(t *testing.T) {
	stores := NewSessionStores()
	if err := stores.ForID("a").Save(context.Background(), &domain.Session{Username: "alice", Token: "header.payload.signature"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := stores.ForID("b").Load(context.Background())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected isolation between session IDs")
	}
}

func TestReadMarks_MergeAndDeduplicate(t *testing.T) {
	stores := NewSessionStores()

	if err := stores.MarkRead(context.Background(), "sid", 1, 2); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if err := stores.MarkRead(context.Background(), "sid", 2, 3); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}

	ids, err := stores.ReadIDs(context.Background(), "sid")
	if err != nil {
		t.Fatalf("ReadIDs error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", ids)
	}
}
