package manifest_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ladzaretti/vaultengine/manifest"
)

func TestNew(t *testing.T) {
	m := manifest.New()

	if len(m.Entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(m.Entries))
	}

	if len(m.AccessLog) != 1 {
		t.Fatalf("got %d audit records, want 1", len(m.AccessLog))
	}

	if m.AccessLog[0].Action != manifest.ActionVaultCreated {
		t.Errorf("got action %q, want %q", m.AccessLog[0].Action, manifest.ActionVaultCreated)
	}
}

func TestInsertRemoveFind(t *testing.T) {
	m := manifest.New()

	e := manifest.Entry{ID: "e1", Filename: "a.txt", FileSize: 10}
	if err := m.Insert(e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := m.Insert(e); err == nil {
		t.Errorf("expected error inserting duplicate id, got nil")
	}

	got, ok := m.Find("e1")
	if !ok {
		t.Fatalf("find: entry not found")
	}

	if diff := cmp.Diff(e, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("find mismatch (-want +got):\n%s", diff)
	}

	if !m.Remove("e1") {
		t.Errorf("remove: expected true")
	}

	if m.Remove("e1") {
		t.Errorf("remove: expected false on second call")
	}

	if _, ok := m.Find("e1"); ok {
		t.Errorf("find: entry should be gone")
	}
}

func TestInsert_SizeLimit(t *testing.T) {
	m := manifest.New()

	big := manifest.Entry{ID: "big", FileSize: manifest.MaxVaultSize}
	if err := m.Insert(big); err != nil {
		t.Fatalf("insert at exactly the limit should succeed: %v", err)
	}

	over := manifest.Entry{ID: "over", FileSize: 1}
	if err := m.Insert(over); err == nil {
		t.Errorf("expected size-limit error, got nil")
	}

	if _, ok := m.Find("over"); ok {
		t.Errorf("overflowing entry must not be committed")
	}
}

func TestAppendAudit(t *testing.T) {
	m := manifest.New()
	before := len(m.AccessLog)

	m.AppendAudit(manifest.ActionImport, "e1", manifest.StatusSuccess)

	if len(m.AccessLog) != before+1 {
		t.Fatalf("got %d records, want %d", len(m.AccessLog), before+1)
	}

	last := m.AccessLog[len(m.AccessLog)-1]
	if last.Action != manifest.ActionImport || last.EntryID != "e1" || last.Status != manifest.StatusSuccess {
		t.Errorf("unexpected record: %+v", last)
	}
}
