package bizsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Workspace is a client-local cache of the caller's organizations and one
// "active" selection, persisted across restarts. It is never authoritative:
// every Refresh replaces the cached list wholesale with the server's answer
// and re-validates the active selection against it.
type Workspace struct {
	session   *Session
	statePath string

	mu            sync.RWMutex
	organizations []OrganizationMembership
	activeID      string
}

// workspaceState is the on-disk shape of the cache.
type workspaceState struct {
	ActiveOrganizationID string                   `json:"active_organization_id,omitempty"`
	Organizations        []OrganizationMembership `json:"organizations"`
}

// NewWorkspace creates a workspace backed by statePath. Previously persisted
// state is loaded if present; a missing or unreadable state file starts the
// workspace empty rather than failing. Pass statePath "" for an in-memory
// workspace.
func NewWorkspace(session *Session, statePath string) *Workspace {
	w := &Workspace{session: session, statePath: statePath}
	w.load()
	return w
}

// Refresh fetches the caller's organizations and replaces the cached list.
// After the replace, the active selection is kept if it is still present,
// reset to the first entry otherwise, or cleared when the list is empty.
func (w *Workspace) Refresh(ctx context.Context) ([]OrganizationMembership, error) {
	list, err := w.session.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.organizations = list.Organizations
	w.reconcileActiveLocked()

	if err := w.persistLocked(); err != nil {
		return nil, err
	}

	return w.snapshotLocked(), nil
}

// Organizations returns the most recently fetched list. It may be stale
// until the next Refresh.
func (w *Workspace) Organizations() []OrganizationMembership {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

// Active returns the active organization, or false when none is selected.
func (w *Workspace) Active() (OrganizationMembership, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, om := range w.organizations {
		if om.Organization.ID == w.activeID {
			return om, true
		}
	}
	return OrganizationMembership{}, false
}

// SetActive selects an organization from the cached list. Selecting an id
// that is not in the cache is a no-op and returns false; the caller should
// Refresh and retry.
func (w *Workspace) SetActive(organizationID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, om := range w.organizations {
		if om.Organization.ID == organizationID {
			w.activeID = organizationID
			_ = w.persistLocked()
			return true
		}
	}
	return false
}

// reconcileActiveLocked enforces the invariant that the active selection is
// always a member of the cached list.
func (w *Workspace) reconcileActiveLocked() {
	for _, om := range w.organizations {
		if om.Organization.ID == w.activeID {
			return
		}
	}
	if len(w.organizations) > 0 {
		w.activeID = w.organizations[0].Organization.ID
		return
	}
	w.activeID = ""
}

func (w *Workspace) snapshotLocked() []OrganizationMembership {
	out := make([]OrganizationMembership, len(w.organizations))
	copy(out, w.organizations)
	return out
}

// load restores persisted state. Corrupt or missing files reset the cache.
func (w *Workspace) load() {
	if w.statePath == "" {
		return
	}

	buf, err := os.ReadFile(w.statePath)
	if err != nil {
		return
	}

	var state workspaceState
	if err := json.Unmarshal(buf, &state); err != nil {
		return
	}

	w.organizations = state.Organizations
	w.activeID = state.ActiveOrganizationID
	w.reconcileActiveLocked()
}

// persistLocked writes the cache to disk via rename so a crash mid-write
// never leaves a truncated state file.
func (w *Workspace) persistLocked() error {
	if w.statePath == "" {
		return nil
	}

	buf, err := json.MarshalIndent(workspaceState{
		ActiveOrganizationID: w.activeID,
		Organizations:        w.organizations,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workspace state: %w", err)
	}

	dir := filepath.Dir(w.statePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write workspace state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), w.statePath); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace workspace state: %w", err)
	}
	return nil
}
