package state

import (
	"sync"

	"github.com/adasviz/zodmap/internal/api"
)

// LogRecord is the aggregate client-side view of one driving log: the cheap
// summary from the catalog listing, the expensive detail once fetched, and
// the per-record loading/error state.
type LogRecord struct {
	Summary api.LogSummary
	Detail  *api.LogDetail
	Loading bool
	Err     string
}

// Store is the single source of truth for the client: the merged catalog
// list, per-log records, and the selection set. The merged list pairs an
// order-preserving identifier slice with an identifier-to-record table,
// updated together on every merge, so iteration order is always first-seen
// order across pages.
type Store struct {
	mu sync.Mutex

	order   []string
	records map[string]*LogRecord

	selected map[string]struct{}

	total       int
	nextOffset  *int
	loadedOnce  bool
	pageLoading bool
	pageErr     string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		records:  make(map[string]*LogRecord),
		selected: make(map[string]struct{}),
	}
}

// StartPageLoad reserves the next page request and returns the offset to
// fetch. It is a no-op (ok=false) while another page request is outstanding
// or once the listing has been exhausted.
func (s *Store) StartPageLoad() (offset int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pageLoading {
		return 0, false
	}
	if !s.loadedOnce {
		s.pageLoading = true
		return 0, true
	}
	if s.nextOffset == nil {
		return 0, false
	}
	s.pageLoading = true
	return *s.nextOffset, true
}

// StartReload reserves a fresh offset-zero request. Like StartPageLoad it is
// a no-op while a page request is outstanding.
func (s *Store) StartReload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pageLoading {
		return false
	}
	s.pageLoading = true
	return true
}

// ApplyPage merges a page response fetched at the given offset. An offset of
// zero is a full reset: the merged list and records are cleared and rebuilt
// from this page, and the selection is pruned to identifiers that remain
// known. Any other offset appends identifiers not already present in
// arrival order; an identifier the list already contains is skipped, with
// its summary refreshed in place.
func (s *Store) ApplyPage(offset int, page api.ListResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pageLoading = false
	s.pageErr = ""
	s.loadedOnce = true

	if offset == 0 {
		s.order = nil
		s.records = make(map[string]*LogRecord, len(page.Items))
	}

	for _, item := range page.Items {
		if rec, seen := s.records[item.LogID]; seen {
			rec.Summary = item
			continue
		}
		s.order = append(s.order, item.LogID)
		s.records[item.LogID] = &LogRecord{Summary: item}
	}

	if offset == 0 {
		for id := range s.selected {
			if _, known := s.records[id]; !known {
				delete(s.selected, id)
			}
		}
	}

	s.total = page.Total
	if page.NextOffset != nil {
		next := *page.NextOffset
		s.nextOffset = &next
	} else {
		s.nextOffset = nil
	}
}

// PageFailed records a page load failure. Previously merged pages stay
// intact; only the error surfaces.
func (s *Store) PageFailed(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pageLoading = false
	s.pageErr = msg
}

// Toggle flips the selection state of a known identifier. On activation it
// also decides whether a detail fetch must be issued: exactly when the
// record has no detail yet and no fetch is already in flight. Deactivation
// never cancels an in-flight fetch and never clears a fetched detail.
func (s *Store) Toggle(logID string) (selected, needFetch bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, known := s.records[logID]
	if !known {
		return false, false
	}

	if _, active := s.selected[logID]; active {
		delete(s.selected, logID)
		return false, false
	}

	s.selected[logID] = struct{}{}
	if rec.Detail == nil && !rec.Loading {
		rec.Loading = true
		return true, true
	}
	return true, false
}

// ApplyDetail merges a fetched detail into its record, clearing the loading
// flag and any prior error. Completions for identifiers that are no longer
// known (a reset happened meanwhile) are dropped.
func (s *Store) ApplyDetail(logID string, detail *api.LogDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, known := s.records[logID]
	if !known {
		return
	}
	rec.Detail = detail
	rec.Loading = false
	rec.Err = ""
}

// DetailFailed records a per-identifier fetch failure in that record only.
// The record's detail, if any, is left in place.
func (s *Store) DetailFailed(logID string, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, known := s.records[logID]
	if !known {
		return
	}
	rec.Loading = false
	rec.Err = msg
}

// Snapshot is an immutable view of the store for rendering.
type Snapshot struct {
	Order       []string
	Records     map[string]LogRecord
	Selected    map[string]bool
	Total       int
	HasMore     bool
	PageLoading bool
	PageErr     string
}

// Snapshot returns a defensive copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Order:       make([]string, len(s.order)),
		Records:     make(map[string]LogRecord, len(s.records)),
		Selected:    make(map[string]bool, len(s.selected)),
		Total:       s.total,
		HasMore:     s.nextOffset != nil,
		PageLoading: s.pageLoading,
		PageErr:     s.pageErr,
	}
	copy(snap.Order, s.order)
	for id, rec := range s.records {
		snap.Records[id] = *rec
	}
	for id := range s.selected {
		snap.Selected[id] = true
	}
	return snap
}

// SelectedIDs returns the active identifiers in merged-list order.
func (s *Store) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.selected))
	for _, id := range s.order {
		if _, active := s.selected[id]; active {
			ids = append(ids, id)
		}
	}
	return ids
}

// Record returns a copy of one record.
func (s *Store) Record(logID string) (LogRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, known := s.records[logID]
	if !known {
		return LogRecord{}, false
	}
	return *rec, true
}
