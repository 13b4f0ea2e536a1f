package datastore

// Store is the single in-memory, lineage-aware object store shared by every
// pipeline stage.  There is no persistence and no eviction policy: resources
// live until deleted or the cache is cleared, for the duration of one
// session.  A single RWMutex covers all mutation, so a child resource can
// never become visible to List or FindLatest before its parent lookup has
// succeeded.

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dataspine/mcda-go/pkg/errors"
)

type Store struct {
	mu        sync.RWMutex
	resources map[string]*Resource
	order     []string
}

func New() *Store {
	return &Store{
		resources: make(map[string]*Resource),
	}
}

// Create allocates a fresh id, verifies the parent exists when one is
// declared, and inserts the resource.  The returned resource must be treated
// as immutable by callers.
func (s *Store) Create(typ ResourceType, payload any, parentID string, meta Metadata) (*Resource, error) {
	if !typ.Valid() {
		typ = Other
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fingerprint := RootFingerprint
	step := 0

	if parentID != "" {
		parentID = NormalizeID(parentID)
		parent, ok := s.resources[parentID]
		if !ok {
			return nil, errors.InvalidParent(parentID)
		}
		fingerprint = Fingerprint(parentID)
		step = parent.Step + 1
	}

	id := FormatID(typ, randomSegment(), fingerprint, step)
	for _, exists := s.resources[id]; exists; _, exists = s.resources[id] {
		id = FormatID(typ, randomSegment(), fingerprint, step)
	}

	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}

	resource := &Resource{
		ID:       id,
		Type:     typ,
		Payload:  payload,
		Metadata: meta,
		ParentID: parentID,
		Step:     step,
	}

	s.resources[id] = resource
	s.order = append(s.order, id)

	log.Debug("created resource", "id", id, "type", typ, "parent", parentID, "step", step)
	return resource, nil
}

// Get accepts a bare id or a data:// URI.
func (s *Store) Get(idOrURI string) (*Resource, error) {
	id := NormalizeID(idOrURI)
	if _, err := ParseID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resource, ok := s.resources[id]
	if !ok {
		return nil, errors.NotFound(id)
	}
	return resource, nil
}

// List returns resources in creation order, optionally filtered by type.
// Pass an empty type for all resources.
func (s *Store) List(typ ResourceType) []*Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Resource, 0, len(s.order))
	for _, id := range s.order {
		resource := s.resources[id]
		if typ != "" && resource.Type != typ {
			continue
		}
		out = append(out, resource)
	}
	return out
}

// Delete removes a resource.  It does not cascade: children keep their
// ParentID and lineage queries over them report a break.
func (s *Store) Delete(idOrURI string) bool {
	id := NormalizeID(idOrURI)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[id]; !ok {
		return false
	}
	delete(s.resources, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	log.Debug("deleted resource", "id", id)
	return true
}

// Chain is the dependency lineage of a resource, oldest first.  Truncated is
// set when an ancestor has been evicted; the walk stops there instead of
// failing.
type Chain struct {
	Resources []*Resource `json:"resources"`
	Truncated bool        `json:"truncated"`
}

// DependencyChain walks parent links from the requested resource back to its
// root.
func (s *Store) DependencyChain(idOrURI string) (*Chain, error) {
	resource, err := s.Get(idOrURI)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chain := &Chain{}
	reversed := []*Resource{resource}

	current := resource
	for current.ParentID != "" {
		parent, ok := s.resources[current.ParentID]
		if !ok {
			chain.Truncated = true
			break
		}
		reversed = append(reversed, parent)
		current = parent
	}

	chain.Resources = make([]*Resource, len(reversed))
	for i, r := range reversed {
		chain.Resources[len(reversed)-1-i] = r
	}
	return chain, nil
}

// FindLatest returns the most recently created resource of the given type.
func (s *Store) FindLatest(typ ResourceType) (*Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.order) - 1; i >= 0; i-- {
		resource := s.resources[s.order[i]]
		if resource.Type == typ {
			return resource, true
		}
	}
	return nil, false
}

// Clear drops every resource and reports how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := len(s.resources)
	s.resources = make(map[string]*Resource)
	s.order = nil

	log.Info("cleared resource store", "dropped", dropped)
	return dropped
}

// Len reports the number of stored resources.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resources)
}

func randomSegment() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:randomLen]
}
