// Package realtime relays task lifecycle events between clients viewing the
// same project. Clients announce events themselves after the REST mutation
// succeeds; the server's job is to rebroadcast to the project room with the
// sender excluded. Delivery is best-effort, at most once.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

// Envelope is the wire frame: {"event": "...", "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound events (client → server) and their rebroadcast names.
const (
	EventOpenProject      = "open-project"
	EventTaskCreated      = "task-created"
	EventTaskDeleted      = "task-deleted"
	EventTaskUpdated      = "task-updated"
	EventTaskStateChanged = "task-state-changed"

	EventTaskAdded      = "task-added"
	EventTaskRemoved    = "task-removed"
	EventTaskUpdatedOut = "task-updated-event"
	EventTaskNewState   = "task-new-state"
)

// AccessFunc decides whether a user may view a project; joining a room runs
// this once. The relay path itself does no per-event re-check: relayed task
// payloads are trusted as coming from a client that just performed the
// authorized REST mutation.
type AccessFunc func(ctx context.Context, userID, projectID int64) error

// Hub keeps the project rooms and fans events out to their members.
type Hub struct {
	log     *slog.Logger
	canView AccessFunc

	mu     sync.Mutex
	rooms  map[int64]map[*session]struct{}
	closed bool
}

func NewHub(canView AccessFunc, log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		canView: canView,
		rooms:   make(map[int64]map[*session]struct{}),
	}
}

// Close drops every session. New joins are refused afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, members := range h.rooms {
		for s := range members {
			s.closeSend()
		}
	}
	h.rooms = make(map[int64]map[*session]struct{})
}

// dispatch handles one inbound envelope from a session.
func (h *Hub) dispatch(ctx context.Context, s *session, env Envelope) {
	switch env.Event {
	case EventOpenProject:
		projectID, err := parseID(env.Data)
		if err != nil {
			h.log.WarnContext(ctx, "bad open-project payload", "user", s.userID, "err", err)
			return
		}
		if err := h.canView(ctx, s.userID, projectID); err != nil {
			h.log.WarnContext(ctx, "room join refused", "user", s.userID, "project", projectID, "err", err)
			return
		}
		h.join(s, projectID)
	case EventTaskCreated:
		h.relay(ctx, s, env.Data, EventTaskAdded)
	case EventTaskDeleted:
		h.relay(ctx, s, env.Data, EventTaskRemoved)
	case EventTaskUpdated:
		h.relay(ctx, s, env.Data, EventTaskUpdatedOut)
	case EventTaskStateChanged:
		h.relay(ctx, s, env.Data, EventTaskNewState)
	default:
		h.log.WarnContext(ctx, "unknown realtime event", "event", env.Event, "user", s.userID)
	}
}

// relay rebroadcasts the task payload to its project room, sender excluded.
func (h *Hub) relay(ctx context.Context, sender *session, task json.RawMessage, outEvent string) {
	projectID, err := projectIDFromTask(task)
	if err != nil {
		h.log.WarnContext(ctx, "task payload without project", "event", outEvent, "user", sender.userID, "err", err)
		return
	}
	h.broadcast(projectID, sender, Envelope{Event: outEvent, Data: task})
}

func (h *Hub) join(s *session, projectID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	members, ok := h.rooms[projectID]
	if !ok {
		members = make(map[*session]struct{})
		h.rooms[projectID] = members
	}
	members[s] = struct{}{}
	s.rooms[projectID] = struct{}{}
}

// remove detaches the session from every room it joined. Called on
// connection teardown.
func (h *Hub) remove(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s)
}

func (h *Hub) removeLocked(s *session) {
	for projectID := range s.rooms {
		if members, ok := h.rooms[projectID]; ok {
			delete(members, s)
			if len(members) == 0 {
				delete(h.rooms, projectID)
			}
		}
	}
	s.rooms = make(map[int64]struct{})
}

// broadcast sends to every room member except the sender. A member whose
// send buffer is full is dropped rather than blocking the loop.
func (h *Hub) broadcast(projectID int64, except *session, env Envelope) {
	h.mu.Lock()
	var stalled []*session
	for s := range h.rooms[projectID] {
		if s == except {
			continue
		}
		select {
		case s.send <- env:
		default:
			stalled = append(stalled, s)
		}
	}
	for _, s := range stalled {
		h.removeLocked(s)
	}
	h.mu.Unlock()
	for _, s := range stalled {
		s.closeSend()
	}
}

// parseID accepts a room id as a JSON number or numeric string.
func parseID(data json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		return strconv.ParseInt(raw, 10, 64)
	}
	return 0, fmt.Errorf("expected project id, got %s", string(data))
}

// projectIDFromTask extracts the room key from a task payload. Clients send
// two shapes: "project" as a bare id (create/delete paths) or as the
// populated project object (update/state paths).
func projectIDFromTask(data json.RawMessage) (int64, error) {
	var t struct {
		Project json.RawMessage `json:"project"`
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return 0, err
	}
	if len(t.Project) == 0 {
		return 0, fmt.Errorf("missing project field")
	}
	if id, err := parseID(t.Project); err == nil {
		return id, nil
	}
	var obj struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(t.Project, &obj); err != nil || obj.ID == 0 {
		return 0, fmt.Errorf("unrecognized project reference %s", string(t.Project))
	}
	return obj.ID, nil
}
