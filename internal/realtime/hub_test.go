package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allowPairs grants view access for listed user/project pairs.
func allowPairs(pairs ...[2]int64) AccessFunc {
	return func(_ context.Context, userID, projectID int64) error {
		for _, p := range pairs {
			if p[0] == userID && p[1] == projectID {
				return nil
			}
		}
		return fmt.Errorf("user %d may not view project %d", userID, projectID)
	}
}

func newTestHub(canView AccessFunc) *Hub {
	return NewHub(canView, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openProject(h *Hub, s *session, projectID int64) {
	h.dispatch(context.Background(), s, Envelope{
		Event: EventOpenProject,
		Data:  json.RawMessage(fmt.Sprintf("%d", projectID)),
	})
}

func recvEvent(t *testing.T, s *session) Envelope {
	t.Helper()
	select {
	case env := <-s.send:
		return env
	default:
		t.Fatal("expected a queued envelope")
		return Envelope{}
	}
}

func assertNoEvent(t *testing.T, s *session) {
	t.Helper()
	select {
	case env := <-s.send:
		t.Fatalf("unexpected envelope %q", env.Event)
	default:
	}
}

func TestRelayReachesRoomExceptSender(t *testing.T) {
	h := newTestHub(allowPairs([2]int64{1, 10}, [2]int64{2, 10}, [2]int64{3, 20}))
	defer h.Close()

	alice := newSession(h, nil, 1)
	bob := newSession(h, nil, 2)
	carol := newSession(h, nil, 3)
	openProject(h, alice, 10)
	openProject(h, bob, 10)
	openProject(h, carol, 20)

	task := json.RawMessage(`{"id": 7, "name": "deploy", "project": 10}`)
	h.dispatch(context.Background(), alice, Envelope{Event: EventTaskCreated, Data: task})

	got := recvEvent(t, bob)
	assert.Equal(t, EventTaskAdded, got.Event)
	assert.JSONEq(t, string(task), string(got.Data))

	assertNoEvent(t, alice)
	assertNoEvent(t, carol)
}

func TestRebroadcastEventNames(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{EventTaskCreated, EventTaskAdded},
		{EventTaskDeleted, EventTaskRemoved},
		{EventTaskUpdated, EventTaskUpdatedOut},
		{EventTaskStateChanged, EventTaskNewState},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h := newTestHub(allowPairs([2]int64{1, 10}, [2]int64{2, 10}))
			defer h.Close()
			sender := newSession(h, nil, 1)
			receiver := newSession(h, nil, 2)
			openProject(h, sender, 10)
			openProject(h, receiver, 10)

			h.dispatch(context.Background(), sender, Envelope{
				Event: tt.in,
				Data:  json.RawMessage(`{"id": 7, "project": 10}`),
			})
			assert.Equal(t, tt.out, recvEvent(t, receiver).Event)
		})
	}
}

func TestJoinRefusedWithoutAccess(t *testing.T) {
	h := newTestHub(allowPairs([2]int64{1, 10}))
	defer h.Close()

	alice := newSession(h, nil, 1)
	eve := newSession(h, nil, 99)
	openProject(h, alice, 10)
	openProject(h, eve, 10)

	h.dispatch(context.Background(), alice, Envelope{
		Event: EventTaskCreated,
		Data:  json.RawMessage(`{"id": 7, "project": 10}`),
	})
	assertNoEvent(t, eve)
}

func TestRemoveDetachesFromAllRooms(t *testing.T) {
	h := newTestHub(allowPairs([2]int64{1, 10}, [2]int64{1, 20}, [2]int64{2, 10}, [2]int64{2, 20}))
	defer h.Close()

	alice := newSession(h, nil, 1)
	bob := newSession(h, nil, 2)
	openProject(h, alice, 10)
	openProject(h, alice, 20)
	openProject(h, bob, 10)
	openProject(h, bob, 20)

	h.remove(bob)

	for _, projectID := range []int64{10, 20} {
		h.dispatch(context.Background(), alice, Envelope{
			Event: EventTaskCreated,
			Data:  json.RawMessage(fmt.Sprintf(`{"id": 7, "project": %d}`, projectID)),
		})
	}
	assertNoEvent(t, bob)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "number", input: `10`, want: 10},
		{name: "numeric string", input: `"10"`, want: 10},
		{name: "word", input: `"website"`, wantErr: true},
		{name: "object", input: `{"id": 10}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseID(json.RawMessage(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectIDFromTask(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "bare id", input: `{"id": 7, "project": 10}`, want: 10},
		{name: "numeric string", input: `{"id": 7, "project": "10"}`, want: 10},
		{name: "populated object", input: `{"id": 7, "project": {"id": 10, "name": "Website"}}`, want: 10},
		{name: "missing project", input: `{"id": 7}`, wantErr: true},
		{name: "zero object id", input: `{"id": 7, "project": {"name": "Website"}}`, wantErr: true},
		{name: "not json", input: `nope`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := projectIDFromTask(json.RawMessage(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClosedHubRefusesJoins(t *testing.T) {
	h := newTestHub(allowPairs([2]int64{1, 10}, [2]int64{2, 10}))
	alice := newSession(h, nil, 1)
	openProject(h, alice, 10)

	h.Close()

	bob := newSession(h, nil, 2)
	openProject(h, bob, 10)
	h.dispatch(context.Background(), bob, Envelope{
		Event: EventTaskCreated,
		Data:  json.RawMessage(`{"id": 7, "project": 10}`),
	})
	assertNoEvent(t, alice)
}
