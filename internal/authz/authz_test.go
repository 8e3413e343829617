package authz

import (
	"testing"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDecisions(t *testing.T) {
	project := dom.Project{ID: 1, CreatorID: 10, CollaboratorIDs: []int64{20, 30}}

	tests := []struct {
		name      string
		actorID   int64
		canView   bool
		canManage bool
	}{
		{name: "creator", actorID: 10, canView: true, canManage: true},
		{name: "collaborator", actorID: 20, canView: true, canManage: false},
		{name: "another collaborator", actorID: 30, canView: true, canManage: false},
		{name: "outsider", actorID: 40, canView: false, canManage: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canView, CanView(tt.actorID, project))
			assert.Equal(t, tt.canManage, CanManage(tt.actorID, project))
		})
	}
}

func TestEmptyCollaborators(t *testing.T) {
	project := dom.Project{ID: 1, CreatorID: 10}
	assert.True(t, CanView(10, project))
	assert.False(t, CanView(20, project))
	assert.False(t, CanManage(20, project))
}
