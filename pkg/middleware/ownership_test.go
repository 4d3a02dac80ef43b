package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/pkg/auth"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeKnowledgeGetter struct {
	knowledges map[primitive.ObjectID]*models.Knowledge
}

func (f *fakeKnowledgeGetter) GetKnowledgeByID(_ context.Context, id primitive.ObjectID) (*models.Knowledge, error) {
	knowledge, ok := f.knowledges[id]
	if !ok {
		return nil, httperror.NewNotFound("knowledge ID not found")
	}
	return knowledge, nil
}

func ownershipRequest(t *testing.T, knowledgeID string, claims *auth.Claims) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/knowledges/"+knowledgeID, nil)
	req = mux.SetURLVars(req, map[string]string{"id": knowledgeID})
	if claims != nil {
		req = req.WithContext(WithUser(req.Context(), claims))
	}
	return req
}

func TestOwnershipMiddleware(t *testing.T) {
	ownerID := primitive.NewObjectID()
	knowledgeID := primitive.NewObjectID()
	repo := &fakeKnowledgeGetter{knowledges: map[primitive.ObjectID]*models.Knowledge{
		knowledgeID: {ID: knowledgeID, Name: "go", Owner: ownerID},
	}}
	wrap := OwnershipMiddleware(repo)

	t.Run("missing claims", func(t *testing.T) {
		next := &nextRecorder{}
		rec := httptest.NewRecorder()

		wrap(next.handler()).ServeHTTP(rec, ownershipRequest(t, knowledgeID.Hex(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("unknown knowledge", func(t *testing.T) {
		next := &nextRecorder{}
		rec := httptest.NewRecorder()
		claims := &auth.Claims{UserID: ownerID.Hex()}

		wrap(next.handler()).ServeHTTP(rec, ownershipRequest(t, primitive.NewObjectID().Hex(), claims))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("owner mismatch", func(t *testing.T) {
		next := &nextRecorder{}
		rec := httptest.NewRecorder()
		claims := &auth.Claims{UserID: primitive.NewObjectID().Hex()}

		wrap(next.handler()).ServeHTTP(rec, ownershipRequest(t, knowledgeID.Hex(), claims))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, next.called)
	})

	t.Run("owner match", func(t *testing.T) {
		next := &nextRecorder{}
		rec := httptest.NewRecorder()
		claims := &auth.Claims{UserID: ownerID.Hex()}

		wrap(next.handler()).ServeHTTP(rec, ownershipRequest(t, knowledgeID.Hex(), claims))

		assert.True(t, next.called)
	})
}
