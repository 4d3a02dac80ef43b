package middleware

import (
	"context"
	"net/http"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnowledgeGetter is the slice of the knowledge repository the ownership
// check needs.
type KnowledgeGetter interface {
	GetKnowledgeByID(ctx context.Context, id primitive.ObjectID) (*models.Knowledge, error)
}

// OwnershipMiddleware requires AuthMiddleware to have run already. It loads
// the knowledge addressed by the route id and rejects the request unless
// the authenticated user is its owner. Read-only: nothing is mutated.
func OwnershipMiddleware(repo KnowledgeGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims == nil {
				logger.Log.Warn("Ownership check without authenticated user")
				httperror.Write(w, httperror.NewNotFound("token not found in request context"))
				return
			}

			id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
			if err != nil {
				httperror.Write(w, httperror.NewNotFound("invalid knowledge id"))
				return
			}

			knowledge, err := repo.GetKnowledgeByID(r.Context(), id)
			if err != nil {
				httperror.Write(w, err)
				return
			}

			if knowledge.Owner.Hex() != claims.UserID {
				logger.Log.WithFields(map[string]interface{}{
					"ownerID": knowledge.Owner.Hex(),
					"userID":  claims.UserID,
				}).Warn("Ownership mismatch")
				httperror.Write(w, httperror.NewUnauthorized("user ID is different from owner ID"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
