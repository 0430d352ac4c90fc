package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/securelogin/auth-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository over a MongoDB collection,
// substitutable for the in-memory store without touching the authenticator.
// The collection is expected to carry unique indexes on email, username and
// phone.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	PasswordHash string             `bson:"password_hash"`
}

// FindByIdentifier looks a user up by the field selected by identifierType.
// A miss maps to domain.ErrInvalidCredentials so unknown identifiers stay
// indistinguishable from wrong passwords.
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifierType domain.IdentifierType, identifier string) (*domain.User, error) {
	var field string
	switch identifierType {
	case domain.IdentifierEmail:
		field = "email"
	case domain.IdentifierUsername:
		field = "username"
	case domain.IdentifierPhone:
		field = "phone"
	default:
		return nil, domain.ErrInvalidInput
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{field: identifier}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		Phone:        mu.Phone,
		PasswordHash: mu.PasswordHash,
	}, nil
}
