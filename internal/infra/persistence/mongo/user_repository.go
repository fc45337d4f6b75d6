package mongo

import (
	"context"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/errors"
	"passport/internal/infra/persistence/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// userRepository implements the repository.UserRepository interface on MongoDB.
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()}, "failed to find user by id")
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"emailAddress": email}, "failed to find user by email")
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"username": username}, "failed to find user by username")
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M, wrapMsg string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&userM); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, wrapMsg)
	}

	return toUserDomain(&userM)
}

// Create persists a new user document. The repository assigns the ID and
// both timestamps; a unique index violation is translated to the matching
// domain sentinel.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	userM := fromUserDomain(user)
	userM.ID = id.String()
	userM.CreatedAt = now
	userM.UpdatedAt = now

	if _, err := repo.coll.InsertOne(ctx, userM); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if sentinel := duplicateKeySentinel(err); sentinel != nil {
				return sentinel
			}
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

// Update rewrites the mutable fields (username, first and last name) and
// bumps updatedAt. Email and password are not updatable through this flow.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) (*repository.UpdateResult, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": user.ID.String()},
		bson.M{"$set": bson.M{
			"username":  user.Username,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
			"updatedAt": now,
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if sentinel := duplicateKeySentinel(err); sentinel != nil {
				return nil, sentinel
			}
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	if res.MatchedCount == 0 {
		return nil, repository.ErrUserNotFound
	}

	user.UpdatedAt = now

	return &repository.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete removes a user document by ID.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	if res.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence documents.

// toUserDomain converts a stored document to a domain User entity.
func toUserDomain(data *model.UserModel) (*entity.User, error) {
	id, err := uuid.Parse(data.ID)
	if err != nil {
		return nil, errors.Wrap(err, "stored user id is not a uuid")
	}

	return &entity.User{
		ID:           id,
		Username:     data.Username,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}, nil
}

// fromUserDomain converts a domain User entity to its document shape.
func fromUserDomain(data *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           data.ID.String(),
		Username:     data.Username,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
