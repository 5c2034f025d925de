package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.UserRepository = (*userStore)(nil)

type userStore struct {
	coll *mongo.Collection
}

func (s *userStore) List(ctx context.Context) ([]domain.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := []domain.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOne[domain.User](s.coll, s.coll.FindOne(ctx, bson.M{"email": email}))
}

func (s *userStore) Create(ctx context.Context, user *domain.User) (domain.InsertResult, error) {
	if user.Role == "" {
		user.Role = domain.RoleNone
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	res, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.InsertResult{}, domain.ErrUserExists
	}
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("create user: %w", err)
	}
	out := insertResult(res)
	user.ID = *out.InsertedID
	return out, nil
}

func (s *userStore) SetRole(ctx context.Context, id string, role domain.Role) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	res, err := s.coll.UpdateOne(ctx, byID(oid), bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("set user role: %w", err)
	}
	return updateResult(res), nil
}

func (s *userStore) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	res, err := s.coll.DeleteOne(ctx, byID(oid))
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete user: %w", err)
	}
	return deleteResult(res), nil
}
