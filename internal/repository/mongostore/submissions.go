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

var _ repository.SubmissionRepository = (*submissionStore)(nil)

type submissionStore struct {
	coll *mongo.Collection
}

func (s *submissionStore) List(ctx context.Context, email string) ([]domain.Submission, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	out := []domain.Submission{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return out, nil
}

func (s *submissionStore) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[domain.Submission](s.coll, s.coll.FindOne(ctx, byID(oid)))
}

func (s *submissionStore) Create(ctx context.Context, sub *domain.Submission) (domain.InsertResult, error) {
	if sub.Status == "" {
		sub.Status = domain.SubmissionPending
	}
	sub.CreatedAt = time.Now().UTC()
	res, err := s.coll.InsertOne(ctx, sub)
	if err != nil {
		return domain.InsertResult{}, fmt.Errorf("create submission: %w", err)
	}
	out := insertResult(res)
	sub.ID = *out.InsertedID
	return out, nil
}

func (s *submissionStore) SetStatus(ctx context.Context, id string, status domain.SubmissionStatus) (domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	res, err := s.coll.UpdateOne(ctx, byID(oid), bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return domain.UpdateResult{}, fmt.Errorf("set submission status: %w", err)
	}
	return updateResult(res), nil
}

func (s *submissionStore) Delete(ctx context.Context, id, owner string) (domain.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	filter := byID(oid)
	if owner != "" {
		filter["email"] = owner
	}
	res, err := s.coll.DeleteOne(ctx, filter)
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete submission: %w", err)
	}
	return deleteResult(res), nil
}

func (s *submissionStore) DeleteMany(ctx context.Context, ids []string, owner string) (domain.DeleteResult, error) {
	oids, err := objectIDs(ids)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if len(oids) == 0 {
		return domain.DeleteResult{Acknowledged: true}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": oids}}
	if owner != "" {
		filter["email"] = owner
	}
	res, err := s.coll.DeleteMany(ctx, filter)
	if err != nil {
		return domain.DeleteResult{}, fmt.Errorf("delete submissions: %w", err)
	}
	return deleteResult(res), nil
}
