package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/domain"
	"github.com/SundayYogurt/scholarship_service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ repository.PaymentRepository = (*paymentStore)(nil)

type paymentStore struct {
	client      *mongo.Client
	payments    *mongo.Collection
	submissions *mongo.Collection
}

func (s *paymentStore) List(ctx context.Context, email string) ([]domain.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	cur, err := s.payments.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := []domain.Payment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return out, nil
}

// Record runs inside a multi-document transaction. Standalone servers
// cannot run one; there the same steps run without it.
func (s *paymentStore) Record(ctx context.Context, p *domain.Payment) (domain.PaymentOutcome, error) {
	oids, err := objectIDs(p.SubmitIDs)
	if err != nil {
		return domain.PaymentOutcome{}, err
	}
	p.CreatedAt = time.Now().UTC()

	session, err := s.client.StartSession()
	if err != nil {
		return domain.PaymentOutcome{}, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	res, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return s.record(sc, p, oids)
	})
	if err != nil && transactionsUnsupported(err) {
		return s.record(ctx, p, oids)
	}
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return domain.PaymentOutcome{}, err
		}
		return domain.PaymentOutcome{}, fmt.Errorf("record payment: %w", err)
	}
	return res.(domain.PaymentOutcome), nil
}

func (s *paymentStore) record(ctx context.Context, p *domain.Payment, oids []primitive.ObjectID) (domain.PaymentOutcome, error) {
	// a retried transaction must not reuse the id of the aborted insert
	p.ID = ""
	if len(oids) > 0 {
		foreign, err := s.submissions.CountDocuments(ctx, bson.M{
			"_id":   bson.M{"$in": oids},
			"email": bson.M{"$ne": p.Email},
		})
		if err != nil {
			return domain.PaymentOutcome{}, err
		}
		if foreign > 0 {
			return domain.PaymentOutcome{}, domain.ErrForbidden
		}
	}

	ins, err := s.payments.InsertOne(ctx, p)
	if err != nil {
		return domain.PaymentOutcome{}, err
	}
	out := domain.PaymentOutcome{
		PaymentResult: insertResult(ins),
		DeleteResult:  domain.DeleteResult{Acknowledged: true},
	}
	p.ID = *out.PaymentResult.InsertedID

	if len(oids) == 0 {
		return out, nil
	}
	del, err := s.submissions.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return domain.PaymentOutcome{}, err
	}
	out.DeleteResult = deleteResult(del)
	return out, nil
}

// transactionsUnsupported matches the server's refusal to start a
// transaction outside a replica set or sharded cluster.
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 {
		return true
	}
	return strings.Contains(err.Error(), "Transaction numbers are only allowed")
}
