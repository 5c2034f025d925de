package repository

import "context"

// Store bundles one repository per collection with the handle that owns
// them. It is built once at start-up and closed on shutdown.
type Store struct {
	Kind         string
	Users        UserRepository
	Scholarships ScholarshipRepository
	Submissions  SubmissionRepository
	Payments     PaymentRepository
	Reviews      ReviewRepository

	PingFn  func(ctx context.Context) error
	CloseFn func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.PingFn == nil {
		return nil
	}
	return s.PingFn(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.CloseFn == nil {
		return nil
	}
	return s.CloseFn(ctx)
}
