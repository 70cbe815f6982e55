package credit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	"task-prompt-api/internal/domain/service"
	apperrors "task-prompt-api/pkg/errors"
)

type memCreditRepo struct {
	mu        sync.Mutex
	txns      []*entity.CreditTransaction
	createErr error
}

func (r *memCreditRepo) Create(_ context.Context, t *entity.CreditTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	t.ID = uuid.NewString()
	r.txns = append(r.txns, t)
	return nil
}

func (r *memCreditRepo) SumByUser(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, t := range r.txns {
		if t.UserID == userID {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (r *memCreditRepo) ListByUser(_ context.Context, userID string) ([]*entity.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CreditTransaction
	for _, t := range r.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memLocker struct {
	users map[string]bool
	locks int
}

func (l *memLocker) LockForUpdate(_ context.Context, id string) error {
	l.locks++
	if !l.users[id] {
		return repository.ErrNotFound
	}
	return nil
}

// snapshotTx 在 fn 失败时恢复流水快照
type snapshotTx struct {
	repo *memCreditRepo
}

func (s snapshotTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.repo.mu.Lock()
	saved := append([]*entity.CreditTransaction(nil), s.repo.txns...)
	s.repo.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.repo.mu.Lock()
		s.repo.txns = saved
		s.repo.mu.Unlock()
		return err
	}
	return nil
}

type recordingPublisher struct {
	events []*service.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *service.DomainEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func newTestLedger(users ...string) (*Ledger, *memCreditRepo, *recordingPublisher) {
	repo := &memCreditRepo{}
	locker := &memLocker{users: map[string]bool{}}
	for _, u := range users {
		locker.users[u] = true
	}
	pub := &recordingPublisher{}
	return NewLedger(repo, locker, snapshotTx{repo: repo}, pub), repo, pub
}

func TestBalanceIsSumOfTransactions(t *testing.T) {
	ledger, _, _ := newTestLedger("u1")
	ctx := context.Background()

	if b, err := ledger.Balance(ctx, "u1"); err != nil || b != 0 {
		t.Fatalf("empty balance = %d, %v", b, err)
	}

	for _, amount := range []int64{5, -1, -1, 10} {
		if _, err := ledger.Record(ctx, "u1", amount, nil, nil); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if _, err := ledger.Record(ctx, "u2", 100, nil, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	b, err := ledger.Balance(ctx, "u1")
	if err != nil || b != 13 {
		t.Fatalf("balance = %d, %v; want 13", b, err)
	}
}

func TestRecordPropagatesFailure(t *testing.T) {
	ledger, repo, _ := newTestLedger("u1")
	repo.createErr = errors.New("disk full")

	_, err := ledger.Record(context.Background(), "u1", -1, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeDatabaseError {
		t.Fatalf("code = %s", apperrors.AsAppError(err).Code)
	}
}

func TestGrant(t *testing.T) {
	ledger, repo, pub := newTestLedger("u1")
	ctx := context.Background()
	ref := "pi_123"

	txn, balance, err := ledger.Grant(ctx, "u1", 5, &ref)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if balance != 5 || txn.Amount != 5 || txn.PaymentRef == nil || *txn.PaymentRef != ref {
		t.Fatalf("unexpected grant: %+v balance=%d", txn, balance)
	}
	if len(repo.txns) != 1 {
		t.Fatalf("txns = %d", len(repo.txns))
	}
	if len(pub.events) != 1 || pub.events[0].Type != service.EventCreditGranted {
		t.Fatalf("events = %+v", pub.events)
	}
}

func TestGrantRejectsNonPositiveAmount(t *testing.T) {
	ledger, repo, _ := newTestLedger("u1")

	for _, amount := range []int64{0, -3} {
		_, _, err := ledger.Grant(context.Background(), "u1", amount, nil)
		if !errors.Is(err, apperrors.ErrInvalidAmount) {
			t.Errorf("amount %d: err = %v", amount, err)
		}
	}
	if len(repo.txns) != 0 {
		t.Fatalf("rejected grants wrote %d rows", len(repo.txns))
	}
}

func TestGrantUnknownUser(t *testing.T) {
	ledger, repo, pub := newTestLedger()

	_, _, err := ledger.Grant(context.Background(), "ghost", 5, nil)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.txns) != 0 || len(pub.events) != 0 {
		t.Fatal("nothing should be written for an unknown user")
	}
}

func TestGrantSurvivesPublishFailure(t *testing.T) {
	ledger, _, pub := newTestLedger("u1")
	pub.err = errors.New("redis down")

	if _, _, err := ledger.Grant(context.Background(), "u1", 2, nil); err != nil {
		t.Fatalf("publish failure leaked: %v", err)
	}
}

func TestWithLockedBalanceRollsBack(t *testing.T) {
	ledger, repo, _ := newTestLedger("u1")
	ctx := context.Background()
	if _, err := ledger.Record(ctx, "u1", 3, nil, nil); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err := ledger.WithLockedBalance(ctx, "u1", func(ctx context.Context, balance int64) error {
		if balance != 3 {
			t.Errorf("locked balance = %d", balance)
		}
		if _, err := ledger.Record(ctx, "u1", -3, nil, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.txns) != 1 {
		t.Fatalf("rollback left %d rows", len(repo.txns))
	}
}
