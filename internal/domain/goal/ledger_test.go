package goal_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/Fede-Barberis/Finance-Manager/internal/domain/goal"
	appErrors "github.com/Fede-Barberis/Finance-Manager/internal/errors"

	"github.com/oklog/ulid/v2"
)

type contribKey struct {
	goalID ulid.ULID
	seq    int64
}

// fakeStore implementa goal.TxManager con semántica de commit por etapas: fn
// trabaja sobre una copia del estado y solo si devuelve nil la copia se
// convierte en el estado visible. El mutex serializa las transacciones igual
// que el lock de fila sobre el ahorro.
type fakeStore struct {
	mu            sync.Mutex
	goals         map[ulid.ULID]goal.Goal
	contributions map[contribKey]goal.Contribution

	inTxCalls int

	failInsert error
	failAdd    error
	failDelete error
}

func newFakeStore(goals ...goal.Goal) *fakeStore {
	s := &fakeStore{
		goals:         make(map[ulid.ULID]goal.Goal),
		contributions: make(map[contribKey]goal.Contribution),
	}
	for _, g := range goals {
		s.goals[g.Id] = g
	}
	return s
}

func (s *fakeStore) InTx(ctx context.Context, fn func(tx goal.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inTxCalls++

	staged := &fakeTx{
		store:         s,
		goals:         make(map[ulid.ULID]goal.Goal, len(s.goals)),
		contributions: make(map[contribKey]goal.Contribution, len(s.contributions)),
	}
	for k, v := range s.goals {
		staged.goals[k] = v
	}
	for k, v := range s.contributions {
		staged.contributions[k] = v
	}

	if err := fn(staged); err != nil {
		return err
	}

	s.goals = staged.goals
	s.contributions = staged.contributions
	return nil
}

func (s *fakeStore) currentAmount(goalID ulid.ULID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals[goalID].CurrentAmount
}

func (s *fakeStore) sequences(goalID ulid.ULID) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seqs := make([]int64, 0)
	for k := range s.contributions {
		if k.goalID == goalID {
			seqs = append(seqs, k.seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	return seqs
}

type fakeTx struct {
	store         *fakeStore
	goals         map[ulid.ULID]goal.Goal
	contributions map[contribKey]goal.Contribution
}

func (t *fakeTx) LockGoal(goalID ulid.ULID) (*goal.Goal, error) {
	g, ok := t.goals[goalID]
	if !ok {
		return nil, appErrors.ErrGoalNotFound
	}
	return &g, nil
}

func (t *fakeTx) NextSequence(goalID ulid.ULID) (int64, error) {
	var max int64
	for k := range t.contributions {
		if k.goalID == goalID && k.seq > max {
			max = k.seq
		}
	}
	return max + 1, nil
}

func (t *fakeTx) InsertContribution(c *goal.Contribution) error {
	if t.store.failInsert != nil {
		return t.store.failInsert
	}
	t.contributions[contribKey{c.GoalId, c.Sequence}] = *c
	return nil
}

func (t *fakeTx) FindContribution(goalID ulid.ULID, seq int64) (*goal.Contribution, error) {
	c, ok := t.contributions[contribKey{goalID, seq}]
	if !ok {
		return nil, appErrors.ErrContributionNotFound
	}
	return &c, nil
}

func (t *fakeTx) DeleteContribution(goalID ulid.ULID, seq int64) error {
	if t.store.failDelete != nil {
		return t.store.failDelete
	}
	delete(t.contributions, contribKey{goalID, seq})
	return nil
}

func (t *fakeTx) AddToCurrentAmount(goalID ulid.ULID, delta float64) error {
	if t.store.failAdd != nil {
		return t.store.failAdd
	}
	g, ok := t.goals[goalID]
	if !ok {
		return appErrors.ErrGoalNotFound
	}
	g.CurrentAmount += delta
	t.goals[goalID] = g
	return nil
}

func newTestGoal() goal.Goal {
	return goal.Goal{
		Id:           ulid.Make(),
		UserId:       ulid.Make(),
		Name:         "Vacaciones",
		TargetAmount: 1000,
		Status:       goal.StatusActive,
	}
}

func TestLedgerApplyAndReverse(t *testing.T) {
	t.Parallel()

	g := newTestGoal()
	store := newFakeStore(g)
	ledger := goal.NewLedger(store)
	ctx := context.Background()

	first, err := ledger.Apply(ctx, g.Id, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Sequence != 1 {
		t.Fatalf("expected sequence 1, got %d", first.Sequence)
	}
	if got := store.currentAmount(g.Id); got != 200 {
		t.Fatalf("expected current amount 200, got %v", got)
	}

	second, err := ledger.Apply(ctx, g.Id, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Sequence != 2 {
		t.Fatalf("expected sequence 2, got %d", second.Sequence)
	}
	if got := store.currentAmount(g.Id); got != 500 {
		t.Fatalf("expected current amount 500, got %v", got)
	}

	deleted, err := ledger.Reverse(ctx, g.Id, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted.Amount != 200 {
		t.Fatalf("expected deleted amount 200, got %v", deleted.Amount)
	}
	if got := store.currentAmount(g.Id); got != 300 {
		t.Fatalf("expected current amount 300, got %v", got)
	}

	seqs := store.sequences(g.Id)
	if len(seqs) != 1 || seqs[0] != 2 {
		t.Fatalf("expected remaining sequences [2], got %v", seqs)
	}
}

func TestLedgerApplyRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()

	g := newTestGoal()
	ctx := context.Background()

	for _, amount := range []float64{0, -50} {
		store := newFakeStore(g)
		ledger := goal.NewLedger(store)

		_, err := ledger.Apply(ctx, g.Id, amount)
		if err == nil {
			t.Fatalf("expected error for amount %v", amount)
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok {
			t.Fatalf("expected AppError, got %T", err)
		}
		if appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %s", appErr.Code)
		}
		if store.inTxCalls != 0 {
			t.Fatalf("expected no transaction for amount %v, got %d", amount, store.inTxCalls)
		}
	}
}

func TestLedgerReverseDoesNotRenumber(t *testing.T) {
	t.Parallel()

	g := newTestGoal()
	store := newFakeStore(g)
	ledger := goal.NewLedger(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := ledger.Apply(ctx, g.Id, 100); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if _, err := ledger.Reverse(ctx, g.Id, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seqs := store.sequences(g.Id)
	if len(seqs) != 2 || seqs[0] != 1 || seqs[1] != 3 {
		t.Fatalf("expected sequences [1 3], got %v", seqs)
	}

	next, err := ledger.Apply(ctx, g.Id, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Sequence != 4 {
		t.Fatalf("expected sequence 4 after deleting 2, got %d", next.Sequence)
	}
}

func TestLedgerApplyRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")

	tests := []struct {
		name  string
		setup func(s *fakeStore)
	}{
		{
			name:  "insert fails",
			setup: func(s *fakeStore) { s.failInsert = boom },
		},
		{
			name:  "amount update fails",
			setup: func(s *fakeStore) { s.failAdd = boom },
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGoal()
			store := newFakeStore(g)
			tt.setup(store)
			ledger := goal.NewLedger(store)

			_, err := ledger.Apply(ctx, g.Id, 200)
			if err == nil {
				t.Fatalf("expected error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != "TRANSACTION_FAILED" {
				t.Fatalf("expected TRANSACTION_FAILED, got %s", appErr.Code)
			}

			if got := store.currentAmount(g.Id); got != 0 {
				t.Fatalf("expected current amount 0 after rollback, got %v", got)
			}
			if seqs := store.sequences(g.Id); len(seqs) != 0 {
				t.Fatalf("expected no contributions after rollback, got %v", seqs)
			}
		})
	}
}

func TestLedgerReverseRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	g := newTestGoal()
	store := newFakeStore(g)
	ledger := goal.NewLedger(store)
	ctx := context.Background()

	if _, err := ledger.Apply(ctx, g.Id, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.failDelete = errors.New("disk full")

	_, err := ledger.Reverse(ctx, g.Id, 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != "TRANSACTION_FAILED" {
		t.Fatalf("expected TRANSACTION_FAILED, got %s", appErr.Code)
	}

	if got := store.currentAmount(g.Id); got != 200 {
		t.Fatalf("expected current amount 200 after rollback, got %v", got)
	}
	if seqs := store.sequences(g.Id); len(seqs) != 1 || seqs[0] != 1 {
		t.Fatalf("expected contribution 1 intact after rollback, got %v", seqs)
	}
}

func TestLedgerReverseNotFound(t *testing.T) {
	t.Parallel()

	g := newTestGoal()
	store := newFakeStore(g)
	ledger := goal.NewLedger(store)
	ctx := context.Background()

	_, err := ledger.Reverse(ctx, g.Id, 7)
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != appErrors.ErrContributionNotFound.Code {
		t.Fatalf("expected %s, got %s", appErrors.ErrContributionNotFound.Code, appErr.Code)
	}

	_, err = ledger.Apply(ctx, ulid.Make(), 100)
	if err == nil {
		t.Fatalf("expected error for unknown goal")
	}
	appErr, ok = appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != appErrors.ErrGoalNotFound.Code {
		t.Fatalf("expected %s, got %s", appErrors.ErrGoalNotFound.Code, appErr.Code)
	}
}

func TestLedgerConcurrentApplies(t *testing.T) {
	t.Parallel()

	g := newTestGoal()
	store := newFakeStore(g)
	ledger := goal.NewLedger(store)
	ctx := context.Background()

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan int64, workers)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := ledger.Apply(ctx, g.Id, 100)
			if err != nil {
				errs <- err
				return
			}
			results <- c.Sequence
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int64]bool)
	for seq := range results {
		if seen[seq] {
			t.Fatalf("duplicate sequence %d", seq)
		}
		seen[seq] = true
	}
	for seq := int64(1); seq <= workers; seq++ {
		if !seen[seq] {
			t.Fatalf("missing sequence %d", seq)
		}
	}

	if got := store.currentAmount(g.Id); got != workers*100 {
		t.Fatalf("expected current amount %d, got %v", workers*100, got)
	}
}
