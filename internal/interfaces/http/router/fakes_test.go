package router

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
)

// memDB 路由测试使用的内存存储
type memDB struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	users       map[string]*entity.User
	tasks       []*entity.Task
	prompts     []*entity.AIPrompt
	taskPrompts []*entity.TaskPrompt
	credits     []*entity.CreditTransaction
}

func newMemDB() *memDB {
	return &memDB{users: map[string]*entity.User{}}
}

func (db *memDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	savedPrompts := append([]*entity.TaskPrompt(nil), db.taskPrompts...)
	savedCredits := append([]*entity.CreditTransaction(nil), db.credits...)
	db.mu.Unlock()

	if err := fn(ctx); err != nil {
		db.mu.Lock()
		db.taskPrompts, db.credits = savedPrompts, savedCredits
		db.mu.Unlock()
		return err
	}
	return nil
}

type memUserRepo struct{ db *memDB }

func (r memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	r.db.users[u.ID] = u
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.users[id], nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

func (r memUserRepo) List(_ context.Context, page repository.Pagination) ([]*entity.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, page), nil
}

func (r memUserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.users, id)

	var tasks []*entity.Task
	removed := map[string]bool{}
	for _, t := range r.db.tasks {
		if t.OwnerID == id {
			removed[t.ID] = true
			continue
		}
		tasks = append(tasks, t)
	}
	r.db.tasks = tasks

	var tps []*entity.TaskPrompt
	for _, tp := range r.db.taskPrompts {
		if !removed[tp.TaskID] {
			tps = append(tps, tp)
		}
	}
	r.db.taskPrompts = tps

	var credits []*entity.CreditTransaction
	for _, c := range r.db.credits {
		if c.UserID != id {
			credits = append(credits, c)
		}
	}
	r.db.credits = credits
	return nil
}

func (r memUserRepo) UpdateLastLogin(context.Context, string) error { return nil }

func (r memUserRepo) LockForUpdate(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

type memTaskRepo struct{ db *memDB }

func (r memTaskRepo) Create(_ context.Context, t *entity.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t.ID = uuid.NewString()
	r.db.tasks = append(r.db.tasks, t)
	return nil
}

func (r memTaskRepo) GetByIDForOwner(_ context.Context, id, ownerID string) (*entity.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, t := range r.db.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			return t, nil
		}
	}
	return nil, nil
}

func (r memTaskRepo) ListByOwner(_ context.Context, ownerID string, q repository.TaskQuery) ([]*entity.Task, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Task
	for _, t := range r.db.tasks {
		if t.OwnerID == ownerID && q.Filter.Matches(t, q.Now) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		switch q.Sort {
		case repository.TaskSortPriority:
			return out[i].PriorityRank() < out[j].PriorityRank()
		case repository.TaskSortDescription:
			return strings.Compare(out[i].Description, out[j].Description) < 0
		}
		return false
	})
	return paginate(out, q.Pagination), nil
}

func (r memTaskRepo) Update(context.Context, *entity.Task) error { return nil }

func (r memTaskRepo) DeleteForOwner(_ context.Context, id, ownerID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, t := range r.db.tasks {
		if t.ID == id && t.OwnerID == ownerID {
			r.db.tasks = append(r.db.tasks[:i], r.db.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memPromptRepo struct{ db *memDB }

func (r memPromptRepo) List(context.Context) ([]*entity.AIPrompt, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return append([]*entity.AIPrompt(nil), r.db.prompts...), nil
}

func (r memPromptRepo) GetByID(_ context.Context, id int64) (*entity.AIPrompt, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r memPromptRepo) Upsert(_ context.Context, p *entity.AIPrompt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, existing := range r.db.prompts {
		if existing.Name == p.Name {
			r.db.prompts[i] = p
			return nil
		}
	}
	r.db.prompts = append(r.db.prompts, p)
	return nil
}

type memTaskPromptRepo struct{ db *memDB }

func (r memTaskPromptRepo) Create(_ context.Context, tp *entity.TaskPrompt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	tp.ID = uuid.NewString()
	r.db.taskPrompts = append(r.db.taskPrompts, tp)
	return nil
}

func (r memTaskPromptRepo) ListByTask(_ context.Context, taskID string) ([]*entity.TaskPrompt, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.TaskPrompt{}
	for _, tp := range r.db.taskPrompts {
		if tp.TaskID == taskID {
			out = append(out, tp)
		}
	}
	return out, nil
}

type memCreditRepo struct{ db *memDB }

func (r memCreditRepo) Create(_ context.Context, t *entity.CreditTransaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t.ID = uuid.NewString()
	r.db.credits = append(r.db.credits, t)
	return nil
}

func (r memCreditRepo) SumByUser(_ context.Context, userID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var sum int64
	for _, t := range r.db.credits {
		if t.UserID == userID {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (r memCreditRepo) ListByUser(_ context.Context, userID string) ([]*entity.CreditTransaction, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []*entity.CreditTransaction{}
	for _, t := range r.db.credits {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func paginate[T any](items []T, page repository.Pagination) []T {
	if page.Skip >= len(items) {
		return []T{}
	}
	end := page.Skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Skip:end]
}

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	g.calls++
	return g.reply, g.err
}
