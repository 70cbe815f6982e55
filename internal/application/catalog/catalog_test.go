package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"task-prompt-api/internal/domain/entity"
	apperrors "task-prompt-api/pkg/errors"
)

type memPromptRepo struct {
	prompts []*entity.AIPrompt
	lists   int
	err     error
}

func (r *memPromptRepo) List(context.Context) ([]*entity.AIPrompt, error) {
	r.lists++
	return r.prompts, r.err
}

func (r *memPromptRepo) GetByID(_ context.Context, id int64) (*entity.AIPrompt, error) {
	for _, p := range r.prompts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPromptRepo) Upsert(_ context.Context, p *entity.AIPrompt) error {
	for i, existing := range r.prompts {
		if existing.Name == p.Name {
			p.ID = existing.ID
			r.prompts[i] = p
			return nil
		}
	}
	if p.ID == 0 {
		p.ID = int64(len(r.prompts) + 1)
	}
	r.prompts = append(r.prompts, p)
	return nil
}

type memCache struct {
	data    map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetOrLoad(_ context.Context, key string, _ time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.data[key] = b
	return b, nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

func seededRepo(t *testing.T) *memPromptRepo {
	t.Helper()
	prompts, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	return &memPromptRepo{prompts: prompts}
}

func TestDefaultPrompts(t *testing.T) {
	prompts, err := DefaultPrompts()
	if err != nil {
		t.Fatalf("DefaultPrompts: %v", err)
	}
	if len(prompts) != 3 {
		t.Fatalf("len = %d, want 3", len(prompts))
	}
	wantNames := []string{"Action Plan", "Motivation", "Related Tasks"}
	for i, p := range prompts {
		if p.Name != wantNames[i] || p.Cost != 1 || p.ID != int64(i+1) {
			t.Errorf("prompt %d = %+v", i, p)
		}
	}
	if !prompts[2].ReturnsJSON || prompts[0].ReturnsJSON {
		t.Errorf("returns_json flags are wrong")
	}
}

func TestListServesFromCache(t *testing.T) {
	repo := seededRepo(t)
	c := NewCatalog(repo, newMemCache(), time.Minute)

	for i := 0; i < 3; i++ {
		prompts, err := c.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(prompts) != 3 || prompts[0].Name != "Action Plan" {
			t.Fatalf("unexpected prompts: %+v", prompts)
		}
	}
	if repo.lists != 1 {
		t.Fatalf("repository hit %d times, want 1", repo.lists)
	}
}

func TestGetUnknownPrompt(t *testing.T) {
	c := NewCatalog(seededRepo(t), nil, 0)

	_, err := c.Get(context.Background(), 99)
	if !errors.Is(err, apperrors.ErrPromptNotFound) {
		t.Fatalf("err = %v, want ErrPromptNotFound", err)
	}
	if _, err := c.FillByID(context.Background(), 99, "x"); !errors.Is(err, apperrors.ErrPromptNotFound) {
		t.Fatalf("FillByID err = %v", err)
	}
}

func TestFillReplacesOnlyPlaceholder(t *testing.T) {
	c := NewCatalog(seededRepo(t), nil, 0)

	text, err := c.FillByID(context.Background(), 3, "Plan a birthday party")
	if err != nil {
		t.Fatalf("FillByID: %v", err)
	}
	if !strings.Contains(text, `Task: "Plan a birthday party"`) {
		t.Fatalf("description not substituted:\n%s", text)
	}
	if strings.Contains(text, entity.TaskDescriptionPlaceholder) {
		t.Fatalf("placeholder left in output")
	}
	if !strings.Contains(text, `{"description": "Task description goes here"}`) {
		t.Fatalf("JSON braces in template were altered:\n%s", text)
	}

	noPlaceholder := &entity.AIPrompt{PromptTemplate: "static text"}
	if got := Fill(noPlaceholder, "anything"); got != "static text" {
		t.Fatalf("Fill changed a template with no placeholder: %q", got)
	}
}

func TestListWrapsRepositoryError(t *testing.T) {
	c := NewCatalog(&memPromptRepo{err: errors.New("conn refused")}, nil, 0)
	_, err := c.List(context.Background())
	if apperrors.AsAppError(err).Code != apperrors.CodeDatabaseError {
		t.Fatalf("err = %v", err)
	}
}

func TestSeedIsIdempotentAndInvalidatesCache(t *testing.T) {
	repo := &memPromptRepo{}
	cache := newMemCache()
	c := NewCatalog(repo, cache, time.Minute)

	for i := 0; i < 2; i++ {
		n, err := c.Seed(context.Background())
		if err != nil || n != 3 {
			t.Fatalf("Seed: n=%d err=%v", n, err)
		}
	}
	if len(repo.prompts) != 3 {
		t.Fatalf("seeded %d prompts, want 3", len(repo.prompts))
	}
	if len(cache.deleted) != 2 || cache.deleted[0] != cacheKeyAll {
		t.Fatalf("cache not invalidated: %v", cache.deleted)
	}
}
