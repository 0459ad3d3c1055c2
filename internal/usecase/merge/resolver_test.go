package merge_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/repository"
	"venture-feed/internal/usecase/merge"
)

/* ───────── ヘルパ ───────── */

type memStartups struct {
	rows      []*entity.Startup
	nextID    int64
	mergeErr  error
	updateErr error
	merges    int
}

func (m *memStartups) find(name string) *entity.Startup {
	for _, r := range m.rows {
		if strings.EqualFold(r.Name, name) {
			return r
		}
	}
	return nil
}

func (m *memStartups) Merge(_ context.Context, name string, fn repository.MergeFunc) (*entity.Startup, bool, error) {
	m.merges++
	if m.mergeErr != nil {
		return nil, false, m.mergeErr
	}
	existing := m.find(name)
	var cur *entity.Startup
	if existing != nil {
		c := *existing
		cur = &c
	}
	next, err := fn(cur)
	if err != nil || next == nil {
		return existing, false, err
	}
	if existing == nil {
		m.nextID++
		next.ID = m.nextID
		m.rows = append(m.rows, next)
		return next, true, nil
	}
	next.ID = existing.ID
	*existing = *next
	return existing, false, nil
}

func (m *memStartups) Get(_ context.Context, id int64) (*entity.Startup, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStartups) FindByName(_ context.Context, name string) (*entity.Startup, error) {
	return m.find(name), nil
}

func (m *memStartups) List(context.Context, repository.StartupFilter) ([]*entity.Startup, error) {
	return m.rows, nil
}

func (m *memStartups) UpdateCofounderLinkedIns(_ context.Context, id int64, links []entity.CofounderLinkedIn) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, r := range m.rows {
		if r.ID == id {
			r.CofounderLinkedIns = links
		}
	}
	return nil
}

/* ───────── テスト ───────── */

func TestResolver_ResolveMention_CaseInsensitive(t *testing.T) {
	repo := &memStartups{}
	r := merge.NewResolver(repo, nil)
	ctx := context.Background()

	_, out, err := r.ResolveMention(ctx, merge.Mention{Name: "Acme AI", Points: 5, Link: entity.Link{Label: "Source", URL: "u1"}})
	require.NoError(t, err)
	assert.Equal(t, merge.Created, out)

	s, out, err := r.ResolveMention(ctx, merge.Mention{Name: "  acme ai ", Points: 3, Link: entity.Link{Label: "Source", URL: "u2"}})
	require.NoError(t, err)
	assert.Equal(t, merge.Updated, out)
	assert.Equal(t, 8, s.OverallScore)
	assert.True(t, s.Featured)
	assert.Equal(t, "Acme AI", s.Name)
	assert.Len(t, repo.rows, 1)
	assert.Len(t, s.Links, 2)
}

func TestResolver_ResolveMention_Discards(t *testing.T) {
	repo := &memStartups{}
	r := merge.NewResolver(repo, nil)

	for _, m := range []merge.Mention{{Name: "Acme", Points: 0}, {Name: " ", Points: 4}} {
		s, out, err := r.ResolveMention(context.Background(), m)
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.Equal(t, merge.Discarded, out)
	}
	assert.Zero(t, repo.merges)
}

func TestResolver_ResolveMention_StoreError(t *testing.T) {
	storeErr := errors.New("db down")
	r := merge.NewResolver(&memStartups{mergeErr: storeErr}, nil)
	_, out, err := r.ResolveMention(context.Background(), merge.Mention{Name: "Acme", Points: 1})
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, merge.Discarded, out)
}

func TestResolver_ResolveAccelerator(t *testing.T) {
	repo := &memStartups{}
	r := merge.NewResolver(repo, nil)
	ctx := context.Background()

	_, _, err := r.ResolveMention(ctx, merge.Mention{Name: "Acme", Points: 6, Signals: entity.Signals{SignedCustomers: true}})
	require.NoError(t, err)

	s, out, err := r.ResolveAccelerator(ctx, merge.AcceleratorEntry{Accelerator: "YC", Name: "ACME", Batch: "S24", ProfileURL: "https://yc/acme"})
	require.NoError(t, err)
	assert.Equal(t, merge.Updated, out)
	assert.Equal(t, 6, s.OverallScore)
	assert.True(t, s.Signals.SignedCustomers)
	assert.Equal(t, "S24", s.Batch)

	_, out, err = r.ResolveAccelerator(ctx, merge.AcceleratorEntry{Accelerator: "YC", Name: ""})
	require.NoError(t, err)
	assert.Equal(t, merge.Discarded, out)
}

func TestResolver_SetCofounderLinkedIns(t *testing.T) {
	repo := &memStartups{}
	r := merge.NewResolver(repo, nil)
	ctx := context.Background()
	_, _, _ = r.ResolveMention(ctx, merge.Mention{Name: "Acme", Points: 1})
	_, _, _ = r.ResolveMention(ctx, merge.Mention{Name: "Beta", Points: 1})

	ann := []entity.CofounderLinkedIn{{Name: "Ann", URL: "https://linkedin.com/in/ann"}}
	n, err := r.SetCofounderLinkedIns(ctx, []merge.CofounderUpdate{
		{StartupID: 1, LinkedIns: ann},
		{StartupName: "beta", LinkedIns: ann},
		{StartupName: "missing", LinkedIns: ann},
		{StartupID: 2, LinkedIns: []entity.CofounderLinkedIn{{Name: " ", URL: "x"}}},
		{LinkedIns: ann},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ann, repo.rows[0].CofounderLinkedIns)
	assert.Equal(t, ann, repo.rows[1].CofounderLinkedIns)
}

func TestResolver_SetCofounderLinkedIns_PartialFailure(t *testing.T) {
	repo := &memStartups{}
	r := merge.NewResolver(repo, nil)
	_, _, _ = r.ResolveMention(context.Background(), merge.Mention{Name: "Acme", Points: 1})
	repo.updateErr = errors.New("write failed")

	n, err := r.SetCofounderLinkedIns(context.Background(), []merge.CofounderUpdate{
		{StartupID: 1, LinkedIns: []entity.CofounderLinkedIn{{Name: "Ann", URL: "https://linkedin.com/in/ann"}}},
	})
	assert.Zero(t, n)
	assert.ErrorIs(t, err, repo.updateErr)
}

func TestResolver_EnsureStartup(t *testing.T) {
	repo := &memStartups{}
	r := merge.NewResolver(repo, nil)
	ctx := context.Background()

	s, out, err := r.EnsureStartup(ctx, " Acme ", "https://acme.dev", []entity.SectorTag{entity.SectorRobotics})
	require.NoError(t, err)
	assert.Equal(t, merge.Created, out)
	assert.Equal(t, "Acme", s.Name)
	assert.Zero(t, s.OverallScore)
	assert.False(t, s.Featured)

	_, _, err = r.ResolveMention(ctx, merge.Mention{Name: "acme", Points: 4})
	require.NoError(t, err)

	s, out, err = r.EnsureStartup(ctx, "ACME", "https://other.dev", nil)
	require.NoError(t, err)
	assert.Equal(t, merge.Discarded, out)
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, "https://acme.dev", s.Website)
	assert.Equal(t, 4, s.OverallScore)

	_, _, err = r.EnsureStartup(ctx, "  ", "", nil)
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
}
