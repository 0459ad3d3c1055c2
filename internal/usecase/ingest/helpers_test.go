package ingest_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"venture-feed/internal/config"
	"venture-feed/internal/domain/entity"
	"venture-feed/internal/repository"
	"venture-feed/internal/usecase/classify"
	"venture-feed/internal/usecase/ingest"
	"venture-feed/internal/usecase/merge"
)

/* ───────── モック実装 ───────── */

// stubFeeds は URL ごとに固定の項目かエラーを返す
type stubFeeds struct {
	items map[string][]ingest.FeedItem
	errs  map[string]error
	calls []string
}

func (s *stubFeeds) Fetch(_ context.Context, url string) ([]ingest.FeedItem, error) {
	s.calls = append(s.calls, url)
	if err := s.errs[url]; err != nil {
		return nil, err
	}
	return s.items[url], nil
}

type stubDirectory struct {
	companies []ingest.Company
	err       error
}

func (s *stubDirectory) FetchCompanies(_ context.Context, _ string) ([]ingest.Company, error) {
	return s.companies, s.err
}

type stubContent struct {
	text  string
	err   error
	calls int
}

func (s *stubContent) FetchContent(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

// stubClassifier はタイトルごとに結果を切り替える
type stubClassifier struct {
	article     classify.ArticleClassification
	research    classify.ResearchClassification
	articleErrs map[string]error
	mentions    map[string][]classify.StartupMention

	articleContents   []string
	researchAbstracts []string
	extracted         []string
}

func (s *stubClassifier) ClassifyArticle(_ context.Context, title, content, _ string) (*classify.ArticleClassification, error) {
	s.articleContents = append(s.articleContents, content)
	if err := s.articleErrs[title]; err != nil {
		return nil, err
	}
	c := s.article
	return &c, nil
}

func (s *stubClassifier) ClassifyResearch(_ context.Context, _ string, abstract string) (*classify.ResearchClassification, error) {
	s.researchAbstracts = append(s.researchAbstracts, abstract)
	c := s.research
	return &c, nil
}

func (s *stubClassifier) ExtractStartups(_ context.Context, title, _ string) []classify.StartupMention {
	s.extracted = append(s.extracted, title)
	return s.mentions[title]
}

// memArticles はメモリ上の ArticleRepository
type memArticles struct {
	rows      []*entity.Article
	createErr error
	listErr   error
}

func (m *memArticles) ExistsByURL(_ context.Context, url string) (bool, error) {
	for _, a := range m.rows {
		if a.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (m *memArticles) Create(_ context.Context, a *entity.Article) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = int64(len(m.rows) + 1)
	a.CreatedAt = time.Now()
	m.rows = append(m.rows, a)
	return nil
}

func (m *memArticles) Get(_ context.Context, id int64) (*entity.Article, error) {
	for _, a := range m.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memArticles) List(_ context.Context, _ repository.SignalFilter) ([]*entity.Article, error) {
	return m.rows, nil
}

func (m *memArticles) ListTopByRelevance(_ context.Context, _ int) ([]*entity.Article, error) {
	return m.rows, nil
}

func (m *memArticles) ListRecent(_ context.Context, limit int) ([]*entity.Article, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*entity.Article, 0, len(m.rows))
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.rows[i])
	}
	return out, nil
}

type memPapers struct {
	rows []*entity.ResearchPaper
}

func (m *memPapers) ExistsByURL(_ context.Context, url string) (bool, error) {
	for _, p := range m.rows {
		if p.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (m *memPapers) Create(_ context.Context, p *entity.ResearchPaper) error {
	p.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, p)
	return nil
}

func (m *memPapers) List(_ context.Context, _ repository.SignalFilter) ([]*entity.ResearchPaper, error) {
	return m.rows, nil
}

// memEvents は url をキーに upsert する
type memEvents struct {
	byURL     map[string]*entity.Event
	deleted   []string
	upsertErr error
}

func newMemEvents() *memEvents { return &memEvents{byURL: map[string]*entity.Event{}} }

func (m *memEvents) Upsert(_ context.Context, e *entity.Event) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if old, ok := m.byURL[e.URL]; ok {
		e.ID = old.ID
	} else {
		e.ID = int64(len(m.byURL) + 1)
	}
	c := *e
	m.byURL[e.URL] = &c
	return nil
}

func (m *memEvents) DeleteByURLs(_ context.Context, urls []string) (int64, error) {
	var n int64
	for _, u := range urls {
		m.deleted = append(m.deleted, u)
		if _, ok := m.byURL[u]; ok {
			delete(m.byURL, u)
			n++
		}
	}
	return n, nil
}

func (m *memEvents) List(_ context.Context, _ repository.EventFilter) ([]*entity.Event, error) {
	out := make([]*entity.Event, 0, len(m.byURL))
	for _, e := range m.byURL {
		out = append(out, e)
	}
	return out, nil
}

// memStartups は Merge を単一ロックで直列化する
type memStartups struct {
	mu       sync.Mutex
	rows     []*entity.Startup
	nextID   int64
	mergeErr error
}

func (m *memStartups) Merge(_ context.Context, name string, fn repository.MergeFunc) (*entity.Startup, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mergeErr != nil {
		return nil, false, m.mergeErr
	}

	var existing *entity.Startup
	for _, r := range m.rows {
		if strings.EqualFold(r.Name, name) {
			c := *r
			existing = &c
			break
		}
	}
	out, err := fn(existing)
	if err != nil {
		return nil, false, err
	}
	if out == nil {
		return existing, false, nil
	}
	c := *out
	if existing == nil {
		m.nextID++
		c.ID = m.nextID
		m.rows = append(m.rows, &c)
		out.ID = c.ID
		return out, true, nil
	}
	for i, r := range m.rows {
		if r.ID == existing.ID {
			m.rows[i] = &c
		}
	}
	return out, false, nil
}

func (m *memStartups) Get(_ context.Context, id int64) (*entity.Startup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStartups) FindByName(_ context.Context, name string) (*entity.Startup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if strings.EqualFold(r.Name, name) {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memStartups) List(_ context.Context, _ repository.StartupFilter) ([]*entity.Startup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entity.Startup(nil), m.rows...), nil
}

func (m *memStartups) UpdateCofounderLinkedIns(_ context.Context, _ int64, _ []entity.CofounderLinkedIn) error {
	return nil
}

func (m *memStartups) byName(name string) *entity.Startup {
	s, _ := m.FindByName(context.Background(), name)
	return s
}

type recordingAlerter struct {
	mu       sync.Mutex
	startups []string
	err      error
}

func (r *recordingAlerter) NotifyNewStartup(_ context.Context, s *entity.Startup, _ *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startups = append(r.startups, s.Name)
	return r.err
}

/* ───────── ヘルパ ───────── */

var errBoom = errors.New("boom")

type fixture struct {
	svc        *ingest.Service
	feeds      *stubFeeds
	classifier *stubClassifier
	articles   *memArticles
	papers     *memPapers
	events     *memEvents
	startups   *memStartups
	alerter    *recordingAlerter
}

func newFixture(sources *config.Sources) *fixture {
	f := &fixture{
		feeds:      &stubFeeds{items: map[string][]ingest.FeedItem{}, errs: map[string]error{}},
		classifier: &stubClassifier{articleErrs: map[string]error{}, mentions: map[string][]classify.StartupMention{}},
		articles:   &memArticles{},
		papers:     &memPapers{},
		events:     newMemEvents(),
		startups:   &memStartups{},
		alerter:    &recordingAlerter{},
	}
	f.svc = &ingest.Service{
		Articles:   f.articles,
		Papers:     f.papers,
		Events:     f.events,
		Classifier: f.classifier,
		Resolver:   merge.NewResolver(f.startups, nil),
		Feeds:      f.feeds,
		Alerter:    f.alerter,
		Sources:    sources,
	}
	return f
}

func newsSources(feeds ...config.Feed) *config.Sources {
	return &config.Sources{NewsFeeds: feeds}
}
