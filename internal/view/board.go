package view

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/geo"
	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/skills"
)

// ErrSuperseded is returned by a search, enrichment or location lookup
// whose result was discarded because a newer one started meanwhile.
var ErrSuperseded = errors.New("superseded by a newer search")

// Searcher runs one remote search; *adzuna.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, region string, page int, keyword, location string) (*adzuna.Result, error)
}

// Locator detects the user's region; *geo.Detector satisfies it.
type Locator interface {
	Detect(ctx context.Context) (*geo.Location, error)
}

// PublishedSource lists the user's published posts; *store.Store satisfies it.
type PublishedSource interface {
	Published(ctx context.Context) ([]model.JobCard, error)
}

// Extractor enriches cards with skills; *skills.Client satisfies it.
type Extractor interface {
	Extract(ctx context.Context, jobs []model.JobForExtraction) skills.Result
}

// Query is the search form.
type Query struct {
	Region string `json:"region"`
	Where  string `json:"where"`
	What   string `json:"what"`
}

// Snapshot is a copy of the board's displayed state.
type Snapshot struct {
	Query       Query  `json:"query"`
	Page        Page   `json:"page"`
	Error       string `json:"error,omitempty"`
	SkillsError string `json:"skillsError,omitempty"`
}

// Board holds what the job board shows between user actions. Only the most
// recently started search may change the displayed results; older ones
// still run to completion but their results are dropped.
type Board struct {
	searcher  Searcher
	published PublishedSource
	locator   Locator
	extractor Extractor
	log       *zap.Logger

	mu          sync.Mutex
	generation  uint64
	locateGen   uint64
	query       Query
	page        Page
	rawJobs     []model.JobForExtraction
	errMsg      string
	skillsError string
}

// BoardOption customises a Board.
type BoardOption func(*Board)

// WithLocator enables Locate.
func WithLocator(l Locator) BoardOption { return func(b *Board) { b.locator = l } }

// WithExtractor enables EnrichSkills.
func WithExtractor(e Extractor) BoardOption { return func(b *Board) { b.extractor = e } }

// WithLogger sets the board's logger.
func WithLogger(l *zap.Logger) BoardOption { return func(b *Board) { b.log = l } }

// NewBoard returns an empty board searching in adzuna.DefaultRegion.
func NewBoard(searcher Searcher, published PublishedSource, opts ...BoardOption) *Board {
	b := &Board{
		searcher:  searcher,
		published: published,
		log:       zap.NewNop(),
		query:     Query{Region: adzuna.DefaultRegion},
		page:      Page{Number: 1, Cards: []model.JobCard{}, TotalPages: 1},
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// SetQuery replaces the search form. An empty region keeps the current one.
func (b *Board) SetQuery(q Query) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if q.Region == "" {
		q.Region = b.query.Region
	}
	b.query = q
}

// Snapshot returns a copy of the displayed state.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.page
	p.Cards = append([]model.JobCard(nil), b.page.Cards...)
	return Snapshot{Query: b.query, Page: p, Error: b.errMsg, SkillsError: b.skillsError}
}

// Search runs the current query for page. On failure the displayed cards
// and total are cleared and the error message is set; the user's stored
// posts are never touched.
func (b *Board) Search(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	b.mu.Lock()
	b.generation++
	gen := b.generation
	q := b.query
	b.errMsg = ""
	b.mu.Unlock()

	var published []model.JobCard
	if b.published != nil {
		cards, err := b.published.Published(ctx)
		if err != nil {
			b.log.Warn("[board] published posts unavailable", zap.Error(err))
		}
		published = cards
	}

	res, err := b.searcher.Search(ctx, q.Region, page, q.What, q.Where)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		b.log.Debug("[board] stale search dropped", zap.Uint64("generation", gen))
		return Page{}, ErrSuperseded
	}
	if err != nil {
		b.page = Page{Number: b.page.Number, Cards: []model.JobCard{}, Total: 0, TotalPages: 1}
		b.rawJobs = nil
		b.errMsg = err.Error()
		return Page{}, err
	}

	b.page = Compose(page, published, res)
	b.rawJobs = res.RawJobs
	b.skillsError = ""
	return b.page, nil
}

// Locate fills region and place from the user's IP. On failure the query
// is left as it was and the error message is set. Only the most recently
// started lookup may change the query; older ones return ErrSuperseded.
func (b *Board) Locate(ctx context.Context) (*geo.Location, error) {
	if b.locator == nil {
		return nil, errors.New("location detection not configured")
	}
	b.mu.Lock()
	b.locateGen++
	gen := b.locateGen
	b.errMsg = ""
	b.mu.Unlock()

	loc, err := b.locator.Detect(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.locateGen {
		b.log.Debug("[board] stale location dropped", zap.Uint64("generation", gen))
		return nil, ErrSuperseded
	}
	if err != nil {
		b.errMsg = err.Error()
		return nil, err
	}
	b.query.Region = loc.Region
	b.query.Where = loc.Where
	return loc, nil
}

// EnrichSkills asks the extractor for skills of the current remote results
// and applies non-empty lists to the matching cards. Cards are replaced,
// never mutated. A soft failure keeps the cards and sets SkillsError.
func (b *Board) EnrichSkills(ctx context.Context) error {
	if b.extractor == nil {
		return nil
	}
	b.mu.Lock()
	gen := b.generation
	jobs := append([]model.JobForExtraction(nil), b.rawJobs...)
	b.mu.Unlock()

	if len(jobs) == 0 {
		b.mu.Lock()
		b.skillsError = ""
		b.mu.Unlock()
		return nil
	}

	res := b.extractor.Extract(ctx, jobs)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return ErrSuperseded
	}
	b.skillsError = res.Error
	cards := make([]model.JobCard, len(b.page.Cards))
	for i, c := range b.page.Cards {
		if list := res.SkillsByJobID[c.ID]; len(list) > 0 {
			c = c.WithSkills(list)
		}
		cards[i] = c
	}
	b.page.Cards = cards
	return nil
}
