// internal/analysis/analysis.go
package analysis

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/gangoffour/engine"
	"github.com/jason-s-yu/gangoffour/engine/agent"
	"github.com/jason-s-yu/gangoffour/service/internal/auth"
	"github.com/jason-s-yu/gangoffour/service/internal/cache"
	"github.com/jason-s-yu/gangoffour/service/internal/journal"
	"github.com/jason-s-yu/gangoffour/service/internal/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// MaxOptions is the number of ranked alternatives returned with a recommendation.
const MaxOptions = 8

// Request describes one decision point. Cards use the engine notation,
// separated by whitespace.
type Request struct {
	Hand  string `json:"hand"`
	Trick string `json:"trick,omitempty"` // empty when leading

	// Played lists cards already out of play. Omitted means unknown, which
	// leaves the opponent features empty; an empty string means none.
	Played *string `json:"played,omitempty"`

	OpponentHandSizes []int `json:"opponentHandSizes,omitempty"`

	// Model outputs for this position, when the caller has run the model.
	Logits  []float32 `json:"logits,omitempty"`
	Declare *float32  `json:"declare,omitempty"` // declare probability
}

// Option is one ranked play.
type Option struct {
	Index       int     `json:"index"`
	Play        string  `json:"play"`
	Probability float32 `json:"probability"`
	Best        bool    `json:"best,omitempty"`
}

// Result is the analysis of a Request.
type Result struct {
	ID         uuid.UUID `json:"id"`
	Leading    bool      `json:"leading"`
	LegalCount int       `json:"legalCount"`
	OnlyPass   bool      `json:"onlyPass"`
	Cached     bool      `json:"cached"`

	// Actions[i] is the play behind model action index i; Actions[0] is PASS.
	Actions []string  `json:"actions"`
	State   []float32 `json:"state"`
	Mask    []float32 `json:"mask"`

	Recommendation *Option  `json:"recommendation,omitempty"`
	Options        []Option `json:"options,omitempty"`
	Declare        *bool    `json:"declare,omitempty"`
}

// Options configures an Analyzer. Zero values select no cache, no journal,
// a discarding logger and the standard hand size.
type Options struct {
	MaxHandSize int
	Cache       cache.Cache
	Journal     journal.Recorder
	Logger      logrus.FieldLogger
}

// Analyzer runs the parse, enumerate, encode and decode pipeline.
// It is safe for concurrent use.
type Analyzer struct {
	maxHand int
	cache   cache.Cache
	journal journal.Recorder
	log     logrus.FieldLogger
	group   singleflight.Group
}

// New returns an Analyzer for opts.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		maxHand: opts.MaxHandSize,
		cache:   opts.Cache,
		journal: opts.Journal,
		log:     opts.Logger,
	}
	if a.maxHand <= 0 || a.maxHand > engine.MaxHandSize {
		a.maxHand = engine.MaxHandSize
	}
	if a.cache == nil {
		a.cache = cache.Nop{}
	}
	if a.journal == nil {
		a.journal = journal.Nop{}
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	return a
}

// position is a validated Request.
type position struct {
	hand, trick []engine.Card
	played      []engine.Card
	opponents   []int
}

func (a *Analyzer) parse(req Request) (position, error) {
	var pos position
	var err error

	if pos.hand, err = engine.ParseHand(req.Hand); err != nil {
		return pos, fmt.Errorf("hand: %w", err)
	}
	if len(pos.hand) == 0 {
		return pos, ErrEmptyHand
	}
	if len(pos.hand) > a.maxHand {
		return pos, fmt.Errorf("%w: %d cards, limit %d", ErrHandTooLarge, len(pos.hand), a.maxHand)
	}
	if pos.trick, err = engine.ParseHand(req.Trick); err != nil {
		return pos, fmt.Errorf("trick: %w", err)
	}
	if req.Played != nil {
		if pos.played, err = engine.ParseHand(*req.Played); err != nil {
			return pos, fmt.Errorf("played: %w", err)
		}
	}
	if err := engine.CheckCopies(pos.hand, pos.trick, pos.played); err != nil {
		return pos, err
	}

	if len(req.OpponentHandSizes) > agent.NumOpponents {
		return pos, ErrOpponents
	}
	for _, n := range req.OpponentHandSizes {
		if n < 0 || n > engine.MaxHandSize {
			return pos, ErrOpponents
		}
	}
	pos.opponents = req.OpponentHandSizes

	if len(req.Logits) > agent.MaxActions {
		return pos, fmt.Errorf("%w: got %d, at most %d", ErrLogits, len(req.Logits), agent.MaxActions)
	}
	return pos, nil
}

// orderedPlays returns the ordered action list and the number of legal plays
// for a position, consulting the cache first. Concurrent requests for the
// same position share one enumeration.
func (a *Analyzer) orderedPlays(ctx context.Context, hand, trick []engine.Card) ([]engine.Play, int, bool, error) {
	key := cache.Key(hand, trick)
	log := a.log.WithField("cache_key", key)

	if e, ok, err := a.cache.Get(ctx, key); err != nil {
		log.WithError(err).Warn("cache lookup failed")
	} else if ok {
		ordered, err := e.Ordered()
		if err == nil {
			return ordered, e.Total, true, nil
		}
		log.WithError(err).Warn("discarding corrupt cache entry")
	}

	v, err, _ := a.group.Do(key, func() (any, error) {
		legal := engine.LegalPlays(hand, trick)
		e := cache.NewEntry(agent.OrderPlays(legal), len(legal))
		// Detached so one caller's cancellation does not drop the write for the others.
		if err := a.cache.Set(context.WithoutCancel(ctx), key, e); err != nil {
			log.WithError(err).Warn("cache store failed")
		}
		return e, nil
	})
	if err != nil {
		return nil, 0, false, err
	}
	e := v.(cache.Entry)
	ordered, err := e.Ordered()
	if err != nil {
		return nil, 0, false, err
	}
	return ordered, e.Total, false, nil
}

// Analyze evaluates req. Errors for which IsClientError is true describe a
// bad request; anything else is an internal failure.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	pos, err := a.parse(req)
	if err != nil {
		return nil, err
	}

	ordered, total, cached, err := a.orderedPlays(ctx, pos.hand, pos.trick)
	if err != nil {
		return nil, fmt.Errorf("enumerating plays: %w", err)
	}

	leading := len(pos.trick) == 0
	res := &Result{
		ID:         uuid.New(),
		Leading:    leading,
		LegalCount: total,
		OnlyPass:   !leading && total == 1,
		Cached:     cached,
		Actions:    make([]string, len(ordered)),
	}
	for i, p := range ordered {
		res.Actions[i] = p.String()
	}

	var state [agent.InputDim]float32
	agent.Encode(agent.StateInput{
		Hand:              pos.hand,
		ValidPlays:        ordered,
		Leading:           leading,
		Trick:             pos.trick,
		Played:            pos.played,
		OpponentHandSizes: pos.opponents,
	}, &state)
	mask := agent.ActionMask(&state)
	res.State = state[:]
	res.Mask = mask[:]

	switch {
	case res.OnlyPass:
		res.Recommendation = &Option{Index: 0, Play: engine.Play(nil).String(), Probability: 1, Best: true}
	case len(req.Logits) > 0:
		res.Recommendation, res.Options = rank(req.Logits, ordered)
		if req.Declare != nil {
			declare := *req.Declare > agent.DeclareThreshold
			res.Declare = &declare
		}
	}

	entry := journal.Entry{
		ID:         res.ID,
		Subject:    auth.Subject(ctx),
		Hand:       engine.FormatCards(pos.hand),
		Trick:      engine.FormatCards(pos.trick),
		Leading:    leading,
		LegalCount: total,
		Declare:    res.Declare,
		CreatedAt:  start.UTC(),
	}
	if res.Recommendation != nil {
		entry.Recommended = res.Recommendation.Play
	}
	if err := a.journal.Record(ctx, entry); err != nil {
		a.log.WithError(err).WithField("analysis_id", res.ID).Warn("journal write failed")
	}

	a.log.WithFields(logrus.Fields{
		"analysis_id": res.ID,
		"hand":        entry.Hand,
		"trick":       entry.Trick,
		"legal":       total,
		"cached":      cached,
		"took":        time.Since(start),
	}).Debug("analysis complete")
	return res, nil
}

// rank turns model logits into the recommended play and the most probable
// options, best first.
func rank(logits []float32, ordered []engine.Play) (*Option, []Option) {
	probs := agent.ActionProbabilities(logits, ordered)
	best := agent.BestAction(logits, ordered)

	opts := make([]Option, len(probs))
	for i, p := range probs {
		opts[i] = Option{
			Index:       i,
			Play:        agent.DecodeAction(i, ordered).String(),
			Probability: p,
			Best:        i == best,
		}
	}
	rec := Option{Index: best, Play: agent.DecodeAction(best, ordered).String(), Best: true}
	if best < len(probs) {
		rec.Probability = probs[best]
	}

	slices.SortStableFunc(opts, func(a, b Option) int {
		return cmp.Compare(b.Probability, a.Probability)
	})
	return &rec, opts[:min(len(opts), MaxOptions)]
}
