// internal/study/session.go
package study

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"concept_flash/internal/client"
	"concept_flash/internal/model"
)

// ErrSuperseded は、より新しい Load が開始されたため結果を破棄したことを表します
var ErrSuperseded = errors.New("study: load superseded by a newer load")

// ConceptLister はデッキの取得元 (client.Client が実装)
type ConceptLister interface {
	List(ctx context.Context) ([]model.Concept, error)
}

// State は描画用のスナップショットです
type State struct {
	Deck        []model.Concept
	Position    int
	Flipped     bool
	Visited     []int
	Loading     bool
	Err         error
	Progress    float64
	HasProgress bool
}

// Current は現在のカード (デッキが空なら false)
func (st State) Current() (model.Concept, bool) {
	if len(st.Deck) == 0 {
		return model.Concept{}, false
	}
	return st.Deck[st.Position], true
}

// Session は学習セッション (デッキ・現在位置・裏返し状態・既読インデックス) を管理します。
// 取得中 (Loading) はナビゲーション操作をすべて無視します。
type Session struct {
	mu sync.Mutex

	lister  ConceptLister
	logger  *slog.Logger
	rng     *rand.Rand
	permute bool

	deck     []model.Concept
	position int
	flipped  bool
	visited  map[int]struct{}

	loading    bool
	err        error
	generation uint64
}

type Option func(*Session)

// WithRand はシャッフルに使う乱数源を指定します
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// IdentityShuffle は取得順のままデッキを使います (テスト用)
func IdentityShuffle() Option {
	return func(s *Session) {
		s.permute = false
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(lister ConceptLister, opts ...Option) *Session {
	s := &Session{
		lister:  lister,
		logger:  slog.Default(),
		permute: true,
		visited: make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.logger = s.logger.With(slog.String("component", "study_session"))
	return s
}

// Load はコンセプト一覧を取得し、ランダムに並べ替えたデッキで新しいセッションを始めます。
// 失敗時は既存のデッキを変更せず *client.FetchError を含むエラーを返します。
// 複数の Load が重なった場合は最後に開始したものだけが反映されます。
func (s *Session) Load(ctx context.Context) ([]model.Concept, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	concepts, err := s.lister.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.DebugContext(ctx, "Discarding result of superseded load", slog.Uint64("generation", gen))
		return nil, ErrSuperseded
	}
	s.loading = false

	if err != nil {
		var fe *client.FetchError
		if !errors.As(err, &fe) {
			err = &client.FetchError{Op: "list", Message: "Failed to fetch concepts", Err: err}
		}
		s.err = err
		s.logger.ErrorContext(ctx, "Failed to load concepts", slog.Any("error", err))
		return nil, err
	}

	deck := make([]model.Concept, len(concepts))
	copy(deck, concepts)
	s.shuffleLocked(deck)

	s.deck = deck
	s.err = nil
	s.resetLocked()
	s.logger.DebugContext(ctx, "Concepts loaded", slog.Int("count", len(deck)))

	out := make([]model.Concept, len(deck))
	copy(out, deck)
	return out, nil
}

// Next は現在位置を既読に記録して次のカードへ進みます (末尾の次は先頭)
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading || len(s.deck) == 0 {
		return
	}
	s.visited[s.position] = struct{}{}
	s.flipped = false
	s.position = (s.position + 1) % len(s.deck)
}

// Previous は前のカードへ戻ります (先頭の前は末尾)。既読には記録しません。
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading || len(s.deck) == 0 {
		return
	}
	s.flipped = false
	s.position = (s.position - 1 + len(s.deck)) % len(s.deck)
}

func (s *Session) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return
	}
	s.flipped = !s.flipped
}

// Shuffle はデッキを並べ替え、位置・裏返し・既読をリセットします
func (s *Session) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return
	}
	s.shuffleLocked(s.deck)
	s.resetLocked()
	s.logger.Debug("Deck shuffled", slog.Int("count", len(s.deck)))
}

// Reset はデッキの順序を保ったまま位置・裏返し・既読をリセットします
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return
	}
	s.resetLocked()
}

// Progress は進捗率 (0〜100) を返します。デッキが空のときは ok=false
func (s *Session) Progress() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *Session) Current() (model.Concept, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading || len(s.deck) == 0 {
		return model.Concept{}, false
	}
	return s.deck[s.position], true
}

func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Len は現在のデッキの枚数 (取得中は 0)
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return 0
	}
	return len(s.deck)
}

func (s *Session) Flipped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flipped
}

// Visited は既読インデックスを昇順で返します
func (s *Session) Visited() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visitedLocked()
}

// Deck はデッキのコピーを返します
func (s *Session) Deck() []model.Concept {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Concept, len(s.deck))
	copy(out, s.deck)
	return out
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err は直近の Load の失敗 (成功後は nil)
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Position: s.position,
		Flipped:  s.flipped,
		Visited:  s.visitedLocked(),
		Loading:  s.loading,
		Err:      s.err,
	}
	if !s.loading {
		st.Deck = make([]model.Concept, len(s.deck))
		copy(st.Deck, s.deck)
	}
	st.Progress, st.HasProgress = s.progressLocked()
	return st
}

func (s *Session) progressLocked() (float64, bool) {
	if s.loading || len(s.deck) == 0 {
		return 0, false
	}
	seen := len(s.visited)
	if s.flipped {
		seen++
	}
	p := 100 * float64(seen) / float64(len(s.deck))
	if p > 100 {
		p = 100
	}
	return p, true
}

func (s *Session) visitedLocked() []int {
	out := make([]int, 0, len(s.visited))
	for i := range s.visited {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s *Session) resetLocked() {
	s.position = 0
	s.flipped = false
	s.visited = make(map[int]struct{})
}

// shuffleLocked は Fisher-Yates でデッキをその場で並べ替えます
func (s *Session) shuffleLocked(deck []model.Concept) {
	if !s.permute {
		return
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
