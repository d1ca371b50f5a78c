// internal/gesture/translator.go
package gesture

import (
	"log/slog"
	"math"
	"sync"
)

const (
	DefaultThreshold      = 100.0
	DefaultRotationFactor = 0.1
	DefaultMaxRotation    = 10.0
)

// Navigator はスワイプ確定時に呼ばれるナビゲーション先 (study.Session が実装)
type Navigator interface {
	Next()
	Previous()
}

// Permissions は各方向への移動を許可するかを返します
type Permissions struct {
	CanGoNext     func() bool
	CanGoPrevious func() bool
}

// Action はドラッグ終了時に発生したナビゲーション
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	}
	return "none"
}

// Transform はカードの見た目上の移動量と回転角 (度)
type Transform struct {
	DX       float64
	Rotation float64
}

// Result はドラッグ終了 (Up / Leave) の結果。Transform は常にゼロ値
type Result struct {
	Action    Action
	Transform Transform
}

// Translator はポインタの水平移動をナビゲーションに変換する状態機械です。
// 状態は Idle と Dragging のみで、スナップバックは Up / Leave の中で即座に終わります。
type Translator struct {
	mu sync.Mutex

	nav    Navigator
	perms  Permissions
	logger *slog.Logger

	threshold      float64
	rotationFactor float64
	maxRotation    float64

	dragging bool
	startX   float64
	currentX float64
}

type Option func(*Translator)

// WithThreshold はナビゲーションが発生する移動量の閾値を指定します (0 以下は無視)
func WithThreshold(px float64) Option {
	return func(t *Translator) {
		if px > 0 {
			t.threshold = px
		}
	}
}

func WithPermissions(p Permissions) Option {
	return func(t *Translator) {
		t.perms = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

func NewTranslator(nav Navigator, opts ...Option) *Translator {
	t := &Translator{
		nav:            nav,
		logger:         slog.Default(),
		threshold:      DefaultThreshold,
		rotationFactor: DefaultRotationFactor,
		maxRotation:    DefaultMaxRotation,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dragging はドラッグ中なら true
func (t *Translator) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dragging
}

// Down はドラッグを開始します。ドラッグ中の Down は開始位置を取り直します
func (t *Translator) Down(x float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dragging = true
	t.startX = x
	t.currentX = x
}

// Move は現在位置を更新し、表示用の Transform を返します。Idle 中は無視してゼロ値を返します
func (t *Translator) Move(x float64) Transform {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dragging {
		return Transform{}
	}
	t.currentX = x
	return t.transformLocked()
}

// Up はドラッグを終了し、閾値を超えていればナビゲーションを実行します
func (t *Translator) Up() Result {
	t.mu.Lock()
	if !t.dragging {
		t.mu.Unlock()
		return Result{}
	}
	dx := t.currentX - t.startX
	t.dragging = false
	t.startX, t.currentX = 0, 0
	action := t.decideLocked(dx)
	t.mu.Unlock()

	// Navigator は自身のロックを持つのでここでは解放済み
	switch action {
	case ActionNext:
		t.nav.Next()
	case ActionPrevious:
		t.nav.Previous()
	}
	t.logger.Debug("Drag released", slog.Float64("dx", dx), slog.String("action", action.String()))
	return Result{Action: action}
}

// Leave はドラッグ面から外れた場合で、Up と同じ扱いです
func (t *Translator) Leave() Result {
	return t.Up()
}

func (t *Translator) decideLocked(dx float64) Action {
	// NaN は比較が常に false になるので「超えた」ときだけ進める
	if !(math.Abs(dx) > t.threshold) {
		return ActionNone
	}
	if dx > 0 {
		if allowed(t.perms.CanGoPrevious) {
			return ActionPrevious
		}
		return ActionNone
	}
	if allowed(t.perms.CanGoNext) {
		return ActionNext
	}
	return ActionNone
}

func (t *Translator) transformLocked() Transform {
	dx := t.currentX - t.startX
	rotation := dx * t.rotationFactor
	rotation = math.Max(-t.maxRotation, math.Min(t.maxRotation, rotation))
	return Transform{DX: dx, Rotation: rotation}
}

func allowed(f func() bool) bool {
	return f == nil || f()
}
