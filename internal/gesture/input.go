package gesture

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Source は入力デバイスの種類
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// Kind はポインタイベントの種類。タッチの start/move/end も同じ種類に対応させます
type Kind int

const (
	KindDown Kind = iota
	KindMove
	KindUp
	KindLeave
)

// PointerEvent はマウス・タッチ共通の入力イベント
type PointerEvent struct {
	Kind   Kind
	Source Source
	X      float64
}

// Handle は入力元に関係なく同じ状態機械にイベントを渡します。
// Up / Leave のときだけ Result を返し、それ以外は ok=false
func (t *Translator) Handle(ev PointerEvent) (Transform, Result, bool) {
	switch ev.Kind {
	case KindDown:
		t.Down(ev.X)
	case KindMove:
		return t.Move(ev.X), Result{}, false
	case KindUp:
		return Transform{}, t.Up(), true
	case KindLeave:
		// タッチには leave が無いので end と同じ
		return Transform{}, t.Leave(), true
	}
	return Transform{}, Result{}, false
}

// Swipe は startX から endX へのドラッグを再生します (CLI の swipe コマンド用)
func (t *Translator) Swipe(startX, endX float64) Result {
	t.Down(startX)
	t.Move(endX)
	return t.Up()
}

// ParseDrag は "500-350" / "500 350" / "500->350" 形式の文字列を開始・終了座標に分解します
func ParseDrag(s string) (startX, endX float64, err error) {
	s = strings.TrimSpace(s)
	var parts []string
	switch {
	case strings.Contains(s, "->"):
		parts = strings.SplitN(s, "->", 2)
	case strings.ContainsAny(s, " \t"):
		parts = strings.Fields(s)
	default:
		// 先頭の符号を除いた位置で '-' を区切りとみなす
		idx := strings.Index(strings.TrimLeft(s, "-"), "-")
		if idx >= 0 {
			idx += len(s) - len(strings.TrimLeft(s, "-"))
			parts = []string{s[:idx], s[idx+1:]}
		}
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid drag %q: want <startX> <endX>", s)
	}
	startX, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start x %q: %w", parts[0], err)
	}
	endX, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid end x %q: %w", parts[1], err)
	}
	if !finite(startX) || !finite(endX) {
		return 0, 0, fmt.Errorf("invalid drag %q: coordinates must be finite", s)
	}
	return startX, endX, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
