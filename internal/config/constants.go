// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "concept-flash"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort     = ":8080"
	DefaultDatabaseDriver = "sqlite"
	DefaultDatabaseURL    = "concepts.db"
	DefaultLogLevel       = "info"
	DefaultAuthEnabled    = false
	DefaultSwipeThreshold = 100.0
	DefaultClientTimeout  = 10 * time.Second
)

// コンセプトAPIのエンドポイント
const (
	DefaultClientBaseURL = "https://haix.ai/api"
	DefaultConceptTable  = "concepts_k8m4n2p1"
)
