package client

import (
	"fmt"
)

// FetchError はコンセプトAPIとの通信失敗を表します。
// Status はHTTPステータス (通信自体に失敗した場合は 0)。
type FetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("%s failed", e.Op)
	}
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s (status %d): %v", msg, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// 操作ごとのエラーメッセージ
const (
	msgList   = "Failed to fetch concepts"
	msgGet    = "Failed to fetch concept"
	msgCreate = "Failed to create concept"
	msgUpdate = "Failed to update concept"
	msgDelete = "Failed to delete concept"
)
