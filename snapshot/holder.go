// Package snapshot 负责推荐快照的构建与原子切换。
//
// 快照构建是批处理：启动时执行一次，之后按需显式刷新。
// 构建失败不影响正在服务的旧快照。
package snapshot

import (
	"sync/atomic"

	"github.com/rushteam/cosrec/core"
)

// Holder 持有"当前快照"引用，支持无锁读与原子切换。
// 进行中的请求继续使用其 Load 到的快照，不受 Swap 影响。
type Holder struct {
	cur atomic.Pointer[core.Snapshot]
}

func NewHolder() *Holder {
	return &Holder{}
}

// Load 返回当前快照；尚未构建时返回 nil。
func (h *Holder) Load() *core.Snapshot {
	return h.cur.Load()
}

// Swap 原子替换当前快照，返回被替换的旧快照。
func (h *Holder) Swap(s *core.Snapshot) *core.Snapshot {
	return h.cur.Swap(s)
}
