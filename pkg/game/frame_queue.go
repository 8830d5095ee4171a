package game

// FrameCallback 帧回调，参数为当前时间（秒）
type FrameCallback func(now float64)

// FrameHandle 帧回调句柄，用于取消
type FrameHandle uint64

type frameRequest struct {
	handle FrameHandle
	fn     FrameCallback
	done   bool // 已执行或已取消
}

// FrameQueue 帧回调队列（requestAnimationFrame 语义）
//
// 回调在 Flush 时按请求顺序执行，每个回调只执行一次。
// Flush 期间新请求的回调进入下一次 Flush。
// 只在游戏主循环（ebiten Update）中使用，不是并发安全的。
type FrameQueue struct {
	nextHandle FrameHandle
	pending    []*frameRequest
	running    []*frameRequest
}

// NewFrameQueue 创建帧回调队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		nextHandle: 1, // 0 保留为无效句柄
	}
}

// RequestFrame 请求在下一次 Flush 时执行 fn
func (q *FrameQueue) RequestFrame(fn FrameCallback) FrameHandle {
	h := q.nextHandle
	q.nextHandle++
	q.pending = append(q.pending, &frameRequest{handle: h, fn: fn})
	return h
}

// CancelFrame 取消尚未执行的回调
// 对已执行、已取消或无效的句柄无效果
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	for _, list := range [][]*frameRequest{q.running, q.pending} {
		for _, req := range list {
			if req.handle == h {
				req.done = true
				return
			}
		}
	}
}

// Pending 返回等待下一次 Flush 的回调数量
func (q *FrameQueue) Pending() int {
	n := 0
	for _, req := range q.pending {
		if !req.done {
			n++
		}
	}
	return n
}

// Flush 执行当前排队的所有回调
func (q *FrameQueue) Flush(now float64) {
	if len(q.pending) == 0 {
		return
	}

	q.running = q.pending
	q.pending = nil

	for _, req := range q.running {
		if req.done {
			continue
		}
		req.done = true
		req.fn(now)
	}
	q.running = nil
}
