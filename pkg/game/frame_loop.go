package game

// FrameLoop 在 FrameQueue 上自我调度的逐帧循环
//
// Start 后每次 Flush 执行一次 fn，并在 fn 返回后请求下一帧。
// Cancel 取消已排队的下一帧并停止调度，可重复调用。
type FrameLoop struct {
	queue   *FrameQueue
	fn      FrameCallback
	handle  FrameHandle
	running bool
}

// NewFrameLoop 创建绑定到 queue 的循环
func NewFrameLoop(queue *FrameQueue) *FrameLoop {
	return &FrameLoop{queue: queue}
}

// Start 开始循环；已在运行时替换回调但不重复调度
func (l *FrameLoop) Start(fn FrameCallback) {
	l.fn = fn
	if l.running {
		return
	}
	l.running = true
	l.schedule()
}

func (l *FrameLoop) schedule() {
	l.handle = l.queue.RequestFrame(l.tick)
}

func (l *FrameLoop) tick(now float64) {
	if !l.running {
		return
	}
	l.fn(now)
	// fn 中可能调用了 Cancel
	if l.running {
		l.schedule()
	}
}

// Cancel 停止循环
func (l *FrameLoop) Cancel() {
	if !l.running {
		return
	}
	l.running = false
	l.queue.CancelFrame(l.handle)
	l.handle = 0
}

// Running 返回循环是否在运行
func (l *FrameLoop) Running() bool {
	return l.running
}
