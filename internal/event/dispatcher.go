package event

import (
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/logger"
)

// Observer 通知观察者，由分发器按事件提交顺序依次调用
type Observer interface {
	Name() string
	Handle(n fund.Notification) error
}

// Dispatcher 通知分发器，实现 fund.Notifier。
// 事件进入队列后由单个循环取出，再经协程池并发交给各观察者；
// 上一个事件的所有观察者处理完才投递下一个，保证每个观察者
// 看到的事件顺序与核心提交顺序一致。
type Dispatcher struct {
	observers []Observer
	queue     chan fund.Notification
	pool      *ants.Pool
	stopped   chan struct{}
}

// NewDispatcher 创建通知分发器
func NewDispatcher(poolSize, queueSize int) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		queue:   make(chan fund.Notification, queueSize),
		pool:    pool,
		stopped: make(chan struct{}),
	}, nil
}

// Register 注册观察者，必须在 Start 之前调用
func (d *Dispatcher) Register(o Observer) {
	d.observers = append(d.observers, o)
}

// Start 启动分发循环
func (d *Dispatcher) Start() {
	go d.loop()
	logger.Info("Notification dispatcher started with %d observers", len(d.observers))
}

// Notify 实现 fund.Notifier，把通知按提交顺序入队
func (d *Dispatcher) Notify(n fund.Notification) {
	d.queue <- n
}

// Stop 停止分发器：排空队列后释放协程池。
// 必须在不再有 Notify 调用之后执行。
func (d *Dispatcher) Stop() {
	close(d.queue)
	<-d.stopped
	d.pool.Release()
	logger.Info("Notification dispatcher stopped")
}

func (d *Dispatcher) loop() {
	defer close(d.stopped)
	for n := range d.queue {
		d.deliver(n)
	}
}

// deliver 把单个事件并发交给所有观察者并等待全部完成
func (d *Dispatcher) deliver(n fund.Notification) {
	var wg sync.WaitGroup
	for _, o := range d.observers {
		o := o
		wg.Add(1)
		err := d.pool.Submit(func() {
			defer wg.Done()
			if err := o.Handle(n); err != nil {
				logger.Error("Observer %s failed to handle %s event: %v", o.Name(), n.EventType(), err)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit %s event to pool: %v", n.EventType(), err)
		}
	}
	wg.Wait()
}
