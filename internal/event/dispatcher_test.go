package event

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blues/esl/internal/fund"
)

// recordingObserver 记录收到的事件序列
type recordingObserver struct {
	name string
	fail bool

	mu   sync.Mutex
	seen []fund.Notification
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Handle(n fund.Notification) error {
	o.mu.Lock()
	o.seen = append(o.seen, n)
	o.mu.Unlock()
	if o.fail {
		return errors.New("handler failure")
	}
	return nil
}

func (o *recordingObserver) events() []fund.Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]fund.Notification(nil), o.seen...)
}

func TestDispatcherPreservesOrderPerObserver(t *testing.T) {
	d, err := NewDispatcher(4, 64)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	first := &recordingObserver{name: "first"}
	second := &recordingObserver{name: "second"}
	d.Register(first)
	d.Register(second)
	d.Start()

	var want []fund.Notification
	for i := int64(1); i <= 20; i++ {
		n := fund.ProjectFunded{ProjectID: 1, Contributor: fmt.Sprintf("user-%d", i), Amount: i}
		want = append(want, n)
		d.Notify(n)
	}
	d.Stop()

	for _, o := range []*recordingObserver{first, second} {
		got := o.events()
		if len(got) != len(want) {
			t.Fatalf("observer %s saw %d events, want %d", o.name, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("observer %s event[%d] = %+v, want %+v", o.name, i, got[i], want[i])
			}
		}
	}
}

func TestDispatcherFailingObserverDoesNotBlockOthers(t *testing.T) {
	d, err := NewDispatcher(2, 16)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	broken := &recordingObserver{name: "broken", fail: true}
	healthy := &recordingObserver{name: "healthy"}
	d.Register(broken)
	d.Register(healthy)
	d.Start()

	d.Notify(fund.ProjectCreated{ProjectID: 1, Owner: "alice", Goal: 1500, Deadline: time.Now().Add(time.Hour)})
	d.Notify(fund.ProjectEnded{ProjectID: 1, Succeeded: false})
	d.Stop()

	if got := len(healthy.events()); got != 2 {
		t.Errorf("healthy observer saw %d events, want 2", got)
	}
	if got := len(broken.events()); got != 2 {
		t.Errorf("broken observer saw %d events, want 2", got)
	}
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	d, err := NewDispatcher(1, 128)
	if err != nil {
		t.Fatalf("NewDispatcher failed: %v", err)
	}
	o := &recordingObserver{name: "drain"}
	d.Register(o)
	d.Start()

	for i := int64(1); i <= 100; i++ {
		d.Notify(fund.ProjectFunded{ProjectID: i, Contributor: "bob", Amount: i})
	}
	// Stop 必须排空队列后才返回
	d.Stop()

	if got := len(o.events()); got != 100 {
		t.Errorf("observer saw %d events after Stop, want 100", got)
	}
}
