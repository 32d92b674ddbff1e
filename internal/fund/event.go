package fund

import (
	"time"
)

// 通知类型
const (
	EventProjectCreated = "ProjectCreated"
	EventProjectFunded  = "ProjectFunded"
	EventProjectEnded   = "ProjectEnded"
)

// Notification 核心操作提交后发出的通知，按提交顺序只追加，
// 投递与消费由观察者自行负责，核心不等待确认。
type Notification interface {
	EventType() string
}

// ProjectCreated 项目创建通知
type ProjectCreated struct {
	ProjectID int64     `json:"project_id"`
	Owner     string    `json:"owner"`
	Goal      int64     `json:"goal"`
	Deadline  time.Time `json:"deadline"`
}

func (ProjectCreated) EventType() string { return EventProjectCreated }

// ProjectFunded 出资通知。撤资走同一通知，amount 为实际退回金额。
type ProjectFunded struct {
	ProjectID   int64  `json:"project_id"`
	Contributor string `json:"contributor"`
	Amount      int64  `json:"amount"`
}

func (ProjectFunded) EventType() string { return EventProjectFunded }

// ProjectEnded 项目关闭通知
type ProjectEnded struct {
	ProjectID int64 `json:"project_id"`
	Succeeded bool  `json:"succeeded"`
}

func (ProjectEnded) EventType() string { return EventProjectEnded }

// Notifier 通知出口，由事件分发器实现
type Notifier interface {
	Notify(n Notification)
}
