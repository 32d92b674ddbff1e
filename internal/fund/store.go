package fund

import (
	"time"
)

// Project 众筹项目核心状态
type Project struct {
	ID           int64
	Owner        string
	Goal         int64
	Deadline     time.Time
	AmountRaised int64
	Ended        bool
	Succeeded    bool
}

// Store 项目存储：只追加，ID从1开始顺序分配。
// 并发安全由上层 Service 的串行化保证。
type Store struct {
	projects []*Project
}

// NewStore 创建项目存储
func NewStore() *Store {
	return &Store{}
}

// CreateProject 创建项目并分配下一个顺序ID
func (s *Store) CreateProject(owner string, goal int64, deadline, now time.Time) (int64, error) {
	if goal <= 0 {
		return 0, ErrInvalidGoal
	}
	if !deadline.After(now) {
		return 0, ErrInvalidDeadline
	}

	id := int64(len(s.projects)) + 1
	s.projects = append(s.projects, &Project{
		ID:       id,
		Owner:    owner,
		Goal:     goal,
		Deadline: deadline,
	})
	return id, nil
}

// Get 按ID查找项目，ID不在 [1, Count] 范围内时返回 false
func (s *Store) Get(id int64) (*Project, bool) {
	if id < 1 || id > int64(len(s.projects)) {
		return nil, false
	}
	return s.projects[id-1], true
}

// Count 已创建项目数量
func (s *Store) Count() int64 {
	return int64(len(s.projects))
}
