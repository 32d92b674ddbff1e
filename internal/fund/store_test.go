package fund

import (
	"errors"
	"testing"
	"time"
)

func TestStoreCreateProject(t *testing.T) {
	store := NewStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(24 * time.Hour)

	id, err := store.CreateProject("alice", 1500, deadline, now)
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if id != 1 {
		t.Errorf("first project id = %d, want 1", id)
	}

	project, ok := store.Get(id)
	if !ok {
		t.Fatal("Get returned not found for a created project")
	}
	if project.Owner != "alice" || project.Goal != 1500 || !project.Deadline.Equal(deadline) {
		t.Errorf("unexpected project state: %+v", project)
	}
	if project.AmountRaised != 0 || project.Ended || project.Succeeded {
		t.Errorf("new project must start with zero raised and open state: %+v", project)
	}
}

func TestStoreSequentialIds(t *testing.T) {
	store := NewStore()
	now := time.Now()
	deadline := now.Add(time.Hour)

	for want := int64(1); want <= 5; want++ {
		id, err := store.CreateProject("owner", 100, deadline, now)
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
		if id != want {
			t.Errorf("project id = %d, want %d", id, want)
		}
	}
	if store.Count() != 5 {
		t.Errorf("Count() = %d, want 5", store.Count())
	}
}

func TestStoreCreateProjectValidation(t *testing.T) {
	store := NewStore()
	now := time.Now()
	deadline := now.Add(time.Hour)

	if _, err := store.CreateProject("alice", 0, deadline, now); !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("goal=0: err = %v, want ErrInvalidGoal", err)
	}
	if _, err := store.CreateProject("alice", -10, deadline, now); !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("goal<0: err = %v, want ErrInvalidGoal", err)
	}
	if _, err := store.CreateProject("alice", 100, now, now); !errors.Is(err, ErrInvalidDeadline) {
		t.Errorf("deadline=now: err = %v, want ErrInvalidDeadline", err)
	}
	if _, err := store.CreateProject("alice", 100, now.Add(-time.Minute), now); !errors.Is(err, ErrInvalidDeadline) {
		t.Errorf("deadline<now: err = %v, want ErrInvalidDeadline", err)
	}

	// 失败的创建不分配ID
	if store.Count() != 0 {
		t.Errorf("Count() = %d after failed creations, want 0", store.Count())
	}
}

func TestStoreGetOutOfRange(t *testing.T) {
	store := NewStore()
	now := time.Now()
	store.CreateProject("alice", 100, now.Add(time.Hour), now)

	for _, id := range []int64{0, -1, 2, 100} {
		if _, ok := store.Get(id); ok {
			t.Errorf("Get(%d) = found, want not found", id)
		}
	}
}
