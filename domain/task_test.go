package domain

import "testing"

func TestTaskNormalize(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		task := &Task{Title: "read chapter 4"}
		task.Normalize()

		if task.Status != StatusPending {
			t.Errorf("Status = %q, want %q", task.Status, StatusPending)
		}
		if task.Category != DefaultCategory {
			t.Errorf("Category = %q, want %q", task.Category, DefaultCategory)
		}
		if task.Priority != PriorityMedium {
			t.Errorf("Priority = %q, want %q", task.Priority, PriorityMedium)
		}
	})

	t.Run("coerces unknown priority", func(t *testing.T) {
		task := &Task{Title: "x", Priority: Priority("asap")}
		task.Normalize()
		if task.Priority != PriorityMedium {
			t.Errorf("Priority = %q, want %q", task.Priority, PriorityMedium)
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		task := &Task{Title: "x", Priority: PriorityHigh, Category: "math", Status: StatusInProgress}
		task.Normalize()
		if task.Priority != PriorityHigh || task.Category != "math" || task.Status != StatusInProgress {
			t.Errorf("normalize changed explicit fields: %+v", task)
		}
	})
}

func TestTaskValidate(t *testing.T) {
	t.Run("requires title", func(t *testing.T) {
		task := &Task{Status: StatusPending}
		if err := task.Validate(); err != ErrTitleRequired {
			t.Errorf("Validate() = %v, want ErrTitleRequired", err)
		}
	})

	t.Run("rejects negative estimate", func(t *testing.T) {
		task := &Task{Title: "x", Status: StatusPending, EstimatedMinutes: -5}
		if err := task.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate() = %v, want INVALID domain error", err)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		task := &Task{Title: "x", Status: Status("archived")}
		if err := task.Validate(); !IsDomainError(err, ErrCodeInvalid) {
			t.Errorf("Validate() = %v, want INVALID domain error", err)
		}
	})

	t.Run("accepts valid task", func(t *testing.T) {
		task := &Task{Title: "x", Status: StatusPending, EstimatedMinutes: 30}
		if err := task.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestIsCompleted(t *testing.T) {
	var nilTask *Task
	if nilTask.IsCompleted() {
		t.Error("nil task reported completed")
	}
	if (&Task{Status: StatusPending}).IsCompleted() {
		t.Error("pending task reported completed")
	}
	if !(&Task{Status: StatusCompleted}).IsCompleted() {
		t.Error("completed task not reported completed")
	}
}
