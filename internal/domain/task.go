package domain

// Task is the single entity of the task list: a titled to-do item.
// ID is zero until the store has persisted the task.
type Task struct {
	ID    int64
	Title string
}

// NewTask creates an unsaved Task with the given title.
func NewTask(title string) *Task {
	return &Task{
		Title: title,
	}
}

// IsSaved reports whether the store has assigned the task an ID.
func (t Task) IsSaved() bool {
	return t.ID != 0
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Title != ""
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
