package model

// Todo is a single todo record. The ID is assigned by the client at
// submission time and never changes afterwards.
type Todo struct {
	ID        string `json:"id" db:"id"`
	Text      string `json:"text" db:"text"`
	Completed bool   `json:"completed" db:"completed"`
}

// TodoPatch describes a partial update to a todo. A nil field means
// "keep the existing value" rather than "set to zero".
type TodoPatch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Apply merges the patch into an existing todo and returns the result.
func (p TodoPatch) Apply(todo Todo) Todo {
	if p.Text != nil {
		todo.Text = *p.Text
	}
	if p.Completed != nil {
		todo.Completed = *p.Completed
	}
	return todo
}
