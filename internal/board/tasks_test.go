package board

import (
	"fmt"
	"testing"
)

// useSeqIDs makes newID deterministic for the duration of a test.
func useSeqIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
	t.Cleanup(func() { newID = orig })
}

func TestTasks_Add(t *testing.T) {
	useSeqIDs(t)

	var tasks Tasks
	tasks, task, ok := tasks.Add("write report")
	if !ok {
		t.Fatal("Add() ok = false, want true")
	}
	if task.Column != InProgress {
		t.Errorf("Column = %q, want %q", task.Column, InProgress)
	}
	if task.ID != "t1" {
		t.Errorf("ID = %q, want t1", task.ID)
	}
	if tasks.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tasks.Len())
	}
}

func TestTasks_AddRejectsBlank(t *testing.T) {
	tests := []string{"", " ", "  ", "\t\n"}
	for _, content := range tests {
		t.Run(fmt.Sprintf("%q", content), func(t *testing.T) {
			before := New(Task{ID: "a", Content: "x", Column: Urgent})
			after, _, ok := before.Add(content)
			if ok {
				t.Error("Add() ok = true, want false")
			}
			if !after.Equal(before) {
				t.Error("collection changed on blank add")
			}
		})
	}
}

func TestTasks_AddCountsOnlyNonEmpty(t *testing.T) {
	inputs := []string{"a", " ", "b", "", "c", "\t"}
	var tasks Tasks
	want := 0
	for _, in := range inputs {
		var ok bool
		tasks, _, ok = tasks.Add(in)
		if ok {
			want++
		}
	}
	if tasks.Len() != 3 || want != 3 {
		t.Errorf("Len() = %d (accepted %d), want 3", tasks.Len(), want)
	}
}

func TestTasks_AddKeepsContentAsTyped(t *testing.T) {
	tasks, task, _ := Tasks{}.Add("  padded  ")
	if task.Content != "  padded  " {
		t.Errorf("Content = %q, want untrimmed", task.Content)
	}
	if got, _ := tasks.Find(task.ID); got.Content != "  padded  " {
		t.Errorf("stored Content = %q", got.Content)
	}
}

func TestTasks_Immutable(t *testing.T) {
	useSeqIDs(t)

	base, a, _ := Tasks{}.Add("a")
	base, _, _ = base.Add("b")
	snapshot := base.Slice()

	_ = base.MoveTo(a.ID, Urgent)
	_ = base.Remove(a.ID)
	_, _ = base.Decompose(a.ID, []string{"x", "y"})
	_, _, _ = base.Add("c")

	if !base.Equal(New(snapshot...)) {
		t.Errorf("receiver mutated: %+v", base.Slice())
	}

	s := base.Slice()
	s[0].Content = "changed"
	if got, _ := base.Find(a.ID); got.Content != "a" {
		t.Error("Slice() did not return a copy")
	}
}

func TestTasks_Remove(t *testing.T) {
	tasks := New(
		Task{ID: "a", Content: "a", Column: Urgent},
		Task{ID: "b", Content: "b", Column: InProgress},
	)

	got := tasks.Remove("a")
	if got.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", got.Len())
	}
	if _, ok := got.Find("a"); ok {
		t.Error("removed task still present")
	}

	if same := tasks.Remove("missing"); !same.Equal(tasks) {
		t.Error("removing absent id changed collection")
	}
}

func TestTasks_MoveTo(t *testing.T) {
	tasks := New(Task{ID: "a", Content: "a", Column: InProgress})

	once := tasks.MoveTo("a", DoneOrIdea)
	twice := once.MoveTo("a", DoneOrIdea)
	if !once.Equal(twice) {
		t.Error("MoveTo is not idempotent")
	}
	if got, _ := once.Find("a"); got.Column != DoneOrIdea {
		t.Errorf("Column = %q, want %q", got.Column, DoneOrIdea)
	}

	if same := tasks.MoveTo("missing", Urgent); !same.Equal(tasks) {
		t.Error("moving absent id changed collection")
	}
}

func TestTasks_MoveToSkipsCapacity(t *testing.T) {
	tasks := New(
		Task{ID: "a", Column: Urgent},
		Task{ID: "b", Column: Urgent},
		Task{ID: "c", Column: Urgent},
		Task{ID: "d", Column: InProgress},
	)
	got := tasks.MoveTo("d", Urgent)
	if got.Count(Urgent) != 4 {
		t.Errorf("Count(Urgent) = %d, want 4", got.Count(Urgent))
	}
}

func TestTasks_Decompose(t *testing.T) {
	useSeqIDs(t)

	tasks := New(
		Task{ID: "a", Content: "first", Column: InProgress},
		Task{ID: "b", Content: "big task", Column: Urgent},
		Task{ID: "c", Content: "last", Column: DoneOrIdea},
	)

	got, created := tasks.Decompose("b", []string{"one", "two", "three"})

	if got.Len() != tasks.Len()-1+3 {
		t.Fatalf("Len() = %d, want %d", got.Len(), tasks.Len()+2)
	}
	if len(created) != 3 {
		t.Fatalf("created %d tasks, want 3", len(created))
	}
	if _, ok := got.Find("b"); ok {
		t.Error("original task still present")
	}

	wantOrder := []string{"first", "one", "two", "three", "last"}
	for i, task := range got.Slice() {
		if task.Content != wantOrder[i] {
			t.Errorf("position %d = %q, want %q", i, task.Content, wantOrder[i])
		}
	}
	for _, task := range created {
		if task.Column != Urgent {
			t.Errorf("task %q column = %q, want %q", task.Content, task.Column, Urgent)
		}
		if task.ID == "b" {
			t.Error("new task reused original id")
		}
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestTasks_DecomposeAbsentID(t *testing.T) {
	tasks := New(Task{ID: "a", Content: "a", Column: InProgress})

	for _, parts := range [][]string{nil, {}, {"x"}, {"x", "y", "z"}} {
		got, created := tasks.Decompose("missing", parts)
		if !got.Equal(tasks) {
			t.Errorf("Decompose(missing, %v) changed collection", parts)
		}
		if created != nil {
			t.Errorf("Decompose(missing, %v) created %v", parts, created)
		}
	}
}

func TestTasks_Queries(t *testing.T) {
	tasks := New(
		Task{ID: "a", Column: Urgent},
		Task{ID: "b", Column: InProgress},
		Task{ID: "c", Column: Urgent},
	)

	if got := tasks.Count(Urgent); got != 2 {
		t.Errorf("Count(Urgent) = %d, want 2", got)
	}
	urgent := tasks.InColumn(Urgent)
	if len(urgent) != 2 || urgent[0].ID != "a" || urgent[1].ID != "c" {
		t.Errorf("InColumn(Urgent) = %+v", urgent)
	}
	if got := tasks.InColumn(DoneOrIdea); len(got) != 0 {
		t.Errorf("InColumn(DoneOrIdea) = %+v, want empty", got)
	}
}

func TestTasks_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tasks   Tasks
		wantErr bool
	}{
		{"empty", Tasks{}, false},
		{"valid", New(Task{ID: "a", Column: Urgent}, Task{ID: "b", Column: DoneOrIdea}), false},
		{"duplicate id", New(Task{ID: "a", Column: Urgent}, Task{ID: "a", Column: Urgent}), true},
		{"empty id", New(Task{ID: "", Column: Urgent}), true},
		{"unknown column", New(Task{ID: "a", Column: "purple"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tasks.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
