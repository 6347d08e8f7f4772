package state

import (
	"reflect"
	"testing"

	"taskdeck/internal/domain/models"
)

func TestFilterTasks(t *testing.T) {
	tasks := []models.Task{task("1", "a", false), task("2", "b", true), task("3", "c", false), task("4", "d", true)}

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4"}},
		{FilterRemained, []string{"1", "3"}},
		{FilterCompleted, []string{"2", "4"}},
		{Filter("bogus"), []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := FilterTasks(tasks, tt.filter)
			if ids := TaskIDs(got); !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
			if again := FilterTasks(got, tt.filter); !reflect.DeepEqual(again, got) {
				t.Error("filtering is not idempotent")
			}
		})
	}

	t.Run("all returns the same slice", func(t *testing.T) {
		got := FilterTasks(tasks, FilterAll)
		if &got[0] != &tasks[0] {
			t.Error("expected the input slice back")
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		FilterTasks(tasks, FilterCompleted)
		if len(tasks) != 4 || tasks[0].ID != "1" {
			t.Error("input modified")
		}
	})
}

func TestParseFilterAndNext(t *testing.T) {
	if ParseFilter("completed") != FilterCompleted || ParseFilter("remained") != FilterRemained || ParseFilter("x") != FilterAll {
		t.Error("unexpected parse results")
	}

	f := FilterAll
	seen := []Filter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	if !reflect.DeepEqual(seen, []Filter{FilterAll, FilterRemained, FilterCompleted, FilterAll}) {
		t.Errorf("cycle = %v", seen)
	}
}

func TestNeedsDeleteConfirmation(t *testing.T) {
	tests := []struct {
		name string
		p    models.Project
		want bool
	}{
		{"no tasks", project("a"), false},
		{"all resolved", project("a", task("1", "x", true), task("2", "y", true)), false},
		{"one unresolved", project("a", task("1", "x", true), task("2", "y", false)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsDeleteConfirmation(tt.p); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskHelpers(t *testing.T) {
	tasks := []models.Task{task("1", "a", false), task("2", "b", true)}

	if got := ResolvedIDs(tasks); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("ResolvedIDs = %v", got)
	}
	if got := WithoutTask(tasks, "missing"); len(got) != 2 {
		t.Errorf("WithoutTask on a missing id changed the list: %v", got)
	}
	AllResolved(tasks)
	if tasks[0].Resolved {
		t.Error("AllResolved modified its input")
	}
}
