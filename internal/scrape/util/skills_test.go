package util

import (
	"reflect"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	text := "We use PYTHON and python daily, plus React and PostgreSQL."
	got := ExtractSkills(text, 15)
	want := []string{"Python", "React", "PostgreSQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractSkillsWholeToken(t *testing.T) {
	// "Rust" inside "trusted" must not match.
	got := ExtractSkills("a trusted partner for Javadoc readers", 15)
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestExtractSkillsCap(t *testing.T) {
	got := ExtractSkills("Python Java JavaScript TypeScript Ruby", 2)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 skills", got)
	}
}

func TestMergeSkills(t *testing.T) {
	got := MergeSkills(15,
		[]string{"Engineering", "", "python"},
		[]string{"Python", "Docker"},
	)
	want := []string{"Engineering", "python", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMergeSkillsCap(t *testing.T) {
	got := MergeSkills(2, []string{"a1", "b2", "c3"})
	if len(got) != 2 {
		t.Fatalf("got %v, want 2", got)
	}
}
