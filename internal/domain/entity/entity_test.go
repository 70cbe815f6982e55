package entity

import "testing"

func TestPriorityRank(t *testing.T) {
	cases := map[int]int{0: 7, 1: 1, 2: 2, 6: 6}
	for in, want := range cases {
		if got := PriorityRank(in); got != want {
			t.Errorf("PriorityRank(%d) = %d, want %d", in, got, want)
		}
	}
	if !ValidPriority(0) || !ValidPriority(6) || ValidPriority(7) || ValidPriority(-1) {
		t.Errorf("ValidPriority bounds are wrong")
	}
}

func TestAIPromptFill(t *testing.T) {
	p := &AIPrompt{PromptTemplate: "Plan for {task_description}. Again: {task_description}."}
	got := p.Fill("write report")
	want := "Plan for write report. Again: write report."
	if got != want {
		t.Fatalf("Fill = %q, want %q", got, want)
	}

	plain := &AIPrompt{PromptTemplate: "No placeholder {other}"}
	if got := plain.Fill("x"); got != "No placeholder {other}" {
		t.Fatalf("template without placeholder changed: %q", got)
	}
}

func TestUserPassword(t *testing.T) {
	u := NewUser("  Alice@Example.COM ", " Alice ")
	if u.Email != "alice@example.com" || u.Name != "Alice" {
		t.Fatalf("user not normalized: %+v", u)
	}
	if err := u.SetPassword("correct horse"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "correct horse" {
		t.Fatalf("password stored in clear text")
	}
	if !u.CheckPassword("correct horse") {
		t.Fatalf("CheckPassword rejected the right password")
	}
	if u.CheckPassword("wrong horse") {
		t.Fatalf("CheckPassword accepted the wrong password")
	}
}

func TestTaskHelpers(t *testing.T) {
	task := NewTask("owner", "desc")
	if task.Categories == nil {
		t.Fatalf("categories should default to an empty array")
	}
	task.Categories = append(task.Categories, "work")
	if !task.HasCategory("work") || task.HasCategory("home") {
		t.Fatalf("HasCategory mismatch")
	}
	if task.IsCompleted() {
		t.Fatalf("new task should be incomplete")
	}
}
