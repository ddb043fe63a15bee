package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validScenario = `
name: raid
loop: true
steps:
  - chat: {user: Kappa, message: "hello 🎉"}
  - wait: 2s
  - donation: {user: BigSpender, amount: 5, message: gg}
  - wait: 500ms
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScenarioValidate(t *testing.T) {
	var out bytes.Buffer
	if err := runScenarioValidate(&out, writeScenario(t, validScenario)); err != nil {
		t.Fatalf("runScenarioValidate: %v", err)
	}
	want := "raid: 4 step(s), 2.5s per pass, loops\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestScenarioValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing name", "steps: [{follow: {user: a}}]", "name"},
		{"bad wait", "name: x\nsteps: [{wait: soon}]", "steps[0].wait"},
		{"not yaml", "name: [", "parse scenario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runScenarioValidate(&out, writeScenario(t, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
			if out.Len() != 0 {
				t.Errorf("nothing should be printed on failure, got %q", out.String())
			}
		})
	}
}
