package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdirForTest(t *testing.T, dir string) func() {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%s): %v", dir, err)
	}
	return func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore cwd %s: %v", wd, err)
		}
	}
}

func writeMainTestFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestInitAddCommitStatusLog(t *testing.T) {
	dir := t.TempDir()
	restore := chdirForTest(t, dir)
	defer restore()

	var out bytes.Buffer
	initCmd := newInitCmd()
	initCmd.SetOut(&out)
	initCmd.SetArgs([]string{"."})
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("init Execute: %v\n%s", err, out.String())
	}

	writeMainTestFile(t, filepath.Join(dir, "a.txt"), "hello")

	out.Reset()
	addCmd := newAddCmd()
	addCmd.SetOut(&out)
	addCmd.SetArgs([]string{"a.txt"})
	if err := addCmd.Execute(); err != nil {
		t.Fatalf("add Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "1 file") {
		t.Fatalf("add output = %q, want to contain %q", out.String(), "1 file")
	}

	out.Reset()
	commitCmd := newCommitCmd()
	commitCmd.SetOut(&out)
	commitCmd.SetArgs([]string{"-m", "first commit"})
	if err := commitCmd.Execute(); err != nil {
		t.Fatalf("commit Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "first commit") {
		t.Fatalf("commit output = %q, want to contain the message", out.String())
	}

	out.Reset()
	statusCmd := newStatusCmd()
	statusCmd.SetOut(&out)
	statusCmd.SetArgs([]string{})
	if err := statusCmd.Execute(); err != nil {
		t.Fatalf("status Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "on branch main") {
		t.Fatalf("status output = %q, want to contain %q", out.String(), "on branch main")
	}

	out.Reset()
	logCmd := newLogCmd()
	logCmd.SetOut(&out)
	logCmd.SetArgs([]string{})
	if err := logCmd.Execute(); err != nil {
		t.Fatalf("log Execute: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "first commit") {
		t.Fatalf("log output = %q, want to contain the commit message", out.String())
	}
}

func TestBranchCreateListDelete(t *testing.T) {
	dir := t.TempDir()
	restore := chdirForTest(t, dir)
	defer restore()

	initCmd := newInitCmd()
	initCmd.SetArgs([]string{"."})
	var discard bytes.Buffer
	initCmd.SetOut(&discard)
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("init Execute: %v", err)
	}

	branchCmd := newBranchCmd()
	branchCmd.SetArgs([]string{"feature"})
	branchCmd.SetOut(&discard)
	if err := branchCmd.Execute(); err != nil {
		t.Fatalf("branch create Execute: %v", err)
	}

	var listOut bytes.Buffer
	listCmd := newBranchCmd()
	listCmd.SetOut(&listOut)
	listCmd.SetArgs([]string{})
	if err := listCmd.Execute(); err != nil {
		t.Fatalf("branch list Execute: %v", err)
	}
	if !strings.Contains(listOut.String(), "feature") {
		t.Fatalf("branch list output = %q, want to contain %q", listOut.String(), "feature")
	}

	deleteCmd := newBranchCmd()
	deleteCmd.SetArgs([]string{"-d", "feature"})
	deleteCmd.SetOut(&discard)
	if err := deleteCmd.Execute(); err != nil {
		t.Fatalf("branch delete Execute: %v", err)
	}

	listOut.Reset()
	relistCmd := newBranchCmd()
	relistCmd.SetOut(&listOut)
	relistCmd.SetArgs([]string{})
	if err := relistCmd.Execute(); err != nil {
		t.Fatalf("branch list Execute: %v", err)
	}
	if strings.Contains(listOut.String(), "feature") {
		t.Fatalf("branch list output after delete = %q, want no %q", listOut.String(), "feature")
	}
}

func TestFetchWithoutRemoteReportsUnconfigured(t *testing.T) {
	dir := t.TempDir()
	restore := chdirForTest(t, dir)
	defer restore()

	initCmd := newInitCmd()
	initCmd.SetArgs([]string{"."})
	var discard bytes.Buffer
	initCmd.SetOut(&discard)
	if err := initCmd.Execute(); err != nil {
		t.Fatalf("init Execute: %v", err)
	}

	fetchCmd := newFetchCmd()
	fetchCmd.SetOut(&discard)
	fetchCmd.SetArgs([]string{})
	if err := fetchCmd.Execute(); err == nil {
		t.Fatal("expected fetch without a configured remote to fail")
	}
}
