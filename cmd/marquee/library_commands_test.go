package main

import "testing"

func TestLibraryListEmpty(t *testing.T) {
	setupCLITestEnv(t)

	out, err := runCLI(t, []string{"library", "list"})
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	requireContains(t, out, "Library is empty")
}

func TestExcludeRoundTrip(t *testing.T) {
	setupCLITestEnv(t)

	out, err := runCLI(t, []string{"library", "exclude", "list"})
	if err != nil {
		t.Fatalf("exclude list: %v", err)
	}
	requireContains(t, out, "No exclusions")

	out, err = runCLI(t, []string{"library", "exclude", "add", "603", "--title", "The Matrix", "--year", "1999"})
	if err != nil {
		t.Fatalf("exclude add: %v", err)
	}
	requireContains(t, out, "Excluded movie 603")

	out, err = runCLI(t, []string{"library", "exclude", "list"})
	if err != nil {
		t.Fatalf("exclude list: %v", err)
	}
	requireContains(t, out, "The Matrix")

	out, err = runCLI(t, []string{"library", "exclude", "remove", "603"})
	if err != nil {
		t.Fatalf("exclude remove: %v", err)
	}
	requireContains(t, out, "Removed exclusion")
}

func TestLibraryAddRejectsBadID(t *testing.T) {
	setupCLITestEnv(t)

	if _, err := runCLI(t, []string{"library", "add", "abc"}); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
