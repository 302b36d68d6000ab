package main

import (
	"testing"

	"contentcatalog/internal/testsupport"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testsupport.WriteFile(t, path, content)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	return testsupport.ReadFile(t, path)
}
