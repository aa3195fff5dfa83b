package diffs

import (
	"testing"

	"github.com/bloomberg/go-testgroup"
)

func TestFilterWhitespaceOnlyDiffs(t *testing.T) {
	testgroup.RunInParallel(t, &FilterWhitespaceOnlyDiffsTests{})
}

type FilterWhitespaceOnlyDiffsTests struct {
}

func (g *FilterWhitespaceOnlyDiffsTests) CollapsesIndentationChange(t *testgroup.T) {
	result := FilterWhitespaceOnlyDiffs("-foo\n-bar\n+ foo\n+bar ")

	t.Equal("  foo\n bar ", result)
}

func (g *FilterWhitespaceOnlyDiffsTests) KeepsRealChanges(t *testgroup.T) {
	input := "-a\n-b\n+a\n+c\n"

	t.Equal(input, FilterWhitespaceOnlyDiffs(input))
}

func (g *FilterWhitespaceOnlyDiffsTests) KeepsDifferentSizedBlocks(t *testgroup.T) {
	input := "-a\n+a\n+a\n"

	t.Equal(input, FilterWhitespaceOnlyDiffs(input))
}

func (g *FilterWhitespaceOnlyDiffsTests) KeepsRemovalWithoutAddition(t *testgroup.T) {
	input := " ctx\n-gone\n ctx\n"

	t.Equal(input, FilterWhitespaceOnlyDiffs(input))
}

func (g *FilterWhitespaceOnlyDiffsTests) KeepsAdditionWithoutRemoval(t *testgroup.T) {
	input := " ctx\n+new\n ctx\n"

	t.Equal(input, FilterWhitespaceOnlyDiffs(input))
}

func (g *FilterWhitespaceOnlyDiffsTests) HandlesTabs(t *testgroup.T) {
	result := FilterWhitespaceOnlyDiffs("@@ -1,1 +1,1 @@\n-\tif (a) {\n+    if (a)  {\n")

	t.Equal("@@ -1,1 +1,1 @@\n     if (a)  {\n", result)
}

func (g *FilterWhitespaceOnlyDiffsTests) OnlyCollapsesMatchingHunks(t *testgroup.T) {
	input := "@@ -1,4 +1,4 @@\n-x = 1\n+x  =  1\n ctx\n-y = 1\n+y = 2\n"

	t.Equal("@@ -1,4 +1,4 @@\n x  =  1\n ctx\n-y = 1\n+y = 2\n", FilterWhitespaceOnlyDiffs(input))
}

func (g *FilterWhitespaceOnlyDiffsTests) KeepsCarriageReturns(t *testgroup.T) {
	result := FilterWhitespaceOnlyDiffs("-a b\r\n+ab\r\n")

	t.Equal(" ab\r\n", result)
}

func (g *FilterWhitespaceOnlyDiffsTests) IsIdempotent(t *testgroup.T) {
	inputs := []string{
		"-foo\n-bar\n+ foo\n+bar ",
		"-a\n-b\n+a\n+c\n",
		"@@ -1,4 +1,4 @@\n-x = 1\n+x  =  1\n ctx\n-y = 1\n+y = 2\n",
		"",
		"-\n+\n",
	}

	for _, input := range inputs {
		once := FilterWhitespaceOnlyDiffs(input)
		twice := FilterWhitespaceOnlyDiffs(once)

		t.Equal(once, twice, input)
	}
}

func (g *FilterWhitespaceOnlyDiffsTests) EmptyInput(t *testgroup.T) {
	t.Equal("", FilterWhitespaceOnlyDiffs(""))
}
