package linediff

import (
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pescuma/scmchanges/lib/utils"
)

type Diff struct {
	Type  Operation
	Lines int
}

type Operation int8

const (
	DiffDelete Operation = Operation(diffmatchpatch.DiffDelete)
	DiffInsert Operation = Operation(diffmatchpatch.DiffInsert)
	DiffEqual  Operation = Operation(diffmatchpatch.DiffEqual)
)

const defaultTimeout = 10 * time.Second

func Do(src, dst string) []Diff {
	return DoWithTimeout(src, dst, defaultTimeout)
}

func DoWithTimeout(src, dst string, timeout time.Duration) []Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	wSrc, wDst := textsToLineIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)
	diffs := lineIndexesToDiff(dmpd)
	return diffs
}

func lineIndexesToDiff(diffs []diffmatchpatch.Diff) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		hydrated = append(hydrated, Diff{
			Type:  Operation(aDiff.Type),
			Lines: len([]rune(aDiff.Text)),
		})
	}
	return hydrated
}

func textsToLineIndexes(text1, text2 string) ([]rune, []rune) {
	lineToIndex := make(map[string]int)
	indexes1 := textToLineIndexes(text1, lineToIndex)
	indexes2 := textToLineIndexes(text2, lineToIndex)
	return indexes1, indexes2
}

func textToLineIndexes(text string, lineToIndex map[string]int) []rune {
	lines := splitLines(text)

	result := make([]rune, len(lines))
	for i, line := range lines {
		lineValue, ok := lineToIndex[line]

		if !ok {
			lineValue = len(lineToIndex)
			lineToIndex[line] = lineValue
		}

		result[i] = rune(lineValue)
	}
	return result
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffLine struct {
	op   Operation
	text string
}

// Unified creates a unified diff of the lines of src and dst, with context unchanged lines around each hunk.
// It returns an empty string when both are equal.
func Unified(src, dst string, context int) string {
	lines := diffLines(src, dst)

	var changes []int
	for i, l := range lines {
		if l.op != DiffEqual {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return ""
	}

	// Line number before each entry, 0 based
	oldPos := make([]int, len(lines)+1)
	newPos := make([]int, len(lines)+1)
	for i, l := range lines {
		oldPos[i+1] = oldPos[i]
		newPos[i+1] = newPos[i]
		if l.op != DiffInsert {
			oldPos[i+1]++
		}
		if l.op != DiffDelete {
			newPos[i+1]++
		}
	}

	var sb strings.Builder

	for c := 0; c < len(changes); {
		start := utils.Max(changes[c]-context, 0)
		last := changes[c]
		c++
		for c < len(changes) && changes[c] <= last+2*context+1 {
			last = changes[c]
			c++
		}
		end := utils.Min(last+context+1, len(lines))

		oldCount := oldPos[end] - oldPos[start]
		newCount := newPos[end] - newPos[start]
		sb.WriteString(fmt.Sprintf("@@ -%v +%v @@\n",
			hunkRange(oldPos[start], oldCount), hunkRange(newPos[start], newCount)))

		for _, l := range lines[start:end] {
			switch l.op {
			case DiffDelete:
				sb.WriteString("-")
			case DiffInsert:
				sb.WriteString("+")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(strings.TrimSuffix(l.text, "\n"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func hunkRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%v,0", start)
	}
	if count == 1 {
		return fmt.Sprintf("%v", start+1)
	}
	return fmt.Sprintf("%v,%v", start+1, count)
}

func diffLines(src, dst string) []diffLine {
	srcLines := splitLines(src)
	dstLines := splitLines(dst)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = defaultTimeout
	wSrc, wDst := textsToLineIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)

	var result []diffLine
	si := 0
	di := 0
	for _, d := range dmpd {
		n := len([]rune(d.Text))

		for j := 0; j < n; j++ {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				result = append(result, diffLine{DiffDelete, srcLines[si]})
				si++
			case diffmatchpatch.DiffInsert:
				result = append(result, diffLine{DiffInsert, dstLines[di]})
				di++
			default:
				result = append(result, diffLine{DiffEqual, srcLines[si]})
				si++
				di++
			}
		}
	}
	return result
}
