package p4

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/scmchanges/lib/model"
)

func TestParseChangesListSingle(t *testing.T) {
	t.Parallel()

	result := ParseChangesListIn("Change 105 on 2008/01/02 10:11:12 by alice@CLIENT1 'fix bug'\n", time.UTC)

	require.Len(t, result.Changes, 1)
	assert.False(t, result.Truncated)
	assert.Equal(t, &model.ChangeSetSummary{
		Number: 105,
		User:   "alice",
		Client: "CLIENT1",
		Date:   time.Date(2008, 1, 2, 10, 11, 12, 0, time.UTC),
	}, result.Changes[0])
}

func TestParseChangesListUsesLocalTime(t *testing.T) {
	t.Parallel()

	result := ParseChangesList("Change 105 on 2008/01/02 10:11:12 by alice@CLIENT1 'fix bug'\n")

	require.Len(t, result.Changes, 1)
	assert.Equal(t, "2008-01-02 10:11:12", result.Changes[0].Date.Format("2006-01-02 15:04:05"))
}

func TestParseChangesListKeepsOrder(t *testing.T) {
	t.Parallel()

	output := "Change 12 on 2010/05/06 07:08:09 by bob@ws-bob 'second'\r\n" +
		"Change 11 on 2010/05/05 07:08:09 by alice@ws-alice 'first: it's done'\r\n"

	result := ParseChangesListIn(output, time.UTC)

	require.Len(t, result.Changes, 2)
	assert.Equal(t, 12, result.Changes[0].Number)
	assert.Equal(t, "bob", result.Changes[0].User)
	assert.Equal(t, "ws-bob", result.Changes[0].Client)
	assert.Equal(t, 11, result.Changes[1].Number)
	assert.False(t, result.Truncated)
}

func TestParseChangesListWithoutComment(t *testing.T) {
	t.Parallel()

	result := ParseChangesListIn("Change 7 on 2001/02/03 04:05:06 by carol@c\n", time.UTC)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, "carol", result.Changes[0].User)
	assert.Equal(t, "c", result.Changes[0].Client)
}

func TestParseChangesListClientWithAt(t *testing.T) {
	t.Parallel()

	result := ParseChangesListIn("Change 7 on 2001/02/03 04:05:06 by carol@c@x ''\n", time.UTC)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, "carol", result.Changes[0].User)
	assert.Equal(t, "c@x", result.Changes[0].Client)
}

func TestParseChangesListStopsOnMalformedHeader(t *testing.T) {
	t.Parallel()

	output := "Change 3 on 2001/02/03 04:05:06 by a@b 'x'\n" +
		"Change 2 on 2001/02/03 by a@b 'no time'\n" +
		"Change 1 on 2001/02/03 04:05:06 by a@b 'x'\n"

	result := ParseChangesListIn(output, time.UTC)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, 3, result.Changes[0].Number)
	assert.True(t, result.Truncated)
}

func TestParseChangesListBadNumberOrDate(t *testing.T) {
	t.Parallel()

	assert.True(t, ParseChangesListIn("Change x on 2001/02/03 04:05:06 by a@b\n", time.UTC).Truncated)
	assert.True(t, ParseChangesListIn("Change 1 on 2001-02-03 04:05:06 by a@b\n", time.UTC).Truncated)
	assert.True(t, ParseChangesListIn("Job 1 on 2001/02/03 04:05:06 by a@b\n", time.UTC).Truncated)
}

func TestParseChangesListQuoteAtStartIsNotAComment(t *testing.T) {
	t.Parallel()

	result := ParseChangesListIn("'Change 1 on 2001/02/03 04:05:06 by a@b\n", time.UTC)

	assert.Empty(t, result.Changes)
	assert.True(t, result.Truncated)
}

func TestParseChangesListEmpty(t *testing.T) {
	t.Parallel()

	result := ParseChangesListIn("\n\n", time.UTC)

	assert.Empty(t, result.Changes)
	assert.False(t, result.Truncated)
}
