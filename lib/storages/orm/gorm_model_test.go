package orm

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEqualsEmpty(t *testing.T) {
	t.Parallel()

	c1 := &sqlChangeSet{}
	c2 := &sqlChangeSet{}

	assert.True(t, reflect.DeepEqual(c1, c2))

	c1.User = "a"
	assert.False(t, reflect.DeepEqual(c1, c2))
}

func TestEqualsSomeFields(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c1 := &sqlChangeSet{
		ID:        1,
		CreatedAt: now,
	}
	c2 := &sqlChangeSet{
		ID:        1,
		CreatedAt: now,
	}

	assert.True(t, reflect.DeepEqual(c1, c2))

	c1.Description = "b"
	assert.False(t, reflect.DeepEqual(c1, c2))
}

func TestEqualsCounts(t *testing.T) {
	t.Parallel()

	c1 := &sqlChangeSet{LinesAdded: encodeCount(1)}
	c2 := &sqlChangeSet{LinesAdded: encodeCount(1)}

	assert.True(t, reflect.DeepEqual(c1, c2))

	c1.LinesAdded = encodeCount(2)
	assert.False(t, reflect.DeepEqual(c1, c2))

	c1.LinesAdded = encodeCount(-1)
	assert.Nil(t, c1.LinesAdded)
	assert.Equal(t, -1, decodeCount(c1.LinesAdded))
}

func TestEqualsData(t *testing.T) {
	t.Parallel()

	r1 := &sqlRepository{
		Data: map[string]string{
			"a": "b",
		},
	}
	r2 := &sqlRepository{
		Data: map[string]string{
			"a": "b",
		},
	}

	assert.True(t, reflect.DeepEqual(r1, r2))

	r1.Data["a"] = "c"
	assert.False(t, reflect.DeepEqual(r1, r2))
}

func TestPrepareChangeSkipsUnchanged(t *testing.T) {
	t.Parallel()

	cache := map[string]*sqlConfig{}

	assert.True(t, prepareChange(&cache, newSqlConfig("a", "1")))

	cache["a"].CreatedAt = time.Now()
	assert.False(t, prepareChange(&cache, newSqlConfig("a", "1")))
	assert.True(t, prepareChange(&cache, newSqlConfig("a", "2")))
}

func TestNamingStrategyRemovesPrefix(t *testing.T) {
	t.Parallel()

	n := &NamingStrategy{}

	assert.Equal(t, "change_sets", n.TableName("sqlChangeSet"))
}
