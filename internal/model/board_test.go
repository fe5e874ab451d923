package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string) Entry {
	return Entry{Name: name, Handle: NewHandle()}
}

func TestInsertClampsPosition(t *testing.T) {
	b := NewBoard(2)

	a, c := entry("a.png"), entry("c.png")
	pos, err := b.Insert(0, 10, a)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	pos, err = b.Insert(0, -5, c)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	pos, err = b.Insert(0, 99, entry("z.png"))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	assert.Equal(t, []string{"c.png", "a.png", "z.png"}, b.Names(0))
}

func TestInsertMiddleShiftsIndex(t *testing.T) {
	b := NewBoard(1)
	first, last := entry("first.png"), entry("last.png")
	_, _ = b.Insert(0, 0, first)
	_, _ = b.Insert(0, 1, last)

	mid := entry("mid.png")
	_, err := b.Insert(0, 1, mid)
	require.NoError(t, err)

	loc, ok := b.IndexOf(last.Handle)
	require.True(t, ok)
	assert.Equal(t, Location{Column: 0, Position: 2}, loc)

	loc, ok = b.IndexOf(mid.Handle)
	require.True(t, ok)
	assert.Equal(t, Location{Column: 0, Position: 1}, loc)
}

func TestInsertRejectsBadColumnAndDuplicate(t *testing.T) {
	b := NewBoard(1)
	e := entry("a.png")

	_, err := b.Insert(3, 0, e)
	assert.ErrorIs(t, err, ErrColumnRange)

	_, err = b.Insert(0, 0, e)
	require.NoError(t, err)
	_, err = b.Insert(0, 0, e)
	assert.ErrorIs(t, err, ErrDuplicateHandle)
	assert.Equal(t, 1, b.Total())
}

func TestRemoveReturnsPositionAndReindexes(t *testing.T) {
	b := NewBoard(1)
	cat, dog, eel := entry("cat.png"), entry("dog.png"), entry("eel.png")
	for i, e := range []Entry{cat, dog, eel} {
		_, err := b.Insert(0, i, e)
		require.NoError(t, err)
	}

	pos, err := b.Remove(0, cat.Handle)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	_, ok := b.IndexOf(cat.Handle)
	assert.False(t, ok)

	loc, _ := b.IndexOf(dog.Handle)
	assert.Equal(t, 0, loc.Position)
	loc, _ = b.IndexOf(eel.Handle)
	assert.Equal(t, 1, loc.Position)
	assert.Equal(t, []string{"dog.png", "eel.png"}, b.Names(0))
}

func TestRemoveWrongColumnIsNotFound(t *testing.T) {
	b := NewBoard(2)
	e := entry("cat.png")
	_, _ = b.Insert(0, 0, e)

	_, err := b.Remove(1, e.Handle)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.Remove(0, NewHandle())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, b.Len(0))
}

func TestMoveTransfersOwnership(t *testing.T) {
	b := NewBoard(2)
	cat, dog := entry("cat.png"), entry("dog.png")
	_, _ = b.Insert(0, 0, cat)
	_, _ = b.Insert(0, 1, dog)
	total := b.Total()

	_, err := b.Remove(0, cat.Handle)
	require.NoError(t, err)
	_, err = b.Insert(1, b.Len(1), cat)
	require.NoError(t, err)

	assert.Equal(t, total, b.Total())
	loc, ok := b.IndexOf(cat.Handle)
	require.True(t, ok)
	assert.Equal(t, Location{Column: 1, Position: 0}, loc)
	assert.Equal(t, []string{"dog.png"}, b.Names(0))
	assert.Equal(t, []string{"cat.png"}, b.Names(1))
}

func TestEntriesIsCopy(t *testing.T) {
	b := NewBoard(1)
	_, _ = b.Insert(0, 0, entry("a.png"))

	got := b.Entries(0)
	got[0].Name = "mutated"
	assert.Equal(t, []string{"a.png"}, b.Names(0))
	assert.Nil(t, b.Entries(7))
}

func TestTallest(t *testing.T) {
	b := NewBoard(3)
	assert.Equal(t, 0, b.Tallest())
	_, _ = b.Insert(1, 0, entry("a.png"))
	_, _ = b.Insert(1, 0, entry("b.png"))
	_, _ = b.Insert(2, 0, entry("c.png"))
	assert.Equal(t, 2, b.Tallest())
}
