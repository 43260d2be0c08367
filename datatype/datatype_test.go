package datatype

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Run("first wins", func(t *testing.T) {
		value, err := String().Parse([]string{"hello", "world"})
		require.NoError(t, err)
		require.Equal(t, "hello", *value)
	})

	t.Run("absent", func(t *testing.T) {
		value, err := String().Parse(nil)
		require.NoError(t, err)
		require.Nil(t, value)
	})

	t.Run("serialize", func(t *testing.T) {
		hello := "hello"
		require.Equal(t, []string{"hello"}, String().Serialize(&hello))
		require.Empty(t, String().Serialize(nil))
	})
}

func TestInt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		value, err := Int().Parse([]string{"42"})
		require.NoError(t, err)
		require.Equal(t, 42, *value)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Int().Parse([]string{"hey"})
		require.EqualError(t, err, `not a valid integer: "hey"`)
	})

	t.Run("roundtrip", func(t *testing.T) {
		n := -7
		raw := Int().Serialize(&n)
		require.Equal(t, []string{"-7"}, raw)

		value, err := Int().Parse(raw)
		require.NoError(t, err)
		require.Equal(t, n, *value)
	})
}

func TestFloat(t *testing.T) {
	value, err := Float().Parse([]string{"2.5"})
	require.NoError(t, err)
	require.Equal(t, 2.5, *value)

	_, err = Float().Parse([]string{"two point five"})
	require.Error(t, err)

	f := 0.25
	require.Equal(t, []string{"0.25"}, Float().Serialize(&f))
}

func TestBool(t *testing.T) {
	for raw, want := range map[string]bool{"true": true, "1": true, "false": false, "0": false} {
		value, err := Bool().Parse([]string{raw})
		require.NoError(t, err, raw)
		require.Equal(t, want, *value, raw)
	}

	_, err := Bool().Parse([]string{"yes"})
	require.Error(t, err)
}

func TestFlag(t *testing.T) {
	present, err := Flag().Parse([]string{""})
	require.NoError(t, err)
	require.True(t, present)

	absent, err := Flag().Parse(nil)
	require.NoError(t, err)
	require.False(t, absent)

	require.Equal(t, []string{""}, Flag().Serialize(true))
	require.Empty(t, Flag().Serialize(false))
}

func TestEnum(t *testing.T) {
	sorting := Enum("asc", "desc")

	value, err := sorting.Parse([]string{"desc"})
	require.NoError(t, err)
	require.Equal(t, "desc", *value)

	_, err = sorting.Parse([]string{"sideways"})
	require.EqualError(t, err, `must be one of asc, desc, got "sideways"`)
}

func TestRegex(t *testing.T) {
	hexcolor := Regex(regexp.MustCompile(`^#[0-9a-f]{6}$`))

	value, err := hexcolor.Parse([]string{"#ff00aa"})
	require.NoError(t, err)
	require.Equal(t, "#ff00aa", *value)

	_, err = hexcolor.Parse([]string{"red"})
	require.Error(t, err)
}

func TestTime(t *testing.T) {
	date := Time(time.DateOnly)

	value, err := date.Parse([]string{"2024-06-01"})
	require.NoError(t, err)
	require.Equal(t, []string{"2024-06-01"}, date.Serialize(value))

	_, err = date.Parse([]string{"first of june"})
	require.Error(t, err)
}

func TestUUID(t *testing.T) {
	id := uuid.MustParse("a2aa3a14-0646-4e20-b5b7-f931d7b0e2e9")

	value, err := UUID().Parse([]string{id.String()})
	require.NoError(t, err)
	require.Equal(t, id, *value)

	_, err = UUID().Parse([]string{"not-an-id"})
	require.Error(t, err)

	require.Equal(t, []string{id.String()}, UUID().Serialize(&id))
}

func TestJSON(t *testing.T) {
	type filter struct {
		Field string `json:"field"`
		Limit int    `json:"limit"`
	}

	t.Run("roundtrip", func(t *testing.T) {
		want := filter{Field: "name", Limit: 10}
		raw := JSON[filter]().Serialize(&want)
		require.Len(t, raw, 1)

		value, err := JSON[filter]().Parse(raw)
		require.NoError(t, err)
		require.Equal(t, want, *value)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := JSON[filter]().Parse([]string{"{broken"})
		require.Error(t, err)
	})
}

func TestRequired(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		value, err := Required(Int()).Parse([]string{"42"})
		require.NoError(t, err)
		require.Equal(t, 42, value)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := Required(Int()).Parse(nil)
		require.ErrorIs(t, err, ErrMissingValue)
	})

	t.Run("wrapped error passes through unchanged", func(t *testing.T) {
		_, wrapped := Int().Parse([]string{"hey"})
		_, err := Required(Int()).Parse([]string{"hey"})
		require.EqualError(t, err, wrapped.Error())
	})

	t.Run("keeps wrapped name", func(t *testing.T) {
		require.Equal(t, "Integer", Required(Int()).Name())
	})

	t.Run("serialize", func(t *testing.T) {
		require.Equal(t, []string{"42"}, Required(Int()).Serialize(42))
	})
}

func TestMultiple(t *testing.T) {
	t.Run("each element independently", func(t *testing.T) {
		values, err := Multiple(Int()).Parse([]string{"1", "2", "3"})
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, values)
	})

	t.Run("fails closed", func(t *testing.T) {
		_, err := Multiple(Int()).Parse([]string{"1", "hey", "3"})
		require.EqualError(t, err, `not a valid integer: "hey"`)
	})

	t.Run("absent", func(t *testing.T) {
		values, err := Multiple(Int()).Parse(nil)
		require.NoError(t, err)
		require.Nil(t, values)
	})

	t.Run("serialize", func(t *testing.T) {
		require.Equal(t, []string{"1", "2"}, Multiple(Int()).Serialize([]int{1, 2}))
		require.Empty(t, Multiple(Int()).Serialize(nil))
	})
}
