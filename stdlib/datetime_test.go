package stdlib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/value"
)

func TestDatetime_ParseAndFormat(t *testing.T) {
	in := newTestInterp()
	registerDatetime(in)

	dt, err := call(t, in, "parse_date", value.Text("2026-07-30"))
	require.NoError(t, err)

	v, err := call(t, in, "format_date", dt)
	require.NoError(t, err)
	require.Equal(t, value.Text("2026-07-30"), v)

	v, err = call(t, in, "format_time", dt)
	require.NoError(t, err)
	require.Equal(t, value.Text("00:00:00"), v)

	v, err = call(t, in, "format_datetime", dt)
	require.NoError(t, err)
	require.Equal(t, value.Text("2026-07-30 00:00:00"), v)
}

func TestDatetime_ParseInvalidErrors(t *testing.T) {
	in := newTestInterp()
	registerDatetime(in)

	_, err := call(t, in, "parse_date", value.Text("not-a-date"))
	require.Error(t, err)
}

func TestDatetime_AddDaysAndDaysBetween(t *testing.T) {
	in := newTestInterp()
	registerDatetime(in)

	start, err := call(t, in, "parse_date", value.Text("2026-01-01"))
	require.NoError(t, err)

	later, err := call(t, in, "add_days", start, value.Number(10))
	require.NoError(t, err)

	v, err := call(t, in, "format_date", later)
	require.NoError(t, err)
	require.Equal(t, value.Text("2026-01-11"), v)

	diff, err := call(t, in, "days_between", start, later)
	require.NoError(t, err)
	require.Equal(t, value.Number(10), diff)
}

func TestDatetime_TodayIsMidnightUTC(t *testing.T) {
	in := newTestInterp()
	registerDatetime(in)

	v, err := call(t, in, "today")
	require.NoError(t, err)
	dt := v.(value.DateTime)
	require.Equal(t, 0, dt.Time.Hour())
	require.Equal(t, time.UTC, dt.Time.Location())
}
