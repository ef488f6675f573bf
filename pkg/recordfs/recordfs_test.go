package recordfs_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localedata"
	"github.com/dmitrymomot/localedata/pkg/recordfs"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"locales/root.yaml":     {Data: []byte("calendars:\n  gregorian:\n    wide: [January]\n  buddhist: !alias calendars/gregorian\n")},
		"locales/en.yml":        {Data: []byte("language_name: English\n")},
		"locales/en_US.json":    {Data: []byte(`{"territory": "US", "calendar": {"@alias": "calendars/gregorian"}}`)},
		"locales/broken.json":   {Data: []byte(`{"territory": `)},
		"locales/README.md":     {Data: []byte("not a record")},
		"locales/nested/x.yaml": {Data: []byte("a: b\n")},
		"parents.yaml":          {Data: []byte("{}\n")},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := recordfs.New(nil)
	require.ErrorIs(t, err, recordfs.ErrNilFS)

	src, err := recordfs.New(testFS(), recordfs.WithDir("locales"))
	require.NoError(t, err)
	require.NotNil(t, src)
}

func TestSource_Read(t *testing.T) {
	t.Parallel()

	src, err := recordfs.New(testFS(), recordfs.WithDir("locales"))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("yaml with alias tag", func(t *testing.T) {
		t.Parallel()

		m, err := src.Read(ctx, "root")
		require.NoError(t, err)
		calendars, ok := m["calendars"].(localedata.Map)
		require.True(t, ok)
		require.Equal(t, localedata.NewAlias("calendars", "gregorian"), calendars["buddhist"])
	})

	t.Run("yml extension", func(t *testing.T) {
		t.Parallel()

		m, err := src.Read(ctx, "en")
		require.NoError(t, err)
		require.Equal(t, "English", m["language_name"])
	})

	t.Run("json with alias key", func(t *testing.T) {
		t.Parallel()

		m, err := src.Read(ctx, "en_US")
		require.NoError(t, err)
		require.Equal(t, "US", m["territory"])
		require.Equal(t, localedata.NewAlias("calendars", "gregorian"), m["calendar"])
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		_, err := src.Read(ctx, "fr")
		require.ErrorIs(t, err, localedata.ErrRecordNotFound)
	})

	t.Run("malformed record", func(t *testing.T) {
		t.Parallel()

		_, err := src.Read(ctx, "broken")
		require.ErrorIs(t, err, recordfs.ErrInvalidFile)
		require.ErrorIs(t, err, localedata.ErrInvalidRecord)
	})

	t.Run("invalid identifiers", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"", ".", "..", "nested/x", `a\b`} {
			_, err := src.Read(ctx, id)
			require.ErrorIs(t, err, recordfs.ErrInvalidIdentifier, id)
		}
	})

	t.Run("format restriction", func(t *testing.T) {
		t.Parallel()

		jsonOnly, err := recordfs.New(testFS(), recordfs.WithDir("locales"), recordfs.WithFormats(localedata.FormatJSON))
		require.NoError(t, err)

		_, err = jsonOnly.Read(ctx, "root")
		require.ErrorIs(t, err, localedata.ErrRecordNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Read(cancelled, "root")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSource_List(t *testing.T) {
	t.Parallel()

	src, err := recordfs.New(testFS(), recordfs.WithDir("locales"))
	require.NoError(t, err)

	ids, err := src.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"broken", "en", "en_US", "root"}, ids)
}

func TestSource_WithCache(t *testing.T) {
	t.Parallel()

	src, err := recordfs.New(testFS(), recordfs.WithDir("locales"))
	require.NoError(t, err)

	c := localedata.New(src)
	d, err := c.Load(context.Background(), "en_US")
	require.NoError(t, err)

	wide, err := d.Path("calendar", "wide")
	require.NoError(t, err)
	require.Equal(t, []any{"January"}, wide)

	name, err := d.String("language_name")
	require.NoError(t, err)
	require.Equal(t, "English", name)
}
