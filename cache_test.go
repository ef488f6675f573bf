package localedata_test

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localedata"
	"github.com/dmitrymomot/localedata/pkg/logger"
)

//go:embed testdata
var testdataFS embed.FS

func newFixtureSource(t *testing.T) *localedata.MemorySource {
	t.Helper()

	dir := "testdata/locales"
	entries, err := fs.ReadDir(testdataFS, dir)
	require.NoError(t, err)

	records := make(map[string]localedata.Map, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(testdataFS, path.Join(dir, e.Name()))
		require.NoError(t, err)
		m, err := localedata.DecodeYAML(data)
		require.NoError(t, err, e.Name())
		records[strings.TrimSuffix(e.Name(), ".yaml")] = m
	}
	return localedata.NewMemorySource(records)
}

func fixtureParents(t *testing.T) localedata.ParentTable {
	t.Helper()

	table, err := localedata.LoadParentTable(testdataFS, "testdata/parents.yaml")
	require.NoError(t, err)
	return table
}

func newFixtureCache(t *testing.T, opts ...localedata.Option) *localedata.Cache {
	t.Helper()

	opts = append([]localedata.Option{localedata.WithParents(fixtureParents(t))}, opts...)
	return localedata.New(newFixtureSource(t), opts...)
}

// countingSource records how often each identifier is read.
type countingSource struct {
	localedata.Source
	delay time.Duration

	mu    sync.Mutex
	reads map[string]int
	lists atomic.Int64
}

func newCountingSource(src localedata.Source, delay time.Duration) *countingSource {
	return &countingSource{Source: src, delay: delay, reads: make(map[string]int)}
}

func (s *countingSource) Read(ctx context.Context, id string) (localedata.Map, error) {
	s.mu.Lock()
	s.reads[id]++
	s.mu.Unlock()
	time.Sleep(s.delay)
	return s.Source.Read(ctx, id)
}

func (s *countingSource) List(ctx context.Context) ([]string, error) {
	s.lists.Add(1)
	time.Sleep(s.delay)
	return s.Source.List(ctx)
}

func (s *countingSource) readsOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[id]
}

func TestCache_Load(t *testing.T) {
	t.Parallel()

	for _, threshold := range thresholds {
		t.Run(fmt.Sprintf("inherits through three levels at threshold %d", threshold), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			c := newFixtureCache(t, localedata.WithCopyThreshold(threshold))

			d, err := c.Load(ctx, "en_US")
			require.NoError(t, err)

			lookups := []struct {
				path []string
				want any
			}{
				{[]string{"territory"}, "US"},
				{[]string{"language_name"}, "English"},
				{[]string{"decimal_symbol"}, "."},
				{[]string{"calendars", "gregorian", "eras", "abbr"}, []any{"BCE", "CE"}},
				{[]string{"calendars", "gregorian", "months", "format", "wide"}, []any{"January", "February"}},
				{[]string{"calendars", "buddhist", "months", "format", "narrow"}, []any{"J", "F"}},
				{[]string{"calendars", "buddhist", "months", "format", "wide"}, []any{"January", "February"}},
			}
			for _, l := range lookups {
				got, err := d.Path(l.path...)
				require.NoError(t, err, l.path)
				require.Equal(t, l.want, got, l.path)
			}

			// Aliases resolve against the locale's own merged tree, so the
			// buddhist overrides are not visible through gregorian.
			standAlone, err := d.Path("calendars", "buddhist", "months", "stand-alone")
			require.NoError(t, err)
			sub, ok := standAlone.(*localedata.Dict)
			require.True(t, ok)
			m, err := sub.Materialize()
			require.NoError(t, err)
			require.Equal(t, localedata.Map{
				"wide":        []any{"January", "February"},
				"abbreviated": []any{"Jan", "Feb"},
			}, m)

			root, err := c.Load(ctx, localedata.RootID)
			require.NoError(t, err)
			eras, err := root.Path("calendars", "gregorian", "eras", "abbr")
			require.NoError(t, err)
			require.Equal(t, []any{"BC", "AD"}, eras)
			require.False(t, root.Has("language_name"))
		})
	}

	for _, threshold := range thresholds {
		t.Run(fmt.Sprintf("nil child keys stay absent at threshold %d", threshold), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			src := localedata.NewMemorySource(map[string]localedata.Map{
				localedata.RootID: {"a": "1", "b": "2", "c": "3", "d": "4"},
				"en":              {"x": nil, "e": "5", "f": "6"},
			})
			c := localedata.New(src, localedata.WithCopyThreshold(threshold))

			en, err := c.Load(ctx, "en")
			require.NoError(t, err)
			require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, en.Keys())
			require.Equal(t, 6, en.Len())
			require.False(t, en.Has("x"))

			_, err = en.Get("x")
			require.ErrorIs(t, err, localedata.ErrKeyNotFound)

			m, err := en.Materialize()
			require.NoError(t, err)
			require.Len(t, m, 6)
		})
	}

	t.Run("returns the same dict every time", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c := newFixtureCache(t)

		first, err := c.Load(ctx, "en_US")
		require.NoError(t, err)
		second, err := c.Load(ctx, "en_US")
		require.NoError(t, err)
		require.Same(t, first, second)

		en, err := c.Load(ctx, "en")
		require.NoError(t, err)
		again, err := c.Load(ctx, "en")
		require.NoError(t, err)
		require.Same(t, en, again)

		require.EqualValues(t, 3, c.Stats().Loads)
	})

	t.Run("without inheritance", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c := newFixtureCache(t)

		own, err := c.Load(ctx, "en_US", localedata.WithoutInheritance())
		require.NoError(t, err)
		require.True(t, own.Has("territory"))
		require.False(t, own.Has("language_name"))

		merged, err := c.Load(ctx, "en_US")
		require.NoError(t, err)
		require.NotSame(t, own, merged)
		require.True(t, merged.Has("language_name"))

		ownAgain, err := c.Load(ctx, "en_US", localedata.WithoutInheritance())
		require.NoError(t, err)
		require.Same(t, own, ownAgain)

		rootOwn, err := c.Load(ctx, localedata.RootID, localedata.WithoutInheritance())
		require.NoError(t, err)
		root, err := c.Load(ctx, localedata.RootID)
		require.NoError(t, err)
		require.Same(t, root, rootOwn)
	})

	t.Run("parent exceptions", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c := newFixtureCache(t)

		d, err := c.Load(ctx, "pt_AO")
		require.NoError(t, err)

		currency, err := d.String("currency")
		require.NoError(t, err)
		require.Equal(t, "EUR", currency)

		territory, err := d.String("territory")
		require.NoError(t, err)
		require.Equal(t, "Angola", territory)

		decimal, err := d.String("decimal_symbol")
		require.NoError(t, err)
		require.Equal(t, ",", decimal)

		require.Equal(t, "pt_PT", c.Parent("pt_AO"))
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		_, err := newFixtureCache(t).Load(context.Background(), "xx")
		require.ErrorIs(t, err, localedata.ErrRecordNotFound)

		var nf *localedata.RecordNotFoundError
		require.True(t, errors.As(err, &nf))
		require.Equal(t, "xx", nf.ID)
	})

	t.Run("missing ancestor", func(t *testing.T) {
		t.Parallel()

		src := localedata.NewMemorySource(map[string]localedata.Map{
			localedata.RootID: {"a": "1"},
			"de_AT":           {"b": "2"},
		})
		_, err := localedata.New(src).Load(context.Background(), "de_AT")
		require.ErrorIs(t, err, localedata.ErrRecordNotFound)

		var nf *localedata.RecordNotFoundError
		require.True(t, errors.As(err, &nf))
		require.Equal(t, "de", nf.ID)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		src := localedata.NewMemorySource(map[string]localedata.Map{
			localedata.RootID: {"a": "1"},
		})
		c := localedata.New(src)

		_, err := c.Load(ctx, "fr")
		require.ErrorIs(t, err, localedata.ErrRecordNotFound)

		src.Put("fr", localedata.Map{"b": "2"})
		d, err := c.Load(ctx, "fr")
		require.NoError(t, err)
		require.True(t, d.Has("a"))
		require.True(t, d.Has("b"))
	})

	t.Run("parent cycle", func(t *testing.T) {
		t.Parallel()

		src := localedata.NewMemorySource(map[string]localedata.Map{
			localedata.RootID: {},
			"a":               {},
			"b":               {},
		})
		c := localedata.New(src, localedata.WithParents(localedata.ParentTable{"a": "b", "b": "a"}))

		_, err := c.Load(context.Background(), "a")
		require.ErrorIs(t, err, localedata.ErrParentCycle)
	})

	t.Run("source errors are wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("backend down")
		_, err := localedata.New(failingSource{err: boom}).Load(context.Background(), "en")
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, localedata.ErrRecordNotFound)
	})
}

func TestCache_LoadIsolation(t *testing.T) {
	t.Parallel()

	t.Run("empty child does not share parent storage", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		src := localedata.NewMemorySource(map[string]localedata.Map{
			localedata.RootID: {"a": "1"},
			"en":              {},
		})
		c := localedata.New(src)

		en, err := c.Load(ctx, "en")
		require.NoError(t, err)
		en.Set("a", "2")

		root, err := c.Load(ctx, localedata.RootID)
		require.NoError(t, err)
		s, err := root.String("a")
		require.NoError(t, err)
		require.Equal(t, "1", s)
	})

	for _, threshold := range thresholds {
		t.Run(fmt.Sprintf("root writes stay in root at threshold %d", threshold), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			rootRecord := localedata.Map{"a": "1", "b": "2", "c": "3", "d": "4"}
			src := localedata.NewMemorySource(map[string]localedata.Map{
				localedata.RootID: rootRecord,
				"en":              {"e": "5", "f": "6", "g": "7"},
			})
			c := localedata.New(src, localedata.WithCopyThreshold(threshold))

			en, err := c.Load(ctx, "en")
			require.NoError(t, err)
			root, err := c.Load(ctx, localedata.RootID)
			require.NoError(t, err)

			root.Set("a", "changed")
			root.Delete("b")

			s, err := root.String("a")
			require.NoError(t, err)
			require.Equal(t, "changed", s)

			s, err = en.String("a")
			require.NoError(t, err)
			require.Equal(t, "1", s)
			require.True(t, en.Has("b"))
			require.Equal(t, localedata.Map{"a": "1", "b": "2", "c": "3", "d": "4"}, rootRecord)
		})

		t.Run(fmt.Sprintf("own record writes stay in the unmerged dict at threshold %d", threshold), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			enRecord := localedata.Map{"e": "5", "f": "6", "g": "7"}
			src := localedata.NewMemorySource(map[string]localedata.Map{
				localedata.RootID: {"a": "1", "b": "2", "c": "3", "d": "4"},
				"en":              enRecord,
			})
			c := localedata.New(src, localedata.WithCopyThreshold(threshold))

			own, err := c.Load(ctx, "en", localedata.WithoutInheritance())
			require.NoError(t, err)
			own.Set("e", "changed")

			merged, err := c.Load(ctx, "en")
			require.NoError(t, err)
			s, err := merged.String("e")
			require.NoError(t, err)
			require.Equal(t, "5", s)
			require.Equal(t, localedata.Map{"e": "5", "f": "6", "g": "7"}, enRecord)

			merged.Set("f", "merged")
			s, err = own.String("f")
			require.NoError(t, err)
			require.Equal(t, "6", s)
		})

		t.Run(fmt.Sprintf("parent writes do not reach children at threshold %d", threshold), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			src := localedata.NewMemorySource(map[string]localedata.Map{
				localedata.RootID: {"a": "1", "b": "2", "c": "3", "d": "4"},
				"en":              {"e": "5"},
				"en_US":           {"f": "6", "g": "7"},
			})
			c := localedata.New(src, localedata.WithCopyThreshold(threshold))

			enUS, err := c.Load(ctx, "en_US")
			require.NoError(t, err)
			en, err := c.Load(ctx, "en")
			require.NoError(t, err)

			en.Set("e", "changed")
			s, err := enUS.String("e")
			require.NoError(t, err)
			require.Equal(t, "5", s)
		})
	}

	t.Run("nested writes stay in one locale", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c := newFixtureCache(t)

		en, err := c.Load(ctx, "en")
		require.NoError(t, err)
		enCalendars, err := en.Dict("calendars")
		require.NoError(t, err)
		enCalendars.Set("custom", "x")

		root, err := c.Load(ctx, localedata.RootID)
		require.NoError(t, err)
		calendars, err := root.Dict("calendars")
		require.NoError(t, err)
		require.False(t, calendars.Has("custom"))
	})
}

func TestCache_Concurrency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := newCountingSource(newFixtureSource(t), 5*time.Millisecond)
	c := localedata.New(src, localedata.WithParents(fixtureParents(t)))

	const workers = 32
	results := make([]*localedata.Dict, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := "en_US"
			if i%2 == 1 {
				id = "en"
			}
			results[i], errs[i] = c.Load(ctx, id)
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		require.Same(t, results[i%2], results[i])
	}
	for _, id := range []string{localedata.RootID, "en", "en_US"} {
		require.Equal(t, 1, src.readsOf(id), id)
	}
	require.EqualValues(t, 3, c.Stats().Loads)
}

func TestCache_LoadCancellation(t *testing.T) {
	t.Parallel()

	src := newCountingSource(newFixtureSource(t), 100*time.Millisecond)
	c := localedata.New(src, localedata.WithParents(fixtureParents(t)))

	var (
		wg   sync.WaitGroup
		live *localedata.Dict
		err  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		live, err = c.Load(context.Background(), "en")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	cancelled, cerr := c.Load(ctx, "en")
	require.ErrorIs(t, cerr, context.DeadlineExceeded)
	require.Nil(t, cancelled)

	wg.Wait()
	require.NoError(t, err)
	require.NotNil(t, live)

	again, err := c.Load(context.Background(), "en")
	require.NoError(t, err)
	require.Same(t, live, again)
	require.Equal(t, 1, src.readsOf("en"))
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("copying merges", func(t *testing.T) {
		t.Parallel()

		c := newFixtureCache(t, localedata.WithCopyThreshold(100))
		_, err := c.Load(ctx, "en_US")
		require.NoError(t, err)

		stats := c.Stats()
		require.Positive(t, stats.CopyMerges)
		require.Zero(t, stats.ViewMerges)
	})

	t.Run("view merges", func(t *testing.T) {
		t.Parallel()

		c := newFixtureCache(t, localedata.WithCopyThreshold(0))
		_, err := c.Load(ctx, "en_US")
		require.NoError(t, err)

		stats := c.Stats()
		require.Zero(t, stats.CopyMerges)
		require.Positive(t, stats.ViewMerges)
	})

	t.Run("alias walks are memoized", func(t *testing.T) {
		t.Parallel()

		var walks atomic.Int64
		c := newFixtureCache(t, localedata.WithResolveHook(func(localedata.Alias) {
			walks.Add(1)
		}))

		d, err := c.Load(ctx, "en_US")
		require.NoError(t, err)

		_, err = d.Path("calendars", "gregorian", "months", "stand-alone")
		require.NoError(t, err)
		first := walks.Load()
		require.Positive(t, first)

		_, err = d.Path("calendars", "gregorian", "months", "stand-alone")
		require.NoError(t, err)
		require.Equal(t, first, walks.Load())
		require.Equal(t, first, c.Stats().AliasResolutions)
	})
}

func TestCache_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithWriter(&buf), logger.WithLevel(slog.LevelDebug))
	c := newFixtureCache(t, localedata.WithLogger(log))

	_, err := c.Load(context.Background(), "en")
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"msg":"locale data loaded"`)
	require.Contains(t, out, `"locale":"en"`)
	require.Contains(t, out, `"locale":"root"`)
}

type failingSource struct {
	err error
}

func (s failingSource) Read(context.Context, string) (localedata.Map, error) { return nil, s.err }

func (s failingSource) List(context.Context) ([]string, error) { return nil, s.err }
