package store_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/msgmap/pkg/msgmap/store"
)

// storeFactory creates a store instance for testing.
type storeFactory func(t *testing.T) store.Store

func memoryFactory(t *testing.T) store.Store {
	return store.NewMemoryStore()
}

func sqliteFactory(t *testing.T) store.Store {
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	return s
}

func TestStoreContract(t *testing.T) {
	storeContractTest(t, "memory", memoryFactory)
	storeContractTest(t, "sqlite", sqliteFactory)
}

// storeContractTest runs contract tests against any Store implementation.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	doc := store.Document{Name: "greetings", Format: store.FormatYAML, Data: []byte("HELLO: hi\n")}

	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save(doc))
		loaded, err := s.Load("greetings")
		require.NoError(t, err)
		assert.Equal(t, doc, loaded)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		_, err := s.Load("missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run(name+"/Save_Overwrite_BumpsRevision", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save(doc))
		require.NoError(t, s.Save(store.Document{Name: "greetings", Format: store.FormatJSON, Data: []byte(`{}`)}))

		loaded, err := s.Load("greetings")
		require.NoError(t, err)
		assert.Equal(t, store.FormatJSON, loaded.Format)
		assert.Equal(t, []byte(`{}`), loaded.Data)

		infos, err := s.List()
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, 2, infos[0].Revision)
		assert.Equal(t, int64(2), infos[0].Size)
		assert.False(t, infos[0].UpdatedAt.IsZero())
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		infos, err := s.List()
		require.NoError(t, err)
		assert.Empty(t, infos)

		for _, n := range []string{"b", "c", "a"} {
			require.NoError(t, s.Save(store.Document{Name: n, Format: store.FormatJSON, Data: []byte(`{}`)}))
		}
		infos, err = s.List()
		require.NoError(t, err)

		names := make([]string, 0, len(infos))
		for _, info := range infos {
			names = append(names, info.Name)
		}
		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		require.NoError(t, s.Save(doc))
		require.NoError(t, s.Delete("greetings"))
		_, err := s.Load("greetings")
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.NoError(t, s.Delete("greetings"), "deleting a missing document is not an error")
	})

	t.Run(name+"/Invalid_Document", func(t *testing.T) {
		s := factory(t)
		defer s.Close()

		assert.ErrorIs(t, s.Save(store.Document{Format: store.FormatJSON}), store.ErrInvalidDocument)
		assert.ErrorIs(t, s.Save(store.Document{Name: "x", Format: "toml"}), store.ErrInvalidDocument)
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		s := factory(t)
		require.NoError(t, s.Close())

		assert.ErrorIs(t, s.Save(doc), store.ErrStoreClosed)
		_, err := s.Load("greetings")
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		_, err = s.List()
		assert.ErrorIs(t, err, store.ErrStoreClosed)
		assert.ErrorIs(t, s.Delete("greetings"), store.ErrStoreClosed)
	})
}

func TestMemoryStore_CopiesData(t *testing.T) {
	s := store.NewMemoryStore()
	data := []byte(`{"A":"a"}`)
	require.NoError(t, s.Save(store.Document{Name: "d", Format: store.FormatJSON, Data: data}))
	data[2] = 'Z'

	loaded, err := s.Load("d")
	require.NoError(t, err)
	assert.Equal(t, `{"A":"a"}`, string(loaded.Data))

	loaded.Data[2] = 'Q'
	again, err := s.Load("d")
	require.NoError(t, err)
	assert.Equal(t, `{"A":"a"}`, string(again.Data))
	assert.Equal(t, 1, s.Len())
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "docs.db")

	first, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Save(store.Document{Name: "d", Format: store.FormatYAML, Data: []byte("A: a")}))
	require.NoError(t, first.Close())

	second, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer second.Close()

	doc, err := second.Load("d")
	require.NoError(t, err)
	assert.Equal(t, "A: a", string(doc.Data))
}

func TestSQLiteStore_InvalidPath(t *testing.T) {
	_, err := store.NewSQLiteStore("/nonexistent/path/db.sqlite")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseIdempotent(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('a' + i))
			assert.NoError(t, s.Save(store.Document{Name: name, Format: store.FormatJSON, Data: []byte(`{}`)}))
			_, err := s.Load(name)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	infos, err := s.List()
	require.NoError(t, err)
	assert.Len(t, infos, 20)
}
