package scoreboard_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/plus3/marbles/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func saved(t *testing.T, store scoreboard.Store) []int {
	t.Helper()
	data, err := store.Get(scoreboard.Key)
	require.NoError(t, err)

	var scores []int
	require.NoError(t, msgpack.Unmarshal(data, &scores))
	return scores
}

func seed(t *testing.T, store scoreboard.Store, value any) {
	t.Helper()
	data, err := msgpack.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, store.Set(scoreboard.Key, data))
}

func TestLoad(t *testing.T) {
	t.Run("first run", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		board := scoreboard.New(store, scoreboard.DefaultSize)

		scores, err := board.Load()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, scores)
		assert.Equal(t, []int{0, 0, 0}, saved(t, store), "defaults are written back")
	})

	t.Run("sorted descending", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		seed(t, store, []int{10, 50, 30})

		scores, err := scoreboard.New(store, 3).Load()
		require.NoError(t, err)
		assert.Equal(t, []int{50, 30, 10}, scores)
	})

	malformed := map[string]any{
		"wrong type": "hello",
		"too short":  []int{4, 2},
		"too long":   []int{4, 3, 2, 1},
		"negative":   []int{5, -1, 0},
		"map":        map[string]int{"a": 1},
		"empty list": []int{},
	}
	for name, value := range malformed {
		t.Run("malformed "+name, func(t *testing.T) {
			store := scoreboard.NewMemoryStore()
			seed(t, store, value)

			scores, err := scoreboard.New(store, 3).Load()
			require.NoError(t, err)
			assert.Equal(t, []int{0, 0, 0}, scores)
			assert.Equal(t, []int{0, 0, 0}, saved(t, store))
		})
	}

	t.Run("garbage bytes", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		require.NoError(t, store.Set(scoreboard.Key, []byte{0xc1, 0xff, 0x00}))

		scores, err := scoreboard.New(store, 3).Load()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, scores)
	})

	t.Run("store failure", func(t *testing.T) {
		board := scoreboard.New(failingStore{}, 3)
		_, err := board.Load()
		assert.ErrorIs(t, err, errBroken)
	})
}

func TestRecord(t *testing.T) {
	t.Run("into empty board", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		board := scoreboard.New(store, 3)
		_, err := board.Load()
		require.NoError(t, err)

		require.NoError(t, board.Record(40))
		assert.Equal(t, []int{40, 0, 0}, saved(t, store))
		assert.Equal(t, []int{40, 0, 0}, board.Top())
	})

	t.Run("drops the lowest score", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		seed(t, store, []int{50, 30, 10})
		board := scoreboard.New(store, 3)

		require.NoError(t, board.Record(40))
		assert.Equal(t, []int{50, 40, 30}, saved(t, store))
	})

	t.Run("score below the board", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		seed(t, store, []int{50, 30, 10})
		board := scoreboard.New(store, 3)

		require.NoError(t, board.Record(5))
		assert.Equal(t, []int{50, 30, 10}, saved(t, store))
	})

	t.Run("without prior load", func(t *testing.T) {
		store := scoreboard.NewMemoryStore()
		board := scoreboard.New(store, 3)

		require.NoError(t, board.Record(8))
		require.NoError(t, board.Record(64))
		require.NoError(t, board.Record(8))
		require.NoError(t, board.Record(16))
		assert.Equal(t, []int{64, 16, 8}, saved(t, store))
		assert.Len(t, board.Top(), 3)
	})

	t.Run("store failure", func(t *testing.T) {
		board := scoreboard.New(failingStore{}, 3)
		assert.ErrorIs(t, board.Record(10), errBroken)
	})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	store := scoreboard.NewFileStore(dir + "/nested")

	_, err := store.Get(scoreboard.Key)
	assert.ErrorIs(t, err, scoreboard.ErrNotFound)

	board := scoreboard.New(store, 3)
	require.NoError(t, board.Record(128))

	_, err = os.Stat(store.Path(scoreboard.Key))
	require.NoError(t, err)

	reopened := scoreboard.New(scoreboard.NewFileStore(dir+"/nested"), 3)
	scores, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, []int{128, 0, 0}, scores)

	assert.Error(t, store.Set("../escape", nil))
	_, err = store.Get("")
	assert.Error(t, err)
}

var errBroken = errors.New("broken store")

type failingStore struct{}

func (failingStore) Get(string) ([]byte, error) { return nil, errBroken }
func (failingStore) Set(string, []byte) error   { return errBroken }

func ExampleScoreBoard_Record() {
	board := scoreboard.New(scoreboard.NewMemoryStore(), scoreboard.DefaultSize)

	scores, _ := board.Load()
	fmt.Println(scores)

	board.Record(40)
	board.Record(10)
	board.Record(50)
	board.Record(30)
	fmt.Println(board.Top())

	// Output:
	// [0 0 0]
	// [50 40 30]
}
