package reflector

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct{ V int }

func TestNameOf(t *testing.T) {
	require.Equal(t, "github.com/codewandler/fibr-go/core/reflector.sample", NameOf(sample{V: 1}))
	require.Equal(t, "int", NameOf(42))
	require.Equal(t, "<nil>", NameOf(nil))
}

func TestNameFor(t *testing.T) {
	require.Equal(t, NameOf(sample{}), NameFor[sample]())
	require.Equal(t, "string", NameFor[string]())
	require.Equal(t, "[]int", NameFor[[]int]())
}

func TestNameForType_nil(t *testing.T) {
	require.Equal(t, "<nil>", NameForType(nil))
}

func TestNameOf_concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				require.Equal(t, "github.com/codewandler/fibr-go/core/reflector.sample", NameForType(reflect.TypeOf(sample{})))
			}
		}()
	}
	wg.Wait()
}
