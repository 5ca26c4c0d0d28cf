package reflector

import (
	htmltemplate "html/template"
	"reflect"
	"sync"
	"testing"
	texttemplate "text/template"

	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name string
}

type anotherStruct struct {
	Value int
}

type boxed[T any] struct{ V T }

const pkgPath = "github.com/codewandler/csp-go/core/reflector"

func TestTypeInfoOf(t *testing.T) {
	ti := TypeInfoOf(testStruct{Name: "test"})
	require.Equal(t, pkgPath+".testStruct", ti.Name)
	require.Equal(t, "reflector.testStruct", ti.Short)
	require.Equal(t, "testStruct", ti.Type.Name())
}

func TestTypeInfoOf_Pointer(t *testing.T) {
	ti := TypeInfoOf(&testStruct{Name: "test"})
	require.Equal(t, pkgPath+".testStruct", ti.Name)
	require.NotEqual(t, reflect.Pointer, ti.Type.Kind())
}

func TestTypeInfoFor(t *testing.T) {
	require.Equal(t, TypeInfoOf(testStruct{}), TypeInfoFor[testStruct]())
	require.Equal(t, TypeInfoOf(testStruct{}), TypeInfoFor[*testStruct]())
}

func TestTypeInfoFor_Generic(t *testing.T) {
	ti := TypeInfoFor[boxed[int]]()
	require.Equal(t, "reflector.boxed[int]", ti.Short)
	require.NotEqual(t, TypeInfoFor[boxed[string]]().Name, ti.Name)
}

func TestTypeInfoFor_same_short_name(t *testing.T) {
	text := TypeInfoFor[*texttemplate.Template]()
	html := TypeInfoFor[*htmltemplate.Template]()
	require.Equal(t, text.Short, html.Short)
	require.Equal(t, "text/template.Template", text.Name)
	require.Equal(t, "html/template.Template", html.Name)
}

func TestTypeInfoFor_Builtin(t *testing.T) {
	ti := TypeInfoFor[string]()
	require.Equal(t, "string", ti.Name)
	require.Equal(t, "string", ti.Short)

	ti = TypeInfoFor[map[string]int]()
	require.Equal(t, "map[string]int", ti.Name)
}

func TestTypeInfoForType_Nil(t *testing.T) {
	ti := TypeInfoForType(nil)
	require.Empty(t, ti.Name)
	require.Nil(t, ti.Type)
}

func TestConcurrentAccess(t *testing.T) {
	const goroutines = 100
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			for range iterations {
				_ = TypeInfoOf(testStruct{})
				_ = TypeInfoFor[anotherStruct]()
				_ = TypeInfoForType(reflect.TypeFor[string]())
			}
		}()
	}

	wg.Wait()
}

func TestCacheHit(t *testing.T) {
	muCache.Lock()
	cache = make(map[reflect.Type]TypeInfo)
	muCache.Unlock()

	ti1 := TypeInfoOf(testStruct{})
	ti2 := TypeInfoOf(&testStruct{})
	require.Equal(t, ti1, ti2)

	muCache.RLock()
	_, ok := cache[reflect.TypeFor[testStruct]()]
	n := len(cache)
	muCache.RUnlock()

	require.True(t, ok)
	require.Equal(t, 1, n)
}
