// Package reflector provides cached type naming for runtime type tests.
// It is used to give message kinds stable, human readable names in logs
// and metric labels.
package reflector

import (
	"path"
	"reflect"
	"sync"
)

// maxCacheSize bounds the type cache. The number of message types in a
// program is small, so the limit is rarely hit; when it is, the cache is
// cleared.
const maxCacheSize = 1024

var (
	muCache sync.RWMutex
	cache   = make(map[reflect.Type]TypeInfo)
)

// TypeInfo holds naming metadata about a reflected type.
type TypeInfo struct {
	Name  string       // Fully qualified name: "pkg/path.TypeName"
	Short string       // Package-local name: "pkg.TypeName"
	Type  reflect.Type // The element type (pointers unwrapped)
}

// TypeInfoOf returns TypeInfo for the dynamic type of x.
func TypeInfoOf(x any) TypeInfo {
	return TypeInfoForType(reflect.TypeOf(x))
}

// TypeInfoFor returns TypeInfo for type parameter T.
func TypeInfoFor[T any]() TypeInfo {
	return TypeInfoForType(reflect.TypeFor[T]())
}

// TypeInfoForType returns TypeInfo for t. Pointer types are unwrapped so
// that *Msg and Msg share a name. Safe for concurrent use.
func TypeInfoForType(t reflect.Type) TypeInfo {
	if t == nil {
		return TypeInfo{}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	muCache.RLock()
	ti, ok := cache[t]
	muCache.RUnlock()
	if ok {
		return ti
	}

	ti = build(t)

	muCache.Lock()
	if existing, ok := cache[t]; ok {
		muCache.Unlock()
		return existing
	}
	if len(cache) >= maxCacheSize {
		cache = make(map[reflect.Type]TypeInfo)
	}
	cache[t] = ti
	muCache.Unlock()

	return ti
}

func build(t reflect.Type) TypeInfo {
	name := t.Name()
	if name == "" {
		// unnamed types (func, map, anonymous struct) have no package
		s := t.String()
		return TypeInfo{Name: s, Short: s, Type: t}
	}
	pkg := t.PkgPath()
	if pkg == "" {
		return TypeInfo{Name: name, Short: name, Type: t}
	}
	return TypeInfo{
		Name:  pkg + "." + name,
		Short: path.Base(pkg) + "." + name,
		Type:  t,
	}
}
