// Package keyhash provides hash functions of cache keys to choose buckets.
package keyhash

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

var (
	// encoders caches the encoder of each key type by its name.
	encoders sync.Map

	seed = maphash.MakeSeed()
)

// encoder appends the bytes representing the key to the buffer.
// A nil encoder means the key type has no stable encoding.
type encoder func(buf []byte, key any) []byte

// For returns a hash function for keys of type K.
//
// Keys of numeric and string types are hashed with FNV-1a of their big-endian bytes,
// so their hashes are stable across processes.
// Keys of the other comparable types are hashed with hash/maphash, seeded per process.
func For[K comparable]() func(K) int {
	var zero K
	enc := lookup(zero)
	if enc == nil {
		return func(key K) int {
			return int(maphash.Comparable(seed, key))
		}
	}
	return func(key K) int {
		var buf [8]byte
		return int(fnv1a(enc(buf[:0], key)))
	}
}

func lookup(zero any) encoder {
	typ := reflect.TypeOf(zero)
	if typ == nil {
		// interface key type
		return nil
	}

	name := typ.String()
	if enc, ok := encoders.Load(name); ok {
		return enc.(encoder)
	}
	enc, _ := encoders.LoadOrStore(name, newEncoder(zero))
	return enc.(encoder)
}

func newEncoder(zero any) encoder {
	switch zero.(type) {
	case int:
		return func(buf []byte, key any) []byte {
			if math.MaxInt == math.MaxInt32 {
				return binary.BigEndian.AppendUint32(buf, uint32(key.(int)))
			}
			return binary.BigEndian.AppendUint64(buf, uint64(key.(int)))
		}
	case int8:
		return func(buf []byte, key any) []byte { return append(buf, uint8(key.(int8))) }
	case int16:
		return func(buf []byte, key any) []byte { return binary.BigEndian.AppendUint16(buf, uint16(key.(int16))) }
	case int32:
		return func(buf []byte, key any) []byte { return binary.BigEndian.AppendUint32(buf, uint32(key.(int32))) }
	case int64:
		return func(buf []byte, key any) []byte { return binary.BigEndian.AppendUint64(buf, uint64(key.(int64))) }
	case uint:
		return func(buf []byte, key any) []byte {
			if math.MaxUint == math.MaxUint32 {
				return binary.BigEndian.AppendUint32(buf, uint32(key.(uint)))
			}
			return binary.BigEndian.AppendUint64(buf, uint64(key.(uint)))
		}
	case uint8:
		return func(buf []byte, key any) []byte { return append(buf, key.(uint8)) }
	case uint16:
		return func(buf []byte, key any) []byte { return binary.BigEndian.AppendUint16(buf, key.(uint16)) }
	case uint32:
		return func(buf []byte, key any) []byte { return binary.BigEndian.AppendUint32(buf, key.(uint32)) }
	case uint64:
		return func(buf []byte, key any) []byte { return binary.BigEndian.AppendUint64(buf, key.(uint64)) }
	case float32:
		return func(buf []byte, key any) []byte {
			f := key.(float32)
			if f == 0 {
				f = 0 // -0 == +0
			}
			return binary.BigEndian.AppendUint32(buf, math.Float32bits(f))
		}
	case float64:
		return func(buf []byte, key any) []byte {
			f := key.(float64)
			if f == 0 {
				f = 0 // -0 == +0
			}
			return binary.BigEndian.AppendUint64(buf, math.Float64bits(f))
		}
	case string:
		return func(buf []byte, key any) []byte { return append(buf, key.(string)...) }
	default:
		return nil
	}
}

func fnv1a(b []byte) uint64 {
	h := uint64(offset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime64
	}
	return h
}
