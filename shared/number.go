package shared

// Number constrains the key type to numeric, totally-orderable kinds. No
// third-party constraints package in this module's dependency surface
// targets this shape, so it is hand-written rather than imported.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}
