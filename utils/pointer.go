package utils

func Ptr[T any](v T) *T {
	return &v
}

func ZeroIfNil[T any](v *T) T {
	if v == nil {
		return Zero[T]()
	}

	return *v
}
