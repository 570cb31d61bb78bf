package backend

import "context"

type unconfiguredRepository[R any] struct{}

// Unconfigured returns a repository that fails every call with ErrUnconfigured.
// Callers that list rows treat that as "no data yet".
func Unconfigured[R any]() Repository[R] {
	return unconfiguredRepository[R]{}
}

func (unconfiguredRepository[R]) List(context.Context, Query) ([]R, error) {
	return nil, ErrUnconfigured
}

func (unconfiguredRepository[R]) Get(context.Context, string) (R, error) {
	var zero R
	return zero, ErrUnconfigured
}

func (unconfiguredRepository[R]) Insert(context.Context, R) (R, error) {
	var zero R
	return zero, ErrUnconfigured
}

func (unconfiguredRepository[R]) Update(context.Context, string, R) (R, error) {
	var zero R
	return zero, ErrUnconfigured
}

func (unconfiguredRepository[R]) Delete(context.Context, string) error {
	return ErrUnconfigured
}
