//go:build !linux && !windows

package capture

import "errors"

func platformEnumerator() Enumerator {
	return EnumeratorFunc(func() ([]WindowInfo, error) {
		return nil, errors.New(ErrMsgNoEnumerator)
	})
}
