package apiclient

import (
	"context"
)

// Send issues method with a JSON body and decodes the response into a T.
func Send[T any](ctx context.Context, d Doer, method, path string, body any) (T, error) {
	var out T
	err := d.Do(ctx, Request{Method: method, Path: path, Body: body}, &out)
	return out, err
}
