package browser

import (
	"context"

	"github.com/surajroboto/cookie-trac/internal/model"
)

// Driver loads one page and returns everything it observed: buffered network
// traffic plus a cookie snapshot taken after the settle period. A Driver
// owns its browser session; Close must release it even after a failed Visit.
type Driver interface {
	Visit(ctx context.Context, url string) (*model.Capture, error)

	Close() error
}
