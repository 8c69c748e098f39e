package shared

import "errors"

var ErrUnsortedBulkLoad = errors.New("bulk load input is not strictly ascending")
var ErrVerifyFailed = errors.New("index verification failed")
