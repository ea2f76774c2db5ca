package socket

import "errors"

var ErrOutboundBufferFull = errors.New("outbound buffer full")
