package ws

import "time"

// SetJoinWait shortens the join window so tests don't wait the full timeout.
func (h *Handler) SetJoinWait(d time.Duration) { h.joinWait = d }
