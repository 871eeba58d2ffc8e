/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package util

import (
	"fmt"
	"github.com/traas-stack/statsdump/pkg/model"
	"time"
)

var unixEpoch = time.Unix(0, 0)

// TimestampMS converts t to milliseconds since the unix epoch.
// A clock reading before the epoch yields an absent value and an error, never a zero timestamp.
func TimestampMS(t time.Time) (model.Opt[int64], error) {
	if t.Before(unixEpoch) {
		return model.None[int64](), fmt.Errorf("clock %s is before unix epoch", t.Format(time.RFC3339))
	}
	return model.Some(t.UnixMilli()), nil
}
