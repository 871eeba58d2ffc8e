/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package output

import "github.com/traas-stack/statsdump/pkg/model"

type (
	// Output serializes batches of records to a data sink.
	Output interface {
		// Write writes records in order, preceded by a header line when hasHeaders is true.
		// An empty batch writes nothing.
		Write(records []model.Record, hasHeaders bool) error
	}
)
