/*
 * Copyright 2022 Holoinsight Project Authors. Licensed under Apache-2.0.
 */

package main

import (
	"os"

	"github.com/traas-stack/statsdump/pkg/cli"
	"github.com/traas-stack/statsdump/pkg/util"
)

func main() {
	util.ResetSigpipe()
	os.Exit(cli.Execute())
}
