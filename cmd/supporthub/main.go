// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KhalidiZib/supporthub/cmd/supporthub/cli"
)

func main() {
	if err := run(); err != nil {
		// Commands with a defined non-zero outcome return an ExitError
		// and have already written their own output.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		err = cli.Classify(err)
		var toolErr *cli.ToolError
		if errors.As(err, &toolErr) {
			fmt.Fprintf(os.Stderr, "error (%s): %v\n", toolErr.Category, err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args, err := cli.ExtractGlobalFlags(os.Args[1:])
	if err != nil {
		return err
	}
	return cli.Root(ctx).Execute(args)
}
