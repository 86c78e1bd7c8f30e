// ottobrew is a coffee brew guide: a three-step wizard that picks a recipe
// for your brew method, roast and grinder, plus a taste troubleshooter.
//
// Usage:
//
//	ottobrew guide [--plain]
//	ottobrew recipe --method v60 --roast light --grinder commandante-c40-std
//	ottobrew troubleshoot [--plain]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and maps errors to exit codes.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp()
	a.errOut = errOut
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.Execute()
	if err == nil {
		return exitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(errOut, "error:", ee.err)
		}
		return ee.code
	}
	fmt.Fprintln(errOut, "error:", err)
	return exitUserError
}
