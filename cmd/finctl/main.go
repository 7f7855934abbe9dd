package main

import (
	"fmt"
	"os"

	"github.com/LovationAdmin/wealth-sync/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", client.UserMessage(err))
		for field, msgs := range client.FieldErrorsOf(err) {
			for _, m := range msgs {
				fmt.Fprintf(os.Stderr, "  %s %s\n", field, m)
			}
		}
		os.Exit(1)
	}
}
