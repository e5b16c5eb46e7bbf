package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/biopass/biopass/pkg/broadcast"
	"github.com/biopass/biopass/pkg/lifecycle"
	"github.com/biopass/biopass/pkg/qrcode"
)

// runTerminal generates one pass, prints it and redraws the countdown line
// until the pass expires or ctx ends, in which case it is destroyed.
func runTerminal(ctx context.Context, ctrl *lifecycle.Controller, out io.Writer) error {
	st, err := ctrl.Generate(ctx)
	if err != nil {
		return err
	}

	art, err := qrcode.Terminal(st.Token, false)
	if err != nil {
		ctrl.Destroy(context.WithoutCancel(ctx))
		return err
	}
	fmt.Fprintln(out, art)
	fmt.Fprintf(out, "session %s...  key %s\n", st.View().SessionPrefix, ctrl.Fingerprint())

	sub := ctrl.Subscribe(ctx)
	defer sub.Close()

	updates := sub.Receive(ctx)
	for {
		var msg broadcast.Message[lifecycle.State]
		ok := false
		select {
		case <-ctx.Done():
		case msg, ok = <-updates:
		}
		if !ok {
			if ctx.Err() != nil {
				ctrl.Destroy(context.WithoutCancel(ctx))
				fmt.Fprintln(out, "\nsession destroyed")
			}
			return nil
		}

		v := msg.Data.View()
		fmt.Fprintf(out, "\r%-8s %s ", strings.ToUpper(string(v.Status)), v.Clock())
		if v.Status == lifecycle.StatusExpired {
			fmt.Fprintln(out, "\ntoken destroyed")
			return nil
		}
	}
}
