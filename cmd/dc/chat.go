package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/docchat/docchat-cli/internal/chat"
	"github.com/docchat/docchat-cli/internal/model"
	"github.com/docchat/docchat-cli/internal/nav"
)

// cmdChat runs the interactive question/answer loop against the currently
// selected document, or in general mode when none is selected.
func (a *app) cmdChat(ctx context.Context) {
	if a.store.Current() == "" {
		fmt.Fprintln(os.Stderr, "not logged in (dc login)")
		os.Exit(1)
	}

	var docID *int64
	if doc, ok := a.reg.CurrentSelection(); ok {
		docID = &doc.ID
		fmt.Printf("chatting with %q (/clear resets, /quit exits)\n", doc.Title)
	} else {
		fmt.Println("no document selected, general chat (/clear resets, /quit exits)")
	}

	conv := chat.New(a.gw, docID, a.log)
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)

		switch line {
		case "/quit", "/exit":
			return
		case "/clear":
			conv.Clear()
			fmt.Println("chat cleared")
			continue
		}

		before := conv.Len()
		if err := conv.Send(ctx, line); err != nil {
			if route, ok := nav.Resolve(err); ok {
				_ = a.store.Clear()
				fmt.Fprintf(os.Stderr, "session expired, please log in again (dc login) [%s]\n", route)
				os.Exit(1)
			}
			// the log already carries the fixed error reply; show the cause as a banner
			fmt.Fprintln(os.Stderr, "!", err)
		}
		for _, m := range conv.Messages()[before:] {
			if m.Sender != model.SenderBot {
				continue
			}
			fmt.Println(m.Text)
			if m.Source != "" {
				fmt.Printf("  (source: %s)\n", m.Source)
			}
		}
	}
}
