package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harshydav08/sitechat"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer := deps.Service.Ask(deps.Ctx, "", c.Question)
	return printAnswer(deps.Stdout, deps.Stderr, answer)
}

// printAnswer writes the answer with its confidence and sources. A failed
// answer is also reported on stderr and returned as an error.
func printAnswer(stdout, stderr io.Writer, a *sitechat.Answer) error {
	fmt.Fprintln(stdout, a.Text)
	if a.Failed() {
		fmt.Fprintf(stderr, "error: %s\n", a.Error)
		return sitechat.Errorf(a.Code, "%s", a.Error)
	}
	fmt.Fprintf(stdout, "\nConfidence: %.2f (%d chunks)\n", a.Confidence, a.ChunksUsed)
	if len(a.Sources) > 0 {
		fmt.Fprintln(stdout, "Sources:")
		for _, src := range a.Sources {
			fmt.Fprintf(stdout, "  - %s\n", src)
		}
	}
	return nil
}

// Run executes the chat command. Each line is a question; lines starting
// with a slash are commands.
func (c *ChatCmd) Run(deps *Dependencies) error {
	svc := deps.Service
	if n := svc.SweepSessions(0); n > 0 {
		fmt.Fprintf(deps.Stderr, "removed %d idle sessions\n", n)
	}

	session := svc.CreateSession()
	fmt.Fprintln(deps.Stdout, "Ask a question about the indexed website. Commands: /history /clear /new /quit")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			svc.ClearSession(session)
			return nil
		case "/history":
			history := svc.History(session)
			if len(history) == 0 {
				fmt.Fprintln(deps.Stdout, "(no messages)")
			}
			for _, m := range history {
				fmt.Fprintf(deps.Stdout, "%s: %s\n", m.Role, m.Content)
			}
			continue
		case "/clear", "/new":
			svc.ClearSession(session)
			session = svc.CreateSession()
			fmt.Fprintln(deps.Stdout, "Started a new conversation.")
			continue
		}

		if strings.HasPrefix(line, "/") {
			fmt.Fprintf(deps.Stdout, "unknown command %q\n", line)
			continue
		}

		// Failures are already printed; the conversation goes on.
		_ = printAnswer(deps.Stdout, deps.Stderr, svc.Ask(deps.Ctx, session, line))
		fmt.Fprintln(deps.Stdout)
	}

	svc.ClearSession(session)
	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
