// agentbay-example is a minimal CLI that exercises the SDK end to end:
// create a session, run one command, read the session's labels, tear it
// down. It exists to give the package a runnable smoke test outside the
// unit test suite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/agentbay/agentbay-go"
)

func main() {
	apiKey := flag.String("api-key", "", "AgentBay API key (defaults to AGENTBAY_API_KEY)")
	imageID := flag.String("image", "", "image id for the session")
	command := flag.String("command", "echo hello", "shell command to run in the session")
	flag.Parse()

	client, err := agentbay.New(*apiKey, agentbay.WithLogging(os.TempDir(), false))
	if err != nil {
		fmt.Fprintln(os.Stderr, "agentbay-example:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created := client.Create(ctx, &agentbay.CreateSessionParams{ImageID: *imageID})
	if !created.Success {
		fmt.Fprintln(os.Stderr, "agentbay-example: create session:", created.ErrorMessage)
		os.Exit(1)
	}
	session := created.Session
	fmt.Println("session created:", session.SessionID)

	defer func() {
		if del := client.Delete(ctx, session, false); !del.Success {
			fmt.Fprintln(os.Stderr, "agentbay-example: delete session:", del.ErrorMessage)
		}
	}()

	result := session.Command.ExecuteCommand(ctx, *command, 60000)
	if !result.Success {
		fmt.Fprintln(os.Stderr, "agentbay-example: execute command:", result.ErrorMessage)
		os.Exit(1)
	}
	fmt.Println("output:", result.Output.Output)

	labels := client.GetLabels(ctx, session)
	if labels.Success {
		fmt.Println("labels:", labels.Labels)
	}
}
