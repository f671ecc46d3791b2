package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"daleel-backend/internal/models"
	"daleel-backend/internal/session"
)

func main() {
	godotenv.Load()

	baseURL := os.Getenv("DALEEL_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("DALEEL_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "DALEEL_TOKEN is required (a bearer token from the auth provider)")
		os.Exit(1)
	}

	sess := session.New(session.NewClient(baseURL, token))
	sess.OnNotice = func(text string) {
		fmt.Printf("\n[!] %s\n", text)
	}
	defer sess.Close()

	fmt.Println("Daleel AI chat - ctrl+d to exit")
	printMessage(sess.Messages()[0])

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		err = sess.Send(context.Background(), strings.TrimSpace(line))
		switch {
		case errors.Is(err, session.ErrEmptyMessage):
			continue
		case errors.Is(err, session.ErrBusy):
			// Single-flight: drop the extra submission.
			continue
		}

		messages := sess.Messages()
		printMessage(messages[len(messages)-1])
	}
}

func printMessage(m models.ChatMessage) {
	fmt.Printf("\n[%s] %s\n\n", m.Role, m.Content)
}
