package utility

import (
	"bufio"
	"fmt"
	"os"
)

var reader = bufio.NewReader(os.Stdin)

func GetInput(prompt string) string {
	fmt.Print(prompt + ": ")
	input, err := reader.ReadString('\n')
	text := ""

	if err == nil {
		text = input[:len(input)-1]
	} else {
		os.Exit(1)
	}

	return text
}

func GetBoolean(prompt string) bool {
	return GetInput(fmt.Sprintf("%s [y/n] ", prompt)) == "y"
}

// Confirmer gates actions that need explicit authorization. Commands pick the
// variant from their flags so headless runs never block on stdin.
type Confirmer interface {
	Confirm(prompt string) bool
}

// AlwaysYes authorizes every gated action (--yes / --force).
type AlwaysYes struct{}

func (AlwaysYes) Confirm(string) bool { return true }

// AlwaysNo refuses every gated action.
type AlwaysNo struct{}

func (AlwaysNo) Confirm(string) bool { return false }

// InteractivePrompt asks on stdin per action.
type InteractivePrompt struct{}

func (InteractivePrompt) Confirm(prompt string) bool { return GetBoolean(prompt) }

func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
