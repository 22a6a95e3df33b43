package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"sitch/internal/infra/sources"
)

// searchFunc queries a platform for sources matching the user's term.
type searchFunc func(ctx context.Context, query string) ([]sources.SearchResult, error)

// prompter reads validated input lines from the user.
type prompter struct {
	scanner *bufio.Scanner
	stdout  io.Writer
	stderr  io.Writer
}

// readLine prompts until validate accepts the input. It returns false
// when the user quit ("q", "quit" or end of input).
func (p *prompter) readLine(prompt string, validate func(string) error) (string, bool) {
	for {
		fmt.Fprint(p.stdout, prompt)
		if !p.scanner.Scan() {
			fmt.Fprintln(p.stdout)
			return "", false
		}
		input := p.scanner.Text()
		if input == "q" || input == "quit" {
			return "", false
		}
		if err := validate(input); err != nil {
			fmt.Fprintln(p.stderr, err)
			continue
		}
		return input, true
	}
}

// confirm asks a yes/no question, with yes as the default for an empty
// answer.
func (p *prompter) confirm(prompt string) (answer, ok bool) {
	_, ok = p.readLine(prompt, func(input string) error {
		switch input {
		case "", "y", "Y", "yes":
			answer = true
		case "n", "N", "no":
			answer = false
		default:
			return errors.New("Please respond with a yes or no.")
		}
		return nil
	})
	return answer, ok
}

// pickIndex asks for a number between 1 and count, returning it
// zero-based.
func (p *prompter) pickIndex(prompt string, count int) (index int, ok bool) {
	_, ok = p.readLine(prompt, func(input string) error {
		picked, err := strconv.Atoi(input)
		if err != nil {
			return errors.New("The value wasn't an integer.")
		}
		if picked < 1 || picked > count {
			return errors.New("The specified index was out of bounds.")
		}
		index = picked - 1
		return nil
	})
	return index, ok
}

// interactiveSearch runs the search-and-pick loop for the search
// subcommands: take a term, query the platform, and let the user choose
// a result to add. A nil result with a nil error means the user quit or
// declined.
func interactiveSearch(ctx context.Context, in io.Reader, stdout, stderr io.Writer, kind string, search searchFunc) (*sources.SearchResult, error) {
	p := &prompter{scanner: bufio.NewScanner(in), stdout: stdout, stderr: stderr}
	tty := shouldColorize(stdout)

	for {
		term, ok := p.readLine("Search for a "+kind+" by name: ", func(input string) error {
			if len(input) <= 3 {
				return errors.New("Search term must be longer than 3 characters.")
			}
			return nil
		})
		if !ok {
			return nil, nil
		}

		results, err := search(ctx, term)
		if err != nil {
			return nil, err
		}

		switch len(results) {
		case 0:
			fmt.Fprintln(stdout, "No results found, please try again.")
		case 1:
			result := results[0]
			fmt.Fprintf(stdout, "Found 1 result: \"%s\" (id = %s)\n", result.Title, result.ID)
			confirmed, ok := p.confirm("Add it to sitch? [Y/n]")
			if !ok || !confirmed {
				return nil, nil
			}
			return &result, nil
		default:
			fmt.Fprintf(stdout, "Found %d results:\n", len(results))
			for i, result := range results {
				fmt.Fprintf(stdout, "%s: \"%s\" (id = %s)\n",
					paint(tty, ansiYellow, strconv.Itoa(i+1)),
					paint(tty, ansiGreen, result.Title),
					result.ID)
			}
			index, ok := p.pickIndex(fmt.Sprintf("Pick a result to add [1 to %d]: ", len(results)), len(results))
			if !ok {
				return nil, nil
			}
			return &results[index], nil
		}
	}
}
