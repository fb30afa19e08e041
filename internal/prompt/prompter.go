package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewPrompter reads answers from r and writes questions to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// Ask shows label with its default and returns the answer. An empty answer
// takes the default. Answers rejected by validate are reported and asked
// again until input runs out.
func (p *Prompter) Ask(label, def string, validate func(string) error) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(p.w, "? %s (%s): ", label, def)
		} else {
			fmt.Fprintf(p.w, "? %s: ", label)
		}

		line, eof, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", label, err)
		}
		answer := line
		if answer == "" {
			answer = def
		}

		if validate != nil {
			if verr := validate(answer); verr != nil {
				if eof {
					return "", fmt.Errorf("%s: %w", label, verr)
				}
				fmt.Fprintf(p.w, "  %v\n", verr)
				continue
			}
		}
		return answer, nil
	}
}

// Select presents a numbered list and returns the chosen index. An empty
// answer picks def.
func (p *Prompter) Select(label string, items []string, def int) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%s: nothing to choose from", label)
	}

	fmt.Fprintf(p.w, "\n%s\n", label)
	for i, item := range items {
		marker := " "
		if i == def {
			marker = "*"
		}
		fmt.Fprintf(p.w, " %s%d) %s\n", marker, i+1, item)
	}

	for {
		fmt.Fprintf(p.w, "Enter number [1-%d] (%d): ", len(items), def+1)

		line, eof, err := p.readLine()
		if err != nil {
			return 0, fmt.Errorf("reading selection: %w", err)
		}
		if line == "" {
			return def, nil
		}

		num, convErr := strconv.Atoi(line)
		if convErr == nil && num >= 1 && num <= len(items) {
			return num - 1, nil
		}

		verr := fmt.Errorf("%w: selection %q, choose 1-%d", ErrInvalidAnswer, line, len(items))
		if eof {
			return 0, verr
		}
		fmt.Fprintf(p.w, "  %v\n", verr)
	}
}

// readLine returns the next trimmed line and whether input is exhausted.
// A final line without a newline is returned together with eof.
func (p *Prompter) readLine() (string, bool, error) {
	line, err := p.reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(line), false, nil
}
