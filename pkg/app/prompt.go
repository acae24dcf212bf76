package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt writes question to w and returns the trimmed answer read from r.
func Prompt(r io.Reader, w io.Writer, question string) (string, error) {
	fmt.Fprint(w, question)

	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
