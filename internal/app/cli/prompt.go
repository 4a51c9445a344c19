package cli

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"coinstats/internal/feature/prices/domain"
	"coinstats/internal/feature/prices/domain/entity"
	"coinstats/internal/feature/prices/usecase"
)

const invalidDateMessage = "Date has incorrect value, format or points to date in the future, " +
	"please provide correct date in a yyyy-mm-dd or yyyy-mm format"

// PromptDateRange validates start and end, asking for new values on in until they form a valid range.
// It returns the last validation error once in is exhausted.
func PromptDateRange(start, end string, today time.Time, in io.Reader, out io.Writer) (entity.DateRange, error) {
	scanner := bufio.NewScanner(in)
	for {
		r, err := usecase.NormalizeDateRange(start, end, today)
		if err == nil {
			return r, nil
		}
		if !domain.IsInvalidInput(err) {
			return entity.DateRange{}, err
		}

		_, _ = fmt.Fprintf(out, "%s (%v)\n", invalidDateMessage, err)

		var ok bool
		if start, ok = ask(scanner, out, "Starting date: "); !ok {
			return entity.DateRange{}, fmt.Errorf("no more input: %w", err)
		}
		if end, ok = ask(scanner, out, "Ending date: "); !ok {
			return entity.DateRange{}, fmt.Errorf("no more input: %w", err)
		}
	}
}

func ask(scanner *bufio.Scanner, out io.Writer, prompt string) (string, bool) {
	_, _ = fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
