package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	domain "link-validator/internal/domain/validation"

	"github.com/fatih/color"
)

type jsonLine struct {
	URL    string        `json:"url"`
	Result domain.Result `json:"result"`
}

// printer writes results as they arrive. Debounced results are delivered from
// timer goroutines, so writes are serialized.
type printer struct {
	mu   sync.Mutex
	out  io.Writer
	json bool
}

func newPrinter(out io.Writer, jsonOutput bool) *printer {
	return &printer{out: out, json: jsonOutput}
}

func (p *printer) Print(rawURL string, r domain.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.json {
		return json.NewEncoder(p.out).Encode(jsonLine{URL: rawURL, Result: r})
	}

	mark, paint := decorate(r.BorderColor)

	if _, err := fmt.Fprintf(p.out, "%s %s  %s\n", paint("%s", mark), rawURL, paint("%s", r.Message)); err != nil {
		return err
	}

	switch {
	case r.Extra.ProtocolUpdated:
		_, err := fmt.Fprintf(p.out, "    use %s instead of %s\n", r.Extra.UpdatedURL, r.Extra.OriginalURL)
		return err
	case r.Extra.RedirectLocation != "":
		_, err := fmt.Fprintf(p.out, "    redirects to %s\n", r.Extra.RedirectLocation)
		return err
	}

	return nil
}

func decorate(s domain.Severity) (string, func(format string, a ...interface{}) string) {
	switch s {
	case domain.SeverityError:
		return "✖", color.RedString
	case domain.SeverityWarning:
		return "!", color.YellowString
	case domain.SeveritySuccess:
		return "✔", color.GreenString
	default:
		return "·", fmt.Sprintf
	}
}
