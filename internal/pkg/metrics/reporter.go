package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"passwordAuditBackend/internal/core/domain"
)

// Reporter writes audit reports as indented JSON. Reports never contain the
// audited passwords, only their masks and analyses.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// NewFileReporter creates or truncates path. The caller must Close it.
func NewFileReporter(path string) (*Reporter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	return &Reporter{out: file}, nil
}

func (r *Reporter) Write(report *domain.AuditReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if _, err := r.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Reporter) Close() error {
	if closer, ok := r.out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
