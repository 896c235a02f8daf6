package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/surajroboto/cookie-trac/internal/logging"
	"github.com/surajroboto/cookie-trac/internal/model"
)

// Writer persists reports as timestamp-named JSON files. Each report is
// written exactly once and never overwritten or read back.
type Writer struct {
	outDir string
	logger logging.Logger

	// now is swappable in tests to pin the filename timestamp.
	now func() time.Time
}

func NewWriter(outDir string, logger logging.Logger) (*Writer, error) {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output dir %s: %w", outDir, err)
	}
	return &Writer{
		outDir: outDir,
		logger: logger.With(logging.Field{Key: "component", Value: "report-writer"}),
		now:    time.Now,
	}, nil
}

// Write serializes the report and creates the output file. O_EXCL guards the
// write-once contract: an existing file is never overwritten. Scans landing
// in the same second get a numeric suffix instead.
func (w *Writer) Write(r *model.Report) (string, error) {
	if r == nil {
		return "", fmt.Errorf("nil report")
	}

	stamp := w.now().UTC().Format("2006-01-02T15-04-05Z")

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	var path string
	var f *os.File
	for i := 0; ; i++ {
		name := fmt.Sprintf("cookie-report-%s.json", stamp)
		if i > 0 {
			name = fmt.Sprintf("cookie-report-%s-%d.json", stamp, i+1)
		}
		path = filepath.Join(w.outDir, name)

		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !os.IsExist(err) || i >= 99 {
			return "", fmt.Errorf("create report file %s: %w", path, err)
		}
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write report file %s: %w", path, err)
	}

	w.logger.Info("report written",
		logging.Field{Key: "path", Value: path},
		logging.Field{Key: "scan_id", Value: r.ScanID})

	return path, nil
}
