package olx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kalebabebe/mitx-canvas-tools/internal/convert"
)

// Writer lays converted problems out as problem/<url_name>.xml files under
// a single output directory.
type Writer struct {
	dir   string
	names *NameGenerator
}

// NewWriter prepares the problem/ directory under outputDir.
func NewWriter(outputDir string) (*Writer, error) {
	dir := filepath.Join(outputDir, "problem")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create problem dir: %w", err)
	}
	return &Writer{dir: dir, names: NewNameGenerator()}, nil
}

// WriteProblem writes one converted problem and returns its url_name. The
// body is emitted exactly as the converter produced it, so writing the same
// outcome twice yields byte-identical files.
func (w *Writer) WriteProblem(title string, p *convert.Problem) (string, error) {
	if title == "" {
		title = "Question"
	}
	urlName := w.names.Generate(title)

	var buf bytes.Buffer
	buf.WriteString(`<problem display_name="`)
	xml.EscapeText(&buf, []byte(title))
	buf.WriteString(`"`)
	if p.Weight > 0 && p.Weight != 1 {
		buf.WriteString(` weight="`)
		buf.WriteString(strconv.FormatFloat(p.Weight, 'f', -1, 64))
		buf.WriteString(`"`)
	}
	buf.WriteString(">\n")
	buf.WriteString(p.Body)
	buf.WriteString("\n</problem>\n")

	path := filepath.Join(w.dir, urlName+".xml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write problem %s: %w", urlName, err)
	}
	return urlName, nil
}

// WriteQuiz writes every outcome of a quiz that produced a problem body and
// returns the url_names in outcome order. Unsupported outcomes are skipped
// here; the import notes cover them.
func (w *Writer) WriteQuiz(outcomes []convert.Outcome) ([]string, error) {
	names := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Problem == nil {
			continue
		}
		name, err := w.WriteProblem(o.Title, o.Problem)
		if err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
