package sink

import (
	"bufio"
	"encoding/csv"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ErrInvalidFormat is returned for unknown format presets and unusable delimiters.
var ErrInvalidFormat = errors.New("invalid file format")

// Format describes how a delimited artifact is encoded.
type Format struct {
	Name      string
	Delimiter rune
	CRLF      bool
	// Escape switches from quoting to backslash escaping (MySQL LOAD DATA style).
	Escape bool
}

var (
	FormatDefault = Format{Name: "default", Delimiter: ',', CRLF: true}
	FormatRFC4180 = Format{Name: "rfc4180", Delimiter: ',', CRLF: true}
	FormatExcel   = Format{Name: "excel", Delimiter: ',', CRLF: true}
	FormatTDF     = Format{Name: "tdf", Delimiter: '\t', CRLF: true}
	FormatMySQL   = Format{Name: "mysql", Delimiter: '\t', Escape: true}
	// FormatCustom is RFC4180 with a delimiter that must be supplied separately.
	FormatCustom = Format{Name: "custom", CRLF: true}
)

var formats = map[string]Format{
	"default":               FormatDefault,
	"default (comma, crlf)": FormatDefault,
	"rfc4180":               FormatRFC4180,
	"excel":                 FormatExcel,
	"excel csv":             FormatExcel,
	"tdf":                   FormatTDF,
	"tdf (tab, crlf)":       FormatTDF,
	"mysql":                 FormatMySQL,
	"mysql (tab, lf)":       FormatMySQL,
	"custom":                FormatCustom,
}

// FormatNames lists the canonical preset names.
func FormatNames() []string {
	return []string{"default", "rfc4180", "excel", "tdf", "mysql", "custom"}
}

// ParseFormat resolves a preset by name, case-insensitively. The long labels
// ("TDF (tab, CRLF)", "Excel CSV", ...) are accepted as well.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Format{}, errors.Mark(errors.New("file format is required"), ErrInvalidFormat)
	}
	if f, ok := formats[key]; ok {
		return f, nil
	}
	if s := suggestFormat(key); s != "" {
		return Format{}, errors.Mark(errors.Newf("unknown file format %q (did you mean %q?)", name, s), ErrInvalidFormat)
	}
	return Format{}, errors.Mark(errors.Newf("unknown file format %q (expected one of %s)", name, strings.Join(FormatNames(), ", ")), ErrInvalidFormat)
}

func suggestFormat(key string) string {
	names := FormatNames()
	sort.Strings(names)
	best, bestDist := "", 3
	for _, n := range names {
		d := levenshtein.DistanceForStrings([]rune(key), []rune(n), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// WithDelimiter overrides the preset delimiter. "tab" means a tab character;
// anything else must be exactly one character.
func (f Format) WithDelimiter(delimiter string) (Format, error) {
	if strings.EqualFold(delimiter, "tab") {
		f.Delimiter = '\t'
		return f, nil
	}
	if delimiter == "" {
		return f, errors.Mark(errors.New("delimiter cannot be empty"), ErrInvalidFormat)
	}
	r, size := utf8.DecodeRuneInString(delimiter)
	if size != len(delimiter) || r == utf8.RuneError {
		return f, errors.Mark(errors.Newf("delimiter must be a single character, got %q", delimiter), ErrInvalidFormat)
	}
	if r == '"' || r == '\r' || r == '\n' || (f.Escape && r == '\\') {
		return f, errors.Mark(errors.Newf("delimiter %q is not allowed", delimiter), ErrInvalidFormat)
	}
	f.Delimiter = r
	return f, nil
}

// Validate reports whether the format can encode records.
func (f Format) Validate() error {
	if f.Delimiter == 0 {
		return errors.Mark(errors.Newf("format %s requires a delimiter", f.Name), ErrInvalidFormat)
	}
	return nil
}

// RecordWriter writes delimited records.
type RecordWriter interface {
	Write(record []string) error
	Flush() error
}

// NewRecordWriter returns a writer encoding records in this format.
func (f Format) NewRecordWriter(w io.Writer) RecordWriter {
	if f.Escape {
		return &escapeWriter{w: bufio.NewWriter(w), format: f}
	}
	cw := csv.NewWriter(w)
	cw.Comma = f.Delimiter
	cw.UseCRLF = f.CRLF
	return &quoteWriter{cw}
}

type quoteWriter struct {
	w *csv.Writer
}

func (q *quoteWriter) Write(record []string) error {
	return q.w.Write(record)
}

func (q *quoteWriter) Flush() error {
	q.w.Flush()
	return q.w.Error()
}

// escapeWriter never quotes; delimiter, backslash and line breaks are backslash escaped.
type escapeWriter struct {
	w      *bufio.Writer
	format Format
}

func (e *escapeWriter) Write(record []string) error {
	for i, field := range record {
		if i > 0 {
			if _, err := e.w.WriteRune(e.format.Delimiter); err != nil {
				return err
			}
		}
		if _, err := e.w.WriteString(e.escape(field)); err != nil {
			return err
		}
	}
	eol := "\n"
	if e.format.CRLF {
		eol = "\r\n"
	}
	_, err := e.w.WriteString(eol)
	return err
}

func (e *escapeWriter) escape(field string) string {
	if !strings.ContainsAny(field, "\\\r\n"+string(e.format.Delimiter)) {
		return field
	}
	var sb strings.Builder
	for _, r := range field {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		case e.format.Delimiter:
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (e *escapeWriter) Flush() error {
	return e.w.Flush()
}
