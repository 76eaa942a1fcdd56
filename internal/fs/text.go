package fs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// previewReadLimit caps how much of a file Preview reads regardless of the
// requested line count.
const previewReadLimit = 64 * 1024

// ErrInvalidEncoding is returned by Preview when a file's bytes are not text.
var ErrInvalidEncoding = errors.New("invalid text encoding")

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// Preview returns up to lines lines of a plain file's content, or a short
// summary for a directory. Nothing is cached; every call reads the file.
func (e Entry) Preview(lines int) (string, error) {
	if e.IsDir() {
		return describeDirectory(e.Metadata.FileType.ChildCount), nil
	}
	if lines <= 0 {
		return "", nil
	}

	content, truncated, err := readPreviewHead(e.Path, lines)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", e.Path, err)
	}

	text, err := decodeText(content, truncated)
	if err != nil {
		return "", fmt.Errorf("cannot preview %s: %w", e.Path, err)
	}
	return firstLines(text, lines), nil
}

func describeDirectory(children int) string {
	switch {
	case children < 0:
		return "unreadable directory"
	case children == 1:
		return "1 item"
	default:
		return fmt.Sprintf("%d items", children)
	}
}

// readPreviewHead returns the bytes of the first lines lines of path, never
// more than previewReadLimit. UTF-16 content is not newline-delimited at the
// byte level, so it is read up to the limit and cut after decoding.
// truncated reports that the limit stopped the read.
func readPreviewHead(path string, lines int) (content []byte, truncated bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	r := bufio.NewReader(io.LimitReader(f, previewReadLimit))
	bom, _ := r.Peek(3)
	switch detectUnicodeEncoding(bom) {
	case encodingUTF16LE, encodingUTF16BE:
		content, err = io.ReadAll(r)
		if err != nil {
			return nil, false, err
		}
		return content, len(content) >= previewReadLimit, nil
	}

	for i := 0; i < lines; i++ {
		line, err := r.ReadBytes('\n')
		content = append(content, line...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, err
		}
	}
	return content, len(content) >= previewReadLimit, nil
}

// decodeText converts BOM-marked UTF-8/UTF-16 content to a Go string and
// rejects anything else that is not valid UTF-8. When truncated is set, a
// rune cut in half at the end of content is dropped instead of rejected.
func decodeText(content []byte, truncated bool) (string, error) {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		content = content[3:]
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	}

	if truncated {
		content = trimPartialRune(content)
	}
	if !utf8.Valid(content) {
		return "", ErrInvalidEncoding
	}
	return string(content), nil
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func decodeUTF16(content []byte, endian unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return string(out), nil
}

func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			return b
		}
	}
	return b
}

// firstLines keeps at most n lines, each terminated by a single '\n'.
func firstLines(text string, n int) string {
	var b strings.Builder
	for i := 0; i < n && text != ""; i++ {
		line, rest, found := strings.Cut(text, "\n")
		b.WriteString(strings.TrimSuffix(line, "\r"))
		b.WriteByte('\n')
		if !found {
			break
		}
		text = rest
	}
	return b.String()
}
