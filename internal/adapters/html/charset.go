package html

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// ToUTF8 transcodes body to UTF-8 using the charset declared by contentType,
// a byte order mark or a <meta> tag, in that order. A body that is already
// valid UTF-8 is returned unchanged unless the declaration is certain
// (header or BOM). An empty contentType means no header was seen.
func ToUTF8(body []byte, contentType string) ([]byte, error) {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(body)) {
		return body, nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	return decoded, nil
}
