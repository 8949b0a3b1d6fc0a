package tracksheet

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ErrDecodeFailure reports that no configured encoding decoded the input.
var ErrDecodeFailure = errors.New("no encoding decoded the file")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type decoder func([]byte) (string, error)

var errInvalid = errors.New("invalid byte sequence")

var builtinDecoders = map[string]decoder{
	"utf-8-sig":  decodeUTF8Sig,
	"utf8-sig":   decodeUTF8Sig,
	"utf-8":      decodeUTF8,
	"utf8":       decodeUTF8,
	"latin-1":    decodeWith(charmap.ISO8859_1),
	"latin1":     decodeWith(charmap.ISO8859_1),
	"iso-8859-1": decodeWith(charmap.ISO8859_1),
	"gb18030":    decodeWith(simplifiedchinese.GB18030),
	"shift_jis":  decodeWith(japanese.ShiftJIS),
	"shift-jis":  decodeWith(japanese.ShiftJIS),
	"sjis":       decodeWith(japanese.ShiftJIS),
}

// Decode tries each named encoding in order and returns the text produced by
// the first one that decodes all of data, together with that encoding's name.
// Names outside the built-in set are resolved through the IANA registry.
func Decode(data []byte, names []string) (string, string, error) {
	var attempted []string
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		dec, err := lookupDecoder(key)
		if err != nil {
			return "", "", err
		}
		attempted = append(attempted, key)
		text, err := dec(data)
		if err == nil {
			return text, key, nil
		}
	}
	return "", "", fmt.Errorf("%w (tried %s)", ErrDecodeFailure, strings.Join(attempted, ", "))
}

func lookupDecoder(name string) (decoder, error) {
	if dec, ok := builtinDecoders[name]; ok {
		return dec, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return decodeWith(enc), nil
}

func decodeUTF8Sig(data []byte) (string, error) {
	return decodeUTF8(bytes.TrimPrefix(data, utf8BOM))
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalid
	}
	return string(data), nil
}

// decodeWith rejects output containing the replacement rune, since x/text
// decoders substitute it for invalid input instead of failing.
func decodeWith(enc encoding.Encoding) decoder {
	return func(data []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		if bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(data, utf8.RuneError) {
			return "", errInvalid
		}
		return string(out), nil
	}
}
