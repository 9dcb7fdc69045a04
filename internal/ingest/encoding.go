package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/Veraticus/billmerge/internal/common"
)

// Encoding names a character set a delimited export may be written in.
type Encoding string

// Supported encodings.
const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingGBK     Encoding = "gbk"
	EncodingGB18030 Encoding = "gb18030"
)

// ParseEncoding accepts the usual spellings of the supported encodings.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "gbk", "cp936":
		return EncodingGBK, nil
	case "gb18030":
		return EncodingGB18030, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedEncoding, name)
	}
}

// Alternate is the encoding to fall back to when e produced text without any
// vendor markers.
func (e Encoding) Alternate() Encoding {
	if e == EncodingUTF8 {
		return EncodingGBK
	}
	return EncodingUTF8
}

// Decode converts raw bytes to a string. UTF-8 input may carry a byte order
// mark, which is dropped.
func (e Encoding) Decode(data []byte) (string, error) {
	var enc encoding.Encoding
	switch e {
	case EncodingUTF8:
		enc = unicode.UTF8BOM
	case EncodingGBK:
		enc = simplifiedchinese.GBK
	case EncodingGB18030:
		enc = simplifiedchinese.GB18030
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedEncoding, string(e))
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode as %s: %w", e, err)
	}
	return string(out), nil
}
