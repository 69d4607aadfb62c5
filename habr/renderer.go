package habr

import (
	"bytes"
	"fmt"
	"strconv"
)

// ByteRenderer accumulates the output markup
type ByteRenderer struct {
	buf bytes.Buffer
}

// Render writes all its arguments with no separator
func (br *ByteRenderer) Render(args ...any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			br.buf.WriteString(v)
		case []byte:
			br.buf.Write(v)
		case byte:
			br.buf.WriteByte(v)
		case int:
			br.buf.WriteString(strconv.Itoa(v))
		default:
			fmt.Fprint(&br.buf, v)
		}
	}
}

// Renderln is like Render but ends with a newline
func (br *ByteRenderer) Renderln(args ...any) {
	br.Render(args...)
	br.buf.WriteByte('\n')
}

func (br *ByteRenderer) Len() int {
	return br.buf.Len()
}

// Bytes returns the accumulated output
func (br *ByteRenderer) Bytes() []byte {
	return br.buf.Bytes()
}

func (br *ByteRenderer) String() string {
	return br.buf.String()
}
