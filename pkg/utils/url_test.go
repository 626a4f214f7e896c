package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileNameFromURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://example.com/path/to/file.zip", "file.zip"},
		{"https://example.com/path/to/file.zip?x=1#frag", "file.zip"},
		{"https://example.com/file.tar.gz", "file.tar.gz"},
		{"https://example.com/dir/my%20file.txt", "my file.txt"},
		{"https://example.com/path/", ""},
		{"https://example.com/", ""},
		{"https://example.com", ""},
		{"https://example.com/a/..", ""},
		{"http://[::1", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FileNameFromURL(c.in), c.in)
	}
}

func TestFileNameFromDisposition(t *testing.T) {
	cases := []struct{ in, want string }{
		{`attachment; filename="report.csv"`, "report.csv"},
		{`attachment; filename=plain.txt`, "plain.txt"},
		{`attachment; filename*=UTF-8''r%C3%A9sum%C3%A9.pdf`, "résumé.pdf"},
		{`attachment; filename="../../etc/passwd"`, "passwd"},
		{`attachment; filename="C:\\temp\\win.txt"`, "win.txt"},
		{`attachment`, ""},
		{`inline; filename=""`, ""},
		{``, ""},
		{`;;;`, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FileNameFromDisposition(c.in), c.in)
	}
}
