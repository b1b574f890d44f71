package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytes_PlainText(t *testing.T) {
	text, err := FromBytes("resume.txt", []byte("Jane Doe\n\n\nPython   developer"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nPython developer", text)
}

func TestFromBytes_Markdown(t *testing.T) {
	text, err := FromBytes("resume.md", []byte("# Jane Doe\nEngineer"))
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
}

func TestFromBytes_UnsupportedFormat(t *testing.T) {
	_, err := FromBytes("resume.odt", []byte("content"))

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "resume.odt", extractErr.File)
}

func TestFromBytes_DOCX(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document><w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Python and Django developer</w:t></w:r></w:p>
</w:body></w:document>`

	text, err := FromBytes("resume.docx", buildDOCX(t, docXML))
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Python and Django developer")
}

func TestFromBytes_DOCXWithoutDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = FromBytes("resume.docx", buf.Bytes())

	var extractErr *Error
	assert.ErrorAs(t, err, &extractErr)
}

func TestFromBytes_CorruptPDF(t *testing.T) {
	_, err := FromBytes("resume.pdf", []byte("not a pdf"))

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile("/nonexistent/resume.txt")

	var extractErr *Error
	assert.ErrorAs(t, err, &extractErr)
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
