package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartFile builds a real multipart upload and parses it back, so the
// test exercises the same FileHeader the handler hands to the service.
func multipartFile(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="picture"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/rentals", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, fileHeader, err := req.FormFile("picture")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, fileHeader
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return svc
}

func TestStorePicture_JPEG(t *testing.T) {
	svc := newTestService(t)
	file, header := multipartFile(t, "photo.jpg", "image/jpeg", []byte("jpeg-bytes"))

	url, err := svc.StorePicture(file, header, "Seaside Flat")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))
	assert.Contains(t, url, "seaside-flat")

	stored := filepath.Join(svc.Dir(), filepath.Base(url))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), content)
}

func TestStorePicture_RejectsUnsupportedType(t *testing.T) {
	svc := newTestService(t)
	file, header := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))

	_, err := svc.StorePicture(file, header, "Seaside Flat")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	entries, err := os.ReadDir(svc.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStorePicture_UniqueFilenames(t *testing.T) {
	svc := newTestService(t)

	file1, header1 := multipartFile(t, "photo.png", "image/png", []byte("a"))
	file2, header2 := multipartFile(t, "photo.png", "image/png", []byte("b"))

	url1, err := svc.StorePicture(file1, header1, "Flat")
	require.NoError(t, err)
	url2, err := svc.StorePicture(file2, header2, "Flat")
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
}

func TestStorePicture_SanitizesName(t *testing.T) {
	svc := newTestService(t)
	file, header := multipartFile(t, "photo.png", "image/png", []byte("png-bytes"))

	url, err := svc.StorePicture(file, header, "../../etc/passwd")
	require.NoError(t, err)

	// Path characters are stripped from the rental name
	filename := filepath.Base(url)
	assert.NotContains(t, filename, "/")
	assert.NotContains(t, filename, "..")

	_, err = os.Stat(filepath.Join(svc.Dir(), filename))
	require.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "seaside-flat", sanitizeName("Seaside Flat"))
	assert.Equal(t, "flat-21", sanitizeName("Flat #21"))
	assert.Equal(t, "picture", sanitizeName("!!!"))
}
