package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingFileStorage struct {
	names []string
	err   error
}

func (s *recordingFileStorage) Store(_ context.Context, name string, reader io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.names = append(s.names, name)
	return "/uploads/" + name, nil
}

func (s *recordingFileStorage) Delete(context.Context, string) error {
	return nil
}

// multipartFile packages raw bytes into the *multipart.FileHeader shape the
// upload service consumes from fiber.
func multipartFile(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestUploadStoresPNG(t *testing.T) {
	store := &recordingFileStorage{}
	svc := NewUploadService(store, 10, testLogger())

	response, err := svc.Upload(context.Background(), multipartFile(t, "My Sketch (1).PNG", pngBytes))
	require.NoError(t, err)
	require.Equal(t, "My Sketch (1).PNG", response.FileName)
	require.Equal(t, int64(len(pngBytes)), response.Size)
	require.True(t, strings.HasPrefix(response.FileURL, "/uploads/"))

	require.Len(t, store.names, 1)
	require.True(t, strings.HasSuffix(store.names[0], ".png"), "stored name keeps the lowercased extension")
	require.NotContains(t, store.names[0], " ")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	store := &recordingFileStorage{}
	svc := NewUploadService(store, 1, testLogger())

	big := bytes.Repeat([]byte{'a'}, 2*1024*1024)
	_, err := svc.Upload(context.Background(), multipartFile(t, "big.png", big))
	require.ErrorIs(t, err, ErrUploadTooLarge)
	require.Empty(t, store.names)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	store := &recordingFileStorage{}
	svc := NewUploadService(store, 10, testLogger())

	_, err := svc.Upload(context.Background(), multipartFile(t, "notes.txt", []byte("plain text body")))
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
	require.Empty(t, store.names)
}

func TestUploadSurfacesStorageFailure(t *testing.T) {
	store := &recordingFileStorage{err: io.ErrClosedPipe}
	svc := NewUploadService(store, 10, testLogger())

	_, err := svc.Upload(context.Background(), multipartFile(t, "sketch.png", pngBytes))
	require.Error(t, err)
	require.ErrorIs(t, err, io.ErrClosedPipe)
}
