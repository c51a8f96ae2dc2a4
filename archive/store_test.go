package archive

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screengrab/screengrab/screenshot"
)

type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(format string, v ...interface{}) {
	m.logs = append(m.logs, "INFO: "+fmt.Sprintf(format, v...))
}

func (m *mockLogger) Debug(format string, v ...interface{}) {
	m.logs = append(m.logs, "DEBUG: "+fmt.Sprintf(format, v...))
}

func (m *mockLogger) Error(format string, v ...interface{}) {
	m.logs = append(m.logs, "ERROR: "+fmt.Sprintf(format, v...))
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive", "test.db"), &mockLogger{})
	require.NoError(t, err)
	return s
}

func testCapture() *Capture {
	return &Capture{
		Display:    0,
		Width:      1920,
		Height:     1080,
		RowLen:     7680,
		PixelWidth: 4,
		Bytes:      7680 * 1080,
		SHA256:     "deadbeef",
		Path:       "/tmp/cap.png",
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	s := testStore(t)

	require.NotNil(t, s)
	assert.NotNil(t, s.db)
}

func TestStore_Save_AssignsID(t *testing.T) {
	s := testStore(t)
	c := testCapture()

	require.NoError(t, s.Save(c))

	assert.NotEmpty(t, c.ID)
	assert.NotZero(t, c.TakenAt)
}

func TestStore_SaveGet_RoundTrip(t *testing.T) {
	s := testStore(t)
	c := testCapture()
	require.NoError(t, s.Save(c))

	got, err := s.Get(c.ID)

	require.NoError(t, err)
	assert.Equal(t, c.Width, got.Width)
	assert.Equal(t, c.Height, got.Height)
	assert.Equal(t, c.RowLen, got.RowLen)
	assert.Equal(t, c.PixelWidth, got.PixelWidth)
	assert.Equal(t, c.SHA256, got.SHA256)
	assert.Equal(t, c.Path, got.Path)
}

func TestStore_Get_Missing(t *testing.T) {
	s := testStore(t)

	_, err := s.Get("no-such-id")

	assert.Error(t, err)
}

func TestStore_List(t *testing.T) {
	s := testStore(t)
	for i := 0; i < 3; i++ {
		c := testCapture()
		c.Display = i
		require.NoError(t, s.Save(c))
	}

	captures, err := s.List()

	require.NoError(t, err)
	assert.Len(t, captures, 3)
}

func TestStore_Delete(t *testing.T) {
	s := testStore(t)
	c := testCapture()
	require.NoError(t, s.Save(c))

	require.NoError(t, s.Delete(c.ID))

	_, err := s.Get(c.ID)
	assert.Error(t, err)
}

func TestStore_Delete_Missing(t *testing.T) {
	s := testStore(t)

	err := s.Delete("no-such-id")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestStore_Record_FromLiveCapture(t *testing.T) {
	img, err := screenshot.Get(0)
	if err != nil {
		t.Skipf("no capturable display: %v", err)
	}
	s := testStore(t)

	c, err := s.Record(img, 0, "/tmp/live.png")

	require.NoError(t, err)
	assert.Equal(t, img.Width(), c.Width)
	assert.Equal(t, img.Height(), c.Height)
	assert.Equal(t, img.RowLen(), c.RowLen)
	assert.Equal(t, img.PixelWidth(), c.PixelWidth)
	assert.Equal(t, int64(img.RawLen()), c.Bytes)
	assert.Len(t, c.SHA256, 64)
	assert.NotEmpty(t, c.Host)
	assert.NotEmpty(t, c.OS)
}

func TestManifest_ExportImport_RoundTrip(t *testing.T) {
	src := testStore(t)
	for i := 0; i < 2; i++ {
		require.NoError(t, src.Save(testCapture()))
	}
	manifest := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, src.ExportManifest(manifest))

	dst := testStore(t)
	imported, err := dst.ImportManifest(manifest)

	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	captures, err := dst.List()
	require.NoError(t, err)
	assert.Len(t, captures, 2)
}

func TestManifest_Import_SkipsExisting(t *testing.T) {
	s := testStore(t)
	c := testCapture()
	require.NoError(t, s.Save(c))
	manifest := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, s.ExportManifest(manifest))

	imported, err := s.ImportManifest(manifest)

	require.NoError(t, err)
	assert.Zero(t, imported)
}

func TestManifest_Import_MissingFile(t *testing.T) {
	s := testStore(t)

	_, err := s.ImportManifest(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}
