package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront.dev/app/internal/config"
)

func TestCheckImage(t *testing.T) {
	assert.NoError(t, CheckImage(PutInput{Filename: "a.PNG", ContentType: "image/png", Size: 10}))
	assert.ErrorIs(t, CheckImage(PutInput{Filename: "a.exe"}), ErrUnsupportedType)
	assert.ErrorIs(t, CheckImage(PutInput{Filename: "a.png", ContentType: "text/html"}), ErrUnsupportedType)
	assert.ErrorIs(t, CheckImage(PutInput{Filename: "a.png", Size: MaxImageSize + 1}), ErrTooLarge)
}

func TestLocal_PutDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "uploads/")

	res, err := l.Put(context.Background(), strings.NewReader("png-bytes"), PutInput{Filename: "cat.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(res.Key, ".png"))

	b, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, l.Delete(context.Background(), res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, l.Delete(context.Background(), res.Key))
}

func TestLocal_RejectsOversizedBody(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")

	big := strings.NewReader(strings.Repeat("x", MaxImageSize+10))
	_, err := l.Put(context.Background(), big, PutInput{Filename: "big.jpg"})
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), config.Storage{Driver: "local", LocalDir: t.TempDir(), LocalURLPrefix: "/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(context.Background(), config.Storage{Driver: "s3"})
	assert.Error(t, err)

	_, err = New(context.Background(), config.Storage{Driver: "ftp"})
	assert.Error(t, err)
}

func TestObjectName(t *testing.T) {
	n := objectName(PutInput{Name: "Wireless Headphones!", Filename: "x.JPG"})
	assert.Regexp(t, `^wireless-headphones-[0-9a-f]{8}\.jpg$`, n)

	n = objectName(PutInput{Filename: "x.png"})
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, n)
}
