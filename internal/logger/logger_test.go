package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesUnderKindDirectory(t *testing.T) {
	Root = t.TempDir()
	t.Cleanup(func() { Root = "./logs" })

	l := NewLogger("settlement")
	l.Info("hello")

	info, err := os.Stat(filepath.Join(Root, "settlement"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestSetLevel(t *testing.T) {
	a, b := logrus.New(), logrus.New()
	SetLevel("debug", a, b)
	assert.Equal(t, logrus.DebugLevel, a.GetLevel())
	assert.Equal(t, logrus.DebugLevel, b.GetLevel())

	SetLevel("nonsense", a)
	assert.Equal(t, logrus.DebugLevel, a.GetLevel())
}
