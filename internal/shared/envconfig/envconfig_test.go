package envconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestString は未設定・空・設定済みの各ケースを検証します。
func TestString(t *testing.T) {
	t.Setenv("ENVCONFIG_TEST_STRING", "")
	assert.Equal(t, "fallback", String("ENVCONFIG_TEST_STRING", "fallback"))

	t.Setenv("ENVCONFIG_TEST_STRING", "value")
	assert.Equal(t, "value", String("ENVCONFIG_TEST_STRING", "fallback"))

	assert.Equal(t, "fallback", String("ENVCONFIG_TEST_UNSET_KEY", "fallback"))
}

// TestInt は整数の読み出しと変換エラーを検証します。
func TestInt(t *testing.T) {
	v, err := Int("ENVCONFIG_TEST_UNSET_KEY", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	t.Setenv("ENVCONFIG_TEST_INT", " 8080 ")
	v, err = Int("ENVCONFIG_TEST_INT", 0)
	require.NoError(t, err)
	assert.Equal(t, 8080, v)

	t.Setenv("ENVCONFIG_TEST_INT", "eighty")
	_, err = Int("ENVCONFIG_TEST_INT", 0)
	assert.ErrorContains(t, err, "ENVCONFIG_TEST_INT")
}

// TestBool は真偽値の読み出しと変換エラーを検証します。
func TestBool(t *testing.T) {
	v, err := Bool("ENVCONFIG_TEST_UNSET_KEY", true)
	require.NoError(t, err)
	assert.True(t, v)

	t.Setenv("ENVCONFIG_TEST_BOOL", "false")
	v, err = Bool("ENVCONFIG_TEST_BOOL", true)
	require.NoError(t, err)
	assert.False(t, v)

	t.Setenv("ENVCONFIG_TEST_BOOL", "maybe")
	_, err = Bool("ENVCONFIG_TEST_BOOL", true)
	assert.Error(t, err)
}

// TestDuration は期間の読み出しと変換エラーを検証します。
func TestDuration(t *testing.T) {
	v, err := Duration("ENVCONFIG_TEST_UNSET_KEY", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, v)

	t.Setenv("ENVCONFIG_TEST_DURATION", "1m30s")
	v, err = Duration("ENVCONFIG_TEST_DURATION", 0)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, v)

	t.Setenv("ENVCONFIG_TEST_DURATION", "90")
	_, err = Duration("ENVCONFIG_TEST_DURATION", 0)
	assert.Error(t, err)
}

// TestList はカンマ区切りの分割と空要素の除去を検証します。
func TestList(t *testing.T) {
	assert.Equal(t, []string{"a"}, List("ENVCONFIG_TEST_UNSET_KEY", []string{"a"}))

	t.Setenv("ENVCONFIG_TEST_LIST", " http://a.test , ,http://b.test,")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, List("ENVCONFIG_TEST_LIST", nil))
}
