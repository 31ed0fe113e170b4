package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/types"
)

func TestProviderDefaults(t *testing.T) {
	provider := NewProvider(nil)

	assert.Equal(t, defaultAppName, provider.GetAppName())
	assert.Equal(t, "info", provider.GetLog().Level)
	assert.True(t, provider.GetBadger().SyncWrites)
	assert.False(t, provider.GetBadger().InMemory)
	assert.True(t, provider.GetWASM().UseCompiler)
	assert.Equal(t, 5*time.Second, provider.GetWASM().CallTimeout)
	assert.Positive(t, provider.GetMemory().MaxEntries)
	assert.True(t, provider.GetEvent().Enabled)
}

func TestProviderUserOverrides(t *testing.T) {
	dataDir := t.TempDir()
	cfg := &types.AppConfig{
		AppName: types.StringPtr("hello-host"),
		DataDir: types.StringPtr(dataDir),
		Log: &types.UserLogConfig{
			Level:    types.StringPtr("debug"),
			FilePath: types.StringPtr("logs/host.log"),
		},
		Storage: &types.UserStorageConfig{
			SyncWrites: types.BoolPtr(false),
		},
		Engine: &types.UserEngineConfig{
			UseCompiler:    types.BoolPtr(false),
			MaxMemoryPages: types.Uint32Ptr(32),
			CallTimeout:    types.StringPtr("250ms"),
		},
		Event: &types.UserEventConfig{Enabled: types.BoolPtr(false)},
	}
	provider := NewProvider(cfg)

	t.Run("应用名称", func(t *testing.T) {
		assert.Equal(t, "hello-host", provider.GetAppName())
	})

	t.Run("日志路径基于data_dir解析", func(t *testing.T) {
		opts := provider.GetLog()
		assert.Equal(t, "debug", opts.Level)
		assert.Equal(t, filepath.Join(dataDir, "logs/host.log"), opts.FilePath)
		assert.False(t, opts.ToConsole)
	})

	t.Run("存储目录继承data_dir", func(t *testing.T) {
		opts := provider.GetBadger()
		assert.Equal(t, filepath.Join(dataDir, "badger"), opts.Path)
		assert.False(t, opts.SyncWrites)
	})

	t.Run("执行引擎", func(t *testing.T) {
		opts := provider.GetWASM()
		assert.False(t, opts.UseCompiler)
		assert.Equal(t, uint32(32), opts.MaxMemoryPages)
		assert.Equal(t, 250*time.Millisecond, opts.CallTimeout)
	})

	t.Run("事件总线", func(t *testing.T) {
		assert.False(t, provider.GetEvent().Enabled)
	})
}

func TestProviderInMemoryStorage(t *testing.T) {
	provider := NewProvider(&types.AppConfig{
		Storage: &types.UserStorageConfig{InMemory: types.BoolPtr(true)},
	})
	opts := provider.GetBadger()
	assert.True(t, opts.InMemory)
	assert.Empty(t, opts.Path)
}

func TestInvalidCallTimeoutKeepsDefault(t *testing.T) {
	provider := NewProvider(&types.AppConfig{
		Engine: &types.UserEngineConfig{CallTimeout: types.StringPtr("soon")},
	})
	assert.Equal(t, 5*time.Second, provider.GetWASM().CallTimeout)
}

func TestLoadAppConfig(t *testing.T) {
	t.Run("空路径返回默认配置", func(t *testing.T) {
		cfg, err := LoadAppConfig("")
		require.NoError(t, err)
		assert.Nil(t, cfg.Log)
	})

	t.Run("读取JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"app_name":"x","storage":{"in_memory":true},"engine":{"call_timeout":"1s"}}`), 0o600))

		cfg, err := LoadAppConfig(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.AppName)
		assert.Equal(t, "x", *cfg.AppName)
		assert.True(t, *cfg.Storage.InMemory)
		assert.Equal(t, "1s", *cfg.Engine.CallTimeout)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("JSON格式错误", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
		_, err := LoadAppConfig(path)
		assert.Error(t, err)
	})
}
