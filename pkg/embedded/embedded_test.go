package embedded

import (
	"testing"
	"testing/fstest"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"data/game.yaml":  {Data: []byte("field: {}\n")},
		"data/extra.yaml": {Data: []byte("x: 1\n")},
	}
}

func TestNotInitialized(t *testing.T) {
	Reset()

	if IsInitialized() {
		t.Fatal("Expected IsInitialized() to return false before Init()")
	}

	_, err := ReadFile("data/game.yaml")
	if err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error: %v", err)
	}
	if Exists("data/game.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

func TestReadFile(t *testing.T) {
	Init(newTestFS())
	t.Cleanup(Reset)

	t.Run("读取内置文件", func(t *testing.T) {
		data, err := ReadFile("data/game.yaml")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "field: {}\n" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("去除 ./ 前缀", func(t *testing.T) {
		if _, err := ReadFile("./data/game.yaml"); err != nil {
			t.Errorf("ReadFile with ./ prefix failed: %v", err)
		}
	})

	t.Run("无效前缀", func(t *testing.T) {
		_, err := ReadFile("assets/game.yaml")
		if err == nil || err.Error() != "unknown resource path prefix: assets/game.yaml (must start with 'data/')" {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		if _, err := ReadFile("data/missing.yaml"); err == nil {
			t.Error("Expected error for missing file")
		}
		if Exists("data/missing.yaml") {
			t.Error("Expected Exists() to return false for missing file")
		}
	})
}

func TestGlob(t *testing.T) {
	Init(newTestFS())
	t.Cleanup(Reset)

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("matches = %v, want 2 files", matches)
	}
}
