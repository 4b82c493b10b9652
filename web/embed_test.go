package web

import (
	"io/fs"
	"testing"
)

func TestStaticFS(t *testing.T) {
	data, err := fs.ReadFile(StaticFS(), "style.css")
	if err != nil {
		t.Fatalf("read style.css: %v", err)
	}
	if len(data) == 0 {
		t.Error("style.css is empty")
	}
}
