package dom

import (
	"reflect"
	"strings"
	"testing"
)

func TestScripts(t *testing.T) {
	tests := []struct {
		script Script
		name   string
		args   []any
	}{
		{ContentScript(), NameContent, nil},
		{SEOScript(), NameSEO, nil},
		{TechnicalScript([]string{"React"}), NameTechnical, []any{[]string{"React"}}},
		{Attention([]string{"h1"}), NameAttention, []any{[]string{"h1"}}},
		{InjectOverlay(".x{}", 2), NameInjectOverlay, []any{".x{}", 2}},
		{RemoveOverlay(), NameRemoveOverlay, nil},
		{VisibleText(), NameVisibleText, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.script.Name != tt.name {
				t.Errorf("Expected name %q, got %q", tt.name, tt.script.Name)
			}
			if !strings.Contains(tt.script.Source, "JSON.stringify") {
				t.Errorf("Expected %s source to return JSON", tt.name)
			}
			if !reflect.DeepEqual(tt.script.Args, tt.args) {
				t.Errorf("Expected args %v, got %v", tt.args, tt.script.Args)
			}
		})
	}
}

func TestContentScript_WordCountMatchesCountWords(t *testing.T) {
	if !strings.Contains(ContentScript().Source, "text.split(/\\s+/).length") {
		t.Error("Expected the content script to count words with text.split(/\\s+/).length")
	}
}
