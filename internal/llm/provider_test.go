package llm

import (
	"testing"

	"github.com/prebunk/prebunk/internal/model"
)

func TestNewCompleter_Disabled(t *testing.T) {
	c, err := NewCompleter(model.LLMConfig{})
	if err != nil {
		t.Fatalf("Expected no error for disabled provider, got %v", err)
	}
	if c != nil {
		t.Error("Expected nil completer when provider is empty")
	}
}

func TestNewCompleter_Ollama(t *testing.T) {
	c, err := NewCompleter(model.LLMConfig{Provider: "ollama"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c == nil || c.Name() != "ollama" {
		t.Errorf("Expected ollama completer, got %v", c)
	}
}

func TestNewCompleter_CaseInsensitive(t *testing.T) {
	c, err := NewCompleter(model.LLMConfig{Provider: "OpenAI", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c == nil || c.Name() != "openai" {
		t.Errorf("Expected openai completer, got %v", c)
	}
}

func TestNewCompleter_Unknown(t *testing.T) {
	if _, err := NewCompleter(model.LLMConfig{Provider: "carrier-pigeon"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
